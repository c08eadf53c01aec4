// Package api is the host surface: thin JSON handlers that call the
// service operations and map their outcomes to status codes. No handler
// writes entity fields directly.
package api

import (
	"net/http"

	"gorm.io/gorm"
)

type Server struct {
	DB        *gorm.DB
	JWTSecret []byte
}

func New(db *gorm.DB, jwtSecret []byte) *Server {
	return &Server{DB: db, JWTSecret: jwtSecret}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// profiles / onboarding
	mux.Handle("GET /api/me", s.auth(s.handleMe))
	mux.Handle("POST /api/profiles", s.auth(s.handleCreateProfile))
	mux.Handle("GET /api/profiles/unclaimed", s.auth(s.handleSearchUnclaimed))
	mux.Handle("POST /api/profiles/claim", s.auth(s.handleClaimProfile))
	mux.Handle("PATCH /api/profiles/me", s.auth(s.handleUpdateProfile))
	mux.Handle("POST /api/profiles/me/avatar", s.auth(s.handleUploadAvatar))
	mux.Handle("GET /api/profiles/{id}/rank", s.auth(s.handleRank))
	mux.Handle("GET /api/profiles/{id}/honors", s.auth(s.handleProfileHonors))
	mux.Handle("GET /api/leaderboard", s.auth(s.handleLeaderboard))

	// hackathons
	mux.Handle("POST /api/hackathons", s.auth(s.handleCreateHackathon))
	mux.Handle("GET /api/hackathons", s.auth(s.handleListHackathons))
	mux.Handle("GET /api/hackathons/{id}", s.auth(s.handleGetHackathon))
	mux.Handle("POST /api/hackathons/{id}/join", s.auth(s.handleJoinHackathon))
	mux.Handle("POST /api/hackathons/{id}/leave", s.auth(s.handleLeaveHackathon))

	// projects, votes, honors
	mux.Handle("POST /api/projects", s.auth(s.handleCreateProject))
	mux.Handle("GET /api/projects/{id}/team", s.auth(s.handleListTeam))
	mux.Handle("POST /api/projects/{id}/members", s.auth(s.handleAddMember))
	mux.Handle("POST /api/projects/{id}/cover", s.auth(s.handleUploadProjectCover))
	mux.Handle("POST /api/projects/{id}/vote", s.auth(s.handleToggleVote))
	mux.Handle("POST /api/projects/{id}/honors", s.auth(s.handleGiveHonor))
	mux.Handle("GET /api/projects/{id}/honors", s.auth(s.handleProjectHonors))

	// bounties
	mux.Handle("POST /api/bounties", s.auth(s.handleCreateBounty))
	mux.Handle("POST /api/bounties/{id}/submissions", s.auth(s.handleSubmitToBounty))
	mux.Handle("DELETE /api/submissions/{id}", s.auth(s.handleWithdrawSubmission))
	mux.Handle("POST /api/bounties/{id}/review", s.auth(s.handleMarkInReview))
	mux.Handle("POST /api/bounties/{id}/winner", s.auth(s.handleSelectWinner))
	mux.Handle("POST /api/bounties/{id}/complete", s.auth(s.handleMarkComplete))
	mux.Handle("POST /api/bounties/{id}/cancel", s.auth(s.handleCancelBounty))

	// admin
	mux.Handle("POST /api/admin/achievements", s.admin(s.handleAwardAchievement))
	mux.Handle("POST /api/admin/reconcile", s.admin(s.handleReconcile))
	mux.Handle("GET /api/admin/dlq", s.admin(s.handleListDLQ))
	mux.Handle("POST /api/admin/retry/{id}", s.admin(s.handleRetryDLQ))

	return mux
}
