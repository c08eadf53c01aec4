package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
	"github.com/sirdesai22/hackhub/internal/services"
	"gorm.io/gorm"
)

func (s *Server) handleCreateBounty(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	var input struct {
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		RewardAmount int       `json:"reward_amount"`
		Deadline     time.Time `json:"deadline"`
		Tags         []string  `json:"tags"`
		CoverImage   string    `json:"cover_image"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	bounty, err := services.CreateBounty(r.Context(), s.DB, me.ID, services.CreateBountyInput{
		Title:        input.Title,
		Description:  input.Description,
		RewardAmount: input.RewardAmount,
		Deadline:     input.Deadline,
		Tags:         input.Tags,
		CoverImage:   input.CoverImage,
	}, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bounty)
}

func (s *Server) handleSubmitToBounty(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input struct {
		ProjectID uuid.UUID `json:"project_id"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	submission, err := services.SubmitToBounty(r.Context(), s.DB, id, input.ProjectID, me.ID, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submission)
}

func (s *Server) handleWithdrawSubmission(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := services.WithdrawSubmission(r.Context(), s.DB, id, me.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "withdrawn"})
}

func (s *Server) handleMarkInReview(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, services.MarkInReview)
}

func (s *Server) handleMarkComplete(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, services.MarkComplete)
}

func (s *Server) handleCancelBounty(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, services.CancelBounty)
}

func (s *Server) handleSelectWinner(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input struct {
		SubmissionID uuid.UUID `json:"submission_id"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	bounty, err := services.SelectWinner(r.Context(), s.DB, id, input.SubmissionID, me.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bounty)
}

type bountyTransition func(ctx context.Context, db *gorm.DB, bountyID, requesterID uuid.UUID) (*models.Bounty, error)

func (s *Server) transition(w http.ResponseWriter, r *http.Request, fn bountyTransition) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	bounty, err := fn(r.Context(), s.DB, id, me.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bounty)
}
