package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
	"github.com/sirdesai22/hackhub/internal/services"
	"github.com/sirdesai22/hackhub/internal/uploads"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	profile, err := services.ResolveProfile(r.Context(), s.DB, identityFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FullName  string `json:"full_name"`
		AvatarURL string `json:"avatar_url"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	profile, err := services.CreateProfile(r.Context(), s.DB, identityFrom(r), input.FullName, input.AvatarURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleSearchUnclaimed(w http.ResponseWriter, r *http.Request) {
	profiles, err := services.SearchUnclaimedProfiles(r.Context(), s.DB, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleClaimProfile(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProfileID uuid.UUID `json:"profile_id"`
		AvatarURL string    `json:"avatar_url"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	profile, err := services.ClaimProfile(r.Context(), s.DB, input.ProfileID, identityFrom(r), input.AvatarURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	var updates map[string]any
	if !decodeBody(w, r, &updates) {
		return
	}
	profile, err := services.UpdateProfile(r.Context(), s.DB, me.ID, updates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	file, _, err := r.FormFile("avatar")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "avatar file is required"})
		return
	}
	defer file.Close()

	url, err := uploads.UploadAvatar(file, identityFrom(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "image upload failed"})
		return
	}
	profile, err := services.UpdateProfile(r.Context(), s.DB, me.ID, map[string]any{"avatar_url": url})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	profiles, err := services.TopProfiles(r.Context(), s.DB, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rank, err := services.Rank(r.Context(), s.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"rank": rank})
}

func (s *Server) handleProfileHonors(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	counts, err := services.ReceiverHonorCounts(r.Context(), s.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	points, err := services.ReceiverHonorPoints(r.Context(), s.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"counts":       counts,
		"total_points": points,
		"metadata":     models.HonorMetadata,
	})
}
