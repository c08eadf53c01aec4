package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
	"github.com/sirdesai22/hackhub/internal/services"
	"github.com/sirdesai22/hackhub/internal/uploads"
)

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	var input struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		HackathonID *uuid.UUID `json:"hackathon_id"`
		BountyID    *uuid.UUID `json:"bounty_id"`
		GithubURL   string     `json:"github_url"`
		DemoURL     string     `json:"demo_url"`
		CoverImage  string     `json:"cover_image"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	project, err := services.CreateProject(r.Context(), s.DB, me.ID, services.CreateProjectInput{
		Title:       input.Title,
		Description: input.Description,
		HackathonID: input.HackathonID,
		BountyID:    input.BountyID,
		GithubURL:   input.GithubURL,
		DemoURL:     input.DemoURL,
		CoverImage:  input.CoverImage,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleListTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	team, err := services.ListTeam(r.Context(), s.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentProfile(w, r); !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input struct {
		UserID uuid.UUID `json:"user_id"`
		Role   string    `json:"role"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	member, err := services.AddMember(r.Context(), s.DB, id, input.UserID, input.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (s *Server) handleToggleVote(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	result, err := services.ToggleVote(r.Context(), s.DB, id, me.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGiveHonor(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input struct {
		ReceiverID uuid.UUID        `json:"receiver_id"`
		HonorType  models.HonorType `json:"honor_type"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	honor, err := services.GiveHonor(r.Context(), s.DB, me.ID, input.ReceiverID, id, input.HonorType, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, honor)
}

func (s *Server) handleUploadProjectCover(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	file, _, err := r.FormFile("cover")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cover file is required"})
		return
	}
	defer file.Close()

	url, err := uploads.UploadCover(file, identityFrom(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "image upload failed"})
		return
	}
	project, err := services.SetProjectCover(r.Context(), s.DB, id, me.ID, url)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleProjectHonors(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	counts, err := services.ProjectHonorCounts(r.Context(), s.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"counts":   counts,
		"metadata": models.HonorMetadata,
	})
}
