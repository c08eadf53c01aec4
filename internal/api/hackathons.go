package api

import (
	"net/http"
	"time"

	"github.com/sirdesai22/hackhub/internal/models"
	"github.com/sirdesai22/hackhub/internal/services"
)

func (s *Server) handleCreateHackathon(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	var input struct {
		Title                string     `json:"title"`
		Description          string     `json:"description"`
		StartDate            time.Time  `json:"start_date"`
		EndDate              time.Time  `json:"end_date"`
		IsOnline             bool       `json:"is_online"`
		Location             string     `json:"location"`
		CoverImage           string     `json:"cover_image"`
		RegistrationDeadline *time.Time `json:"registration_deadline"`
		MaxParticipants      int        `json:"max_participants"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	hackathon, err := services.CreateHackathon(r.Context(), s.DB, me.ID, services.CreateHackathonInput{
		Title:                input.Title,
		Description:          input.Description,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		IsOnline:             input.IsOnline,
		Location:             input.Location,
		CoverImage:           input.CoverImage,
		RegistrationDeadline: input.RegistrationDeadline,
		MaxParticipants:      input.MaxParticipants,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hackathon)
}

type hackathonView struct {
	models.Hackathon
	Status models.HackathonStatus `json:"status"`
}

func (s *Server) handleListHackathons(w http.ResponseWriter, r *http.Request) {
	hackathons, err := services.ListHackathons(r.Context(), s.DB)
	if err != nil {
		writeError(w, err)
		return
	}
	now := time.Now()
	views := make([]hackathonView, 0, len(hackathons))
	for _, h := range hackathons {
		views = append(views, hackathonView{Hackathon: h, Status: h.StatusAt(now)})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetHackathon(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	hackathon, err := services.GetHackathon(r.Context(), s.DB, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hackathonView{Hackathon: *hackathon, Status: hackathon.StatusAt(time.Now())})
}

func (s *Server) handleJoinHackathon(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	participant, err := services.JoinHackathon(r.Context(), s.DB, id, me.ID, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, participant)
}

func (s *Server) handleLeaveHackathon(w http.ResponseWriter, r *http.Request) {
	me, ok := s.currentProfile(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := services.LeaveHackathon(r.Context(), s.DB, id, me.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "left"})
}
