package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
	"github.com/sirdesai22/hackhub/internal/services"
	"gorm.io/gorm"
)

func (s *Server) handleAwardAchievement(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID      uuid.UUID              `json:"user_id"`
		HackathonID *uuid.UUID             `json:"hackathon_id"`
		Type        models.AchievementType `json:"type"`
		Points      int                    `json:"points"`
	}
	if !decodeBody(w, r, &input) {
		return
	}
	achievement, err := services.AwardAchievement(r.Context(), s.DB, input.UserID, input.HackathonID, input.Type, input.Points)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, achievement)
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	report, err := services.ReconcileCounts(r.Context(), s.DB)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleRetryDLQ requeues a dead-lettered event into the outbox. The sync
// worker picks it up on its next tick; the DLQ row is marked resolved so
// the background retry loop leaves it alone.
func (s *Server) handleRetryDLQ(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	err = s.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		var dlq models.DLQ
		if err := tx.First(&dlq, "id = ? AND resolved = ?", id, false).Error; err != nil {
			return err
		}
		entityID, err := uuid.Parse(dlq.EntityID)
		if err != nil {
			return err
		}
		event := models.Outbox{
			EntityType: dlq.EntityType,
			EntityID:   entityID,
			Op:         dlq.Op,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&models.DLQ{}).Where("id = ?", dlq.ID).Updates(map[string]any{
			"resolved":   true,
			"retried_at": &now,
		}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no unresolved DLQ entry"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "requeued"})
}

func (s *Server) handleListDLQ(w http.ResponseWriter, r *http.Request) {
	var dlq []models.DLQ
	if err := s.DB.WithContext(r.Context()).Order("id desc").Limit(100).Find(&dlq).Error; err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dlq)
}
