package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/metrics"
	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/gorm"
)

type ReconcileReport struct {
	ProjectsRepaired int `json:"projects_repaired"`
	ProfilesRepaired int `json:"profiles_repaired"`
}

// ReconcileCounts recomputes the denormalized counters from their source
// rows: vote_count from project_votes, total_score from achievements plus
// peer honors. The counters are caches; any drift means a dual-write bug
// slipped through, so repaired entities are also reindexed.
func ReconcileCounts(ctx context.Context, db *gorm.DB) (ReconcileReport, error) {
	var report ReconcileReport
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var projectIDs []uuid.UUID
		if err := tx.Model(&models.Project{}).
			Where(`vote_count <> (SELECT COUNT(*) FROM project_votes WHERE project_id = projects.id)`).
			Pluck("id", &projectIDs).Error; err != nil {
			return err
		}
		if len(projectIDs) > 0 {
			if err := tx.Exec(
				`UPDATE projects
				 SET vote_count = (SELECT COUNT(*) FROM project_votes WHERE project_id = projects.id)
				 WHERE id IN ?`, projectIDs).Error; err != nil {
				return err
			}
			if err := AddBatchOutboxEvents(tx, "project", "UPSERT", projectIDs); err != nil {
				return err
			}
		}
		report.ProjectsRepaired = len(projectIDs)

		var profileIDs []uuid.UUID
		expected := `COALESCE((SELECT SUM(points) FROM achievements WHERE user_id = profiles.id), 0)
			 + COALESCE((SELECT SUM(points) FROM peer_honors WHERE receiver_id = profiles.id), 0)`
		if err := tx.Model(&models.Profile{}).
			Where(`total_score <> `+expected).
			Pluck("id", &profileIDs).Error; err != nil {
			return err
		}
		if len(profileIDs) > 0 {
			if err := tx.Exec(
				`UPDATE profiles SET total_score = `+expected+` WHERE id IN ?`, profileIDs).Error; err != nil {
				return err
			}
			if err := AddBatchOutboxEvents(tx, "profile", "UPSERT", profileIDs); err != nil {
				return err
			}
		}
		report.ProfilesRepaired = len(profileIDs)
		return nil
	})
	if err != nil {
		return ReconcileReport{}, err
	}

	drift := report.ProjectsRepaired + report.ProfilesRepaired
	if drift > 0 {
		metrics.ReconcileDrift.Add(float64(drift))
		log.Printf("⚠️ reconcile repaired drift: %d projects, %d profiles",
			report.ProjectsRepaired, report.ProfilesRepaired)
	}
	return report, nil
}
