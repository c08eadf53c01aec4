package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/metrics"
	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/gorm"
)

// HonorsEligibleAt reports whether honoring is still open for a project.
// Projects tied to a hackathon close 24h after the hackathon ends;
// free-standing projects never close.
func HonorsEligibleAt(ctx context.Context, db *gorm.DB, project *models.Project, now time.Time) (bool, error) {
	if project.HackathonID == nil {
		return true, nil
	}
	hackathon, err := GetHackathon(ctx, db, *project.HackathonID)
	if err != nil {
		return false, err
	}
	return !now.After(hackathon.HonorDeadline()), nil
}

// GiveHonor records a one-time typed recognition from giver to a teammate
// and awards the receiver its points. Honor row and score bump land in one
// transaction; the unique (giver, project) index closes the race between
// concurrent attempts.
func GiveHonor(ctx context.Context, db *gorm.DB, giverID, receiverID, projectID uuid.UUID, honorType models.HonorType, now time.Time) (*models.PeerHonor, error) {
	if !models.ValidHonorType(honorType) {
		return nil, fmt.Errorf("%w: unknown honor type %q", ErrValidation, honorType)
	}
	if giverID == receiverID {
		return nil, ErrSelfHonor
	}

	project, err := GetProject(ctx, db, projectID)
	if err != nil {
		return nil, err
	}

	honor := models.PeerHonor{
		GiverID:    giverID,
		ReceiverID: receiverID,
		ProjectID:  projectID,
		HonorType:  honorType,
		Points:     models.HonorPoints,
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ok, err := isTeamMember(tx, project, giverID); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: giver", ErrNotTeamMember)
		}
		if ok, err := isTeamMember(tx, project, receiverID); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: receiver", ErrNotTeamMember)
		}

		if project.HackathonID != nil {
			var hackathon models.Hackathon
			if err := tx.First(&hackathon, "id = ?", *project.HackathonID).Error; err != nil {
				return err
			}
			if now.After(hackathon.HonorDeadline()) {
				return ErrHonorWindowClosed
			}
		}

		if err := tx.Create(&honor).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyHonored
			}
			return err
		}

		// honor without the points, or points without the honor, is an
		// inconsistent state; both writes share this transaction
		if err := tx.Exec(
			`UPDATE profiles SET total_score = total_score + ? WHERE id = ?`,
			models.HonorPoints, receiverID).Error; err != nil {
			return err
		}

		var receiver models.Profile
		if err := tx.First(&receiver, "id = ?", receiverID).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, "profile", receiver.ID, "UPSERT", receiver)
	})
	if err != nil {
		return nil, err
	}
	metrics.HonorsAwarded.Inc()
	return &honor, nil
}

// HasHonored reports whether the giver already used their one honor on
// this project.
func HasHonored(ctx context.Context, db *gorm.DB, projectID, giverID uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.PeerHonor{}).
		Where("project_id = ? AND giver_id = ?", projectID, giverID).
		Count(&count).Error
	return count > 0, err
}

type honorTypeCount struct {
	HonorType models.HonorType
	Count     int
}

// ProjectHonorCounts aggregates honors on a project by type.
func ProjectHonorCounts(ctx context.Context, db *gorm.DB, projectID uuid.UUID) (map[models.HonorType]int, error) {
	return honorCounts(db.WithContext(ctx).Where("project_id = ?", projectID))
}

// ReceiverHonorCounts aggregates honors a profile has received by type.
func ReceiverHonorCounts(ctx context.Context, db *gorm.DB, receiverID uuid.UUID) (map[models.HonorType]int, error) {
	return honorCounts(db.WithContext(ctx).Where("receiver_id = ?", receiverID))
}

func honorCounts(q *gorm.DB) (map[models.HonorType]int, error) {
	var rows []honorTypeCount
	err := q.Model(&models.PeerHonor{}).
		Select("honor_type, COUNT(*) AS count").
		Group("honor_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.HonorType]int, len(rows))
	for _, r := range rows {
		counts[r.HonorType] = r.Count
	}
	return counts, nil
}

// ReceiverHonorPoints sums the points a profile has earned from honors.
func ReceiverHonorPoints(ctx context.Context, db *gorm.DB, receiverID uuid.UUID) (int, error) {
	var total int
	err := db.WithContext(ctx).Model(&models.PeerHonor{}).
		Select("COALESCE(SUM(points), 0)").
		Where("receiver_id = ?", receiverID).
		Scan(&total).Error
	return total, err
}
