package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/gorm"
)

// DefaultAchievementPoints is used when the caller does not pass an
// explicit points value.
var DefaultAchievementPoints = map[models.AchievementType]int{
	models.AchievementParticipation: 10,
	models.AchievementSubmission:    20,
	models.AchievementThirdPlace:    50,
	models.AchievementSecondPlace:   75,
	models.AchievementFirstPlace:    100,
}

// AwardAchievement records an achievement and bumps the profile's total
// score in one transaction. This and GiveHonor are the only two paths
// that ever touch total_score.
func AwardAchievement(ctx context.Context, db *gorm.DB, userID uuid.UUID, hackathonID *uuid.UUID, typ models.AchievementType, points int) (*models.Achievement, error) {
	defaultPoints, ok := DefaultAchievementPoints[typ]
	if !ok {
		return nil, fmt.Errorf("%w: unknown achievement type %q", ErrValidation, typ)
	}
	if points <= 0 {
		points = defaultPoints
	}
	if hackathonID != nil {
		if _, err := GetHackathon(ctx, db, *hackathonID); err != nil {
			return nil, err
		}
	}

	achievement := models.Achievement{
		UserID:      userID,
		HackathonID: hackathonID,
		Type:        typ,
		Points:      points,
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Profile{}).
			Where("id = ?", userID).
			Update("total_score", gorm.Expr("total_score + ?", points))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: profile %s", ErrNotFound, userID)
		}
		if err := tx.Create(&achievement).Error; err != nil {
			return err
		}
		var profile models.Profile
		if err := tx.First(&profile, "id = ?", userID).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, "profile", profile.ID, "UPSERT", profile)
	})
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

// ListAchievements returns a profile's achievements, newest first.
func ListAchievements(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&achievements).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return achievements, err
}
