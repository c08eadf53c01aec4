package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/gorm"
)

// Ranking is a derived query, never a stored column: total_score
// descending, profile id ascending as the deterministic tie-break.

// TopProfiles returns the first n leaderboard entries.
func TopProfiles(ctx context.Context, db *gorm.DB, n int) ([]models.Profile, error) {
	var profiles []models.Profile
	err := db.WithContext(ctx).
		Order("total_score DESC, id ASC").
		Limit(n).
		Find(&profiles).Error
	return profiles, err
}

// Rank returns the 0-based leaderboard position of a profile.
func Rank(ctx context.Context, db *gorm.DB, profileID uuid.UUID) (int, error) {
	var profile models.Profile
	err := db.WithContext(ctx).First(&profile, "id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotRanked
	}
	if err != nil {
		return 0, err
	}

	var ahead int64
	err = db.WithContext(ctx).Model(&models.Profile{}).
		Where("total_score > ? OR (total_score = ? AND id < ?)",
			profile.TotalScore, profile.TotalScore, profile.ID).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return int(ahead), nil
}
