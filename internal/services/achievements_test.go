package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirdesai22/hackhub/internal/models"
)

func TestAwardAchievement(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	organizer := seedProfile(t, db, "organizer")
	winner := seedProfile(t, db, "winner")
	start := mustParseTime(t, "2025-06-01T00:00:00Z")
	hackathon := seedHackathon(t, db, organizer, start, start.Add(48*time.Hour))

	achievement, err := AwardAchievement(ctx, db, winner.ID, &hackathon.ID, models.AchievementFirstPlace, 0)
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if achievement.Points != DefaultAchievementPoints[models.AchievementFirstPlace] {
		t.Fatalf("points = %d, want default %d", achievement.Points,
			DefaultAchievementPoints[models.AchievementFirstPlace])
	}

	var profile models.Profile
	if err := db.First(&profile, "id = ?", winner.ID).Error; err != nil {
		t.Fatalf("fetch profile: %v", err)
	}
	if profile.TotalScore != achievement.Points {
		t.Fatalf("total_score = %d, want %d", profile.TotalScore, achievement.Points)
	}

	// explicit points override the default
	second, err := AwardAchievement(ctx, db, winner.ID, nil, models.AchievementParticipation, 7)
	if err != nil {
		t.Fatalf("award with points: %v", err)
	}
	if second.Points != 7 {
		t.Fatalf("points = %d, want 7", second.Points)
	}
	db.First(&profile, "id = ?", winner.ID)
	if profile.TotalScore != achievement.Points+7 {
		t.Fatalf("total_score = %d, want %d", profile.TotalScore, achievement.Points+7)
	}

	list, err := ListAchievements(ctx, db, winner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
}

func TestAwardAchievementValidation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	profile := seedProfile(t, db, "someone")

	if _, err := AwardAchievement(ctx, db, profile.ID, nil, models.AchievementType("best_hair"), 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestAwardAchievementUnknownProfile(t *testing.T) {
	db := openTestDB(t)
	ghost := seedProfile(t, db, "ghost")
	if err := db.Delete(&models.Profile{}, "id = ?", ghost.ID).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := AwardAchievement(context.Background(), db, ghost.ID, nil, models.AchievementSubmission, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	// nothing should have been written
	var count int64
	if err := db.Model(&models.Achievement{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("achievement row leaked past rolled-back transaction")
	}
}
