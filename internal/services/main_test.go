package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test a fresh in-memory database with the full
// schema. TranslateError is on, same as the Postgres config, so the
// conflict-signal paths behave identically.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// one connection so every session sees the same :memory: database
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Profile{},
		&models.Hackathon{},
		&models.HackathonParticipant{},
		&models.Project{},
		&models.ProjectMember{},
		&models.ProjectVote{},
		&models.PeerHonor{},
		&models.Bounty{},
		&models.BountySubmission{},
		&models.Achievement{},
		&models.Outbox{},
		&models.DLQ{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var profileSeq int

// seedProfile inserts a claimed profile with a unique username/identity.
func seedProfile(t *testing.T, db *gorm.DB, name string) *models.Profile {
	t.Helper()
	profileSeq++
	identity := fmt.Sprintf("auth-%s-%d", name, profileSeq)
	profile := models.Profile{
		AuthID:   &identity,
		Username: fmt.Sprintf("%s-%d", name, profileSeq),
		FullName: name,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile %s: %v", name, err)
	}
	return &profile
}

func seedHackathon(t *testing.T, db *gorm.DB, organizer *models.Profile, start, end time.Time) *models.Hackathon {
	t.Helper()
	hackathon, err := CreateHackathon(context.Background(), db, organizer.ID, CreateHackathonInput{
		Title:     fmt.Sprintf("Test Hack %s", uuid.NewString()[:6]),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("seed hackathon: %v", err)
	}
	return hackathon
}

func seedProject(t *testing.T, db *gorm.DB, creator *models.Profile, hackathonID *uuid.UUID) *models.Project {
	t.Helper()
	project, err := CreateProject(context.Background(), db, creator.ID, CreateProjectInput{
		Title:       fmt.Sprintf("Test Project %s", uuid.NewString()[:6]),
		HackathonID: hackathonID,
	})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}
