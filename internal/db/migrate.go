package db

import (
	"log"

	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
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
		log.Fatalf("❌ migration failed: %v", err)
	}
	log.Println("✅ database migrated successfully")
}
