package db

import (
	"encoding/json"
	"log"
	"time"

	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seed inserts a small demo dataset on an empty database: one claimed
// profile, one unclaimed placeholder, a hackathon with its organizer row,
// a project and an open bounty.
func Seed(db *gorm.DB) {
	var count int64
	db.Model(&models.Profile{}).Count(&count)
	if count > 0 {
		log.Println("🌱 Data already exists, skipping seed.")
		return
	}

	db.Transaction(func(tx *gorm.DB) error {
		authID := "seed-auth-identity"
		organizer := models.Profile{
			AuthID:   &authID,
			Username: "prathamesh",
			FullName: "Prathamesh Sirdesai",
			Bio:      "Builds things at hackathons",
		}
		if err := tx.Create(&organizer).Error; err != nil {
			return err
		}

		// Unclaimed placeholder, findable during onboarding.
		ghost := models.Profile{
			Username: "ria-kapoor",
			FullName: "Ria Kapoor",
		}
		if err := tx.Create(&ghost).Error; err != nil {
			return err
		}

		hackathon := models.Hackathon{
			Slug:        "devfest",
			Title:       "DevFest",
			Location:    "Bengaluru",
			StartDate:   time.Now(),
			EndDate:     time.Now().Add(48 * time.Hour),
			OrganizerID: organizer.ID,
		}
		if err := tx.Create(&hackathon).Error; err != nil {
			return err
		}
		organizerRow := models.HackathonParticipant{
			HackathonID: hackathon.ID,
			UserID:      organizer.ID,
			Role:        models.RoleOrganizer,
		}
		if err := tx.Create(&organizerRow).Error; err != nil {
			return err
		}

		project := models.Project{
			Slug:        "voice-for-all",
			Title:       "Voice for All",
			Description: "AI assistant for mute people",
			CreatorID:   organizer.ID,
			HackathonID: &hackathon.ID,
		}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		tags, _ := json.Marshal([]string{"go", "api"})
		bounty := models.Bounty{
			Slug:          "build-a-webhook-relay",
			Title:         "Build a webhook relay",
			RewardAmount:  150,
			DepositAmount: 150,
			Deadline:      time.Now().Add(14 * 24 * time.Hour),
			PosterID:      organizer.ID,
			Status:        models.BountyOpen,
			Tags:          datatypes.JSON(tags),
		}
		if err := tx.Create(&bounty).Error; err != nil {
			return err
		}

		log.Println("🌱 Sample data inserted successfully.")
		return nil
	})
}
