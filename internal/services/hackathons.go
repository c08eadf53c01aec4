package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/gorm"
)

type CreateHackathonInput struct {
	Title                string
	Description          string
	StartDate            time.Time
	EndDate              time.Time
	IsOnline             bool
	Location             string
	CoverImage           string
	RegistrationDeadline *time.Time
	MaxParticipants      int
}

// CreateHackathon inserts the hackathon and its organizer participant row
// in one transaction, so there is never a hackathon whose organizer is not
// also a participant.
func CreateHackathon(ctx context.Context, db *gorm.DB, organizerID uuid.UUID, in CreateHackathonInput) (*models.Hackathon, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrValidation)
	}

	hackathon := models.Hackathon{
		Slug:                 slugify(in.Title),
		Title:                in.Title,
		Description:          in.Description,
		StartDate:            in.StartDate,
		EndDate:              in.EndDate,
		IsOnline:             in.IsOnline,
		Location:             in.Location,
		CoverImage:           in.CoverImage,
		OrganizerID:          organizerID,
		RegistrationDeadline: in.RegistrationDeadline,
		MaxParticipants:      in.MaxParticipants,
	}

	err := createHackathonTx(ctx, db, &hackathon)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// two organizers picked the same title; break the tie
		hackathon.ID = uuid.Nil
		hackathon.Slug = fmt.Sprintf("%s-%s", slugify(in.Title), shortToken())
		err = createHackathonTx(ctx, db, &hackathon)
	}
	if err != nil {
		return nil, err
	}
	return &hackathon, nil
}

func createHackathonTx(ctx context.Context, db *gorm.DB, hackathon *models.Hackathon) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(hackathon).Error; err != nil {
			return err
		}
		organizer := models.HackathonParticipant{
			HackathonID: hackathon.ID,
			UserID:      hackathon.OrganizerID,
			Role:        models.RoleOrganizer,
		}
		if err := tx.Create(&organizer).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, "hackathon", hackathon.ID, "UPSERT", hackathon)
	})
}

func GetHackathon(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.Hackathon, error) {
	var hackathon models.Hackathon
	err := db.WithContext(ctx).First(&hackathon, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: hackathon %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &hackathon, nil
}

func GetHackathonBySlug(ctx context.Context, db *gorm.DB, slug string) (*models.Hackathon, error) {
	var hackathon models.Hackathon
	err := db.WithContext(ctx).First(&hackathon, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: hackathon %q", ErrNotFound, slug)
	}
	if err != nil {
		return nil, err
	}
	return &hackathon, nil
}

func ListHackathons(ctx context.Context, db *gorm.DB) ([]models.Hackathon, error) {
	var hackathons []models.Hackathon
	err := db.WithContext(ctx).Order("start_date DESC").Find(&hackathons).Error
	return hackathons, err
}

// JoinHackathon registers a participant. Joining twice is not an error:
// the unique (hackathon_id, user_id) pair turns the race into a conflict,
// and the loser just gets the row that already exists.
func JoinHackathon(ctx context.Context, db *gorm.DB, hackathonID, userID uuid.UUID, now time.Time) (*models.HackathonParticipant, error) {
	hackathon, err := GetHackathon(ctx, db, hackathonID)
	if err != nil {
		return nil, err
	}
	if hackathon.StatusAt(now) == models.HackathonEnded {
		return nil, ErrHackathonEnded
	}
	if hackathon.RegistrationDeadline != nil && now.After(*hackathon.RegistrationDeadline) {
		return nil, ErrRegistrationClosed
	}

	participant := models.HackathonParticipant{
		HackathonID: hackathonID,
		UserID:      userID,
		Role:        models.RoleParticipant,
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if hackathon.MaxParticipants > 0 {
			var count int64
			if err := tx.Model(&models.HackathonParticipant{}).
				Where("hackathon_id = ?", hackathonID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(hackathon.MaxParticipants) {
				return ErrHackathonFull
			}
		}
		return tx.Create(&participant).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// already in (possibly as organizer); report the existing row
		var existing models.HackathonParticipant
		if err := db.WithContext(ctx).
			First(&existing, "hackathon_id = ? AND user_id = ?", hackathonID, userID).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// LeaveHackathon removes a participant row; leaving twice is a no-op.
// The organizer cannot leave, there is no ownership transfer.
func LeaveHackathon(ctx context.Context, db *gorm.DB, hackathonID, userID uuid.UUID) error {
	hackathon, err := GetHackathon(ctx, db, hackathonID)
	if err != nil {
		return err
	}
	if hackathon.OrganizerID == userID {
		return fmt.Errorf("%w: organizer cannot leave their own hackathon", ErrForbidden)
	}
	return db.WithContext(ctx).
		Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		Delete(&models.HackathonParticipant{}).Error
}

func ListParticipants(ctx context.Context, db *gorm.DB, hackathonID uuid.UUID) ([]models.HackathonParticipant, error) {
	var participants []models.HackathonParticipant
	err := db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("joined_at ASC").
		Find(&participants).Error
	return participants, err
}
