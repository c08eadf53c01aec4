package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/metrics"
	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// MinBountyReward is the smallest reward a bounty may carry, in
	// currency units.
	MinBountyReward = 50
	MaxBountyTags   = 5
)

type CreateBountyInput struct {
	Title        string
	Description  string
	RewardAmount int
	Deadline     time.Time
	Tags         []string
	CoverImage   string
}

// CreateBounty opens a bounty with the reward held as deposit. Forfeiture
// of the deposit on cancel is handled by the external escrow service; this
// system only records the amounts.
func CreateBounty(ctx context.Context, db *gorm.DB, posterID uuid.UUID, in CreateBountyInput, now time.Time) (*models.Bounty, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.RewardAmount < MinBountyReward {
		return nil, fmt.Errorf("%w: minimum bounty amount is %d", ErrValidation, MinBountyReward)
	}
	if !in.Deadline.After(now) {
		return nil, fmt.Errorf("%w: deadline must be in the future", ErrValidation)
	}
	if len(in.Tags) > MaxBountyTags {
		return nil, fmt.Errorf("%w: at most %d tags", ErrValidation, MaxBountyTags)
	}

	tags, _ := json.Marshal(in.Tags)
	bounty := models.Bounty{
		Slug:          slugify(in.Title),
		Title:         in.Title,
		Description:   in.Description,
		RewardAmount:  in.RewardAmount,
		DepositAmount: in.RewardAmount,
		Deadline:      in.Deadline,
		PosterID:      posterID,
		Status:        models.BountyOpen,
		Tags:          datatypes.JSON(tags),
		CoverImage:    in.CoverImage,
	}
	err := db.WithContext(ctx).Create(&bounty).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		bounty.ID = uuid.Nil
		bounty.Slug = fmt.Sprintf("%s-%s", slugify(in.Title), shortToken())
		err = db.WithContext(ctx).Create(&bounty).Error
	}
	if err != nil {
		return nil, err
	}
	return &bounty, nil
}

func GetBounty(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.Bounty, error) {
	var bounty models.Bounty
	err := db.WithContext(ctx).First(&bounty, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: bounty %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &bounty, nil
}

func GetBountyBySlug(ctx context.Context, db *gorm.DB, slug string) (*models.Bounty, error) {
	var bounty models.Bounty
	err := db.WithContext(ctx).First(&bounty, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: bounty %q", ErrNotFound, slug)
	}
	if err != nil {
		return nil, err
	}
	return &bounty, nil
}

func ListSubmissions(ctx context.Context, db *gorm.DB, bountyID uuid.UUID) ([]models.BountySubmission, error) {
	var submissions []models.BountySubmission
	err := db.WithContext(ctx).
		Where("bounty_id = ?", bountyID).
		Order("submitted_at ASC").
		Find(&submissions).Error
	return submissions, err
}

// SubmitToBounty enters a project. One submission per user per bounty,
// enforced by the unique (bounty_id, submitted_by) index. The project is
// linked to the bounty in the same transaction.
func SubmitToBounty(ctx context.Context, db *gorm.DB, bountyID, projectID, submitterID uuid.UUID, now time.Time) (*models.BountySubmission, error) {
	bounty, err := GetBounty(ctx, db, bountyID)
	if err != nil {
		return nil, err
	}
	if bounty.Status != models.BountyOpen {
		return nil, ErrBountyNotOpen
	}
	if now.After(bounty.Deadline) {
		return nil, ErrDeadlinePassed
	}
	if _, err := GetProject(ctx, db, projectID); err != nil {
		return nil, err
	}

	submission := models.BountySubmission{
		BountyID:    bountyID,
		ProjectID:   projectID,
		SubmittedBy: submitterID,
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadySubmitted
			}
			return err
		}
		if err := tx.Model(&models.Project{}).
			Where("id = ?", projectID).
			Update("bounty_id", bountyID).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, "project", projectID, "UPSERT", nil)
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// WithdrawSubmission deletes the submitter's own entry while the bounty is
// still open. The project keeps its bounty link.
func WithdrawSubmission(ctx context.Context, db *gorm.DB, submissionID, requesterID uuid.UUID) error {
	var submission models.BountySubmission
	err := db.WithContext(ctx).First(&submission, "id = ?", submissionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: submission %s", ErrNotFound, submissionID)
	}
	if err != nil {
		return err
	}
	if submission.SubmittedBy != requesterID {
		return fmt.Errorf("%w: only the submitter can withdraw", ErrForbidden)
	}

	bounty, err := GetBounty(ctx, db, submission.BountyID)
	if err != nil {
		return err
	}
	if bounty.Status != models.BountyOpen {
		return fmt.Errorf("%w: bounty is %s", ErrInvalidState, bounty.Status)
	}
	return db.WithContext(ctx).Delete(&submission).Error
}

// MarkInReview is the poster-triggered optional step before awarding.
func MarkInReview(ctx context.Context, db *gorm.DB, bountyID, requesterID uuid.UUID) (*models.Bounty, error) {
	return transitionBounty(ctx, db, bountyID, requesterID,
		[]models.BountyStatus{models.BountyOpen}, models.BountyInReview)
}

// SelectWinner awards the bounty to one submission. Status flip, winner
// clear and winner set share one transaction; the conditional status
// update makes a second racing call lose with ErrInvalidState rather than
// leaving two winners.
func SelectWinner(ctx context.Context, db *gorm.DB, bountyID, submissionID, requesterID uuid.UUID) (*models.Bounty, error) {
	bounty, err := GetBounty(ctx, db, bountyID)
	if err != nil {
		return nil, err
	}
	if bounty.PosterID != requesterID {
		return nil, fmt.Errorf("%w: only the poster can select a winner", ErrForbidden)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submission models.BountySubmission
		err := tx.First(&submission, "id = ? AND bounty_id = ?", submissionID, bountyID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: submission %s on bounty %s", ErrNotFound, submissionID, bountyID)
		}
		if err != nil {
			return err
		}

		res := tx.Model(&models.Bounty{}).
			Where("id = ? AND status IN ?", bountyID,
				[]models.BountyStatus{models.BountyOpen, models.BountyInReview}).
			Update("status", models.BountyAwarded)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: bounty is %s", ErrInvalidState, bounty.Status)
		}

		if err := tx.Model(&models.BountySubmission{}).
			Where("bounty_id = ?", bountyID).
			Update("is_winner", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.BountySubmission{}).
			Where("id = ?", submissionID).
			Update("is_winner", true).Error
	})
	if err != nil {
		return nil, err
	}
	metrics.BountiesAwarded.Inc()
	return GetBounty(ctx, db, bountyID)
}

// MarkComplete closes out an awarded bounty.
func MarkComplete(ctx context.Context, db *gorm.DB, bountyID, requesterID uuid.UUID) (*models.Bounty, error) {
	return transitionBounty(ctx, db, bountyID, requesterID,
		[]models.BountyStatus{models.BountyAwarded}, models.BountyCompleted)
}

// CancelBounty is the alternate terminal transition from open. The
// forfeited deposit is the escrow service's problem, not ours.
func CancelBounty(ctx context.Context, db *gorm.DB, bountyID, requesterID uuid.UUID) (*models.Bounty, error) {
	return transitionBounty(ctx, db, bountyID, requesterID,
		[]models.BountyStatus{models.BountyOpen}, models.BountyCancelled)
}

func transitionBounty(ctx context.Context, db *gorm.DB, bountyID, requesterID uuid.UUID, from []models.BountyStatus, to models.BountyStatus) (*models.Bounty, error) {
	bounty, err := GetBounty(ctx, db, bountyID)
	if err != nil {
		return nil, err
	}
	if bounty.PosterID != requesterID {
		return nil, fmt.Errorf("%w: only the poster can change bounty status", ErrForbidden)
	}

	res := db.WithContext(ctx).Model(&models.Bounty{}).
		Where("id = ? AND status IN ?", bountyID, from).
		Update("status", to)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: bounty is %s, cannot move to %s", ErrInvalidState, bounty.Status, to)
	}
	return GetBounty(ctx, db, bountyID)
}
