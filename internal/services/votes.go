package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/metrics"
	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/gorm"
)

type VoteResult struct {
	Voted     bool `json:"voted"`
	VoteCount int  `json:"vote_count"`
}

// ToggleVote flips the (project, user) vote row and recounts. The delete
// and the conditional insert are both keyed on the unique pair, so a
// double-click cannot double count, and vote_count is always recomputed
// from the rows rather than incremented by a client-supplied delta.
func ToggleVote(ctx context.Context, db *gorm.DB, projectID, userID uuid.UUID) (VoteResult, error) {
	var result VoteResult
	if _, err := GetProject(ctx, db, projectID); err != nil {
		return result, err
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("project_id = ? AND user_id = ?", projectID, userID).
			Delete(&models.ProjectVote{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			vote := models.ProjectVote{ProjectID: projectID, UserID: userID}
			if err := tx.Create(&vote).Error; err != nil {
				if !errors.Is(err, gorm.ErrDuplicatedKey) {
					return err
				}
				// a concurrent toggle got there first; the vote exists,
				// which is the state this call wanted
			}
			result.Voted = true
		}

		// counter is a cache, the rows are the truth
		if err := tx.Exec(
			`UPDATE projects
			 SET vote_count = (SELECT COUNT(*) FROM project_votes WHERE project_id = ?)
			 WHERE id = ?`, projectID, projectID).Error; err != nil {
			return err
		}
		var project models.Project
		if err := tx.First(&project, "id = ?", projectID).Error; err != nil {
			return err
		}
		result.VoteCount = project.VoteCount
		return nil
	})
	if err != nil {
		return VoteResult{}, err
	}
	metrics.VotesToggled.Inc()
	return result, nil
}

// HasVoted reports whether the user currently has a vote on the project.
func HasVoted(ctx context.Context, db *gorm.DB, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.ProjectVote{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}
