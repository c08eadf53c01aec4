package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/gorm"
)

type CreateProjectInput struct {
	Title       string
	Description string
	HackathonID *uuid.UUID
	BountyID    *uuid.UUID
	GithubURL   string
	DemoURL     string
	CoverImage  string
}

func CreateProject(ctx context.Context, db *gorm.DB, creatorID uuid.UUID, in CreateProjectInput) (*models.Project, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.HackathonID != nil {
		if _, err := GetHackathon(ctx, db, *in.HackathonID); err != nil {
			return nil, err
		}
	}
	if in.BountyID != nil {
		if _, err := GetBounty(ctx, db, *in.BountyID); err != nil {
			return nil, err
		}
	}

	project := models.Project{
		Slug:        slugify(in.Title),
		Title:       in.Title,
		Description: in.Description,
		CreatorID:   creatorID,
		HackathonID: in.HackathonID,
		BountyID:    in.BountyID,
		GithubURL:   in.GithubURL,
		DemoURL:     in.DemoURL,
		CoverImage:  in.CoverImage,
	}
	err := createProjectTx(ctx, db, &project)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		project.ID = uuid.Nil
		project.Slug = fmt.Sprintf("%s-%s", slugify(in.Title), shortToken())
		err = createProjectTx(ctx, db, &project)
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func createProjectTx(ctx context.Context, db *gorm.DB, project *models.Project) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, "project", project.ID, "UPSERT", project)
	})
}

func GetProject(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func GetProjectBySlug(ctx context.Context, db *gorm.DB, slug string) (*models.Project, error) {
	var project models.Project
	err := db.WithContext(ctx).First(&project, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: project %q", ErrNotFound, slug)
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// AddMember puts a profile onto the project team. The creator never gets a
// row; ListTeam unions them in.
func AddMember(ctx context.Context, db *gorm.DB, projectID, userID uuid.UUID, role string) (*models.ProjectMember, error) {
	project, err := GetProject(ctx, db, projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatorID == userID {
		return nil, fmt.Errorf("%w: creator is already a team member", ErrConflict)
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	err = db.WithContext(ctx).Create(&member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("%w: already a team member", ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// TeamMember is one entry of the unified team view.
type TeamMember struct {
	Profile models.Profile `json:"profile"`
	Role    string         `json:"role"`
}

// ListTeam returns the creator (role "Creator") followed by the explicit
// member rows. Every membership-gated check goes through this view, never
// the raw rows.
func ListTeam(ctx context.Context, db *gorm.DB, projectID uuid.UUID) ([]TeamMember, error) {
	project, err := GetProject(ctx, db, projectID)
	if err != nil {
		return nil, err
	}

	var creator models.Profile
	if err := db.WithContext(ctx).First(&creator, "id = ?", project.CreatorID).Error; err != nil {
		return nil, err
	}
	team := []TeamMember{{Profile: creator, Role: "Creator"}}

	var members []models.ProjectMember
	if err := db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	for _, m := range members {
		var profile models.Profile
		if err := db.WithContext(ctx).First(&profile, "id = ?", m.UserID).Error; err != nil {
			return nil, err
		}
		team = append(team, TeamMember{Profile: profile, Role: m.Role})
	}
	return team, nil
}

// SetProjectCover stores the uploaded cover image URL. Creator-only; team
// members edit through the creator.
func SetProjectCover(ctx context.Context, db *gorm.DB, projectID, requesterID uuid.UUID, url string) (*models.Project, error) {
	project, err := GetProject(ctx, db, projectID)
	if err != nil {
		return nil, err
	}
	if project.CreatorID != requesterID {
		return nil, fmt.Errorf("%w: only the creator can change the cover", ErrForbidden)
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(project).Update("cover_image", url).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, "project", project.ID, "UPSERT", project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// isTeamMember checks the unified view inside a transaction: the creator
// counts even though no member row exists.
func isTeamMember(tx *gorm.DB, project *models.Project, userID uuid.UUID) (bool, error) {
	if project.CreatorID == userID {
		return true, nil
	}
	var count int64
	err := tx.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, userID).
		Count(&count).Error
	return count > 0, err
}
