package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/gorm"
)

// maxClaimSearchResults caps the onboarding name-search result set.
const maxClaimSearchResults = 10

// ResolveProfile maps an authenticated identity to its profile. A missing
// profile is not auto-provisioned; the caller sends the user through
// onboarding instead.
func ResolveProfile(ctx context.Context, db *gorm.DB, identity string) (*models.Profile, error) {
	var profile models.Profile
	err := db.WithContext(ctx).First(&profile, "auth_id = ?", identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNeedsOnboarding
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SearchUnclaimedProfiles finds placeholder profiles (auth_id IS NULL)
// whose full name contains the pattern, for the onboarding claim flow.
func SearchUnclaimedProfiles(ctx context.Context, db *gorm.DB, namePattern string) ([]models.Profile, error) {
	var profiles []models.Profile
	err := db.WithContext(ctx).
		Where("auth_id IS NULL").
		Where("LOWER(full_name) LIKE ?", "%"+slugifyFree(namePattern)+"%").
		Order("full_name ASC").
		Limit(maxClaimSearchResults).
		Find(&profiles).Error
	return profiles, err
}

// ClaimProfile attaches an identity to an unclaimed profile. The update is
// conditional on auth_id still being NULL, so of two racing claimants
// exactly one wins and the other gets ErrProfileClaimed.
func ClaimProfile(ctx context.Context, db *gorm.DB, profileID uuid.UUID, identity string, avatarURL string) (*models.Profile, error) {
	var claimed models.Profile
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"auth_id": identity}
		if avatarURL != "" {
			updates["avatar_url"] = avatarURL
		}
		res := tx.Model(&models.Profile{}).
			Where("id = ? AND auth_id IS NULL", profileID).
			Updates(updates)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				// identity already owns another profile
				return fmt.Errorf("%w: identity already has a profile", ErrConflict)
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			var existing models.Profile
			if err := tx.First(&existing, "id = ?", profileID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: profile %s", ErrNotFound, profileID)
				}
				return err
			}
			return ErrProfileClaimed
		}
		if err := tx.First(&claimed, "id = ?", profileID).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, "profile", claimed.ID, "UPSERT", claimed)
	})
	if err != nil {
		return nil, err
	}
	return &claimed, nil
}

// CreateProfile provisions a fresh profile for an identity. The username
// is derived from the full name; on a uniqueness conflict it retries once
// with an identity-derived suffix that cannot collide. A second conflict
// means the identity itself already has a profile.
func CreateProfile(ctx context.Context, db *gorm.DB, identity, fullName, avatarURL string) (*models.Profile, error) {
	base := slugify(fullName)
	if base == "" {
		base = "builder"
	}

	profile := models.Profile{
		AuthID:    &identity,
		Username:  base,
		FullName:  fullName,
		AvatarURL: avatarURL,
	}
	err := createProfileTx(ctx, db, &profile)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		profile.ID = uuid.Nil
		profile.Username = fmt.Sprintf("%s-%s", base, identityToken(identity))
		err = createProfileTx(ctx, db, &profile)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: identity already has a profile", ErrConflict)
		}
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func createProfileTx(ctx context.Context, db *gorm.DB, profile *models.Profile) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, "profile", profile.ID, "UPSERT", profile)
	})
}

// UpdateProfile edits the self-serve fields. TotalScore is deliberately
// not editable here; only award paths touch it.
func UpdateProfile(ctx context.Context, db *gorm.DB, profileID uuid.UUID, updates map[string]any) (*models.Profile, error) {
	allowed := map[string]bool{
		"full_name": true, "bio": true, "github_username": true,
		"twitter_username": true, "linkedin_url": true, "website": true,
		"avatar_url": true, "altered_avatar_url": true,
	}
	for field := range updates {
		if !allowed[field] {
			return nil, fmt.Errorf("%w: field %q is not editable", ErrValidation, field)
		}
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	var profile models.Profile
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Profile{}).Where("id = ?", profileID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: profile %s", ErrNotFound, profileID)
		}
		if err := tx.First(&profile, "id = ?", profileID).Error; err != nil {
			return err
		}
		return AddOutboxEvent(tx, "profile", profile.ID, "UPSERT", profile)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// slugifyFree lowercases a search pattern without the dash folding, so
// "Ria K" still matches "ria kapoor".
func slugifyFree(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == '%' || r == '_':
			// strip LIKE metacharacters
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
