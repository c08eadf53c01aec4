package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
)

func TestResolveProfileNeedsOnboarding(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := ResolveProfile(ctx, db, "unknown-identity")
	if !errors.Is(err, ErrNeedsOnboarding) {
		t.Fatalf("want ErrNeedsOnboarding, got %v", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ErrNeedsOnboarding should wrap ErrNotFound, got %v", err)
	}

	created, err := CreateProfile(ctx, db, "identity-1", "Ada Lovelace", "")
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	resolved, err := ResolveProfile(ctx, db, "identity-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != created.ID {
		t.Fatalf("resolved wrong profile: %s != %s", resolved.ID, created.ID)
	}
}

func TestCreateProfileUsernameCollision(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first, err := CreateProfile(ctx, db, "identity-a", "Grace Hopper", "")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.Username != "grace-hopper" {
		t.Fatalf("want grace-hopper, got %q", first.Username)
	}

	// same full name under another identity falls back to the
	// identity-derived suffix
	second, err := CreateProfile(ctx, db, "identity-b", "Grace Hopper", "")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.Username == first.Username {
		t.Fatalf("usernames must differ, both %q", second.Username)
	}
}

func TestCreateProfileDuplicateIdentity(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := CreateProfile(ctx, db, "identity-x", "John Smith", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := CreateProfile(ctx, db, "identity-x", "Jane Roe", "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict for duplicate identity, got %v", err)
	}
}

func TestClaimProfile(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	unclaimed := models.Profile{Username: "ghost", FullName: "Ghost User"}
	if err := db.Create(&unclaimed).Error; err != nil {
		t.Fatalf("seed unclaimed: %v", err)
	}

	claimed, err := ClaimProfile(ctx, db, unclaimed.ID, "identity-1", "https://img.example/a.png")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.AuthID == nil || *claimed.AuthID != "identity-1" {
		t.Fatalf("auth id not set: %+v", claimed.AuthID)
	}
	if claimed.AvatarURL != "https://img.example/a.png" {
		t.Fatalf("avatar hint not stored: %q", claimed.AvatarURL)
	}

	// only the first claimant wins
	_, err = ClaimProfile(ctx, db, unclaimed.ID, "identity-2", "")
	if !errors.Is(err, ErrProfileClaimed) {
		t.Fatalf("want ErrProfileClaimed, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("ErrProfileClaimed should wrap ErrConflict, got %v", err)
	}

	_, err = ClaimProfile(ctx, db, uuid.New(), "identity-3", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing profile, got %v", err)
	}
}

func TestSearchUnclaimedProfiles(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	ghosts := []models.Profile{
		{Username: "ria-kapoor", FullName: "Ria Kapoor"},
		{Username: "rian-doe", FullName: "Rian Doe"},
		{Username: "sam-hill", FullName: "Sam Hill"},
	}
	for i := range ghosts {
		if err := db.Create(&ghosts[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	seedProfile(t, db, "ria-claimed") // claimed, must not appear

	results, err := SearchUnclaimedProfiles(ctx, db, "RIA")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 unclaimed matches, got %d", len(results))
	}
	for _, p := range results {
		if p.Claimed() {
			t.Fatalf("claimed profile %q leaked into claim search", p.Username)
		}
	}
}

func TestUpdateProfileFieldWhitelist(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	profile := seedProfile(t, db, "editor")

	updated, err := UpdateProfile(ctx, db, profile.ID, map[string]any{"bio": "ships at night"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Bio != "ships at night" {
		t.Fatalf("bio not updated: %q", updated.Bio)
	}

	// score is owned by the award paths, never user input
	_, err = UpdateProfile(ctx, db, profile.ID, map[string]any{"total_score": 9999})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation for total_score edit, got %v", err)
	}
}

func TestProfileWritesEnqueueOutbox(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	profile, err := CreateProfile(ctx, db, "identity-ob", "Out Box", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var events []models.Outbox
	if err := db.Where("entity_type = ? AND entity_id = ?", "profile", profile.ID).Find(&events).Error; err != nil {
		t.Fatalf("fetch outbox: %v", err)
	}
	if len(events) != 1 || events[0].Op != "UPSERT" {
		t.Fatalf("want one UPSERT outbox event, got %+v", events)
	}
}
