package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirdesai22/hackhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testSecret = []byte("test-secret")

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
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

	ts := httptest.NewServer(New(db, testSecret).Routes())
	t.Cleanup(ts.Close)
	return ts, db
}

func signToken(t *testing.T, subject, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if role != "" {
		claims["role"] = role
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAuthRequired(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/me", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", resp.StatusCode)
	}

	bad, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{"sub": "x"}).SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/me", bad, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad signature: status = %d, want 401", resp.StatusCode)
	}
}

func TestOnboardingFlow(t *testing.T) {
	ts, _ := newTestServer(t)
	token := signToken(t, "github|100", "")

	// identity without a profile gets 404 so the client starts onboarding
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/me", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("me before onboarding: status = %d, want 404", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/profiles", token,
		map[string]string{"full_name": "Grace Hopper"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create profile: status = %d, want 201", resp.StatusCode)
	}
	var created models.Profile
	decodeInto(t, resp, &created)
	if created.Username != "grace-hopper" {
		t.Fatalf("username = %q", created.Username)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me after onboarding: status = %d, want 200", resp.StatusCode)
	}
	var me models.Profile
	decodeInto(t, resp, &me)
	if me.ID != created.ID {
		t.Fatalf("me returned a different profile")
	}

	// second onboarding for the same identity conflicts
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/profiles", token,
		map[string]string{"full_name": "Grace Again"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("repeat onboarding: status = %d, want 409", resp.StatusCode)
	}
}

func TestClaimProfileEndpoint(t *testing.T) {
	ts, db := newTestServer(t)

	ghost := models.Profile{Username: "ria-kapoor", FullName: "Ria Kapoor"}
	if err := db.Create(&ghost).Error; err != nil {
		t.Fatalf("seed ghost: %v", err)
	}

	first := signToken(t, "github|ria", "")
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/profiles/claim", first,
		map[string]any{"profile_id": ghost.ID})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("claim: status = %d, want 200", resp.StatusCode)
	}

	second := signToken(t, "github|impostor", "")
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/profiles/claim", second,
		map[string]any{"profile_id": ghost.ID})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second claim: status = %d, want 409", resp.StatusCode)
	}
}

func TestHackathonAndVoteRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t)

	organizer := signToken(t, "github|org", "")
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/profiles", organizer,
		map[string]string{"full_name": "Organizer One"})
	resp.Body.Close()

	voter := signToken(t, "github|voter", "")
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/profiles", voter,
		map[string]string{"full_name": "Voter One"})
	resp.Body.Close()

	start := time.Now().Add(24 * time.Hour)
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/hackathons", organizer, map[string]any{
		"title":      "API Round Trip Hack",
		"start_date": start,
		"end_date":   start.Add(48 * time.Hour),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create hackathon: status = %d, want 201", resp.StatusCode)
	}
	var hackathon models.Hackathon
	decodeInto(t, resp, &hackathon)

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/hackathons/%s/join", ts.URL, hackathon.ID), voter, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join: status = %d, want 200", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/projects", organizer, map[string]any{
		"title":        "Round Trip Project",
		"hackathon_id": hackathon.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create project: status = %d, want 201", resp.StatusCode)
	}
	var project models.Project
	decodeInto(t, resp, &project)

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/projects/%s/vote", ts.URL, project.ID), voter, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("vote: status = %d, want 200", resp.StatusCode)
	}
	var result struct {
		Voted     bool `json:"voted"`
		VoteCount int  `json:"vote_count"`
	}
	decodeInto(t, resp, &result)
	if !result.Voted || result.VoteCount != 1 {
		t.Fatalf("vote result = %+v", result)
	}

	// vote on a project that does not exist maps to 404
	resp = doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/projects/%s/vote", ts.URL, "6f1c2b4a-0000-0000-0000-000000000000"), voter, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("vote missing project: status = %d, want 404", resp.StatusCode)
	}

	// organizer cannot leave their own hackathon
	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/hackathons/%s/leave", ts.URL, hackathon.ID), organizer, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("organizer leave: status = %d, want 403", resp.StatusCode)
	}
}

func TestBountyTransitionMapsTo422(t *testing.T) {
	ts, _ := newTestServer(t)

	poster := signToken(t, "github|poster", "")
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/profiles", poster,
		map[string]string{"full_name": "Bounty Poster"})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/bounties", poster, map[string]any{
		"title":         "Fix the flaky pipeline",
		"reward_amount": 200,
		"deadline":      time.Now().Add(14 * 24 * time.Hour),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create bounty: status = %d, want 201", resp.StatusCode)
	}
	var bounty models.Bounty
	decodeInto(t, resp, &bounty)

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/bounties/%s/cancel", ts.URL, bounty.ID), poster, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cancel: status = %d, want 200", resp.StatusCode)
	}

	// cancelled is terminal; a second transition is an invalid state
	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/bounties/%s/complete", ts.URL, bounty.ID), poster, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("complete after cancel: status = %d, want 422", resp.StatusCode)
	}

	// reward below the minimum maps to 400
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/bounties", poster, map[string]any{
		"title":         "Too cheap",
		"reward_amount": 10,
		"deadline":      time.Now().Add(24 * time.Hour),
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("cheap bounty: status = %d, want 400", resp.StatusCode)
	}
}

func TestAdminRoutesRequireRole(t *testing.T) {
	ts, _ := newTestServer(t)

	user := signToken(t, "github|user", "")
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/admin/reconcile", user, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin: status = %d, want 403", resp.StatusCode)
	}

	admin := signToken(t, "github|admin", "admin")
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/admin/reconcile", admin, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin reconcile: status = %d, want 200", resp.StatusCode)
	}
}

func TestAdminRetryRequeuesDLQ(t *testing.T) {
	ts, db := newTestServer(t)
	admin := signToken(t, "github|admin", "admin")

	entityID := uuid.New()
	dlq := models.DLQ{
		OutboxID:   42,
		EntityType: "profile",
		EntityID:   entityID.String(),
		Op:         "UPSERT",
		ErrorMsg:   "index unreachable",
	}
	if err := db.Create(&dlq).Error; err != nil {
		t.Fatalf("seed dlq: %v", err)
	}

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/admin/retry/%d", ts.URL, dlq.ID), admin, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("retry: status = %d, want 200", resp.StatusCode)
	}

	var event models.Outbox
	if err := db.First(&event, "entity_id = ?", entityID).Error; err != nil {
		t.Fatalf("requeued outbox row missing: %v", err)
	}
	if event.Processed {
		t.Fatal("requeued event already marked processed")
	}

	var resolved models.DLQ
	if err := db.First(&resolved, "id = ?", dlq.ID).Error; err != nil {
		t.Fatalf("fetch dlq: %v", err)
	}
	if !resolved.Resolved || resolved.RetriedAt == nil {
		t.Fatalf("dlq not resolved: %+v", resolved)
	}

	// second retry of the same entry finds nothing unresolved
	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/admin/retry/%d", ts.URL, dlq.ID), admin, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("repeat retry: status = %d, want 404", resp.StatusCode)
	}
}
