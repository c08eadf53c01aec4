package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ---------------- ENUMS ----------------

type HackathonStatus string

const (
	HackathonUpcoming HackathonStatus = "upcoming"
	HackathonOngoing  HackathonStatus = "ongoing"
	HackathonEnded    HackathonStatus = "ended"
)

type ParticipantRole string

const (
	RoleOrganizer   ParticipantRole = "organizer"
	RoleParticipant ParticipantRole = "participant"
)

type BountyStatus string

const (
	BountyOpen      BountyStatus = "open"
	BountyInReview  BountyStatus = "in_review"
	BountyAwarded   BountyStatus = "awarded"
	BountyCompleted BountyStatus = "completed"
	BountyCancelled BountyStatus = "cancelled"
)

type HonorType string

const (
	HonorGreatTeammate  HonorType = "great_teammate"
	HonorProblemSolver  HonorType = "problem_solver"
	HonorCreativeGenius HonorType = "creative_genius"
	HonorClutchPlayer   HonorType = "clutch_player"
	HonorDesignMaster   HonorType = "design_master"
)

type AchievementType string

const (
	AchievementParticipation AchievementType = "participation"
	AchievementSubmission    AchievementType = "submission"
	AchievementFirstPlace    AchievementType = "first_place"
	AchievementSecondPlace   AchievementType = "second_place"
	AchievementThirdPlace    AchievementType = "third_place"
)

// ---------------- PROFILES ----------------

// AuthID is nil for pre-seeded placeholder profiles that nobody has
// claimed yet. Claiming sets it exactly once.
type Profile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthID           *string   `gorm:"uniqueIndex" json:"auth_id,omitempty"`
	Username         string    `gorm:"uniqueIndex;not null" json:"username"`
	FullName         string    `json:"full_name"`
	Bio              string    `json:"bio,omitempty"`
	GithubUsername   string    `json:"github_username,omitempty"`
	TwitterUsername  string    `json:"twitter_username,omitempty"`
	LinkedinURL      string    `json:"linkedin_url,omitempty"`
	Website          string    `json:"website,omitempty"`
	AvatarURL        string    `json:"avatar_url,omitempty"`
	AlteredAvatarURL string    `json:"altered_avatar_url,omitempty"`
	TotalScore       int       `gorm:"not null;default:0" json:"total_score"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Claimed reports whether an authenticated identity owns this profile.
func (p *Profile) Claimed() bool { return p.AuthID != nil }

// ---------------- HACKATHONS ----------------

type Hackathon struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Slug                 string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title                string     `gorm:"not null" json:"title"`
	Description          string     `json:"description,omitempty"`
	StartDate            time.Time  `gorm:"not null" json:"start_date"`
	EndDate              time.Time  `gorm:"not null" json:"end_date"`
	IsOnline             bool       `json:"is_online"`
	Location             string     `json:"location,omitempty"`
	CoverImage           string     `json:"cover_image,omitempty"`
	OrganizerID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"organizer_id"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	MaxParticipants      int        `json:"max_participants,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (h *Hackathon) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// StatusAt derives the lifecycle state from the stored dates. Nothing is
// persisted; two reads with the same clock always agree.
func (h *Hackathon) StatusAt(now time.Time) HackathonStatus {
	switch {
	case now.Before(h.StartDate):
		return HackathonUpcoming
	case now.After(h.EndDate):
		return HackathonEnded
	default:
		return HackathonOngoing
	}
}

// HonorDeadline is the last instant teammates may honor each other on
// projects entered into this hackathon.
func (h *Hackathon) HonorDeadline() time.Time {
	return h.EndDate.Add(24 * time.Hour)
}

type HackathonParticipant struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	HackathonID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_hackathon_user" json:"hackathon_id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_hackathon_user" json:"user_id"`
	Role        ParticipantRole `gorm:"not null;default:participant" json:"role"`
	JoinedAt    time.Time       `gorm:"autoCreateTime" json:"joined_at"`
}

func (p *HackathonParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ---------------- PROJECTS ----------------

type Project struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	CreatorID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"creator_id"`
	HackathonID *uuid.UUID `gorm:"type:uuid;index" json:"hackathon_id,omitempty"`
	BountyID    *uuid.UUID `gorm:"type:uuid;index" json:"bounty_id,omitempty"`
	GithubURL   string     `json:"github_url,omitempty"`
	DemoURL     string     `json:"demo_url,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	VoteCount   int        `gorm:"not null;default:0" json:"vote_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// The creator is a team member without a row; ListTeam unions it in.
type ProjectMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_member" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_member" json:"user_id"`
	Role      string    `json:"role,omitempty"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Existence of the row is the vote.
type ProjectVote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_voter" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_voter" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *ProjectVote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// ---------------- PEER HONORS ----------------

// One row per (giver, project): a giver honors one teammate once per
// project, and the choice is final.
type PeerHonor struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GiverID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_giver_project" json:"giver_id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_giver_project" json:"project_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index" json:"receiver_id"`
	HonorType  HonorType `gorm:"not null" json:"honor_type"`
	Points     int       `gorm:"not null" json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *PeerHonor) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// ---------------- BOUNTIES ----------------

type Bounty struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `json:"description,omitempty"`
	RewardAmount  int            `gorm:"not null" json:"reward_amount"`
	DepositAmount int            `gorm:"not null" json:"deposit_amount"`
	Deadline      time.Time      `gorm:"not null" json:"deadline"`
	PosterID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"poster_id"`
	Status        BountyStatus   `gorm:"not null;default:open" json:"status"`
	Tags          datatypes.JSON `json:"tags,omitempty"`
	CoverImage    string         `json:"cover_image,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (b *Bounty) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type BountySubmission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BountyID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bounty_submitter" json:"bounty_id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	SubmittedBy uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bounty_submitter" json:"submitted_by"`
	IsWinner    bool      `gorm:"not null;default:false" json:"is_winner"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}

func (s *BountySubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ---------------- ACHIEVEMENTS ----------------

// Awarded by organizer/admin flows after a hackathon wraps up; feeds
// TotalScore alongside peer honors.
type Achievement struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	HackathonID *uuid.UUID      `gorm:"type:uuid;index" json:"hackathon_id,omitempty"`
	Type        AchievementType `gorm:"not null" json:"type"`
	Points      int             `gorm:"not null" json:"points"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
