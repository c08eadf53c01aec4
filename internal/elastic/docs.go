package elastic

import (
	"encoding/json"
	"time"

	"github.com/sirdesai22/hackhub/internal/models"
)

type ProfileDoc struct {
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	Bio        string    `json:"bio"`
	Claimed    bool      `json:"claimed"`
	TotalScore int       `json:"total_score"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func BuildProfileDoc(p models.Profile) ([]byte, error) {
	return json.Marshal(ProfileDoc{
		Username:   p.Username,
		FullName:   p.FullName,
		Bio:        p.Bio,
		Claimed:    p.Claimed(),
		TotalScore: p.TotalScore,
		UpdatedAt:  p.UpdatedAt,
	})
}

type HackathonDoc struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	IsOnline  bool      `json:"is_online"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	UpdatedAt time.Time `json:"updated_at"`
}

func BuildHackathonDoc(h models.Hackathon) ([]byte, error) {
	return json.Marshal(HackathonDoc{
		Slug:      h.Slug,
		Title:     h.Title,
		Location:  h.Location,
		IsOnline:  h.IsOnline,
		StartDate: h.StartDate,
		EndDate:   h.EndDate,
		UpdatedAt: h.UpdatedAt,
	})
}

type ProjectDoc struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatorID   string    `json:"creator_id"`
	HackathonID string    `json:"hackathon_id,omitempty"`
	BountyID    string    `json:"bounty_id,omitempty"`
	VoteCount   int       `json:"vote_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func BuildProjectDoc(p models.Project) ([]byte, error) {
	doc := ProjectDoc{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		CreatorID:   p.CreatorID.String(),
		VoteCount:   p.VoteCount,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.HackathonID != nil {
		doc.HackathonID = p.HackathonID.String()
	}
	if p.BountyID != nil {
		doc.BountyID = p.BountyID.String()
	}
	return json.Marshal(doc)
}
