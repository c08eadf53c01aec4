package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ---------------- OUTBOX (search-index sync events) ----------------

type Outbox struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	EntityType string         `gorm:"index;not null" json:"entity_type"`
	EntityID   uuid.UUID      `gorm:"type:uuid;not null" json:"entity_id"`
	Op         string         `gorm:"not null" json:"op"` // UPSERT | DELETE
	Payload    datatypes.JSON `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	Processed  bool           `gorm:"default:false" json:"processed"`
}

type DLQ struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OutboxID   int64      `gorm:"index" json:"outbox_id"`
	EntityType string     `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Op         string     `json:"op"`
	ErrorMsg   string     `json:"error_msg"`
	Payload    []byte     `gorm:"type:bytea" json:"payload,omitempty"`
	CreatedAt  time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	RetriedAt  *time.Time `json:"retried_at,omitempty"`
	Resolved   bool       `gorm:"default:false" json:"resolved"`
}
