package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post statuses follow the dashboard workflow. The learning loop only ever
// reads posts that reached "posted".
const (
	StatusDraft     = "draft"
	StatusApproved  = "approved"
	StatusScheduled = "scheduled"
	StatusPosted    = "posted"
	StatusArchived  = "archived"
)

// ValidStatus reports whether s is a known workflow status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusApproved, StatusScheduled, StatusPosted, StatusArchived:
		return true
	}
	return false
}

type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// PublicID is what the frontend and the rendering backend see; the
	// numeric PK never leaves this service.
	PublicID string `gorm:"uniqueIndex;not null" json:"public_id"`

	Pillar     string `gorm:"not null" json:"pillar"`
	PostType   string `gorm:"default:'standard'" json:"post_type"`
	FormatType string `json:"format_type"`
	Topic      string `json:"topic"`

	Text string `gorm:"type:text" json:"text"`
	// Hashtags are stored space-joined ("#AI #Leadership").
	Hashtags   string  `json:"hashtags"`
	VoiceScore float64 `json:"voice_score"`

	Status      string     `gorm:"default:'draft'" json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`

	Events []PostEvent  `json:"events,omitempty"`
	Media  []MediaAsset `json:"media,omitempty"`
}

// BeforeCreate assigns the public ID so callers never have to.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.PublicID == "" {
		p.PublicID = uuid.NewString()
	}
	return nil
}

// PostEvent is the audit trail for a post (status changes, publishes).
type PostEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	PostID    uint      `json:"post_id"`
	EventType string    `json:"event_type"`
	Details   string    `gorm:"type:text" json:"details"`
}

// MediaAsset records one artifact the rendering backend produced for a post
// (carousel PDF, chart PNG, ...). The bytes live in the renderer's storage;
// we only keep the URL.
type MediaAsset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	PostID    uint      `json:"post_id"`
	Kind      string    `gorm:"not null" json:"kind"`
	URL       string    `gorm:"type:text" json:"url"`
	Format    string    `json:"format"`
}
