package dtos

import "time"

type PostGenerationRequest struct {
	Pillar     string `json:"pillar" binding:"required"`
	PostType   string `json:"post_type"` // standard | carousel | interactive
	FormatType string `json:"format_type" binding:"required"`
	Topic      string `json:"topic"`
	Provider   string `json:"provider"` // defaults to "gemini"
}

type PostGenerationResponse struct {
	Content    string   `json:"content"`
	VoiceScore float64  `json:"voice_score"`
	Hashtags   []string `json:"hashtags"`
}

type PostCreationRequest struct {
	Pillar     string `json:"pillar" binding:"required"`
	Text       string `json:"text" binding:"required"`
	PostType   string `json:"post_type"`
	FormatType string `json:"format_type"`

	// Optional Fields
	Topic       string     `json:"topic"`
	Hashtags    []string   `json:"hashtags"`
	VoiceScore  float64    `json:"voice_score"`
	Status      string     `json:"status"` // Defaults to "draft" if empty
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
	// ScheduledAt is required when moving to "scheduled".
	ScheduledAt *time.Time `json:"scheduled_at"`
}
