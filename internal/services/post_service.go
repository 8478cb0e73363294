package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/justbuildingit/post-factory/internal/dtos"
	"github.com/justbuildingit/post-factory/internal/models"
	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type PostService struct {
	DB *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{DB: db}
}

func (s *PostService) CreatePost(req *dtos.PostCreationRequest) (*models.Post, error) {
	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	post := &models.Post{
		Pillar:      req.Pillar,
		PostType:    req.PostType,
		FormatType:  req.FormatType,
		Topic:       req.Topic,
		Text:        req.Text,
		Hashtags:    strings.Join(req.Hashtags, " "),
		VoiceScore:  req.VoiceScore,
		Status:      status,
		ScheduledAt: req.ScheduledAt,
	}
	if err := s.DB.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns posts newest first, optionally filtered by status
// and/or pillar.
func (s *PostService) ListPosts(status, pillar string) ([]models.Post, error) {
	q := s.DB.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if pillar != "" {
		q = q.Where("pillar = ?", pillar)
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) GetByPublicID(publicID string) (*models.Post, error) {
	var post models.Post
	err := s.DB.Preload("Events").Preload("Media").
		Where("public_id = ?", publicID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateStatus moves a post through the workflow and logs an event.
// Moving to "scheduled" requires a schedule time; moving to "posted"
// stamps PostedAt.
func (s *PostService) UpdateStatus(publicID string, req *dtos.StatusUpdateRequest) (*models.Post, error) {
	if !models.ValidStatus(req.Status) {
		return nil, fmt.Errorf("unknown status %q", req.Status)
	}

	post, err := s.GetByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	if post.Status == req.Status {
		return post, nil
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.StatusScheduled {
		if req.ScheduledAt == nil {
			return nil, errors.New("scheduled_at is required when scheduling a post")
		}
		updates["scheduled_at"] = req.ScheduledAt
	}
	if req.Status == models.StatusPosted {
		now := time.Now()
		updates["posted_at"] = &now
	}

	oldStatus := post.Status
	if err := s.DB.Model(post).Updates(updates).Error; err != nil {
		return nil, err
	}

	event := models.PostEvent{
		PostID:    post.ID,
		EventType: "STATUS_CHANGE",
		Details:   fmt.Sprintf("Status changed %s -> %s", oldStatus, req.Status),
	}
	if err := s.DB.Create(&event).Error; err != nil {
		log.Printf("⚠️ Failed to log status event for post %s: %v", publicID, err)
	}
	return post, nil
}

func (s *PostService) DeletePost(publicID string) error {
	res := s.DB.Where("public_id = ?", publicID).Delete(&models.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// LearningContext builds the prompt block of recent successful posts so
// generation can imitate what already worked. Returns "" when there is
// nothing to learn from; a fetch failure is logged, not fatal.
func (s *PostService) LearningContext() string {
	var posts []models.Post
	err := s.DB.Where("status = ?", models.StatusPosted).
		Order("created_at DESC").Limit(10).Find(&posts).Error
	if err != nil {
		log.Printf("Warning: Could not fetch posted posts for learning: %v", err)
		return ""
	}
	return FormatLearningContext(posts)
}

// FormatLearningContext renders posted posts as few-shot examples.
func FormatLearningContext(posts []models.Post) string {
	if len(posts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n📚 LEARN FROM THESE SUCCESSFUL POSTS (analyze their tone, structure, and style):\n")
	for i, post := range posts {
		fmt.Fprintf(&b, "\n--- Example %d ---\n%s\n", i+1, post.Text)
		if post.Hashtags != "" {
			fmt.Fprintf(&b, "Hashtags: %s\n", post.Hashtags)
		}
	}
	b.WriteString("\n💡 Match the voice, tone, and approach of these successful posts.\n")
	return b.String()
}
