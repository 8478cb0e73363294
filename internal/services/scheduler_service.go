package services

import (
	"fmt"
	"log"
	"time"

	"github.com/justbuildingit/post-factory/internal/models"
	"gorm.io/gorm"
)

// SchedulerService publishes posts whose scheduled time has arrived. The
// dashboard only flips statuses; actually pushing to LinkedIn stays manual.
type SchedulerService struct {
	DB       *gorm.DB
	Interval time.Duration
}

func NewSchedulerService(db *gorm.DB) *SchedulerService {
	return &SchedulerService{
		DB:       db,
		Interval: 1 * time.Minute,
	}
}

// StartWatcher starts the background polling.
func (s *SchedulerService) StartWatcher() {
	ticker := time.NewTicker(s.Interval)

	// Run immediately on startup
	go s.PublishDue()

	go func() {
		for range ticker.C {
			s.PublishDue()
		}
	}()
}

// PublishDue promotes every scheduled post whose time has passed to
// "posted" and logs an event per post.
func (s *SchedulerService) PublishDue() {
	now := time.Now()

	var due []models.Post
	err := s.DB.Where("status = ? AND scheduled_at <= ?", models.StatusScheduled, now).Find(&due).Error
	if err != nil {
		log.Printf("❌ Scheduler: query failed: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}

	log.Printf("⏰ Scheduler: publishing %d due post(s)...", len(due))
	for _, post := range due {
		err := s.DB.Model(&post).Updates(map[string]interface{}{
			"status":    models.StatusPosted,
			"posted_at": &now,
		}).Error
		if err != nil {
			log.Printf("❌ Scheduler: failed to publish post %s: %v", post.PublicID, err)
			continue
		}

		details := "Published by scheduler"
		if post.ScheduledAt != nil {
			details = fmt.Sprintf("Published at scheduled time %s", post.ScheduledAt.Format(time.RFC3339))
		}
		event := models.PostEvent{
			PostID:    post.ID,
			EventType: "SCHEDULED_PUBLISH",
			Details:   details,
		}
		s.DB.Create(&event)
		log.Printf("✅ Scheduler: post %s published.", post.PublicID)
	}
}
