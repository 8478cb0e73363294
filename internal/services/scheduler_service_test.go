package services

import (
	"testing"
	"time"

	"github.com/justbuildingit/post-factory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDue(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulerService(db)

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	due := models.Post{Pillar: "x", Text: "due", Status: models.StatusScheduled, ScheduledAt: &past}
	notYet := models.Post{Pillar: "x", Text: "later", Status: models.StatusScheduled, ScheduledAt: &future}
	draft := models.Post{Pillar: "x", Text: "draft", Status: models.StatusDraft}
	require.NoError(t, db.Create(&due).Error)
	require.NoError(t, db.Create(&notYet).Error)
	require.NoError(t, db.Create(&draft).Error)

	svc.PublishDue()

	var got models.Post
	require.NoError(t, db.First(&got, due.ID).Error)
	assert.Equal(t, models.StatusPosted, got.Status)
	assert.NotNil(t, got.PostedAt)

	got = models.Post{}
	require.NoError(t, db.First(&got, notYet.ID).Error)
	assert.Equal(t, models.StatusScheduled, got.Status, "future posts stay scheduled")

	got = models.Post{}
	require.NoError(t, db.First(&got, draft.ID).Error)
	assert.Equal(t, models.StatusDraft, got.Status)

	var events []models.PostEvent
	require.NoError(t, db.Where("post_id = ?", due.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "SCHEDULED_PUBLISH", events[0].EventType)
}

func TestPublishDueIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewSchedulerService(db)

	past := time.Now().Add(-time.Minute)
	post := models.Post{Pillar: "x", Text: "due", Status: models.StatusScheduled, ScheduledAt: &past}
	require.NoError(t, db.Create(&post).Error)

	svc.PublishDue()
	svc.PublishDue()

	var events []models.PostEvent
	require.NoError(t, db.Where("post_id = ?", post.ID).Find(&events).Error)
	assert.Len(t, events, 1, "already-posted posts are not republished")
}
