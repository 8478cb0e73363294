package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justbuildingit/post-factory/internal/models"
	"github.com/justbuildingit/post-factory/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T, rendererHandler http.HandlerFunc) (*gin.Engine, *gorm.DB, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Post{}, &models.PostEvent{}, &models.MediaAsset{}))

	renderer := httptest.NewServer(rendererHandler)
	t.Cleanup(renderer.Close)

	postService := services.NewPostService(db)
	renderService := &services.RenderService{DB: db, BaseURL: renderer.URL, Client: renderer.Client()}
	h := NewMediaHandler(renderService, postService)

	r := gin.New()
	r.POST("/media/carousel", h.GenerateCarousel)
	r.GET("/media/:postId", h.ListMedia)
	return r, db, renderer
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateCarouselExtractsSlidesFromPost(t *testing.T) {
	var rendererBody map[string]any
	r, db, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		json.NewDecoder(req.Body).Decode(&rendererBody)
		json.NewEncoder(w).Encode(services.RenderResult{Success: true, URL: "https://cdn/c.pdf", Type: "carousel"})
	})

	post := models.Post{
		Pillar: "AI & Innovation",
		Topic:  "Prompting",
		Text:   "SLIDE 1: **The Hook**\nwhy prompts matter\nLAST SLIDE: Follow me\nfor more",
	}
	require.NoError(t, db.Create(&post).Error)

	w := postJSON(r, "/media/carousel", map[string]any{
		"post_id": post.PublicID,
		"title":   "Prompting 101",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "https://cdn/c.pdf", resp["url"])
	assert.Equal(t, float64(2), resp["slide_count"])

	// The renderer received the extracted deck, title first line cleaned of
	// markdown emphasis.
	sent := rendererBody["slides"].([]any)
	require.Len(t, sent, 2)
	first := sent[0].(map[string]any)
	assert.Equal(t, "The Hook", first["title"])
	assert.Equal(t, "why prompts matter", first["content"])
	second := sent[1].(map[string]any)
	assert.Equal(t, "Follow me", second["title"])

	// The artifact was recorded against the post.
	var assets []models.MediaAsset
	require.NoError(t, db.Where("post_id = ?", post.ID).Find(&assets).Error)
	require.Len(t, assets, 1)
	assert.Equal(t, "carousel", assets[0].Kind)
}

func TestGenerateCarouselWithInlineText(t *testing.T) {
	var rendererBody map[string]any
	r, _, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		json.NewDecoder(req.Body).Decode(&rendererBody)
		json.NewEncoder(w).Encode(services.RenderResult{Success: true, URL: "u", Type: "carousel"})
	})

	// No markers, no long lines: the extractor degrades to the default deck
	// instead of failing.
	w := postJSON(r, "/media/carousel", map[string]any{
		"title": "Fallback",
		"text":  "hi\nok\nno",
	})
	require.Equal(t, http.StatusOK, w.Code)

	sent := rendererBody["slides"].([]any)
	require.Len(t, sent, 3)
	assert.Equal(t, "Introduction", sent[0].(map[string]any)["title"])
	assert.Equal(t, "Conclusion", sent[2].(map[string]any)["title"])
}

func TestGenerateCarouselUnknownPost(t *testing.T) {
	r, _, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		t.Error("renderer should not be called")
	})

	w := postJSON(r, "/media/carousel", map[string]any{
		"post_id": "does-not-exist",
		"title":   "T",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateCarouselRendererDown(t *testing.T) {
	r, _, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	w := postJSON(r, "/media/carousel", map[string]any{
		"title": "T",
		"text":  "SLIDE 1: Hook\nbody",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestListMedia(t *testing.T) {
	r, db, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {})

	post := models.Post{Pillar: "x", Text: "t"}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&models.MediaAsset{PostID: post.ID, Kind: "chart", URL: "u", Format: "png"}).Error)

	req := httptest.NewRequest(http.MethodGet, "/media/"+post.PublicID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		PostID string              `json:"post_id"`
		Media  []models.MediaAsset `json:"media"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, post.PublicID, resp.PostID)
	require.Len(t, resp.Media, 1)
	assert.Equal(t, "chart", resp.Media[0].Kind)
}
