package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/justbuildingit/post-factory/internal/models"
	"github.com/justbuildingit/post-factory/internal/slides"
	"gorm.io/gorm"
)

// RenderService calls the external media rendering backend. All the heavy
// lifting (PDF layout, chart drawing, image generation) happens over there;
// we send JSON and get back a URL to the stored artifact.
type RenderService struct {
	DB      *gorm.DB
	BaseURL string
	Client  *http.Client
	// RetryBase is the initial backoff between attempts. The zero value
	// disables the wait, which is what tests want.
	RetryBase time.Duration
}

// RenderResult is the renderer's uniform response envelope.
type RenderResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Type    string `json:"type"`
}

func NewRenderService(db *gorm.DB) *RenderService {
	base := os.Getenv("RENDER_API_URL")
	if base == "" {
		base = "http://localhost:8000"
	}
	return &RenderService{
		DB:        db,
		BaseURL:   base,
		Client:    &http.Client{Timeout: 60 * time.Second},
		RetryBase: 1 * time.Second,
	}
}

// GenerateCarousel sends an extracted slide deck for PDF rendering.
func (s *RenderService) GenerateCarousel(ctx context.Context, post *models.Post, title string, deck []slides.Slide) (*RenderResult, error) {
	payload := map[string]any{
		"slides": deck,
		"title":  title,
	}
	if post != nil {
		payload["post_id"] = post.PublicID
	}
	return s.render(ctx, post, "/media/generate-carousel", payload, "carousel", "pdf")
}

func (s *RenderService) GenerateChart(ctx context.Context, post *models.Post, chartType string, data map[string]any, title, theme string) (*RenderResult, error) {
	if theme == "" {
		theme = "plotly_dark"
	}
	payload := map[string]any{
		"chart_type": chartType,
		"data":       data,
		"title":      title,
		"theme":      theme,
	}
	if post != nil {
		payload["post_id"] = post.PublicID
	}
	return s.render(ctx, post, "/media/generate-chart", payload, "chart", "png")
}

func (s *RenderService) GenerateCodeImage(ctx context.Context, post *models.Post, code, language, theme, title string) (*RenderResult, error) {
	if language == "" {
		language = "python"
	}
	if theme == "" {
		theme = "monokai"
	}
	payload := map[string]any{
		"code":     code,
		"language": language,
		"theme":    theme,
		"title":    title,
	}
	if post != nil {
		payload["post_id"] = post.PublicID
	}
	return s.render(ctx, post, "/media/generate-code-image", payload, "code", "png")
}

func (s *RenderService) GenerateInfographic(ctx context.Context, post *models.Post, title string, stats []map[string]string, brandColor string) (*RenderResult, error) {
	if brandColor == "" {
		brandColor = "#4a9eff"
	}
	payload := map[string]any{
		"title":       title,
		"stats":       stats,
		"brand_color": brandColor,
	}
	if post != nil {
		payload["post_id"] = post.PublicID
	}
	return s.render(ctx, post, "/media/generate-infographic", payload, "infographic", "png")
}

func (s *RenderService) GenerateQRCode(ctx context.Context, post *models.Post, targetURL string) (*RenderResult, error) {
	payload := map[string]any{"url": targetURL}
	if post != nil {
		payload["post_id"] = post.PublicID
	}
	return s.render(ctx, post, "/media/generate-qrcode", payload, "qrcode", "png")
}

func (s *RenderService) GenerateAIImage(ctx context.Context, post *models.Post, prompt, style string) (*RenderResult, error) {
	if style == "" {
		style = "professional"
	}
	payload := map[string]any{
		"prompt": prompt,
		"style":  style,
	}
	if post != nil {
		payload["post_id"] = post.PublicID
	}
	return s.render(ctx, post, "/media/generate-ai-image", payload, "ai-image", "png")
}

func (s *RenderService) GenerateInteractive(ctx context.Context, post *models.Post, prompt, title string) (*RenderResult, error) {
	payload := map[string]any{
		"prompt": prompt,
		"title":  title,
	}
	if post != nil {
		payload["post_id"] = post.PublicID
	}
	return s.render(ctx, post, "/media/generate-interactive", payload, "interactive", "html")
}

// ListAssets returns the media rows recorded for a post.
func (s *RenderService) ListAssets(postID uint) ([]models.MediaAsset, error) {
	var assets []models.MediaAsset
	err := s.DB.Where("post_id = ?", postID).Order("created_at DESC").Find(&assets).Error
	return assets, err
}

// render posts the payload, retrying transient failures, and records a
// MediaAsset row when the call belongs to a post. A failed insert only
// logs: the artifact exists either way and the URL is returned to the
// caller.
func (s *RenderService) render(ctx context.Context, post *models.Post, path string, payload map[string]any, kind, format string) (*RenderResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var result RenderResult
	err = retry(3, s.RetryBase, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("renderer returned status %d for %s", resp.StatusCode, path)
		}
		return json.NewDecoder(resp.Body).Decode(&result)
	})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("renderer reported failure for %s", path)
	}

	if post != nil {
		asset := models.MediaAsset{
			PostID: post.ID,
			Kind:   kind,
			URL:    result.URL,
			Format: format,
		}
		if err := s.DB.Create(&asset).Error; err != nil {
			log.Printf("⚠️ Failed to record %s asset for post %s: %v", kind, post.PublicID, err)
		}
	}
	return &result, nil
}

// retry executes a function with exponential backoff.
func retry(attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		log.Printf("⚠️ Renderer error: %v. Retrying in %v...", err, sleep)
		time.Sleep(sleep)
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
