package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/justbuildingit/post-factory/internal/models"
	"github.com/justbuildingit/post-factory/internal/slides"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderService(handler http.HandlerFunc) (*RenderService, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &RenderService{
		BaseURL: srv.URL,
		Client:  srv.Client(),
	}, srv
}

func TestGenerateCarouselPayload(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	svc, srv := newTestRenderService(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(RenderResult{Success: true, URL: "https://cdn/x.pdf", Type: "carousel"})
	})
	defer srv.Close()

	deck := []slides.Slide{
		{Title: "Hook", Content: "line one"},
		{Title: "CTA", Content: ""},
	}
	result, err := svc.GenerateCarousel(context.Background(), nil, "My Carousel", deck)
	require.NoError(t, err)

	assert.Equal(t, "/media/generate-carousel", gotPath)
	assert.Equal(t, "My Carousel", gotBody["title"])
	assert.True(t, result.Success)
	assert.Equal(t, "https://cdn/x.pdf", result.URL)

	// The slide array goes over the wire as {title, content} objects, and
	// an empty content still round-trips as "".
	sent, ok := gotBody["slides"].([]any)
	require.True(t, ok)
	require.Len(t, sent, 2)
	first := sent[0].(map[string]any)
	assert.Equal(t, "Hook", first["title"])
	assert.Equal(t, "line one", first["content"])
	second := sent[1].(map[string]any)
	assert.Equal(t, "", second["content"])
}

func TestRenderDefaults(t *testing.T) {
	var gotBody map[string]any
	svc, srv := newTestRenderService(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(RenderResult{Success: true, URL: "u", Type: "chart"})
	})
	defer srv.Close()

	_, err := svc.GenerateChart(context.Background(), nil, "bar", map[string]any{"labels": []string{"a"}}, "T", "")
	require.NoError(t, err)
	assert.Equal(t, "plotly_dark", gotBody["theme"])

	_, err = svc.GenerateCodeImage(context.Background(), nil, "print('hi')", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "python", gotBody["language"])
	assert.Equal(t, "monokai", gotBody["theme"])

	_, err = svc.GenerateAIImage(context.Background(), nil, "a robot", "")
	require.NoError(t, err)
	assert.Equal(t, "professional", gotBody["style"])
}

func TestRenderRetriesTransientFailures(t *testing.T) {
	calls := 0
	svc, srv := newTestRenderService(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(RenderResult{Success: true, URL: "u", Type: "qrcode"})
	})
	defer srv.Close()

	result, err := svc.GenerateQRCode(context.Background(), nil, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.True(t, result.Success)
}

func TestRenderGivesUpAfterRetries(t *testing.T) {
	calls := 0
	svc, srv := newTestRenderService(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := svc.GenerateInteractive(context.Background(), nil, "demo", "Demo")
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorContains(t, err, "failed after 3 attempts")
}

func TestRenderReportedFailure(t *testing.T) {
	svc, srv := newTestRenderService(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(RenderResult{Success: false})
	})
	defer srv.Close()

	_, err := svc.GenerateInfographic(context.Background(), nil, "T", []map[string]string{{"label": "Users", "value": "10k"}}, "")
	assert.ErrorContains(t, err, "renderer reported failure")
}

func TestRenderRecordsAssetForPost(t *testing.T) {
	db := newTestDB(t)
	post := models.Post{Pillar: "x", Text: "t"}
	require.NoError(t, db.Create(&post).Error)

	svc, srv := newTestRenderService(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(RenderResult{Success: true, URL: "https://cdn/post.pdf", Type: "carousel"})
	})
	defer srv.Close()
	svc.DB = db

	_, err := svc.GenerateCarousel(context.Background(), &post, "T", []slides.Slide{{Title: "Hook"}})
	require.NoError(t, err)

	assets, err := svc.ListAssets(post.ID)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "carousel", assets[0].Kind)
	assert.Equal(t, "pdf", assets[0].Format)
	assert.Equal(t, "https://cdn/post.pdf", assets[0].URL)
}

func TestRetryStopsOnFirstSuccess(t *testing.T) {
	attempts := 0
	err := retry(3, time.Millisecond, func() error {
		attempts++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}
