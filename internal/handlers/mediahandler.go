package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justbuildingit/post-factory/internal/dtos"
	"github.com/justbuildingit/post-factory/internal/models"
	"github.com/justbuildingit/post-factory/internal/services"
	"github.com/justbuildingit/post-factory/internal/slides"
)

type MediaHandler struct {
	RenderService *services.RenderService
	PostService   *services.PostService
}

func NewMediaHandler(r *services.RenderService, p *services.PostService) *MediaHandler {
	return &MediaHandler{
		RenderService: r,
		PostService:   p,
	}
}

// resolvePost looks up the optional post a media request is attached to.
// A missing post_id is fine (one-off rendering); an unknown one is a 404.
func (h *MediaHandler) resolvePost(c *gin.Context, postID string) (*models.Post, bool) {
	if postID == "" {
		return nil, true
	}
	post, err := h.PostService.GetByPublicID(postID)
	if errors.Is(err, services.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post: " + err.Error()})
		return nil, false
	}
	return post, true
}

func (h *MediaHandler) respond(c *gin.Context, result *services.RenderResult, err error) {
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Rendering failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GenerateCarousel is the POST /media/carousel endpoint. It extracts a
// slide deck from the post text and ships it to the renderer.
func (h *MediaHandler) GenerateCarousel(c *gin.Context) {
	var req dtos.CarouselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	post, ok := h.resolvePost(c, req.PostID)
	if !ok {
		return
	}

	text := req.Text
	topic := req.Topic
	if post != nil {
		if text == "" {
			text = post.Text
		}
		if topic == "" {
			topic = post.Topic
		}
	}
	if topic == "" {
		topic = req.Title
	}

	deck := slides.Extract(text, topic)
	result, err := h.RenderService.GenerateCarousel(c.Request.Context(), post, req.Title, deck)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Rendering failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     result.Success,
		"url":         result.URL,
		"type":        result.Type,
		"slide_count": len(deck),
	})
}

func (h *MediaHandler) GenerateChart(c *gin.Context) {
	var req dtos.ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	post, ok := h.resolvePost(c, req.PostID)
	if !ok {
		return
	}
	result, err := h.RenderService.GenerateChart(c.Request.Context(), post, req.ChartType, req.Data, req.Title, req.Theme)
	h.respond(c, result, err)
}

func (h *MediaHandler) GenerateCodeImage(c *gin.Context) {
	var req dtos.CodeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	post, ok := h.resolvePost(c, req.PostID)
	if !ok {
		return
	}
	result, err := h.RenderService.GenerateCodeImage(c.Request.Context(), post, req.Code, req.Language, req.Theme, req.Title)
	h.respond(c, result, err)
}

func (h *MediaHandler) GenerateInfographic(c *gin.Context) {
	var req dtos.InfographicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	post, ok := h.resolvePost(c, req.PostID)
	if !ok {
		return
	}
	result, err := h.RenderService.GenerateInfographic(c.Request.Context(), post, req.Title, req.Stats, req.BrandColor)
	h.respond(c, result, err)
}

func (h *MediaHandler) GenerateQRCode(c *gin.Context) {
	var req dtos.QRCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	post, ok := h.resolvePost(c, req.PostID)
	if !ok {
		return
	}
	result, err := h.RenderService.GenerateQRCode(c.Request.Context(), post, req.URL)
	h.respond(c, result, err)
}

func (h *MediaHandler) GenerateAIImage(c *gin.Context) {
	var req dtos.AIImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	post, ok := h.resolvePost(c, req.PostID)
	if !ok {
		return
	}
	result, err := h.RenderService.GenerateAIImage(c.Request.Context(), post, req.Prompt, req.Style)
	h.respond(c, result, err)
}

func (h *MediaHandler) GenerateInteractive(c *gin.Context) {
	var req dtos.InteractiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	post, ok := h.resolvePost(c, req.PostID)
	if !ok {
		return
	}
	result, err := h.RenderService.GenerateInteractive(c.Request.Context(), post, req.Prompt, req.Title)
	h.respond(c, result, err)
}

// ListMedia is the GET /media/:postId endpoint.
func (h *MediaHandler) ListMedia(c *gin.Context) {
	post, err := h.PostService.GetByPublicID(c.Param("postId"))
	if errors.Is(err, services.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post: " + err.Error()})
		return
	}

	assets, err := h.RenderService.ListAssets(post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list media: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post_id": post.PublicID, "media": assets})
}
