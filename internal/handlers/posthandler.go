package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/justbuildingit/post-factory/internal/dtos"
	"github.com/justbuildingit/post-factory/internal/services"
)

type PostHandler struct {
	LLMService  *services.LLMService
	PostService *services.PostService
}

// NewPostHandler creates the handler with dependencies
func NewPostHandler(llm *services.LLMService, p *services.PostService) *PostHandler {
	return &PostHandler{
		LLMService:  llm,
		PostService: p,
	}
}

// HealthCheck mirrors what the dashboard polls for: which providers and
// integrations are configured.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"providers": gin.H{
			"gemini":    os.Getenv("GEMINI_API_KEY") != "",
			"openai":    false,
			"anthropic": false,
		},
		"media_generation": true,
		"news":             os.Getenv("NEWSAPI_KEY") != "",
	})
}

// GeneratePost is the POST /posts/generate endpoint. It feeds recent
// successful posts back into the prompt so generation improves over time.
func (h *PostHandler) GeneratePost(c *gin.Context) {
	var req dtos.PostGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	if req.Provider != "" && req.Provider != "gemini" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Provider '" + req.Provider + "' not supported. Currently only 'gemini' is configured.",
		})
		return
	}
	if req.PostType == "" {
		req.PostType = "standard"
	}

	learning := h.PostService.LearningContext()
	resp, err := h.LLMService.GeneratePost(c.Request.Context(), req, learning)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating post: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePost saves a (possibly edited) generated post.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dtos.PostCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	post, err := h.PostService.CreatePost(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ListPosts supports the dashboard table: ?status=...&pillar=...
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.PostService.ListPosts(c.Query("status"), c.Query("pillar"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.PostService.GetByPublicID(c.Param("id"))
	if errors.Is(err, services.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

// UpdateStatus is the PATCH /posts/:id/status endpoint driving the
// draft -> approved -> scheduled -> posted workflow.
func (h *PostHandler) UpdateStatus(c *gin.Context) {
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	post, err := h.PostService.UpdateStatus(c.Param("id"), &req)
	if errors.Is(err, services.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	err := h.PostService.DeletePost(c.Param("id"))
	if errors.Is(err, services.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
