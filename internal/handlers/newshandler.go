package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justbuildingit/post-factory/internal/services"
)

type NewsHandler struct {
	NewsService *services.NewsService
}

func NewNewsHandler(n *services.NewsService) *NewsHandler {
	return &NewsHandler{NewsService: n}
}

// Trending is the GET /news/trending endpoint: top headlines by category
// for content inspiration.
func (h *NewsHandler) Trending(c *gin.Context) {
	category := c.DefaultQuery("category", "technology")
	count, err := strconv.Atoi(c.DefaultQuery("count", "10"))
	if err != nil || count <= 0 {
		count = 10
	}

	articles, err := h.NewsService.TopHeadlines(c.Request.Context(), category, count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching news: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "articles": articles, "category": category})
}

// Search is the GET /news/search endpoint: popular recent articles for a
// query or content pillar.
func (h *NewsHandler) Search(c *gin.Context) {
	query := c.Query("q")
	pillar := c.Query("pillar")
	count, err := strconv.Atoi(c.DefaultQuery("count", "5"))
	if err != nil || count <= 0 {
		count = 5
	}

	if query == "" && pillar == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either q or pillar is required"})
		return
	}

	articles, err := h.NewsService.SearchTrending(c.Request.Context(), query, pillar, count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching news: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "articles": articles})
}
