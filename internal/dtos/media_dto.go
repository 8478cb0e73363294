package dtos

// Media request bodies mirror the rendering backend's API one-to-one, plus
// an optional post_id so the resulting URL can be attached to a post.

type CarouselRequest struct {
	PostID string `json:"post_id"`
	Title  string `json:"title" binding:"required"`
	// Text is the raw post body to extract slides from. When empty and
	// post_id is set, the stored post text is used instead.
	Text  string `json:"text"`
	Topic string `json:"topic"`
}

type ChartRequest struct {
	PostID    string         `json:"post_id"`
	ChartType string         `json:"chart_type" binding:"required"` // bar, line, pie, scatter, area, funnel
	Data      map[string]any `json:"data" binding:"required"`
	Title     string         `json:"title" binding:"required"`
	Theme     string         `json:"theme"`
}

type CodeImageRequest struct {
	PostID   string `json:"post_id"`
	Code     string `json:"code" binding:"required"`
	Language string `json:"language"`
	Theme    string `json:"theme"`
	Title    string `json:"title"`
}

type InfographicRequest struct {
	PostID     string              `json:"post_id"`
	Title      string              `json:"title" binding:"required"`
	Stats      []map[string]string `json:"stats" binding:"required"`
	BrandColor string              `json:"brand_color"`
}

type QRCodeRequest struct {
	PostID string `json:"post_id"`
	URL    string `json:"url" binding:"required"`
}

type AIImageRequest struct {
	PostID string `json:"post_id"`
	Prompt string `json:"prompt" binding:"required"`
	Style  string `json:"style"`
}

type InteractiveRequest struct {
	PostID string `json:"post_id"`
	Prompt string `json:"prompt" binding:"required"`
	Title  string `json:"title" binding:"required"`
}
