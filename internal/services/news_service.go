package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// newsAPIBase is a var so tests can point it at an httptest server.
var newsAPIBase = "https://newsapi.org/v2"

// Article is the trimmed-down shape the dashboard consumes.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	Author      string `json:"author,omitempty"`
}

// NewsService fetches trending articles from NewsAPI for content
// inspiration.
type NewsService struct {
	APIKey string
	Client *http.Client
}

// trustedSources keeps results to reputable outlets.
var trustedSources = []string{
	"techcrunch", "wired", "the-verge", "ars-technica",
	"bbc-news", "cnn", "reuters", "the-wall-street-journal",
	"bloomberg", "financial-times", "business-insider",
	"the-washington-post", "the-new-york-times",
}

// pillarKeywords maps content pillars to search queries when the caller
// gives no explicit query.
var pillarKeywords = map[string]string{
	"AI & Innovation": "artificial intelligence OR machine learning OR AI OR innovation",
	"Leadership":      "leadership OR management OR business strategy",
	"Career Growth":   "career OR professional development OR job market",
	"Tech & Tools":    "technology OR software OR tools OR apps",
}

func NewNewsService() *NewsService {
	return &NewsService{
		APIKey: os.Getenv("NEWSAPI_KEY"),
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type newsAPIResponse struct {
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// SearchTrending finds popular articles from the last 7 days. When query is
// empty the pillar's keyword set is used instead.
func (s *NewsService) SearchTrending(ctx context.Context, query, pillar string, maxResults int) ([]Article, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("NEWSAPI_KEY not configured")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	searchQuery := query
	if searchQuery == "" {
		if kw, ok := pillarKeywords[pillar]; ok {
			searchQuery = kw
		}
	}
	if searchQuery == "" {
		return nil, fmt.Errorf("no query and no known pillar %q", pillar)
	}

	fromDate := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	params := url.Values{
		"q":        {searchQuery},
		"from":     {fromDate},
		"sortBy":   {"popularity"},
		"language": {"en"},
		"apiKey":   {s.APIKey},
		// Get extra so the no-image filter still fills the quota.
		"pageSize": {fmt.Sprintf("%d", maxResults*2)},
		"sources":  {strings.Join(trustedSources, ",")},
	}

	return s.fetch(ctx, "/everything", params, maxResults)
}

// TopHeadlines returns the current top headlines for a NewsAPI category
// (business, technology, science, ...).
func (s *NewsService) TopHeadlines(ctx context.Context, category string, maxResults int) ([]Article, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("NEWSAPI_KEY not configured")
	}
	if category == "" {
		category = "technology"
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{
		"category": {category},
		"language": {"en"},
		"apiKey":   {s.APIKey},
		"pageSize": {fmt.Sprintf("%d", maxResults)},
	}

	return s.fetch(ctx, "/top-headlines", params, maxResults)
}

func (s *NewsService) fetch(ctx context.Context, path string, params url.Values, maxResults int) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, newsAPIBase+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NewsAPI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NewsAPI returned status %d", resp.StatusCode)
	}

	var data newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding NewsAPI response: %w", err)
	}

	results := make([]Article, 0, maxResults)
	for _, a := range data.Articles {
		// Articles without an image render poorly on the dashboard.
		if a.URLToImage == "" {
			continue
		}
		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}
		results = append(results, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			Source:      source,
			PublishedAt: a.PublishedAt,
			Author:      a.Author,
		})
		if len(results) == maxResults {
			break
		}
	}
	return results, nil
}
