package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/justbuildingit/post-factory/internal/dtos"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

type LLMService struct {
	Client llms.Model
}

// NewLLMService initializes the Gemini client from GEMINI_API_KEY.
func NewLLMService() *LLMService {
	ctx := context.Background()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("CRITICAL ERROR: GEMINI_API_KEY is empty. Did you load the .env file?")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.0-flash"),
	)
	if err != nil {
		log.Fatal("Failed to create Gemini client:", err)
	}

	return &LLMService{Client: llm}
}

const carouselInstructions = `
STRICT CAROUSEL FORMAT REQUIRED:
Structure the content clearly for a PDF Carousel.
- Slide 1: Hook/Title (Big impact)
- Slides 2-6: One key point per slide (Concise text + Visual idea descriptions)
- Last Slide: Summary & CTA
Format each slide clearly (e.g., "SLIDE 1: ...")
`

const interactiveInstructions = `
INTERACTIVE DEMO CONTEXT:
This post promotes a new interactive tool/simulator.
- Focus on the problem the tool solves.
- Tease the capability ("I built a tool that...")
- Explicit Call-to-Action: "Try the simulator at the link below" or "Comment for access"
`

// BuildPostPrompt assembles the full generation prompt: base requirements,
// post-type specific instructions and the learning block built from
// previously posted posts.
func BuildPostPrompt(req dtos.PostGenerationRequest, learningContext string) string {
	typeInstructions := ""
	switch req.PostType {
	case "carousel":
		typeInstructions = carouselInstructions
	case "interactive":
		typeInstructions = interactiveInstructions
	}

	return fmt.Sprintf(`Generate a LinkedIn post with the following specifications:

Content Pillar: %s
Post Type: %s
Format: %s
Topic: %s

Requirements:
- Write in a professional yet engaging tone
- Keep it concise (under 1300 characters)
- Use line breaks for readability
- Include relevant hashtags (3-5)
- Make it authentic and valuable
%s
%s

Return ONLY the post content followed by hashtags on a new line.`,
		req.Pillar, req.PostType, req.FormatType, req.Topic, typeInstructions, learningContext)
}

// GeneratePost asks Gemini for a post and returns the cleaned content,
// its hashtags and a voice score.
func (s *LLMService) GeneratePost(ctx context.Context, req dtos.PostGenerationRequest, learningContext string) (*dtos.PostGenerationResponse, error) {
	prompt := BuildPostPrompt(req, learningContext)

	raw, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return nil, err
	}

	content, hashtags := ParseGeneratedPost(raw)
	resp := &dtos.PostGenerationResponse{
		Content:    content,
		VoiceScore: VoiceScore(content),
		Hashtags:   hashtags,
	}
	return resp, nil
}

// ParseGeneratedPost separates hashtag lines from the post body. Any line
// starting with '#' is treated as a hashtag line and its '#'-prefixed
// tokens are collected; everything else stays in the content.
func ParseGeneratedPost(raw string) (content string, hashtags []string) {
	var bodyLines []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			for _, tok := range strings.Fields(line) {
				if strings.HasPrefix(tok, "#") {
					hashtags = append(hashtags, tok)
				}
			}
			continue
		}
		bodyLines = append(bodyLines, line)
	}

	content = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	if len(hashtags) == 0 {
		hashtags = []string{"#LinkedIn", "#Professional"}
	} else if len(hashtags) > 5 {
		hashtags = hashtags[:5]
	}
	return content, hashtags
}

// VoiceScore is the dashboard's simple length heuristic: longer posts score
// higher, capped at 95.
func VoiceScore(content string) float64 {
	score := 70.0 + float64(len(content))/20.0
	if score > 95.0 {
		score = 95.0
	}
	return math.Round(score*10) / 10
}
