// Package slides turns freeform generated post text into the structured
// slide list the carousel renderer expects. Generated carousel posts mark
// slide boundaries with "SLIDE 1:", "SLIDE 2:", ... "LAST SLIDE:" tags;
// when those are missing we fall back to heuristics so the caller always
// gets something renderable.
package slides

import (
	"fmt"
	"regexp"
	"strings"
)

// Slide is one page of a carousel. Content may be empty (a title-only
// slide is valid); Title is never empty.
type Slide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// markerRe matches a slide boundary tag at the start of a line:
// "SLIDE <n>:" or "LAST SLIDE:", case-insensitive.
var markerRe = regexp.MustCompile(`(?im)^[ \t]*(?:SLIDE[ \t]+\d+|LAST[ \t]+SLIDE)[ \t]*:[ \t]*`)

// emphasisStripper removes the markdown characters Gemini likes to wrap
// slide titles in ("**Bold**", "# Heading").
var emphasisStripper = strings.NewReplacer("*", "", "#", "")

const (
	fallbackMinLineLen = 20
	fallbackMaxSlides  = 5
)

// Extract parses text into an ordered slide list. It never fails and never
// returns an empty list: if no markers are found it falls back to picking
// long lines, and if that also comes up empty it returns a fixed default
// deck. fallbackTitle (usually the post topic) titles the first fallback
// slide.
func Extract(text, fallbackTitle string) []Slide {
	if out := fromMarkers(text); len(out) > 0 {
		return out
	}
	if out := fromLongLines(text, fallbackTitle); len(out) > 0 {
		return out
	}
	return defaultDeck()
}

// fromMarkers splits text at each marker and builds one slide per segment.
// The first non-blank line after a marker is the title, the rest is the
// content. Slides whose title trims to nothing are dropped.
func fromMarkers(text string) []Slide {
	locs := markerRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	out := make([]Slide, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segment := text[loc[1]:end]

		var lines []string
		for _, line := range strings.Split(segment, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}

		if len(lines) == 0 {
			// Marker with nothing after it. Keep the slot so slide
			// numbering stays aligned with the source.
			out = append(out, Slide{Title: fmt.Sprintf("Slide %d", i+1)})
			continue
		}

		title := strings.TrimSpace(emphasisStripper.Replace(lines[0]))
		content := strings.TrimSpace(strings.Join(lines[1:], "\n"))
		if title == "" {
			continue
		}
		out = append(out, Slide{Title: title, Content: content})
	}
	return out
}

// fromLongLines is the no-marker heuristic: each sufficiently long line
// becomes its own slide, capped at fallbackMaxSlides.
func fromLongLines(text, fallbackTitle string) []Slide {
	var out []Slide
	for _, line := range strings.Split(text, "\n") {
		if len(strings.TrimSpace(line)) <= fallbackMinLineLen {
			continue
		}
		title := fmt.Sprintf("Key Point %d", len(out))
		if len(out) == 0 {
			title = strings.ToUpper(fallbackTitle)
			if strings.TrimSpace(title) == "" {
				title = "INSIGHT"
			}
		}
		out = append(out, Slide{Title: title, Content: line})
		if len(out) == fallbackMaxSlides {
			break
		}
	}
	return out
}

// defaultDeck is the last resort when the text gave us nothing usable.
func defaultDeck() []Slide {
	return []Slide{
		{Title: "Introduction", Content: "Carousel content based on your post."},
		{Title: "Key Insight", Content: "Detailed analysis of the topic."},
		{Title: "Conclusion", Content: "Follow for more insights."},
	}
}
