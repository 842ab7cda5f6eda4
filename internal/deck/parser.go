// Package deck parses raw model output into slides.
package deck

import (
	"log/slog"
	"strings"
)

// Slide is one parsed slide: a title line and the bullet body below it.
type Slide struct {
	Title string
	Body  string
}

// Parse splits raw generation text into slides. Slides are separated by a
// blank line; within a slide the first line is the title and the remaining
// lines form the body. Blocks with no bullet lines are dropped.
func Parse(text string) []Slide {
	blocks := strings.Split(strings.TrimSpace(text), "\n\n")
	slides := make([]Slide, 0, len(blocks))

	for _, block := range blocks {
		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			slog.Debug("Skipping malformed slide block", "block", block)
			continue
		}

		slides = append(slides, Slide{
			Title: strings.TrimSpace(lines[0]),
			Body:  strings.Join(lines[1:], "\n"),
		})
	}

	return slides
}

// SearchQuery returns the title with any "Slide N: " style prefix removed,
// suitable as an image search query.
func (s Slide) SearchQuery() string {
	if _, after, ok := strings.Cut(s.Title, ": "); ok {
		return after
	}
	return s.Title
}
