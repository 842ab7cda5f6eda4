package prompts

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

const defaultDeckPrompt = `Create a professional presentation on '{{.Topic}}' that is engaging, fact-driven, and visually impactful.
The slides should be front-facing and ready to present without requiring additional speaker notes.

Instructions:
- Generate exactly {{.SlideCount}} slides.
- Each slide should have a clear, concise, and compelling title.
- Provide exactly {{.BulletCount}} bullet points per slide that are informative, surprising, or impactful.
- Avoid generic topic suggestions; instead, include interesting facts, statistics, historical context, or thought-provoking insights.
- Ensure the language is direct, engaging, and audience-friendly.
- Format the response with clear slide separations: a blank line between slides, the title on the first line of each slide, one bullet per line after it.

Example:
Slide 1: [Title]
- Bullet point 1 (Interesting fact, statistic, or statement)
- Bullet point 2 (Compelling information)
- Bullet point 3 (A surprising or little-known fact)
- Bullet point 4 (Historical or futuristic relevance)
- Bullet point 5 (Final key takeaway)

Now, generate the presentation.`

type Prompts struct {
	Deck DeckPrompts `yaml:"deck"`
}

type DeckPrompts struct {
	Generate string `yaml:"generate"`
}

type DeckParams struct {
	Topic       string
	SlideCount  int
	BulletCount int
}

// Load reads prompts.yaml when present and falls back to the built-in
// templates otherwise.
func Load() (*Prompts, error) {
	if _, err := os.Stat(defaultPromptsPath); err != nil {
		slog.Debug("No prompts.yaml found, using built-in prompts")
		return Defaults(), nil
	}
	return LoadFrom(defaultPromptsPath)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	if p.Deck.Generate == "" {
		p.Deck.Generate = defaultDeckPrompt
	}

	return &p, nil
}

func Defaults() *Prompts {
	return &Prompts{
		Deck: DeckPrompts{Generate: defaultDeckPrompt},
	}
}

func (p *Prompts) RenderDeck(params DeckParams) (string, error) {
	return render(p.Deck.Generate, params)
}

func render(text string, params any) (string, error) {
	tmpl, err := template.New("prompt").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}

	return buf.String(), nil
}
