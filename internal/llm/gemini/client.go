package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/songsbyarchit/AmritArchit-v4/internal/llm"
	"github.com/songsbyarchit/AmritArchit-v4/pkg/prompts"
)

type Client struct {
	client       *genai.Client
	model        string
	systemPrompt string
	prompts      *prompts.Prompts
	deck         llm.DeckOptions
}

func NewClient(ctx context.Context, apiKey, model, systemPrompt string, p *prompts.Prompts, deck llm.DeckOptions) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
		prompts:      p,
		deck:         deck,
	}, nil
}

func (c *Client) GenerateDeck(ctx context.Context, topic string) (string, error) {
	prompt, err := c.prompts.RenderDeck(prompts.DeckParams{
		Topic:       topic,
		SlideCount:  c.deck.SlideCount,
		BulletCount: c.deck.BulletCount,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(c.systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates returned from model")
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text content returned from model")
	}

	return strings.Join(parts, ""), nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
