package groq

import (
	"context"
	"fmt"

	"github.com/conneroisu/groq-go"

	"github.com/songsbyarchit/AmritArchit-v4/internal/llm"
	"github.com/songsbyarchit/AmritArchit-v4/pkg/prompts"
)

type Client struct {
	client       *groq.Client
	model        groq.ChatModel
	systemPrompt string
	prompts      *prompts.Prompts
	deck         llm.DeckOptions
}

func NewClient(apiKey, model, systemPrompt string, p *prompts.Prompts, deck llm.DeckOptions) (*Client, error) {
	client, err := groq.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	return &Client{
		client:       client,
		model:        groq.ChatModel(model),
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

	req := groq.ChatCompletionRequest{
		Model: c.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleSystem, Content: c.systemPrompt},
			{Role: groq.RoleUser, Content: prompt},
		},
	}

	resp, err := c.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response")
	}

	return resp.Choices[0].Message.Content, nil
}
