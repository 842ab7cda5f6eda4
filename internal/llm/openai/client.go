package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/songsbyarchit/AmritArchit-v4/internal/llm"
	"github.com/songsbyarchit/AmritArchit-v4/pkg/httputil"
	"github.com/songsbyarchit/AmritArchit-v4/pkg/prompts"
)

const (
	baseURL        = "https://api.openai.com/v1/chat/completions"
	defaultTimeout = 60 * time.Second
	roleSystem     = "system"
	roleUser       = "user"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	apiKey       string
	httpClient   doer
	model        string
	systemPrompt string
	prompts      *prompts.Prompts
	deck         llm.DeckOptions
	baseURL      string
}

type Options struct {
	Model        string
	SystemPrompt string
	Prompts      *prompts.Prompts
	Deck         llm.DeckOptions
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type response struct {
	ID      string    `json:"id"`
	Choices []choice  `json:"choices"`
	Error   *apiError `json:"error,omitempty"`
}

type choice struct {
	Message message `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func NewClient(apiKey string, opts Options) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: httputil.NewRetryClient(
			&http.Client{Timeout: defaultTimeout},
			httputil.DefaultRetryConfig(),
		),
		model:        opts.Model,
		systemPrompt: opts.SystemPrompt,
		prompts:      opts.Prompts,
		deck:         opts.Deck,
		baseURL:      baseURL,
	}
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

	reqBody := request{
		Model: c.model,
		Messages: []message{
			{Role: roleSystem, Content: c.systemPrompt},
			{Role: roleUser, Content: prompt},
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, data)
	if err != nil {
		return "", err
	}

	return c.parseResponse(resp)
}

func (c *Client) doRequest(ctx context.Context, data []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error: %s", string(body))
	}

	return body, nil
}

func (c *Client) parseResponse(data []byte) (string, error) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("openai error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return resp.Choices[0].Message.Content, nil
}
