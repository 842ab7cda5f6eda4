package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/songsbyarchit/AmritArchit-v4/pkg/httputil"
)

const (
	baseURL        = "https://www.googleapis.com/customsearch/v1"
	defaultTimeout = 15 * time.Second
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries the Google Custom Search JSON API for images.
type Client struct {
	apiKey     string
	engineID   string
	httpClient doer
	baseURL    string
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

func NewClient(apiKey, engineID string) *Client {
	return &Client{
		apiKey:   apiKey,
		engineID: engineID,
		httpClient: httputil.NewRetryClient(
			&http.Client{Timeout: defaultTimeout},
			httputil.DefaultRetryConfig(),
		),
		baseURL: baseURL,
	}
}

// FirstImage returns the first image URL for the query, or "" when no usable
// image exists. A non-OK status, an empty result set or a link without an
// http scheme all count as "no image" rather than an error; only transport
// failures surface as errors.
func (c *Client) FirstImage(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("searchType", "image")
	params.Set("num", "1")

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Info("Image search returned non-OK status", "query", query, "status", resp.Status, "body", string(body))
		return "", nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		slog.Info("Image search returned unparseable body", "query", query, "error", err)
		return "", nil
	}

	if len(searchResp.Items) == 0 {
		slog.Info("No image found", "query", query)
		return "", nil
	}

	link := searchResp.Items[0].Link
	if !strings.HasPrefix(link, "http") {
		slog.Info("Skipping image with invalid URL", "query", query, "link", link)
		return "", nil
	}

	return link, nil
}
