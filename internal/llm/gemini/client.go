package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/rpggio/labcoats/internal/domain/activity"
)

// Client generates text with a Gemini model.
type Client struct {
	client *genai.Client
}

// New connects to the Gemini API with an API key. Extra options (endpoint, HTTP client) are passed through.
func New(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: api key required: %w", activity.ErrUpstreamUnavailable)
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return &Client{client: client}, nil
}

// Generate runs one content generation call and returns the concatenated text parts.
func (c *Client) Generate(ctx context.Context, req activity.GenerateRequest) (string, error) {
	model := c.client.GenerativeModel(req.Model)
	model.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %w", activity.ErrUpstreamUnavailable, err)
	}

	text := getText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: empty response: %w", activity.ErrMalformedResponse)
	}
	return text, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

func getText(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}
