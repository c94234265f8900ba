package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/rpggio/labcoats/internal/domain/activity"
)

type generateContentBody struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature      float64 `json:"temperature"`
		MaxOutputTokens  int     `json:"maxOutputTokens"`
		ResponseMIMEType string  `json:"responseMimeType"`
	} `json:"generationConfig"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(context.Background(), "g-key", option.WithEndpoint(server.URL))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func writeCandidate(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			},
		}},
	})
}

func TestGenerate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-pro:generateContent"), r.URL.Path)

		var body generateContentBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.InDelta(t, 0.8, body.GenerationConfig.Temperature, 1e-6)
		require.Equal(t, 1000, body.GenerationConfig.MaxOutputTokens)
		require.Equal(t, "application/json", body.GenerationConfig.ResponseMIMEType)
		require.Len(t, body.Contents, 1)
		require.Equal(t, "make something", body.Contents[0].Parts[0].Text)

		writeCandidate(w, `{"name":"Bottle Boat"}`)
	})

	text, err := c.Generate(context.Background(), activity.GenerateRequest{
		Model:       "gemini-2.5-pro",
		Temperature: 0.8,
		MaxTokens:   1000,
		Prompt:      "make something",
	})
	require.NoError(t, err)
	require.Equal(t, `{"name":"Bottle Boat"}`, text)
}

func TestGenerate_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"model not found","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := c.Generate(context.Background(), activity.GenerateRequest{Model: "gpt-4o", Prompt: "p"})
	require.ErrorIs(t, err, activity.ErrUpstreamUnavailable)
}

func TestGenerate_EmptyResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeCandidate(w, "  ")
	})

	_, err := c.Generate(context.Background(), activity.GenerateRequest{Model: "gemini-2.5-pro", Prompt: "p"})
	require.ErrorIs(t, err, activity.ErrMalformedResponse)
	require.NotErrorIs(t, err, activity.ErrUpstreamUnavailable)
}

func TestGetText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"name":`), genai.Text(`"x"}`)}},
		}},
	}
	require.Equal(t, `{"name":"x"}`, getText(resp))
	require.Equal(t, "", getText(nil))
	require.Equal(t, "", getText(&genai.GenerateContentResponse{}))
}

func TestNew_MissingKey(t *testing.T) {
	_, err := New(context.Background(), " ")
	require.ErrorIs(t, err, activity.ErrUpstreamUnavailable)
}
