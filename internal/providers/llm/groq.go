package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"

// Groq talks to Groq's OpenAI-compatible chat completions endpoint.
type Groq struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

func NewGroq(apiKey, url string, timeout time.Duration) *Groq {
	if url == "" {
		url = defaultGroqURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Groq{
		apiKey:     apiKey,
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (g *Groq) Close() error { return nil }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *Groq) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       opts.Model,
		Messages:    []chatMessage{{Role: "system", Content: prompt}},
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal groq request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create groq request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed reading groq response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("groq non-success status=%d body=%s", resp.StatusCode, truncate(string(body), 400))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse groq response: %s", truncate(string(body), 400))
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
