package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultWhisperURL = "https://api.groq.com/openai/v1/audio/transcriptions"

// ErrEmptyAudio marks a zero-byte source file.
var ErrEmptyAudio = errors.New("audio file is empty")

// GroqWhisper transcribes audio through Groq's OpenAI-compatible
// transcription endpoint.
type GroqWhisper struct {
	apiKey     string
	url        string
	model      string
	httpClient *http.Client
}

func NewGroqWhisper(apiKey, url, model string, timeout time.Duration) *GroqWhisper {
	if url == "" {
		url = defaultWhisperURL
	}
	if model == "" {
		model = "whisper-large-v3-turbo"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &GroqWhisper{
		apiKey:     apiKey,
		url:        url,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (g *GroqWhisper) Close() error { return nil }

func (g *GroqWhisper) Transcribe(ctx context.Context, audioPath string) (string, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return "", fmt.Errorf("audio file not readable: %w", err)
	}
	if info.Size() == 0 {
		return "", ErrEmptyAudio
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.WriteField("model", g.model); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create transcription request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed reading transcription response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("transcription non-success status=%d body=%s", resp.StatusCode, truncate(string(body), 400))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse transcription response: %s", truncate(string(body), 400))
	}

	text := strings.TrimSpace(parsed.Text)
	if text == "" {
		return "", fmt.Errorf("transcription returned empty result")
	}
	return text, nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
