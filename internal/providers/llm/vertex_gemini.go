package llm

import (
	"context"
	"fmt"

	vertexgenai "cloud.google.com/go/vertexai/genai"
)

type VertexGemini struct {
	client       *vertexgenai.Client
	defaultModel string
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &VertexGemini{client: c, defaultModel: modelName}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

func (v *VertexGemini) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	name := opts.Model
	if name == "" {
		name = v.defaultModel
	}

	m := v.client.GenerativeModel(name)
	temp := float32(opts.Temperature)
	topP := float32(opts.TopP)
	m.GenerationConfig.Temperature = &temp
	m.GenerationConfig.TopP = &topP

	resp, err := m.GenerateContent(ctx, vertexgenai.Text(prompt))
	if err != nil {
		return "", err
	}

	var out string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok {
				out += string(t)
			}
		}
	}
	if out == "" && len(resp.Candidates) == 0 {
		return "", fmt.Errorf("vertex returned no candidates")
	}
	return out, nil
}
