package category

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiResolver 用 Google Gemini 做分类
type GeminiResolver struct {
	client *genai.Client
	model  string
}

func NewGeminiResolver(ctx context.Context, apiKey, model string) (*GeminiResolver, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiResolver{client: client, model: model}, nil
}

func (g *GeminiResolver) Name() string {
	return "gemini"
}

func (g *GeminiResolver) Resolve(ctx context.Context, topic, summary string) (string, bool, error) {
	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(topic, summary)))
	if err != nil {
		return "", false, fmt.Errorf("gemini: generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", false, nil
	}

	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", false, nil
	}

	cat, valid := parseReply(string(txt))
	return cat, valid, nil
}

func (g *GeminiResolver) Close() error {
	return g.client.Close()
}
