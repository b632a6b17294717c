package category

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIResolver 走 OpenAI 兼容接口做分类，
// 配置 BaseURL 后同样适用于 Together、vLLM 等兼容服务。
type OpenAIResolver struct {
	client *openai.Client
	model  string
}

func NewOpenAIResolver(apiKey, model, baseURL string) *OpenAIResolver {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIResolver{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAIResolver) Name() string {
	return "openai"
}

func (o *OpenAIResolver) Resolve(ctx context.Context, topic, summary string) (string, bool, error) {
	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.3,
		MaxTokens:   50,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(topic, summary),
			},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", false, fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", false, nil
	}

	cat, ok := parseReply(resp.Choices[0].Message.Content)
	return cat, ok, nil
}
