package category

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// NewChainFromConfig 按配置组装分类链：LLM（可选）→ 关键词表 → 兜底分类。
// provider 为空表示不用 LLM，只走本地关键词兜底。
func NewChainFromConfig(ctx context.Context, provider, model, apiKey, baseURL, fallback string, timeout time.Duration) (*Chain, error) {
	resolvers := make([]Resolver, 0, 2)

	switch strings.ToLower(provider) {
	case "":
		// 纯本地模式
	case "ollama":
		resolvers = append(resolvers, NewOllamaResolver(baseURL, model))
	case "openai":
		resolvers = append(resolvers, NewOpenAIResolver(apiKey, model, baseURL))
	case "gemini":
		g, err := NewGeminiResolver(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		resolvers = append(resolvers, g)
	default:
		return nil, fmt.Errorf("category: unsupported llm provider %q", provider)
	}

	resolvers = append(resolvers, &KeywordResolver{})
	return NewChain(fallback, timeout, resolvers...), nil
}
