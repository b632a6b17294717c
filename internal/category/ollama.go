package category

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	ollamaDefaultBaseURL  = "http://localhost:11434"
	ollamaMaxResponseSize = 1 << 20 // 1MB
	ollamaTagsTimeout     = 5 * time.Second
)

// OllamaResolver 走本地 Ollama 的 /api/generate 做分类。
// 未指定模型时自动选用 /api/tags 返回的第一个模型。
type OllamaResolver struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	model string
}

func NewOllamaResolver(baseURL, model string) *OllamaResolver {
	if baseURL == "" {
		baseURL = ollamaDefaultBaseURL
	}
	return &OllamaResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		model:   model,
	}
}

func (o *OllamaResolver) Name() string {
	return "ollama"
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

func (o *OllamaResolver) Resolve(ctx context.Context, topic, summary string) (string, bool, error) {
	model, err := o.pickModel(ctx)
	if err != nil {
		return "", false, err
	}

	payload := ollamaGenerateRequest{
		Model:  model,
		Prompt: buildPrompt(topic, summary),
		Stream: false,
		Options: map[string]any{
			"temperature": 0.3,
			"num_predict": 50,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", false, fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("ollama: generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("ollama: unexpected status %d", resp.StatusCode)
	}

	var out ollamaGenerateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, ollamaMaxResponseSize)).Decode(&out); err != nil {
		return "", false, fmt.Errorf("ollama: decode response: %w", err)
	}

	cat, ok := parseReply(out.Response)
	return cat, ok, nil
}

// pickModel 返回配置的模型；为空时查询一次 /api/tags 并缓存首个模型
func (o *OllamaResolver) pickModel(ctx context.Context) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.model != "" {
		return o.model, nil
	}

	tctx, cancel := context.WithTimeout(ctx, ollamaTagsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(tctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return "", err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: list models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: list models status %d", resp.StatusCode)
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, ollamaMaxResponseSize)).Decode(&tags); err != nil {
		return "", fmt.Errorf("ollama: decode models: %w", err)
	}
	if len(tags.Models) == 0 {
		return "", fmt.Errorf("ollama: no models installed")
	}

	o.model = tags.Models[0].Name
	log.Printf("category: auto-selected ollama model %s", o.model)
	return o.model, nil
}
