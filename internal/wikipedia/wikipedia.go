package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	summaryMaxChars  = 500
	maxResponseBytes = 2 << 20 // 2MB
	userAgent        = "roller/1.0 (trend collector)"
)

// Client 通过 MediaWiki API 拉取词条摘要，供分类做上下文。
// 摘要是 best effort：取不到不算失败，调用方用空摘要继续。
type Client struct {
	apiURL string
	client *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		apiURL: strings.TrimRight(baseURL, "/") + "/w/api.php",
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type queryResponse struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Summary 按标题取词条首段纯文本，最长 500 字符。
// 词条不存在时返回空串和 nil error。
func (c *Client) Summary(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"titles":      {title},
		"format":      {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia: query extracts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia: unexpected status %d", resp.StatusCode)
	}

	var out queryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return "", fmt.Errorf("wikipedia: decode response: %w", err)
	}

	// pages 以 pageid 为 key，"-1" 表示词条不存在
	for id, page := range out.Query.Pages {
		if id == "-1" || page.Extract == "" {
			continue
		}
		extract := page.Extract
		if len(extract) > summaryMaxChars {
			extract = extract[:summaryMaxChars]
		}
		return extract, nil
	}
	return "", nil
}
