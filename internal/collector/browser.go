package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// BrowserCollector 调用独立的 browser-scraper 服务抓取需要跑 JS 的热搜页。
// 服务端用 headless chrome 渲染页面，见 cmd/browser-scraper。
type BrowserCollector struct {
	// Endpoint 形如 http://localhost:9222，为空表示未启用
	Endpoint string
	// TargetURL 要渲染的热搜页面
	TargetURL string
	MaxItems  int
}

func (c *BrowserCollector) Name() string {
	return "browser"
}

type browserTrendsResponse struct {
	OK     bool     `json:"ok"`
	Trends []string `json:"trends,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func (c *BrowserCollector) Trends() ([]string, error) {
	log.Printf("collect trends via browser-scraper (%s)...", c.TargetURL)

	q := url.Values{"url": {c.TargetURL}}
	reqURL := c.Endpoint + "/trends?" + q.Encode()

	client := &http.Client{Timeout: 60 * time.Second} // 渲染页面比普通抓取慢得多
	resp, err := client.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("browser: call scraper: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("browser: scraper status %d", resp.StatusCode)
	}

	var out browserTrendsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("browser: decode response: %w", err)
	}
	if !out.OK {
		return nil, fmt.Errorf("browser: scraper error: %s", out.Error)
	}

	return capTrends(out.Trends, c.MaxItems), nil
}
