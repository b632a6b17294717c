package collector

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxBodyBytes     = 2 << 20 // 2MB，防止超大响应
	clientTimeout    = 15 * time.Second
)

// Collector 抽象一个热搜来源：返回一批原始热搜词。
// 失败返回 error；没有数据返回空切片，两种情况调度器都按零条处理。
type Collector interface {
	Name() string
	Trends() ([]string, error)
}

// httpGetBody 带 UA 和大小限制的 GET，多个采集器共用
func httpGetBody(url string) (string, error) {
	client := &http.Client{Timeout: clientTimeout}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// capTrends 截断到每个平台的上限
func capTrends(trends []string, max int) []string {
	if max > 0 && len(trends) > max {
		return trends[:max]
	}
	return trends
}
