package rollwiki

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const maxResponseBytes = 64 * 1024

// Outcome 是一次提交的归类结果
type Outcome int

const (
	// OutcomeNewSuccess 文章提交成功（HTTP 200）
	OutcomeNewSuccess Outcome = iota
	// OutcomeAlreadyExists 对端已有这篇文章（HTTP 409），视同成功
	OutcomeAlreadyExists
	// OutcomeNotFound 维基词条不存在（HTTP 404），本条放弃
	OutcomeNotFound
	// OutcomeTransientError 网络或服务端临时故障，下个周期可重试
	OutcomeTransientError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNewSuccess:
		return "new_success"
	case OutcomeAlreadyExists:
		return "already_exists"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "transient_error"
	}
}

// Durable 表示对端已持久持有该文章，本地应记入去重账本
func (o Outcome) Durable() bool {
	return o == OutcomeNewSuccess || o == OutcomeAlreadyExists
}

// Client 调 roll.wiki 的 summarize 接口提交 (词条地址, 分类)
type Client struct {
	apiURL string
	secret string
	client *http.Client
}

func NewClient(apiURL, secret string) *Client {
	return &Client{
		apiURL: apiURL,
		secret: secret,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit 提交一篇文章。网络错误归为 TransientError 并附带原因。
func (c *Client) Submit(ctx context.Context, articleURL, category string) (Outcome, error) {
	params := url.Values{
		"url":      {articleURL},
		"save":     {"true"},
		"category": {category},
		"secret":   {c.secret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return OutcomeTransientError, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return OutcomeTransientError, fmt.Errorf("rollwiki: submit: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	switch resp.StatusCode {
	case http.StatusOK:
		return OutcomeNewSuccess, nil
	case http.StatusConflict:
		return OutcomeAlreadyExists, nil
	case http.StatusNotFound:
		return OutcomeNotFound, nil
	default:
		log.Printf("rollwiki: submit %s status=%d body=%s", articleURL, resp.StatusCode, snippet(body, 200))
		return OutcomeTransientError, fmt.Errorf("rollwiki: unexpected status %d", resp.StatusCode)
	}
}

func snippet(b []byte, limit int) string {
	if len(b) > limit {
		b = b[:limit]
	}
	return string(b)
}
