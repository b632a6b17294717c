package collector

import (
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

const trends24URL = "https://trends24.in/united-states/"

// Trends24Collector 抓取 trends24.in 的美区 X (Twitter) 热搜词。
// 先用 colly 解析，拿不到再退回正则提取。
type Trends24Collector struct {
	MaxItems int
}

func (c *Trends24Collector) Name() string {
	return "trends24"
}

func (c *Trends24Collector) Trends() ([]string, error) {
	log.Println("collect X (Twitter) trends from trends24...")

	list := c.fetchWithColly()
	if len(list) == 0 {
		list = c.fetchWithRegexp()
	}
	if len(list) == 0 {
		log.Printf("trends24: got 0 trends")
		return nil, nil
	}
	return capTrends(list, c.MaxItems), nil
}

func (c *Trends24Collector) fetchWithColly() []string {
	cc := colly.NewCollector(
		colly.AllowedDomains("trends24.in", "www.trends24.in"),
		colly.UserAgent(defaultUserAgent),
	)
	cc.SetRequestTimeout(15 * time.Second)

	var list []string
	seen := make(map[string]bool)

	cc.OnHTML("ol.trend-card__list li", func(e *colly.HTMLElement) {
		trend := cleanTrendText(e.DOM.Text())
		if trend == "" || seen[trend] {
			return
		}
		seen[trend] = true
		list = append(list, trend)
	})

	if err := cc.Visit(trends24URL); err != nil {
		log.Printf("trends24 (colly): %v", err)
		return nil
	}
	return list
}

// trendLinkPattern 从 HTML 里提取 twitter.com/search 链接的标题（正则兜底）
var trendLinkPattern = regexp.MustCompile(`<a\s+[^>]*href="https://(?:twitter|x)\.com/search\?q=([^"&]+)[^"]*"[^>]*>([^<]+)</a>`)

func (c *Trends24Collector) fetchWithRegexp() []string {
	body, err := httpGetBody(trends24URL)
	if err != nil {
		log.Printf("trends24 (http): %v", err)
		return nil
	}
	return parseTrendLinks(body)
}

func parseTrendLinks(html string) []string {
	seen := make(map[string]bool)
	var list []string

	for _, m := range trendLinkPattern.FindAllStringSubmatch(html, -1) {
		title := cleanTrendText(m[2])
		if title == "" {
			// 只有链接没有文本时，用 q= 参数解码出话题名
			if dec, err := url.QueryUnescape(m[1]); err == nil {
				title = cleanTrendText(dec)
			}
		}
		if title == "" || len(title) > 200 || seen[title] {
			continue
		}
		seen[title] = true
		list = append(list, title)
	}
	return list
}

// cleanTrendText 去掉首尾空白和链接文本，热搜词本身保持原样
func cleanTrendText(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "http") {
		return ""
	}
	return s
}
