package collector

import (
	"encoding/xml"
	"fmt"
	"log"
	"strings"
)

const googleTrendsRSSURL = "https://trends.google.com/trends/trendingsearches/daily/rss?geo=US"

// GoogleTrendsCollector 读 Google Trends 每日热搜的 RSS 源
type GoogleTrendsCollector struct {
	MaxItems int
}

func (c *GoogleTrendsCollector) Name() string {
	return "google_trends"
}

type trendsRSS struct {
	Channel struct {
		Items []struct {
			Title string `xml:"title"`
		} `xml:"item"`
	} `xml:"channel"`
}

func (c *GoogleTrendsCollector) Trends() ([]string, error) {
	log.Println("collect Google Trends daily searches...")

	body, err := httpGetBody(googleTrendsRSSURL)
	if err != nil {
		return nil, fmt.Errorf("google trends: fetch rss: %w", err)
	}

	trends, err := parseTrendsRSS(body)
	if err != nil {
		return nil, err
	}
	if len(trends) == 0 {
		log.Printf("google trends: got 0 trends")
		return nil, nil
	}
	return capTrends(trends, c.MaxItems), nil
}

func parseTrendsRSS(body string) ([]string, error) {
	var rss trendsRSS
	if err := xml.Unmarshal([]byte(body), &rss); err != nil {
		return nil, fmt.Errorf("google trends: parse rss: %w", err)
	}

	seen := make(map[string]bool)
	var trends []string
	for _, item := range rss.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		trends = append(trends, title)
	}
	return trends, nil
}
