package collector

import (
	"log"
	"time"

	"github.com/gocolly/colly/v2"
)

const getDayTrendsURL = "https://getdaytrends.com/united-states/"

// GetDayTrendsCollector 抓取 getdaytrends.com 的美区热搜，作为 trends24 的备源
type GetDayTrendsCollector struct {
	MaxItems int
}

func (c *GetDayTrendsCollector) Name() string {
	return "getdaytrends"
}

func (c *GetDayTrendsCollector) Trends() ([]string, error) {
	log.Println("collect X (Twitter) trends from getdaytrends...")

	cc := colly.NewCollector(
		colly.AllowedDomains("getdaytrends.com", "www.getdaytrends.com"),
		colly.UserAgent(defaultUserAgent),
	)
	cc.SetRequestTimeout(15 * time.Second)

	var list []string
	seen := make(map[string]bool)

	cc.OnHTML("a.topic, .trend-link, .trend-item", func(e *colly.HTMLElement) {
		trend := cleanTrendText(e.DOM.Text())
		if trend == "" || seen[trend] {
			return
		}
		seen[trend] = true
		list = append(list, trend)
	})

	if err := cc.Visit(getDayTrendsURL); err != nil {
		log.Printf("getdaytrends: %v", err)
		return nil, err
	}

	if len(list) == 0 {
		log.Printf("getdaytrends: got 0 trends")
		return nil, nil
	}
	return capTrends(list, c.MaxItems), nil
}
