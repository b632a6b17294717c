package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"sort"
	"strings"
)

const redditHotURL = "https://www.reddit.com/r/all/hot/.json?limit=50"

// RedditCollector 从 r/all 热帖标题里提取热门关键词。
// Reddit 没有直接的趋势接口，这里取标题中的专有名词近似
type RedditCollector struct {
	MaxItems int
}

func (c *RedditCollector) Name() string {
	return "reddit"
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title string `json:"title"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *RedditCollector) Trends() ([]string, error) {
	log.Println("collect trending keywords from Reddit...")

	client := &http.Client{Timeout: clientTimeout}
	req, err := http.NewRequest(http.MethodGet, redditHotURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "roller/2.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit: fetch hot posts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit: unexpected status %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&listing); err != nil {
		return nil, fmt.Errorf("reddit: decode listing: %w", err)
	}

	titles := make([]string, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		if t := strings.TrimSpace(child.Data.Title); t != "" {
			titles = append(titles, t)
		}
	}

	trends := extractKeywords(titles)
	if len(trends) == 0 {
		log.Printf("reddit: no keywords extracted")
		return nil, nil
	}
	return capTrends(trends, c.MaxItems), nil
}

// 常见虚词，提取关键词时跳过
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "be": true, "been": true, "has": true, "have": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "can": true,
	"this": true, "that": true, "these": true, "those": true, "my": true,
	"your": true, "his": true, "her": true, "its": true, "our": true,
	"their": true, "what": true, "which": true, "who": true, "when": true,
	"where": true, "why": true, "how": true, "just": true, "so": true,
	"than": true, "more": true, "about": true, "after": true, "all": true,
	"also": true, "into": true, "out": true, "up": true, "down": true,
}

var (
	capitalizedPattern = regexp.MustCompile(`\b[A-Z][a-zA-Z]+\b`)
	quotedPattern      = regexp.MustCompile(`"([^"]+)"`)
	allCapsPattern     = regexp.MustCompile(`\b[A-Z]{2,}\b`)
)

// extractKeywords 从标题里抽大写开头的词、引号短语与全大写词，按出现频次排序
func extractKeywords(titles []string) []string {
	counts := make(map[string]int)
	order := make(map[string]int) // 并列频次时按首次出现的顺序稳定排序

	add := func(kw string) {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			return
		}
		if _, ok := counts[kw]; !ok {
			order[kw] = len(order)
		}
		counts[kw]++
	}

	for _, title := range titles {
		for _, w := range capitalizedPattern.FindAllString(title, -1) {
			if len(w) > 3 && !stopwords[strings.ToLower(w)] {
				add(w)
			}
		}
		for _, m := range quotedPattern.FindAllStringSubmatch(title, -1) {
			add(m[1])
		}
		for _, w := range allCapsPattern.FindAllString(title, -1) {
			if len(w) > 2 {
				add(w)
			}
		}
	}

	keywords := make([]string, 0, len(counts))
	for kw := range counts {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return order[keywords[i]] < order[keywords[j]]
	})

	const maxKeywords = 30
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}
