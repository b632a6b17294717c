package collector

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractKeywordsPicksProperNouns(t *testing.T) {
	titles := []string{
		`Lakers beat the Celtics in overtime thriller`,
		`Lakers fans celebrate downtown`,
		`NASA announces new moon mission "Artemis Next"`,
		`the quick brown fox`, // 全小写，不应产生关键词
	}

	got := extractKeywords(titles)
	if len(got) == 0 {
		t.Fatalf("expected keywords, got none")
	}

	// Lakers 出现两次，应排最前
	if got[0] != "Lakers" {
		t.Fatalf("got[0] = %q, want Lakers (got %v)", got[0], got)
	}

	want := map[string]bool{"Lakers": false, "NASA": false, "Artemis Next": false}
	for _, kw := range got {
		if _, ok := want[kw]; ok {
			want[kw] = true
		}
		if stopwords[kw] {
			t.Fatalf("stopword %q leaked into keywords", kw)
		}
	}
	for kw, found := range want {
		if !found {
			t.Fatalf("keyword %q missing from %v", kw, got)
		}
	}
}

func TestExtractKeywordsSkipsShortAndStopwords(t *testing.T) {
	got := extractKeywords([]string{"The Cat And Dog"})
	for _, kw := range got {
		if len(kw) <= 3 {
			t.Fatalf("short keyword %q should be skipped", kw)
		}
	}
}

func TestParseTrendLinksRegexpFallback(t *testing.T) {
	html := `
<ul>
<a class="trend-link" href="https://twitter.com/search?q=%23NBA">#NBA</a>
<a href="https://x.com/search?q=Mike+Tirico&src=trend">Mike Tirico</a>
<a href="https://twitter.com/search?q=%23NBA">#NBA</a>
</ul>`

	got := parseTrendLinks(html)
	if len(got) != 2 {
		t.Fatalf("parseTrendLinks = %v, want 2 unique trends", got)
	}
	if got[0] != "#NBA" || got[1] != "Mike Tirico" {
		t.Fatalf("unexpected trends: %v", got)
	}
}

func TestParseTrendsRSS(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Daily Search Trends</title>
<item><title>NBA</title></item>
<item><title>Mike Tirico</title></item>
<item><title>NBA</title></item>
</channel></rss>`

	got, err := parseTrendsRSS(rss)
	if err != nil {
		t.Fatalf("parseTrendsRSS error: %v", err)
	}
	if len(got) != 2 || got[0] != "NBA" || got[1] != "Mike Tirico" {
		t.Fatalf("unexpected trends: %v", got)
	}
}

func TestBrowserCollectorDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trends" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("url") == "" {
			t.Fatalf("missing url parameter")
		}
		fmt.Fprint(w, `{"ok":true,"trends":["NBA","Shai34K"]}`)
	}))
	defer srv.Close()

	c := &BrowserCollector{Endpoint: srv.URL, TargetURL: "https://trends24.in/united-states/"}
	got, err := c.Trends()
	if err != nil {
		t.Fatalf("Trends error: %v", err)
	}
	if len(got) != 2 || got[0] != "NBA" {
		t.Fatalf("unexpected trends: %v", got)
	}
}

func TestBrowserCollectorScraperError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false,"error":"timeout"}`)
	}))
	defer srv.Close()

	c := &BrowserCollector{Endpoint: srv.URL, TargetURL: "https://example.com"}
	if _, err := c.Trends(); err == nil {
		t.Fatalf("expected error from scraper failure")
	}
}

func TestCapTrends(t *testing.T) {
	in := []string{"a", "b", "c"}
	if got := capTrends(in, 2); len(got) != 2 {
		t.Fatalf("capTrends = %v, want 2 items", got)
	}
	if got := capTrends(in, 0); len(got) != 3 {
		t.Fatalf("capTrends with 0 max should keep all, got %v", got)
	}
}
