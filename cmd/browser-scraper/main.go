package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

type trendsResponse struct {
	OK     bool     `json:"ok"`
	Trends []string `json:"trends,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func main() {
	// 创建浏览器执行器与顶层上下文，整个进程复用一个 headless 实例
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// 预热浏览器，避免首个请求耗时过长
	if err := chromedp.Run(browserCtx); err != nil {
		log.Printf("warn: warmup chromedp failed: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/trends", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		target := r.URL.Query().Get("url")
		if target == "" {
			writeJSON(w, http.StatusBadRequest, trendsResponse{OK: false, Error: "url is required"})
			return
		}

		// 每个请求用独立的超时上下文，复用同一个 browserCtx
		ctx, cancel := context.WithTimeout(browserCtx, 45*time.Second)
		defer cancel()

		var raw []string
		err := chromedp.Run(ctx,
			chromedp.Navigate(target),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Evaluate(trendsJS(), &raw),
		)
		if err != nil {
			log.Printf("trends error: %v (url=%s)", err, target)
			writeJSON(w, http.StatusOK, trendsResponse{OK: false, Error: err.Error()})
			return
		}

		trends := cleanTrends(raw)
		if len(trends) == 0 {
			writeJSON(w, http.StatusOK, trendsResponse{OK: false, Error: "no trends found"})
			return
		}

		writeJSON(w, http.StatusOK, trendsResponse{OK: true, Trends: trends})
	})

	addr := ":" + getEnv("PORT", "4000")
	log.Printf("browser-scraper listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// trendsJS 返回一段 JS，在渲染后的页面里提取热搜词列表。
// 优先找 trends24 风格的列表，找不到再退回常见的 trend 链接兜底。
func trendsJS() string {
	return `(function () {
  function collect(selector) {
    var nodes = Array.prototype.slice.call(document.querySelectorAll(selector));
    return nodes.map(function (n) { return (n.innerText || "").trim(); });
  }

  var selectors = [
    "ol.trend-card__list li a",
    "ol.trend-card__list li",
    "a.topic",
    ".trend-link",
    ".trend-item"
  ];

  for (var i = 0; i < selectors.length; i++) {
    var items = collect(selectors[i]).filter(function (t) { return t.length > 0; });
    if (items.length >= 3) {
      return items;
    }
  }

  // 兜底：带 /trend 路径的链接文本
  var links = Array.prototype.slice.call(document.querySelectorAll("a[href*='/trend']"));
  return links.map(function (n) { return (n.innerText || "").trim(); })
    .filter(function (t) { return t.length > 0; });
})();`
}

// cleanTrends 去掉空白和跨位置的重复词，保持页面顺序
func cleanTrends(raw []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
