package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// roll.wiki 提交接口
	RollWikiAPI    string
	RollWikiSecret string

	WikipediaBaseURL string

	// 调度：默认固定间隔循环；配置 CycleCronSpec 后改用 cron 触发
	RequestDelay  time.Duration
	CycleInterval time.Duration
	CycleCronSpec string

	FallbackCategory string
	CategoryTimeout  time.Duration
	LLMProvider      string
	LLMModel         string
	LLMAPIKey        string
	LLMBaseURL       string

	ProcessedURLsDB string
	PostgresDSN     string
	RedisAddr       string

	BrowserScraperURL    string
	MaxTrendsPerPlatform int
}

func Load() *Config {
	// .env 存在时加载；不存在也不报错，正式环境直接用环境变量
	_ = godotenv.Load()

	cfg := &Config{
		AppPort: getEnv("APP_PORT", "5001"),

		RollWikiAPI:    getEnv("ROLLWIKI_API", "https://roll.wiki/api/v1/summarize"),
		RollWikiSecret: getEnv("ROLLWIKI_SECRET", ""),

		WikipediaBaseURL: getEnv("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org"),

		RequestDelay:  getEnvAsSeconds("REQUEST_DELAY_SECONDS", 30*time.Second),
		CycleInterval: getEnvAsSeconds("CYCLE_INTERVAL_SECONDS", time.Hour),
		CycleCronSpec: getEnv("CYCLE_CRON_SPEC", ""),

		FallbackCategory: getEnv("FALLBACK_CATEGORY", "Culture"),
		CategoryTimeout:  getEnvAsSeconds("CATEGORY_TIMEOUT_SECONDS", 30*time.Second),
		LLMProvider:      getEnv("LLM_PROVIDER", ""),
		LLMModel:         getEnv("LLM_MODEL", ""),
		LLMAPIKey:        getEnv("LLM_API_KEY", ""),
		LLMBaseURL:       getEnv("LLM_BASE_URL", ""),

		ProcessedURLsDB: getEnv("PROCESSED_URLS_DB", "processed_urls.json"),
		PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),

		BrowserScraperURL:    getEnv("BROWSER_SCRAPER_URL", ""),
		MaxTrendsPerPlatform: getEnvAsInt("MAX_TRENDS_PER_PLATFORM", 20),
	}

	log.Printf("config loaded: port=%s delay=%s interval=%s cron=%q llm=%s",
		cfg.AppPort, cfg.RequestDelay, cfg.CycleInterval, cfg.CycleCronSpec, cfg.LLMProvider)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getEnvAsSeconds 按“秒数”读取时长配置，保持与旧版配置文件一致
func getEnvAsSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
