package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/niyoseris/roller/internal/api"
	"github.com/niyoseris/roller/internal/category"
	"github.com/niyoseris/roller/internal/collector"
	"github.com/niyoseris/roller/internal/config"
	"github.com/niyoseris/roller/internal/normalizer"
	"github.com/niyoseris/roller/internal/processor"
	"github.com/niyoseris/roller/internal/rollwiki"
	"github.com/niyoseris/roller/internal/scheduler"
	"github.com/niyoseris/roller/internal/storage"
	"github.com/niyoseris/roller/internal/wikipedia"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 账本：配置了 Postgres 就落库，否则落本地 JSON 文件
	var (
		ledger storage.Ledger
		store  *storage.Store
	)
	if cfg.PostgresDSN != "" {
		var err error
		store, err = storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("init store failed: %v", err)
		}
		ledger, err = storage.NewDBLedger(store)
		if err != nil {
			log.Fatalf("init ledger failed: %v", err)
		}
	} else {
		var err error
		ledger, err = storage.NewFileLedger(cfg.ProcessedURLsDB)
		if err != nil {
			log.Fatalf("init ledger failed: %v", err)
		}
	}
	log.Printf("ledger loaded: %d processed urls", ledger.Count())

	chain, err := category.NewChainFromConfig(ctx,
		cfg.LLMProvider, cfg.LLMModel, cfg.LLMAPIKey, cfg.LLMBaseURL,
		cfg.FallbackCategory, cfg.CategoryTimeout)
	if err != nil {
		log.Fatalf("init category chain failed: %v", err)
	}

	var archiver processor.Archiver
	if store != nil {
		archiver = store
	}
	proc := processor.New(
		normalizer.New(cfg.WikipediaBaseURL),
		chain,
		wikipedia.NewClient(cfg.WikipediaBaseURL),
		rollwiki.NewClient(cfg.RollWikiAPI, cfg.RollWikiSecret),
		ledger,
		archiver,
	)

	sched := scheduler.New(buildCollectors(cfg), proc, cfg.RequestDelay, cfg.CycleInterval)

	// API
	r := gin.Default()
	apiServer := api.NewServer(sched, ledger, store)
	apiServer.RegisterRoutes(r)

	srv := &http.Server{Addr: ":" + cfg.AppPort, Handler: r}
	go func() {
		log.Printf("starting dashboard at %s ...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server exit: %v", err)
		}
	}()

	if cfg.CycleCronSpec != "" {
		c, err := sched.StartCron(ctx, cfg.CycleCronSpec)
		if err != nil {
			log.Fatalf("init cron failed: %v", err)
		}
		<-ctx.Done()
		<-c.Stop().Done()
	} else {
		if err := sched.Run(ctx); err != nil {
			log.Printf("scheduler stopped: %v", err)
			stop()
			shutdownServer(srv)
			log.Fatalf("exit: %v", err)
		}
	}

	log.Println("shutting down...")
	shutdownServer(srv)
}

func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}

// buildCollectors 注册全部热搜来源；browser-scraper 仅在配置了服务地址时启用
func buildCollectors(cfg *config.Config) []collector.Collector {
	max := cfg.MaxTrendsPerPlatform
	collectors := []collector.Collector{
		&collector.Trends24Collector{MaxItems: max},
		&collector.GetDayTrendsCollector{MaxItems: max},
		&collector.RedditCollector{MaxItems: max},
		&collector.GoogleTrendsCollector{MaxItems: max},
	}
	if cfg.BrowserScraperURL != "" {
		collectors = append(collectors, &collector.BrowserCollector{
			Endpoint:  cfg.BrowserScraperURL,
			TargetURL: "https://trends24.in/united-states/",
			MaxItems:  max,
		})
	}
	return collectors
}
