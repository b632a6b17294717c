package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

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

// 只执行一个完整周期后退出：适合手动触发和 crontab 部署
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	collectors := []collector.Collector{
		&collector.Trends24Collector{MaxItems: cfg.MaxTrendsPerPlatform},
		&collector.GetDayTrendsCollector{MaxItems: cfg.MaxTrendsPerPlatform},
		&collector.RedditCollector{MaxItems: cfg.MaxTrendsPerPlatform},
		&collector.GoogleTrendsCollector{MaxItems: cfg.MaxTrendsPerPlatform},
	}

	sched := scheduler.New(collectors, proc, cfg.RequestDelay, cfg.CycleInterval)
	if err := sched.RunOnce(ctx); err != nil {
		log.Fatalf("cycle failed: %v", err)
	}
}
