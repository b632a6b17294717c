package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/niyoseris/roller/internal/collector"
	"github.com/niyoseris/roller/internal/processor"
	"github.com/robfig/cron/v3"
)

// TrendProcessor 处理单条热搜
type TrendProcessor interface {
	Process(ctx context.Context, trend string) (processor.Status, error)
}

// Stats 是对外可读的运行计数快照。
// 本周期的计数在每次开始采集时清零，累计值跨周期保留。
type Stats struct {
	State string `json:"state"` // idle / collecting / processing / waiting

	// 本周期
	Collected int `json:"collected"`
	Submitted int `json:"submitted"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`

	// 累计
	CyclesCompleted int       `json:"cyclesCompleted"`
	TotalSubmitted  int       `json:"totalSubmitted"`
	LastCycleTime   time.Time `json:"lastCycleTime"`
}

// Scheduler 驱动 采集 → 逐条处理 → 等待 的循环。
// 处理严格串行：一条热搜到 Done 再开始下一条，条间有固定延迟。
type Scheduler struct {
	collectors []collector.Collector
	proc       TrendProcessor
	delay      time.Duration // 条间延迟
	interval   time.Duration // 周期间隔
	clock      Clock

	mu    sync.RWMutex
	stats Stats
}

func New(collectors []collector.Collector, proc TrendProcessor, delay, interval time.Duration) *Scheduler {
	return &Scheduler{
		collectors: collectors,
		proc:       proc,
		delay:      delay,
		interval:   interval,
		clock:      realClock{},
		stats:      Stats{State: "idle"},
	}
}

// WithClock 注入时钟，测试用
func (s *Scheduler) WithClock(c Clock) *Scheduler {
	s.clock = c
	return s
}

// Snapshot 返回当前计数的拷贝，可与处理循环并发调用
func (s *Scheduler) Snapshot() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Run 一直循环执行周期，直到 ctx 取消或账本故障。
// 账本故障是唯一会让循环报错退出的异常。
func (s *Scheduler) Run(ctx context.Context) error {
	log.Printf("scheduler started: delay=%s interval=%s sources=%d", s.delay, s.interval, len(s.collectors))

	for {
		if err := s.RunOnce(ctx); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		log.Printf("waiting %s until next cycle...", s.interval)
		s.setState("waiting")
		s.clock.Sleep(ctx, s.interval)
		if ctx.Err() != nil {
			return nil
		}
	}
}

// RunOnce 执行一个完整周期：采集全部来源，逐条处理到 Done
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.beginCycle()

	trends := s.collectTrends()
	s.mu.Lock()
	s.stats.Collected = len(trends)
	s.stats.State = "processing"
	s.mu.Unlock()

	if len(trends) == 0 {
		log.Println("no trends collected in this cycle")
	}

	for i, trend := range trends {
		// 停机信号只在条与条之间生效，不会打断进行中的提交
		if ctx.Err() != nil {
			log.Println("shutdown requested, stopping between trends")
			return nil
		}

		log.Printf("[%d/%d] %s", i+1, len(trends), trend)
		status, err := s.proc.Process(ctx, trend)
		if err != nil {
			// 账本写不进去就不能再提交，否则重启后必然重复
			log.Printf("fatal: %v", err)
			return err
		}
		s.count(status)

		if i < len(trends)-1 {
			s.clock.Sleep(ctx, s.delay)
		}
	}

	s.finishCycle()
	return nil
}

// collectTrends 并发调用各来源，单个失败只记日志不影响其他来源。
// 合并按来源注册顺序进行，跨来源的重复词只保留第一次出现。
func (s *Scheduler) collectTrends() []string {
	log.Println("collecting trends from all sources...")

	results := make([][]string, len(s.collectors))
	var wg sync.WaitGroup
	for i, c := range s.collectors {
		wg.Add(1)
		go func(i int, c collector.Collector) {
			defer wg.Done()
			defer func() {
				// 采集器崩溃只影响该来源
				if r := recover(); r != nil {
					log.Printf("collect %s panic: %v", c.Name(), r)
				}
			}()

			trends, err := c.Trends()
			if err != nil {
				log.Printf("collect %s error: %v", c.Name(), err)
				return
			}
			log.Printf("collect %s got %d trends", c.Name(), len(trends))
			results[i] = trends
		}(i, c)
	}
	wg.Wait()

	seen := make(map[string]bool)
	var merged []string
	for _, trends := range results {
		for _, t := range trends {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			merged = append(merged, t)
		}
	}

	log.Printf("total unique trends collected: %d", len(merged))
	return merged
}

// StartCron 用 cron 表达式触发周期，替代固定间隔循环。
// SkipIfStillRunning 保证上个周期没跑完时不会并发开新周期。
func (s *Scheduler) StartCron(ctx context.Context, spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(spec, func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Printf("fatal: stopping cron scheduler: %v", err)
			c.Stop()
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func (s *Scheduler) setState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.State = state
}

func (s *Scheduler) beginCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.State = "collecting"
	s.stats.Collected = 0
	s.stats.Submitted = 0
	s.stats.Skipped = 0
	s.stats.Failed = 0
}

func (s *Scheduler) count(status processor.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch status {
	case processor.StatusSubmitted:
		s.stats.Submitted++
		s.stats.TotalSubmitted++
	case processor.StatusSkipped:
		s.stats.Skipped++
	case processor.StatusFailed:
		s.stats.Failed++
	}
}

func (s *Scheduler) finishCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.CyclesCompleted++
	s.stats.LastCycleTime = s.clock.Now()
	s.stats.State = "idle"
	log.Printf("cycle completed: collected=%d submitted=%d skipped=%d failed=%d",
		s.stats.Collected, s.stats.Submitted, s.stats.Skipped, s.stats.Failed)
}
