package processor

import (
	"context"
	"log"

	"github.com/niyoseris/roller/internal/normalizer"
	"github.com/niyoseris/roller/internal/rollwiki"
	"github.com/niyoseris/roller/internal/storage"
)

// Status 是一条热搜处理完后的结局
type Status string

const (
	// StatusSubmitted 远端已持有文章（新提交或本来就有），账本已记录
	StatusSubmitted Status = "submitted"
	// StatusSkipped 本地账本已有记录，未发起远端调用
	StatusSkipped Status = "skipped"
	// StatusFailed 词条不存在或远端临时故障，账本不动
	StatusFailed Status = "failed"
)

// Submitter 提交一篇文章到下游
type Submitter interface {
	Submit(ctx context.Context, articleURL, category string) (rollwiki.Outcome, error)
}

// SummaryFetcher 取词条摘要给分类当上下文，best effort
type SummaryFetcher interface {
	Summary(ctx context.Context, title string) (string, error)
}

// Categorizer 永远给出固定集合内的一个分类
type Categorizer interface {
	Resolve(ctx context.Context, topic, summary string) string
}

// Archiver 把提交结果落历史库，可选
type Archiver interface {
	SaveSubmission(trend, url, category, outcome string) error
}

// Processor 按固定顺序处理单条热搜：
// 归一化 → 取摘要 → 分类 → 查账本 → 提交 → 记账本。
// 除账本故障外的所有错误都在这里消化，不向上冒泡。
type Processor struct {
	normalizer *normalizer.Normalizer
	categories Categorizer
	wiki       SummaryFetcher
	client     Submitter
	ledger     storage.Ledger
	archive    Archiver
}

func New(n *normalizer.Normalizer, c Categorizer, w SummaryFetcher, s Submitter, l storage.Ledger, a Archiver) *Processor {
	return &Processor{
		normalizer: n,
		categories: c,
		wiki:       w,
		client:     s,
		ledger:     l,
		archive:    a,
	}
}

// Process 处理一条热搜。返回的 error 只可能是账本 I/O 故障，
// 调用方应把它当成致命错误停止后续提交。
func (p *Processor) Process(ctx context.Context, trend string) (Status, error) {
	ref := p.normalizer.Normalize(trend)
	log.Printf("processing trend %q -> %s", trend, ref.URL)

	// 本地幂等短路：账本里有就不再打远端
	if p.ledger.Contains(ref.URL) {
		log.Printf("  already processed locally, skipping")
		return StatusSkipped, nil
	}

	// 摘要只是分类的辅助信息，取不到就空着继续
	summary := ""
	if p.wiki != nil {
		var err error
		summary, err = p.wiki.Summary(ctx, ref.Title())
		if err != nil {
			log.Printf("  fetch summary: %v", err)
			summary = ""
		}
	}

	cat := p.categories.Resolve(ctx, trend, summary)
	log.Printf("  category: %s", cat)

	outcome, err := p.client.Submit(ctx, ref.URL, cat)
	if err != nil {
		log.Printf("  submit: %v", err)
	}
	log.Printf("  outcome: %s", outcome)

	if p.archive != nil {
		if aerr := p.archive.SaveSubmission(trend, ref.URL, cat, outcome.String()); aerr != nil {
			log.Printf("  archive submission: %v", aerr)
		}
	}

	// 409 等同 200：对端已持有文章，后续再试没有意义
	if outcome.Durable() {
		if lerr := p.ledger.Record(ref.URL); lerr != nil {
			return StatusFailed, lerr
		}
		return StatusSubmitted, nil
	}

	// NotFound 与 TransientError 都不记账本；
	// 同一热搜下个周期再出现会重试，词条仍不存在就再次失败
	return StatusFailed, nil
}
