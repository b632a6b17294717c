package category

import (
	"context"
	"log"
	"time"
)

// Resolver 是一种分类策略：给出分类，或者表示“没有判断”。
// err 仅用于服务不可用等传输层问题；拿不准应返回 ok=false 而不是错误。
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, topic, summary string) (category string, ok bool, err error)
}

// Chain 按顺序尝试多个策略，第一个给出明确分类的胜出；
// 全部没有判断时使用兜底分类。每个策略只试一次，不做重试。
type Chain struct {
	resolvers []Resolver
	fallback  string
	timeout   time.Duration
}

func NewChain(fallback string, timeout time.Duration, resolvers ...Resolver) *Chain {
	if !IsValid(fallback) {
		fallback = "Culture"
	}
	return &Chain{
		resolvers: resolvers,
		fallback:  fallback,
		timeout:   timeout,
	}
}

// Resolve 永远返回固定集合内的一个分类，不会失败
func (c *Chain) Resolve(ctx context.Context, topic, summary string) string {
	for _, r := range c.resolvers {
		rctx := ctx
		cancel := func() {}
		if c.timeout > 0 {
			rctx, cancel = context.WithTimeout(ctx, c.timeout)
		}
		cat, ok, err := r.Resolve(rctx, topic, summary)
		cancel()
		if err != nil {
			log.Printf("category: %s resolver unavailable: %v", r.Name(), err)
			continue
		}
		if !ok {
			continue
		}
		if !IsValid(cat) {
			log.Printf("category: %s returned unknown category %q, ignoring", r.Name(), cat)
			continue
		}
		return cat
	}
	return c.fallback
}

// Fallback 返回兜底分类
func (c *Chain) Fallback() string {
	return c.fallback
}
