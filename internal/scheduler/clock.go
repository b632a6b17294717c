package scheduler

import (
	"context"
	"time"
)

// Clock 抽象时间源，测试里可以注入假时钟跳过真实等待
type Clock interface {
	Now() time.Time
	// Sleep 等待 d，ctx 取消时提前返回
	Sleep(ctx context.Context, d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
