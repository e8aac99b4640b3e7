package xbatch

import (
	"context"
	"time"
)

// Progress 接收进度，current 从 1 开始。
type Progress interface {
	Report(current, total int)
}

// NopProgress 丢弃进度
type NopProgress struct{}

func (NopProgress) Report(int, int) {}

// ProgressFunc 函数适配器
type ProgressFunc func(current, total int)

func (f ProgressFunc) Report(current, total int) { f(current, total) }

// Pacer 在两次网络查询之间等待
type Pacer interface {
	// Wait 等待 d，ctx 结束时提前返回 ctx 的错误。
	Wait(ctx context.Context, d time.Duration) error
}

// TimerPacer 基于 time.Timer 的 Pacer
type TimerPacer struct{}

func (TimerPacer) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
