package xretry

import (
	"context"
	"time"
)

// RetryPolicy 定义重试策略接口。
//
// 通过 Retryer 使用时：
//   - MaxAttempts() 设置尝试次数上限（包含首次尝试）
//   - ShouldRetry() 在每次失败后被调用，可提前终止
type RetryPolicy interface {
	// MaxAttempts 返回最大尝试次数（包含首次尝试），最小为 1。
	MaxAttempts() int

	// ShouldRetry 判断失败后是否继续。
	// attempt 为已失败的次数（从 1 开始）。
	ShouldRetry(ctx context.Context, attempt int, err error) bool
}

// BackoffPolicy 定义退避策略接口。
type BackoffPolicy interface {
	// NextDelay 返回第 attempt 次失败后的等待时间（attempt 从 1 开始）。
	NextDelay(attempt int) time.Duration
}

// Executor 重试执行器接口，便于调用方替换或 mock。
type Executor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
