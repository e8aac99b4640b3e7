// Package xretry 提供有界重试执行器及其策略接口。
//
// # 设计理念
//
// xretry 采用接口驱动设计：
//   - RetryPolicy：最大尝试次数 + 每次失败后是否继续
//   - BackoffPolicy：两次尝试之间的等待时间
//
// 底层使用 [avast/retry-go/v5] 实现重试循环。
//
// # 错误分类
//
// 调用方通过包装返回的错误表达分类结果：
//   - NewPermanentError(err)：终止性失败，立即停止
//   - NewTemporaryError(err)：可重试失败
//   - 未包装的错误默认视为可重试
//
// # 使用方式
//
//	r := xretry.NewRetryer(
//	    xretry.WithRetryPolicy(xretry.NewFixedRetry(3)),
//	    xretry.WithBackoffPolicy(xretry.NewNoBackoff()),
//	)
//	body, err := xretry.DoWithResult(ctx, r, func(ctx context.Context) ([]byte, error) {
//	    return fetch(ctx)
//	})
//
// [avast/retry-go/v5]: https://github.com/avast/retry-go
package xretry
