// Package xrun 提供基于 errgroup + context 的一次性任务运行与信号处理。
//
// # 概述
//
// [Run] 在 errgroup 中运行一个任务，同时监听终止信号（默认 SIGINT、SIGTERM、
// SIGHUP、SIGQUIT）。收到信号时取消任务的 context，Run 返回 [*SignalError]；
// 任务结束后信号监听随之释放。
//
//	err := xrun.Run(context.Background(), func(ctx context.Context) error {
//	    return process(ctx)
//	}, xrun.WithLogger(logger))
//	if errors.Is(err, xrun.ErrSignal) {
//	    // 被信号中断
//	}
//
// 需要同时协调多个 goroutine 时使用 [Group]。
//
// # 错误语义
//
// 任务的错误原样返回。因信号取消时，任务返回 nil 或 context.Canceled
// 都视为被信号中断，返回 SignalError。
package xrun
