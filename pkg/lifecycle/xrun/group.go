package xrun

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"
)

// Group 基于 errgroup 的 goroutine 组，支持带原因的取消。
//
// 任一 goroutine 返回非 nil 错误时取消组内 context。
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	parent   context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建 Group，返回组内 context。ctx 为 nil 时使用 context.Background()。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)

	return &Group{
		eg:       eg,
		ctx:      egCtx,
		parent:   ctx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     options,
	}, egCtx
}

// Go 在组内启动 fn
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// Wait 等待所有 goroutine 结束。
//
// 组被 Cancel(cause) 取消且 goroutine 只返回 nil 或 context.Canceled 时返回 cause；
// 父 context 结束时返回其 cause。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()
	g.opts.logger.Debug(g.ctx, "group stopped", slog.String("group", g.opts.name))

	if err == nil || errors.Is(err, context.Canceled) {
		if cause := context.Cause(g.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
			return cause
		}
	}
	if err == nil && g.parent.Err() != nil {
		return context.Cause(g.parent)
	}
	return err
}

// Cancel 以 cause 取消组。cause 为 nil 时等同 context.Canceled。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回组内 context
func (g *Group) Context() context.Context {
	return g.ctx
}

// watchSignals 启动信号监听。收到信号时以 SignalError 取消组；
// 组 context 结束时退出且不返回错误。
func (g *Group) watchSignals() {
	if g.opts.noSignalHandler {
		return
	}
	signals := g.opts.signals
	if len(signals) == 0 {
		signals = DefaultSignals()
	}

	g.Go(func(ctx context.Context) error {
		testc := testSigChan(ctx)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, signals...)
		defer signal.Stop(sigCh)

		var sig os.Signal
		select {
		case sig = <-testc:
		case sig = <-sigCh:
		case <-ctx.Done():
			return nil
		}

		g.opts.logger.Info(ctx, "received signal",
			slog.String("group", g.opts.name),
			slog.String("signal", sig.String()))
		g.cancel(&SignalError{Signal: sig})
		return nil
	})
}

// Run 运行一次性任务并监听终止信号。
//
// 收到信号时取消 task 的 context 并返回 *SignalError；task 返回后监听随之释放。
// task 的错误原样返回。
func Run(ctx context.Context, task func(ctx context.Context) error, opts ...Option) error {
	if task == nil {
		return ErrNilFunc
	}
	g, _ := NewGroup(ctx, opts...)
	g.watchSignals()
	g.Go(func(ctx context.Context) error {
		// 监听在 ctx 结束时返回 nil，不会覆盖 task 的错误
		defer g.cancel(nil)
		return task(ctx)
	})
	return g.Wait()
}

type testSigChanKey struct{}

// testSigChan 从 context 中取测试注入的信号通道，未注入时返回 nil。
func testSigChan(ctx context.Context) <-chan os.Signal {
	c, ok := ctx.Value(testSigChanKey{}).(<-chan os.Signal)
	if !ok {
		return nil
	}
	return c
}

func withTestSigChan(ctx context.Context, c <-chan os.Signal) context.Context {
	return context.WithValue(ctx, testSigChanKey{}, c)
}
