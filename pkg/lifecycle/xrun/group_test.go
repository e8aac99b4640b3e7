package xrun

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/macconv/pkg/observability/xlog"
)

func TestGroup_Empty(t *testing.T) {
	g, _ := NewGroup(context.Background())
	assert.NoError(t, g.Wait())
}

func TestGroup_ErrorCancelsOthers(t *testing.T) {
	var stopped atomic.Bool
	trigger := errors.New("trigger")

	g, ctx := NewGroup(context.Background())
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		stopped.Store(true)
		return ctx.Err()
	})
	g.Go(func(context.Context) error { return trigger })

	assert.ErrorIs(t, g.Wait(), trigger)
	assert.True(t, stopped.Load())
	assert.Error(t, ctx.Err())
}

func TestGroup_CancelWithCause(t *testing.T) {
	cause := errors.New("shutdown requested")

	g, _ := NewGroup(context.Background())
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	g.Cancel(cause)

	assert.ErrorIs(t, g.Wait(), cause)
}

func TestGroup_CancelWithoutCause(t *testing.T) {
	g, _ := NewGroup(context.Background())
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	g.Cancel(nil)

	assert.NoError(t, g.Wait())
}

func TestGroup_ParentCanceled(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	g, _ := NewGroup(parent)
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	cancel()

	assert.ErrorIs(t, g.Wait(), context.Canceled)
}

func TestGroup_NilFunc(t *testing.T) {
	g, _ := NewGroup(context.Background())
	g.Go(nil)
	assert.ErrorIs(t, g.Wait(), ErrNilFunc)
}

func TestGroup_NilContext(t *testing.T) {
	//nolint:staticcheck // nil context 按 Background 处理
	g, ctx := NewGroup(nil)
	require.NotNil(t, ctx)
	assert.Same(t, ctx, g.Context())
	assert.NoError(t, g.Wait())
}

func TestRun_Success(t *testing.T) {
	var ran atomic.Bool
	err := Run(context.Background(), func(context.Context) error {
		ran.Store(true)
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, ran.Load())
}

func TestRun_TaskError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrSignal)
}

func TestRun_TaskErrorWrappingCanceled(t *testing.T) {
	// 任务自身返回的取消类错误不能被信号监听的退出覆盖
	err := Run(context.Background(), func(context.Context) error {
		return context.Canceled
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_NilTask(t *testing.T) {
	assert.ErrorIs(t, Run(context.Background(), nil), ErrNilFunc)
}

func TestRun_Signal(t *testing.T) {
	tests := []struct {
		name string
		task func(ctx context.Context) error
	}{
		{"returns ctx error", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}},
		{"returns nil", func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sigCh := make(chan os.Signal, 1)
			sigCh <- syscall.SIGTERM
			ctx := withTestSigChan(context.Background(), sigCh)

			err := Run(ctx, tt.task)
			require.ErrorIs(t, err, ErrSignal)

			var sigErr *SignalError
			require.ErrorAs(t, err, &sigErr)
			assert.Equal(t, syscall.SIGTERM, sigErr.Signal)
			assert.Equal(t, "received signal terminated", err.Error())
		})
	}
}

func TestRun_SignalLogged(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	sigCh := make(chan os.Signal, 1)
	sigCh <- syscall.SIGINT
	ctx := withTestSigChan(context.Background(), sigCh)

	err = Run(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, WithLogger(logger), WithName("convert"))
	require.ErrorIs(t, err, ErrSignal)

	out := buf.String()
	assert.Contains(t, out, "received signal")
	assert.Contains(t, out, "group=convert")
	assert.Contains(t, out, "signal=interrupt")
}

func TestRun_WithoutSignalHandler(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	sigCh <- syscall.SIGTERM
	ctx := withTestSigChan(context.Background(), sigCh)

	err := Run(ctx, func(context.Context) error { return nil }, WithoutSignalHandler())
	assert.NoError(t, err)
	assert.Len(t, sigCh, 1, "signal must not be consumed")
}

func TestRun_CustomSignals(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	sigCh <- syscall.SIGHUP
	ctx := withTestSigChan(context.Background(), sigCh)

	err := Run(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}, WithSignals([]os.Signal{syscall.SIGTERM}))

	var sigErr *SignalError
	require.ErrorAs(t, err, &sigErr)
	assert.Equal(t, syscall.SIGHUP, sigErr.Signal)
}

func TestRun_ParentTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Run(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrSignal)
}

func TestSignalError(t *testing.T) {
	err := &SignalError{Signal: syscall.SIGQUIT}
	assert.ErrorIs(t, err, ErrSignal)
	assert.Equal(t, ErrSignal, errors.Unwrap(err))
	assert.Equal(t, "received signal <nil>", (&SignalError{}).Error())
}

func TestDefaultSignals(t *testing.T) {
	assert.ElementsMatch(t,
		[]os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT},
		DefaultSignals())
}
