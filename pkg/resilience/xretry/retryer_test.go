package xretry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRateLimited = errors.New("rate limited")

func TestRetryer_Do(t *testing.T) {
	t.Run("SuccessOnFirstAttempt", func(t *testing.T) {
		r := NewRetryer()
		var attempts int

		err := r.Do(context.Background(), func(ctx context.Context) error {
			attempts++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("SuccessOnThirdAttempt", func(t *testing.T) {
		r := NewRetryer()
		var attempts int

		err := r.Do(context.Background(), func(ctx context.Context) error {
			attempts++
			if attempts < 3 {
				return NewTemporaryError(errRateLimited)
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("FailAfterMaxAttempts", func(t *testing.T) {
		r := NewRetryer(WithRetryPolicy(NewFixedRetry(3)))
		var attempts int

		err := r.Do(context.Background(), func(ctx context.Context) error {
			attempts++
			return errRateLimited
		})

		assert.ErrorIs(t, err, errRateLimited)
		assert.Equal(t, 3, attempts)
	})

	t.Run("PermanentErrorStopsImmediately", func(t *testing.T) {
		r := NewRetryer(WithRetryPolicy(NewFixedRetry(5)))
		var attempts int

		err := r.Do(context.Background(), func(ctx context.Context) error {
			attempts++
			return NewPermanentError(errors.New("not found"))
		})

		assert.Error(t, err)
		assert.True(t, IsPermanent(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("ContextCanceledStopsRetrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		r := NewRetryer(WithRetryPolicy(NewFixedRetry(5)))
		var attempts int

		err := r.Do(ctx, func(ctx context.Context) error {
			attempts++
			cancel()
			return errRateLimited
		})

		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("OnRetryCallback", func(t *testing.T) {
		var calls []int
		r := NewRetryer(
			WithRetryPolicy(NewFixedRetry(3)),
			WithOnRetry(func(attempt int, err error) {
				calls = append(calls, attempt)
				assert.ErrorIs(t, err, errRateLimited)
			}),
		)

		_ = r.Do(context.Background(), func(ctx context.Context) error {
			return errRateLimited
		})

		// 最后一次失败后不再重试，因此不回调
		assert.Equal(t, []int{1, 2}, calls)
	})

	t.Run("BackoffDelayApplied", func(t *testing.T) {
		r := NewRetryer(
			WithRetryPolicy(NewFixedRetry(2)),
			WithBackoffPolicy(NewFixedBackoff(20*time.Millisecond)),
		)
		start := time.Now()

		_ = r.Do(context.Background(), func(ctx context.Context) error {
			return errRateLimited
		})

		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("NeverRetry", func(t *testing.T) {
		r := NewRetryer(WithRetryPolicy(NewNeverRetry()))
		var attempts int

		_ = r.Do(context.Background(), func(ctx context.Context) error {
			attempts++
			return errRateLimited
		})

		assert.Equal(t, 1, attempts)
	})
}

func TestDoWithResult(t *testing.T) {
	t.Run("SuccessAfterRetry", func(t *testing.T) {
		r := NewRetryer()
		var attempts int

		got, err := DoWithResult(context.Background(), r, func(ctx context.Context) (string, error) {
			attempts++
			if attempts < 2 {
				return "", errRateLimited
			}
			return "Dell Inc.", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "Dell Inc.", got)
		assert.Equal(t, 2, attempts)
	})

	t.Run("FailAfterMaxAttempts", func(t *testing.T) {
		r := NewRetryer()

		got, err := DoWithResult(context.Background(), r, func(ctx context.Context) (int, error) {
			return 0, errRateLimited
		})

		assert.ErrorIs(t, err, errRateLimited)
		assert.Zero(t, got)
	})
}

func TestRetryer_ArgumentChecks(t *testing.T) {
	var nilRetryer *Retryer
	assert.ErrorIs(t, nilRetryer.Do(context.Background(), func(context.Context) error { return nil }), ErrNilRetryer)

	_, err := DoWithResult(context.Background(), nilRetryer, func(context.Context) (int, error) { return 1, nil })
	assert.ErrorIs(t, err, ErrNilRetryer)

	r := NewRetryer()
	//nolint:staticcheck // 验证 nil context 防护
	assert.ErrorIs(t, r.Do(nil, func(context.Context) error { return nil }), ErrNilContext)
	assert.ErrorIs(t, r.Do(context.Background(), nil), ErrNilFunc)

	_, err = DoWithResult[int](context.Background(), r, nil)
	assert.ErrorIs(t, err, ErrNilFunc)
}

func TestRetryer_MaxAttempts(t *testing.T) {
	assert.Equal(t, 3, NewRetryer().MaxAttempts())
	assert.Equal(t, 5, NewRetryer(WithRetryPolicy(NewFixedRetry(5))).MaxAttempts())
	assert.Equal(t, 1, NewRetryer(WithRetryPolicy(NewNeverRetry())).MaxAttempts())

	var nilRetryer *Retryer
	assert.Equal(t, 1, nilRetryer.MaxAttempts())
}

func TestZeroValueRetryer(t *testing.T) {
	var r Retryer
	var attempts int

	err := r.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return errRateLimited
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}
