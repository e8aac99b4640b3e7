package xvendor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sony/gobreaker/v2"

	"github.com/omeyang/macconv/pkg/observability/xlog"
	"github.com/omeyang/macconv/pkg/resilience/xretry"
	"github.com/omeyang/macconv/pkg/util/xmac"
)

// Resolver 按 OUI 查询厂商
type Resolver interface {
	Resolve(ctx context.Context, oui string) Result
}

var _ Resolver = (*Client)(nil)

// Client macvendors.com 查询客户端，并发安全。
type Client struct {
	doer      Doer
	baseURL   string
	token     string
	userAgent string
	retryer   *xretry.Retryer
	logger    xlog.Logger
	cache     *expirable.LRU[string, Result]
	breaker   *gobreaker.CircuitBreaker[Result]
	metrics   *instruments
}

// New 创建 Client
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	m, err := newInstruments(o.meterProvider)
	if err != nil {
		return nil, err
	}

	c := &Client{
		doer:      o.doer,
		baseURL:   o.baseURL,
		token:     o.token,
		userAgent: o.userAgent,
		logger:    xlog.OrDiscard(o.logger).With(xlog.Component("xvendor")),
		metrics:   m,
		retryer: xretry.NewRetryer(
			xretry.WithRetryPolicy(retryPolicy(o.maxAttempts)),
			xretry.WithBackoffPolicy(o.backoff),
		),
	}
	if c.doer == nil {
		c.doer = &http.Client{Timeout: o.timeout}
	}
	if o.cacheSize > 0 {
		c.cache = expirable.NewLRU[string, Result](o.cacheSize, nil, o.cacheTTL)
	}
	if o.breakerN > 0 {
		c.breaker = c.newBreaker(o.breakerN, o.breakerWait)
	}
	return c, nil
}

// retryPolicy 只允许一次尝试时不重试，否则按固定次数重试可重试错误。
func retryPolicy(maxAttempts int) xretry.RetryPolicy {
	if maxAttempts <= 1 {
		return xretry.NewNeverRetry()
	}
	return xretry.NewFixedRetry(maxAttempts)
}

func (c *Client) newBreaker(failures int, timeout time.Duration) *gobreaker.CircuitBreaker[Result] {
	threshold := uint32(min(failures, math.MaxUint32))
	return gobreaker.NewCircuitBreaker[Result](gobreaker.Settings{
		Name:        "macvendors",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return !errors.Is(err, errLookupFailed)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn(context.Background(), "circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
}

// Close 清空结果缓存。
func (c *Client) Close() error {
	if c.cache != nil {
		c.cache.Purge()
	}
	return nil
}

// Resolve 查询 oui 对应的厂商。oui 不区分大小写，非 6 位十六进制时不发请求，
// 直接返回 LookupFailed。
func (c *Client) Resolve(ctx context.Context, oui string) Result {
	start := time.Now()
	oui = strings.ToUpper(strings.TrimSpace(oui))

	res := c.resolve(ctx, oui)
	c.metrics.record(ctx, res, time.Since(start))
	return res
}

func (c *Client) resolve(ctx context.Context, oui string) Result {
	if !validOUI(oui) {
		c.logger.Warn(ctx, "vendor lookup skipped", xlog.OUI(oui), xlog.Err(ErrInvalidOUI))
		return Result{Kind: LookupFailed}
	}

	if c.cache != nil {
		if res, ok := c.cache.Get(oui); ok {
			res.Cached = true
			res.Attempts = 0
			c.logger.Debug(ctx, "vendor cache hit", xlog.OUI(oui), xlog.Outcome(res.Kind.String()))
			return res
		}
	}

	res := c.lookupGuarded(ctx, oui)

	switch res.Kind {
	case Found:
		c.logger.Debug(ctx, "vendor found", xlog.OUI(oui), slog.String("vendor", res.Vendor),
			xlog.Attempt(res.Attempts))
	case NotFound:
		c.logger.Warn(ctx, "vendor not found", xlog.OUI(oui), xlog.Attempt(res.Attempts))
	default:
		c.logger.Warn(ctx, "vendor lookup failed", xlog.OUI(oui), xlog.Attempt(res.Attempts))
	}

	if c.cache != nil && res.Terminal() {
		c.cache.Add(oui, res)
	}
	return res
}

// lookupGuarded 在启用熔断时经熔断器执行查询。
func (c *Client) lookupGuarded(ctx context.Context, oui string) Result {
	if c.breaker == nil {
		return c.lookup(ctx, oui)
	}

	res, err := c.breaker.Execute(func() (Result, error) {
		r := c.lookup(ctx, oui)
		if r.Kind == LookupFailed && ctx.Err() == nil {
			return r, errLookupFailed
		}
		return r, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Debug(ctx, "vendor lookup short-circuited", xlog.OUI(oui), xlog.Err(err))
		return Result{Kind: LookupFailed}
	}
	return res
}

// lookup 按重试策略发出请求，直到得到确定答复或尝试耗尽。
func (c *Client) lookup(ctx context.Context, oui string) Result {
	attempts := 0
	var last Outcome

	_, err := xretry.DoWithResult(ctx, c.retryer, func(ctx context.Context) (Outcome, error) {
		attempts++
		o, status, err := c.attempt(ctx, oui)
		last = o
		if err != nil {
			c.logger.Warn(ctx, "vendor lookup attempt failed",
				xlog.OUI(oui),
				xlog.Attempt(attempts),
				xlog.StatusCode(status),
				xlog.Outcome(o.Kind.String()),
				xlog.Err(err))
		}
		return o, err
	})
	if err != nil || (last.Kind != Found && last.Kind != NotFound) {
		return Result{Kind: LookupFailed, Attempts: attempts}
	}
	return Result{Kind: last.Kind, Vendor: last.Vendor, Attempts: attempts}
}

// attempt 发出一次请求。返回的 error 为 nil 表示得到确定答复；
// 否则按可否重试包装为 xretry.TemporaryError 或 xretry.PermanentError。
func (c *Client) attempt(ctx context.Context, oui string) (Outcome, int, error) {
	c.metrics.attempt(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+oui, nil)
	if err != nil {
		return Outcome{Kind: LookupFailed}, 0, xretry.NewPermanentError(fmt.Errorf("xvendor: build request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/plain")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return Outcome{Kind: LookupFailed, Retryable: true}, 0, xretry.NewTemporaryError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Outcome{Kind: LookupFailed, Retryable: true}, resp.StatusCode,
			xretry.NewTemporaryError(fmt.Errorf("xvendor: read body: %w", err))
	}

	o := Classify(resp.StatusCode, body)
	switch {
	case o.Kind == Found || o.Kind == NotFound:
		return o, resp.StatusCode, nil
	case o.Kind == RateLimited:
		return o, resp.StatusCode, xretry.NewTemporaryError(&StatusError{Status: resp.StatusCode, Err: ErrRateLimited})
	case o.Retryable:
		return o, resp.StatusCode, xretry.NewTemporaryError(&StatusError{Status: resp.StatusCode, Err: ErrUnexpectedResponse})
	default:
		return o, resp.StatusCode, xretry.NewPermanentError(&StatusError{Status: resp.StatusCode, Err: ErrUnexpectedResponse})
	}
}

// validOUI 要求 6 位大写十六进制字符
func validOUI(oui string) bool {
	if len(oui) != xmac.OUIDigits {
		return false
	}
	for i := range len(oui) {
		ch := oui[i]
		if (ch < '0' || ch > '9') && (ch < 'A' || ch > 'F') {
			return false
		}
	}
	return true
}
