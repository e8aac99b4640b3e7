package xvendor

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/omeyang/macconv/pkg/lookup/xvendor"

// 指标名称
const (
	MetricLookups  = "macconv.vendor.lookups"
	MetricAttempts = "macconv.vendor.attempts"
	MetricDuration = "macconv.vendor.duration"
)

type instruments struct {
	lookups  metric.Int64Counter
	attempts metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	lookups, err := meter.Int64Counter(MetricLookups,
		metric.WithDescription("vendor lookups by outcome"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("xvendor: create lookups counter: %w", err)
	}
	attempts, err := meter.Int64Counter(MetricAttempts,
		metric.WithDescription("HTTP requests sent to the vendor service"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("xvendor: create attempts counter: %w", err)
	}
	duration, err := meter.Float64Histogram(MetricDuration,
		metric.WithDescription("vendor lookup duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("xvendor: create duration histogram: %w", err)
	}
	return &instruments{lookups: lookups, attempts: attempts, duration: duration}, nil
}

func (m *instruments) attempt(ctx context.Context) {
	m.attempts.Add(ctx, 1)
}

func (m *instruments) record(ctx context.Context, res Result, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("outcome", res.Kind.String()),
		attribute.Bool("cached", res.Cached),
	)
	m.lookups.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
