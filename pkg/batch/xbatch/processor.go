package xbatch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/omeyang/macconv/pkg/lookup/xvendor"
	"github.com/omeyang/macconv/pkg/observability/xlog"
	"github.com/omeyang/macconv/pkg/util/xmac"
)

//go:generate mockgen -source=processor.go -destination=mock_resolver_test.go -package=xbatch

var (
	// ErrNilSource Lines/Process 的 src 为 nil
	ErrNilSource = errors.New("xbatch: nil source")
	// ErrNilResolver 启用厂商查询但未提供 Resolver
	ErrNilResolver = errors.New("xbatch: vendor lookup enabled without resolver")
)

// Resolver 按 OUI 查询厂商，*xvendor.Client 实现了此接口。
type Resolver interface {
	Resolve(ctx context.Context, oui string) xvendor.Result
}

// Processor 批处理器。配置在 New 后不可变，可重复用于多个 Source。
type Processor struct {
	resolver      Resolver
	separator     string
	lowercase     bool
	lookup        bool
	authenticated bool
	paceAnonymous time.Duration
	paceAuth      time.Duration
	progress      Progress
	pacer         Pacer
	logger        xlog.Logger
}

// New 创建 Processor。只在启用厂商查询时需要 resolver。
func New(resolver Resolver, opts ...Option) *Processor {
	p := &Processor{
		resolver:      resolver,
		separator:     DefaultSeparator,
		paceAnonymous: DefaultPaceAnonymous,
		paceAuth:      DefaultPaceAuthenticated,
		progress:      NopProgress{},
		pacer:         TimerPacer{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	p.logger = xlog.OrDiscard(p.logger).With(xlog.Component("xbatch"))
	return p
}

// interval 两次网络查询之间的等待时间
func (p *Processor) interval() time.Duration {
	if p.authenticated {
		return p.paceAuth
	}
	return p.paceAnonymous
}

// Lines 惰性地按源顺序产出输出行。
//
// 出错（包括 ctx 取消）时最后产出一个非 nil error 并结束。
// ctx 中没有运行 ID 时生成一个，本次运行的所有日志都带 run_id。
func (p *Processor) Lines(ctx context.Context, src Source) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		if src == nil {
			yield(Line{}, ErrNilSource)
			return
		}
		if p.lookup && p.resolver == nil {
			yield(Line{}, ErrNilResolver)
			return
		}
		ctx := ctx
		if xlog.RunID(ctx) == "" {
			ctx = xlog.WithRunID(ctx, uuid.NewString())
		}

		total := src.Total()
		p.logger.Info(ctx, "batch started", xlog.Count(total),
			slog.Bool("vendor_lookup", p.lookup), slog.Bool("authenticated", p.authenticated))

		r := run{Processor: p}
		current := 0
		for row := range src.Rows() {
			if err := ctx.Err(); err != nil {
				p.logger.Warn(ctx, "batch canceled", xlog.Count(current), xlog.Err(err))
				yield(Line{}, err)
				return
			}
			current++
			if row.Number == 0 {
				row.Number = current
			}

			line, err := r.process(xlog.WithRow(ctx, row.Number), row)
			if err != nil {
				p.logger.Warn(ctx, "batch canceled", xlog.Count(current-1), xlog.Err(err))
				yield(Line{}, err)
				return
			}
			p.progress.Report(current, total)
			if !yield(line, nil) {
				return
			}
		}

		p.logger.Info(ctx, "batch finished", xlog.Count(current),
			slog.Int("invalid", r.invalid), slog.Int("network_lookups", r.network))
	}
}

// run 单次 Lines 调用的状态
type run struct {
	*Processor
	// owed 上一次查询走了网络，下一次查询前需要等待
	owed    bool
	invalid int
	network int
}

func (r *run) process(ctx context.Context, row Row) (Line, error) {
	if row.Short {
		r.logger.Warn(ctx, "row has missing columns", xlog.Line(row.Number))
	}

	line := Line{Row: row}
	addr, err := xmac.ExtractHex(row.MAC)
	if err != nil {
		r.invalid++
		r.logger.Warn(ctx, "invalid MAC address", xlog.Line(row.Number),
			slog.String("mac", row.MAC), xlog.Err(err))
	} else {
		line.Address = addr.Format(r.separator, r.lowercase)
	}

	if r.lookup && addr.IsValid() {
		res, err := r.resolve(ctx, addr.OUI())
		if err != nil {
			return Line{}, err
		}
		line.Vendor = &res
	}

	line.Text = Render(row, line.Address, line.Vendor, r.lookup)
	r.logger.Debug(ctx, "row processed", xlog.Line(row.Number), slog.String("address", line.Address))
	return line, nil
}

func (r *run) resolve(ctx context.Context, oui string) (xvendor.Result, error) {
	if r.owed {
		if err := r.pacer.Wait(ctx, r.interval()); err != nil {
			return xvendor.Result{}, fmt.Errorf("xbatch: pacing: %w", err)
		}
		r.owed = false
	}

	res := r.resolver.Resolve(ctx, oui)
	if err := ctx.Err(); err != nil {
		return xvendor.Result{}, err
	}
	if res.Attempts > 0 && !res.Cached {
		r.network++
		r.owed = true
	}
	return res, nil
}

// Process 收集 Lines 的全部输出。出错时返回已产出的行和该错误。
func (p *Processor) Process(ctx context.Context, src Source) ([]Line, error) {
	var lines []Line
	if src != nil {
		lines = make([]Line, 0, max(src.Total(), 0))
	}
	for line, err := range p.Lines(ctx, src) {
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WriteLines 每行一条写出输出文本
func WriteLines(w io.Writer, lines []Line) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l.Text); err != nil {
			return fmt.Errorf("xbatch: write: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("xbatch: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("xbatch: write: %w", err)
	}
	return nil
}
