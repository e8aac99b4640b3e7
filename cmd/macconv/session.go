package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/omeyang/macconv/internal/scanexport"
	"github.com/omeyang/macconv/pkg/batch/xbatch"
	"github.com/omeyang/macconv/pkg/lookup/xvendor"
	"github.com/omeyang/macconv/pkg/observability/xlog"
	"github.com/omeyang/macconv/pkg/util/xfile"
	"github.com/omeyang/macconv/pkg/util/xmac"
)

// session 一次命令执行所需的配置和依赖
type session struct {
	*app
	cfg         config
	logger      xlog.LoggerWithLevel
	closeLogger func() error
	client      *xvendor.Client
	prompt      *prompter
}

func (a *app) newSession(cfg config, verbose, debug bool) (*session, error) {
	logger, closeLogger, err := newLogger(cfg.Log, verbose, debug, a.stderr)
	if err != nil {
		return nil, err
	}
	return &session{
		app:         a,
		cfg:         cfg,
		logger:      logger,
		closeLogger: closeLogger,
		prompt:      newPrompter(a.stdin, a.stderr),
	}, nil
}

func (s *session) close() {
	if s.client != nil {
		_ = s.client.Close()
	}
	_ = s.closeLogger()
}

// vendor 按需创建厂商查询客户端
func (s *session) vendor() (*xvendor.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	c, err := xvendor.New(s.cfg.vendorOptions(s.logger)...)
	if err != nil {
		return nil, fmt.Errorf("vendor client: %w", err)
	}
	s.client = c
	return c, nil
}

// single 转换一个地址，启用查询时一并输出厂商。
func (s *session) single(ctx context.Context, raw string) error {
	c, err := xmac.ExtractHex(raw)
	if err != nil {
		s.logger.Warn(ctx, "invalid MAC address", slog.String("mac", raw), xlog.Err(err))
		s.console.invalidAddress(err)
		return &exitError{code: exitFailure}
	}

	addr := c.Addr()
	s.logger.Debug(ctx, "address parsed",
		slog.String("canonical", c.Upper()),
		slog.Bool("multicast", addr.IsMulticast()),
		slog.Bool("locally_administered", addr.IsLocallyAdministered()))

	formatted := c.Format(s.cfg.Separator, s.cfg.Lowercase)
	if !s.cfg.Vendor.Enabled {
		s.console.result("MAC Address: %s", formatted)
		return nil
	}

	client, err := s.vendor()
	if err != nil {
		return err
	}
	res := client.Resolve(ctx, c.OUI())
	if err := ctx.Err(); err != nil {
		return err
	}
	s.console.result("MAC Address: %s\nVendor: %s", formatted, res.Text())
	return nil
}

// batch 转换扫描器导出文件，outPath 为空时输出到控制台。
func (s *session) batch(ctx context.Context, path, outPath string) error {
	exp, err := scanexport.Open(path)
	if err != nil {
		return err
	}
	return s.runBatch(ctx, exp, outPath)
}

func (s *session) runBatch(ctx context.Context, src xbatch.Source, outPath string) (err error) {
	var resolver xbatch.Resolver
	if s.cfg.Vendor.Enabled {
		client, verr := s.vendor()
		if verr != nil {
			return verr
		}
		resolver = client
	}

	out, finish, err := s.openOutput(outPath)
	if err != nil {
		return err
	}
	defer func() {
		if ferr := finish(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	bar := newProgressBar(s.stderr, termWidth(s.getenv))
	p := xbatch.New(resolver, s.cfg.batchOptions(s.logger, bar)...)

	written, invalid := 0, 0
	for line, lerr := range p.Lines(ctx, src) {
		if lerr != nil {
			bar.finish()
			return lerr
		}
		if outPath == "" {
			bar.clear()
		}
		if _, werr := fmt.Fprintln(out, line.Text); werr != nil {
			bar.finish()
			return fmt.Errorf("write output: %w", werr)
		}
		written++
		if !line.Valid() {
			invalid++
		}
		bar.draw(line.Row.Name)
	}
	bar.finish()

	if invalid > 0 {
		s.console.warnf("%d of %d rows had an invalid MAC address", invalid, written)
	}
	if outPath != "" {
		s.console.successf("Wrote %d lines to %s", written, outPath)
	}
	return nil
}

// openOutput 返回输出目标和收尾函数。文件输出时父目录不存在则创建。
func (s *session) openOutput(outPath string) (io.Writer, func() error, error) {
	if strings.TrimSpace(outPath) == "" {
		return s.stdout, func() error { return nil }, nil
	}
	f, err := xfile.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	bw := bufio.NewWriter(f)
	return bw, func() error {
		return errors.Join(bw.Flush(), f.Close())
	}, nil
}

// interactive 逐项询问输入。MAC 地址留空时改为询问批处理文件。
func (s *session) interactive(ctx context.Context) error {
	mac, err := s.prompt.ask(ctx, "Enter a MAC-Address: ")
	if err != nil {
		return err
	}

	var exp *scanexport.Export
	if strings.TrimSpace(mac) == "" {
		if exp, err = s.askExport(ctx); err != nil {
			return err
		}
	}

	sep, err := s.prompt.ask(ctx, "Enter the separation character: ")
	if err != nil {
		return err
	}
	lower, err := s.prompt.confirm(ctx, "Convert to lowercase? [y/N]: ")
	if err != nil {
		return err
	}
	api, err := s.prompt.confirm(ctx, "Look up the vendor? [y/N]: ")
	if err != nil {
		return err
	}
	s.cfg.Separator = sep
	s.cfg.Lowercase = lower
	s.cfg.Vendor.Enabled = api

	if exp == nil {
		return s.single(ctx, mac)
	}

	outPath, err := s.prompt.ask(ctx, "Enter the output file (blank for console): ")
	if err != nil {
		return err
	}
	return s.runBatch(ctx, exp, strings.TrimSpace(outPath))
}

// askExport 询问批处理文件路径，打开失败时重新询问，最多 maxPathPrompts 次。
func (s *session) askExport(ctx context.Context) (*scanexport.Export, error) {
	var lastErr error
	for range maxPathPrompts {
		path, err := s.prompt.ask(ctx, "Enter the path of the batch file: ")
		if err != nil {
			return nil, err
		}
		exp, err := scanexport.Open(path)
		if err == nil {
			return exp, nil
		}
		lastErr = err
		s.console.errorf("Could not read batch file: %v", err)
	}
	return nil, fmt.Errorf("no readable batch file after %d attempts: %w", maxPathPrompts, lastErr)
}
