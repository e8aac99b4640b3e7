package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxPathPrompts 交互模式下批处理文件路径的最多询问次数
const maxPathPrompts = 3

// errInputClosed 交互输入在得到答案前结束
var errInputClosed = errors.New("input closed")

// prompter 从输入逐行读取回答。读取在独立 goroutine 中进行，
// 使 ctx 取消（Ctrl+C）能立即中断等待。
type prompter struct {
	in     io.Reader
	out    io.Writer
	lines  chan string
	errCh  chan error
	closed bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out}
}

// start 启动读取 goroutine。lines 无缓冲，发送端受 ctx 保护，
// ctx 取消后 goroutine 不会阻塞在发送上。
func (p *prompter) start(ctx context.Context) {
	if p.lines != nil {
		return
	}
	p.lines = make(chan string)
	p.errCh = make(chan error, 1)

	go func() {
		defer close(p.lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			select {
			case p.lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			p.errCh <- err
		}
	}()
}

// ask 输出提示并返回一行回答（去掉行尾的 \r）。
func (p *prompter) ask(ctx context.Context, prompt string) (string, error) {
	if p.closed {
		return "", errInputClosed
	}
	p.start(ctx)
	_, _ = fmt.Fprint(p.out, prompt)

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(p.out)
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			p.closed = true
			_, _ = fmt.Fprintln(p.out)
			select {
			case err := <-p.errCh:
				return "", fmt.Errorf("read input: %w", err)
			default:
				return "", errInputClosed
			}
		}
		return strings.TrimRight(line, "\r"), nil
	}
}

// confirm 询问 y/N 问题，只有 y/yes 为真。
func (p *prompter) confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := p.ask(ctx, prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
