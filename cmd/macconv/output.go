package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/omeyang/macconv/pkg/util/xmac"
)

// exitError 表示消息已输出、只需设置退出码的失败。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 参数组合错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func newUsageError(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// console 控制台消息。提示与错误写 stderr，结果写 stdout。
type console struct {
	out    io.Writer
	errOut io.Writer
	red    *color.Color
	yellow *color.Color
	green  *color.Color
}

func newConsole(out, errOut io.Writer, noColor bool) *console {
	c := &console{
		out:    out,
		errOut: errOut,
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		green:  color.New(color.FgGreen),
	}
	if noColor {
		c.red.DisableColor()
		c.yellow.DisableColor()
		c.green.DisableColor()
	}
	return c
}

func (c *console) errorf(format string, args ...any) {
	_, _ = c.red.Fprintf(c.errOut, format+"\n", args...)
}

func (c *console) warnf(format string, args ...any) {
	_, _ = c.yellow.Fprintf(c.errOut, format+"\n", args...)
}

func (c *console) successf(format string, args ...any) {
	_, _ = c.green.Fprintf(c.errOut, format+"\n", args...)
}

func (c *console) infof(format string, args ...any) {
	_, _ = fmt.Fprintf(c.errOut, format+"\n", args...)
}

// result 输出转换结果
func (c *console) result(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format+"\n", args...)
}

// invalidAddress 输出地址无效的提示和支持的记法
func (c *console) invalidAddress(err error) {
	var b strings.Builder
	b.WriteString("Invalid MAC Address submitted.")
	var le *xmac.InvalidLengthError
	if errors.As(err, &le) {
		fmt.Fprintf(&b, " Found %d hex digits, need %d.", le.Length, xmac.HexDigits)
	}
	b.WriteString("\nSupported formats are like the following:")
	for _, f := range xmac.SupportedFormats {
		b.WriteString("\n")
		b.WriteString(f)
	}
	c.errorf("%s", b.String())
}
