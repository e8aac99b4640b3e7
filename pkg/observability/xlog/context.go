package xlog

import "context"

type ctxKey int

const (
	runIDKey ctxKey = iota
	rowKey
)

// WithRunID 在 context 中记录批处理运行 ID。空 id 不写入。
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunID 返回 context 中的运行 ID，不存在时返回空字符串。
func RunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// WithRow 在 context 中记录当前处理的行号（从 1 开始）。非正数不写入。
func WithRow(ctx context.Context, row int) context.Context {
	if row <= 0 {
		return ctx
	}
	return context.WithValue(ctx, rowKey, row)
}

// Row 返回 context 中的行号，不存在时返回 0。
func Row(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	row, _ := ctx.Value(rowKey).(int)
	return row
}
