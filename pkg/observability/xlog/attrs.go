package xlog

import (
	"log/slog"
	"time"
)

// 日志字段的标准 key
const (
	KeyError      = "error"
	KeyStack      = "stack"
	KeyDuration   = "duration"
	KeyCount      = "count"
	KeyComponent  = "component"
	KeyStatusCode = "status_code"

	// KeyRunID 批处理运行 ID，由 [EnrichHandler] 从 context 注入
	KeyRunID = "run_id"
	// KeyRow 导出文件中的行号（从 1 开始）
	KeyRow = "row"

	KeyOUI     = "oui"
	KeyAttempt = "attempt"
	KeyOutcome = "outcome"
	KeyLine    = "line"
)

// Err 创建错误属性。err 为 nil 时返回空属性（会被 slog 忽略）。
//
//	if err != nil {
//	    logger.Error(ctx, "lookup failed", xlog.Err(err))
//	}
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建耗时属性
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 创建组件名属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Count 创建计数属性
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// StatusCode 创建 HTTP 状态码属性
func StatusCode(code int) slog.Attr {
	return slog.Int(KeyStatusCode, code)
}

// OUI 创建厂商前缀属性
func OUI(oui string) slog.Attr {
	return slog.String(KeyOUI, oui)
}

// Attempt 创建尝试次数属性（从 1 开始）
func Attempt(n int) slog.Attr {
	return slog.Int(KeyAttempt, n)
}

// Outcome 创建查询结果分类属性
func Outcome(o string) slog.Attr {
	return slog.String(KeyOutcome, o)
}

// Line 创建行号属性
func Line(n int) slog.Attr {
	return slog.Int(KeyLine, n)
}
