// Package xlog 基于 log/slog 的结构化日志库。
//
// # 核心功能
//
//   - Builder 模式配置（输出目标、级别、格式、轮转）
//   - 自动从 context 注入批处理 run_id 和行号（EnrichHandler，默认启用）
//   - 动态级别调整
//   - 敏感字段脱敏（[RedactKeys]）
//
// # 创建 Logger
//
// Builder 采用 first-error-wins：遇到第一个配置错误后，后续 Set 操作不再覆盖该错误。
//
//	logger, cleanup, err := xlog.New().
//	    SetLevelString("info").
//	    SetFormat("json").
//	    SetRotation("/var/log/macconv.log", xlog.RotationOptions{MaxSizeMB: 10}).
//	    SetReplaceAttr(xlog.RedactKeys("token")).
//	    Build()
//	defer cleanup()
//
// 库代码通过依赖注入接收 [Logger]，不使用全局实例；不需要日志时传入 [Discard]。
//
// # 上下文字段
//
//	ctx = xlog.WithRunID(ctx, id)
//	ctx = xlog.WithRow(ctx, 42)
//	logger.Warn(ctx, "invalid address") // ... run_id=... row=42
package xlog
