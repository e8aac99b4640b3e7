// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，支持文件轮转和 context 注入
//
// 厂商查询的指标由 xvendor 直接通过 OpenTelemetry metric API 记录。
package observability
