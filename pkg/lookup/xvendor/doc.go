// Package xvendor 通过 macvendors.com 查询 MAC 地址前缀（OUI）对应的厂商。
//
// # 结果
//
// [Client.Resolve] 从不返回 error，查询结果以 [Result] 值表达：
//
//   - [Found]: 厂商名称在 Result.Vendor
//   - [NotFound]: 服务端明确表示未登记该前缀
//   - [LookupFailed]: 重试耗尽、不可重试的失败、熔断或 context 取消
//
// [RateLimited] 只出现在单次尝试的分类（[Classify]）中，
// 全部尝试都被限流的调用最终为 [LookupFailed]。
//
// # 重试
//
// 429、5xx、非标准 404 和网络错误为暂时性失败，按 xretry 策略重试，默认最多 3 次、无间隔。
// 其他 4xx（401/403/400 等）不重试。请求节奏由调用方（批处理）控制。
//
// # 可选组件
//
//	c, err := xvendor.New(
//	    xvendor.WithToken(token),
//	    xvendor.WithCache(1024, 0),
//	    xvendor.WithBreaker(5, 30*time.Second),
//	    xvendor.WithLogger(logger),
//	)
//
// 缓存只保存 Found/NotFound；熔断在连续 N 次 LookupFailed 后打开，
// 打开期间的调用直接返回 LookupFailed。
//
// # 指标
//
// 通过 OpenTelemetry metric API 记录：
//
//   - macconv.vendor.lookups（属性 outcome）
//   - macconv.vendor.attempts
//   - macconv.vendor.duration（秒）
package xvendor
