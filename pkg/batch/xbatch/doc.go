// Package xbatch 按源顺序逐行规范化 MAC 地址并可选查询厂商。
//
// 每个输入行产生且仅产生一个输出行，地址无效的行以空地址保留。
// 处理完全串行：一行的厂商查询（含重试与节奏等待）完成后才开始下一行。
//
// 相邻两次网络查询之间按凭证情况等待：匿名 900ms，带 token 150ms。
// 缓存命中和未发请求的查询不计入。
//
//	p := xbatch.New(client,
//	    xbatch.WithSeparator(":"),
//	    xbatch.WithVendorLookup(true),
//	    xbatch.WithLogger(logger),
//	)
//	for line, err := range p.Lines(ctx, src) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(line)
//	}
package xbatch
