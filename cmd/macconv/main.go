// macconv 在 MAC 地址记法之间转换，可选地通过 macvendors.com 查询厂商。
//
// 用法:
//
//	macconv [选项]
//
// 选项:
//
//	-m, --mac         单个 MAC 地址
//	-s, --separator   分隔符 (默认: "-")
//	-l, --lower       输出小写
//	-a, --api         查询厂商
//	-b, --batch       批处理扫描器导出文件 (UTF-16, Tab 分隔)
//	-t, --token       macvendors API token (环境变量 MACVENDORS_TOKEN)
//	-o, --output      输出文件 (默认输出到控制台)
//	-c, --config      配置文件 (YAML 或 JSON)
//	-v, --verbose     info 级别日志
//	-d, --debug       debug 级别日志
//
// 未指定 --mac 与 --batch 时进入交互模式；参数解析失败时给出警告后同样进入交互模式。
//
// 退出码:
//
//	0:   成功
//	1:   地址无效、文件错误等失败
//	2:   参数错误
//	130: 被信号中断
//
// 示例:
//
//	macconv -m D8-3A-DD-EE-55-22 -s :        # D8:3A:DD:EE:55:22
//	macconv -m d83addee5522 -a               # 同时查询厂商
//	macconv -b export.txt -a -o result.txt   # 批处理并写入文件
package main

import (
	"context"
	"os"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	os.Exit(a.run(context.Background(), os.Args))
}
