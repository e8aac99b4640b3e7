// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 路径清理、父目录创建、输出文件创建
//   - xmac: MAC 地址十六进制提取、记法转换、OUI
package util
