// Package xmac 提供 MAC 地址的规范化与格式化工具。
//
// xmac 接受任意记法的 MAC 地址输入（冒号、短线、点、无分隔符，
// 甚至夹杂任意符号和大小写混合），只保留其中的十六进制字符：
//
//   - 恰好 12 个十六进制字符 → 得到 [Canonical]
//   - 其他数量 → 返回 [*InvalidLengthError]（errors.Is 匹配 [ErrInvalidLength]）
//
// 这种"过滤后计数"的策略让用户可以直接粘贴来自不同来源的地址，
// 而无需为每种记法编写单独的解析器。
//
// # 快速示例
//
//	c, err := xmac.ExtractHex("d8$3A$DD$eE$55!22")
//	if err != nil {
//	    // errors.Is(err, xmac.ErrInvalidLength)
//	}
//	c.Format("-", true)   // d8-3a-dd-ee-55-22
//	c.Format(":", false)  // D8:3A:DD:EE:55:22
//	c.Format("", false)   // D83ADDEE5522
//	c.OUI()               // D83ADD
//
// # 分隔符
//
// 分隔符可以是任意字符串（包括空串和多字符串），原样插入到 5 个组间位置，
// 不做大小写转换。大小写选项只作用于十六进制分组。
//
// # 地址属性
//
// [Canonical.Addr] 转换为 6 字节值类型 [Addr]，可判断单播/多播、
// 本地管理（LAA）等位属性。随机化 MAC（LAA）通常查不到厂商。
package xmac
