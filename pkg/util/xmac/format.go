package xmac

import "strings"

// 十六进制字符表。
const (
	hexLower = "0123456789abcdef"
	hexUpper = "0123456789ABCDEF"
)

// Format 在每 2 个字符后插入 sep，得到 6 组、5 个分隔符的地址串。
//
// 十六进制分组默认大写，lowercase 为 true 时小写；sep 原样插入，
// 可以为空串或多字符串。零值 Canonical 返回空串。
func Format(c Canonical, sep string, lowercase bool) string {
	if !c.IsValid() {
		return ""
	}
	digits := strings.ToUpper(c.hex)
	if lowercase {
		digits = strings.ToLower(c.hex)
	}

	var b strings.Builder
	b.Grow(HexDigits + 5*len(sep))
	for i := 0; i < HexDigits; i += 2 {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+2])
	}
	return b.String()
}

// String 返回小写冒号格式（aa:bb:cc:dd:ee:ff），无效地址返回空串。
func (a Addr) String() string {
	if !a.IsValid() {
		return ""
	}
	return Format(Canonical{hex: formatBare(a.bytes, hexLower)}, ":", true)
}

// formatBare 格式化为无分隔符格式（xxxxxxxxxxxx）。
func formatBare(b [6]byte, hex string) string {
	var buf [12]byte
	for i, v := range b {
		buf[i*2] = hex[v>>4]
		buf[i*2+1] = hex[v&0x0f]
	}
	return string(buf[:])
}
