package xmac

import (
	"fmt"
	"net"
	"strings"
)

// HexDigits 是 EUI-48 地址的十六进制字符数。
const HexDigits = 12

// OUIDigits 是 OUI 前缀的十六进制字符数。
const OUIDigits = 6

// Canonical 是去除分隔符后的 12 位十六进制地址。
//
// Canonical 保留输入中的大小写，输出时由 [Canonical.Format] 统一大小写。
// 零值无效，[Canonical.IsValid] 返回 false。
type Canonical struct {
	hex string
}

// ExtractHex 过滤 raw 中的十六进制字符，恰好 12 个时返回 Canonical。
//
// 非十六进制字符（包括非 ASCII 字符）全部丢弃，保留字符的相对顺序和大小写不变。
// 数量不为 12 时返回 [*InvalidLengthError]。
func ExtractHex(raw string) (Canonical, error) {
	var b strings.Builder
	b.Grow(HexDigits)
	for i := range len(raw) {
		if hexValue(raw[i]) >= 0 {
			b.WriteByte(raw[i])
		}
	}
	filtered := b.String()
	if len(filtered) != HexDigits {
		return Canonical{}, &InvalidLengthError{Filtered: filtered, Length: len(filtered)}
	}
	return Canonical{hex: filtered}, nil
}

// MustExtract 类似 [ExtractHex]，失败时 panic。
// 仅用于测试或常量初始化。
func MustExtract(raw string) Canonical {
	c, err := ExtractHex(raw)
	if err != nil {
		panic(fmt.Sprintf("xmac.MustExtract(%q): %v", raw, err))
	}
	return c
}

// FromAddr 从 6 字节地址构造大写 Canonical。
func FromAddr(a Addr) Canonical {
	return Canonical{hex: formatBare(a.bytes, hexUpper)}
}

// IsValid 报告 c 是否由 [ExtractHex] 或 [FromAddr] 构造。
func (c Canonical) IsValid() bool {
	return len(c.hex) == HexDigits
}

// String 返回原始大小写的 12 位十六进制串。
func (c Canonical) String() string {
	return c.hex
}

// Upper 返回大写的 12 位十六进制串。
func (c Canonical) Upper() string {
	return strings.ToUpper(c.hex)
}

// OUI 返回大写的前 6 位十六进制字符，零值返回空串。
func (c Canonical) OUI() string {
	if !c.IsValid() {
		return ""
	}
	return strings.ToUpper(c.hex[:OUIDigits])
}

// Format 等价于 [Format](c, sep, lowercase)。
func (c Canonical) Format(sep string, lowercase bool) string {
	return Format(c, sep, lowercase)
}

// Addr 返回 6 字节值表示。零值返回无效的 Addr{}。
func (c Canonical) Addr() Addr {
	if !c.IsValid() {
		return Addr{}
	}
	var a Addr
	for i := range 6 {
		// ExtractHex 已保证全部为十六进制字符
		a.bytes[i] = byte(hexValue(c.hex[i*2])<<4 | hexValue(c.hex[i*2+1]))
	}
	return a
}

// HardwareAddr 返回 [net.HardwareAddr] 表示。零值返回 nil。
func (c Canonical) HardwareAddr() net.HardwareAddr {
	if !c.IsValid() {
		return nil
	}
	a := c.Addr()
	hw := make(net.HardwareAddr, 6)
	copy(hw, a.bytes[:])
	return hw
}

// Convert 串联 [ExtractHex] 与 [Format]，用于单地址转换。
func Convert(raw, sep string, lowercase bool) (string, error) {
	c, err := ExtractHex(raw)
	if err != nil {
		return "", err
	}
	return Format(c, sep, lowercase), nil
}

// hexValue 返回十六进制字符的数值，无效字符返回 -1。
func hexValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c - 'a' + 10)
	case 'A' <= c && c <= 'F':
		return int(c - 'A' + 10)
	default:
		return -1
	}
}
