package xmac

import (
	"errors"
	"fmt"
)

// 预定义错误变量，支持 errors.Is 判断。
var (
	// ErrInvalidLength 表示过滤后的十六进制字符数不是 12。
	ErrInvalidLength = errors.New("xmac: invalid length")
)

// InvalidLengthError 携带过滤后的字符串及其长度，便于诊断。
//
//	_, err := xmac.ExtractHex("D83ADDEE552")
//	var le *xmac.InvalidLengthError
//	if errors.As(err, &le) {
//	    fmt.Println(le.Filtered, le.Length) // D83ADDEE552 11
//	}
type InvalidLengthError struct {
	// Filtered 是输入中保留下来的十六进制字符（保持原顺序与大小写）。
	Filtered string
	// Length 是 Filtered 的长度。
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("xmac: invalid length: got %d hex digits %q, want %d", e.Length, e.Filtered, HexDigits)
}

// Is 支持 errors.Is(err, ErrInvalidLength)。
func (e *InvalidLengthError) Is(target error) bool {
	return target == ErrInvalidLength
}

// SupportedFormats 是地址被拒绝时展示给用户的示例记法。
var SupportedFormats = []string{
	"D83ADDEE5522",
	"d83addee5522",
	"D8-3A-DD-EE-55-22",
	"D8:3A:DD:EE:55:22",
	"d8$3A$DD$eE$55!22",
}
