package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CleanPath 规范化用户输入的文件路径。
//
// 依次去掉首尾空白、一对首尾匹配的引号（" 或 '），再做 filepath.Clean。
func CleanPath(filename string) (string, error) {
	filename = unquote(strings.TrimSpace(filename))
	if filename == "" {
		return "", ErrEmptyPath
	}
	if strings.ContainsRune(filename, 0) {
		return "", fmt.Errorf("%q: %w", filename, ErrNullByte)
	}
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("%q is a directory: %w", filename, ErrInvalidPath)
	}
	return filepath.Clean(filename), nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
