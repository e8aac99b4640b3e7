package xvendor

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited 服务端返回 429
	ErrRateLimited = errors.New("xvendor: rate limited")
	// ErrUnexpectedResponse 非预期的状态码或响应体
	ErrUnexpectedResponse = errors.New("xvendor: unexpected response")
	// ErrInvalidOUI OUI 不是 6 位十六进制字符
	ErrInvalidOUI = errors.New("xvendor: invalid oui")

	// errLookupFailed 向熔断器报告失败的内部标记
	errLookupFailed = errors.New("xvendor: lookup failed")
)

// StatusError 携带 HTTP 状态码的尝试失败
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: status %d", e.Err, e.Status)
}

func (e *StatusError) Unwrap() error { return e.Err }
