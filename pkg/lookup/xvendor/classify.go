package xvendor

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Outcome 单次 HTTP 尝试的分类
type Outcome struct {
	Kind   Kind
	Vendor string
	// Retryable 失败是否为暂时性的
	Retryable bool
}

// notFoundBody 服务端的 "not found" 错误体：{"errors":{"detail":"Not Found"}}
type notFoundBody struct {
	Errors *struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

// isNotFoundBody 按 JSON 语义比较，忽略空白和字段顺序。
func isNotFoundBody(body []byte) bool {
	var v notFoundBody
	if err := json.Unmarshal(body, &v); err != nil {
		return false
	}
	return v.Errors != nil && v.Errors.Detail == "Not Found"
}

// Classify 根据状态码和响应体对一次尝试分类。
//
//	200 + 厂商名              -> Found
//	200/404 + not-found JSON  -> NotFound
//	404 其他响应体            -> 暂时性失败
//	429                       -> RateLimited，暂时性
//	5xx                       -> 暂时性失败
//	其他                      -> 不可重试的失败
func Classify(status int, body []byte) Outcome {
	switch {
	case status == http.StatusOK:
		if isNotFoundBody(body) {
			return Outcome{Kind: NotFound}
		}
		name := string(bytes.TrimSpace(body))
		if name == "" {
			return Outcome{Kind: LookupFailed, Retryable: true}
		}
		return Outcome{Kind: Found, Vendor: name}
	case status == http.StatusNotFound:
		if isNotFoundBody(body) {
			return Outcome{Kind: NotFound}
		}
		return Outcome{Kind: LookupFailed, Retryable: true}
	case status == http.StatusTooManyRequests:
		return Outcome{Kind: RateLimited, Retryable: true}
	case status >= 500:
		return Outcome{Kind: LookupFailed, Retryable: true}
	default:
		return Outcome{Kind: LookupFailed}
	}
}
