package xvendor

import "net/http"

//go:generate mockgen -source=doer.go -destination=mock_doer_test.go -package=xvendor

// Doer 发送 HTTP 请求，*http.Client 实现了此接口。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ Doer = (*http.Client)(nil)
