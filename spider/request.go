package spider

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
)

// 表示一次文档抓取请求
type Request struct {
	URL    string // 文档地址，必须是绝对地址
	Method string // 请求方法，默认为GET
	Depth  int    // 在目录树中的深度，首页为0，国家为1
	Name   string // 链接上的名称，仅用于日志
}

// 创建一个GET请求
func NewRequest(url string, name string, depth int) *Request {
	return &Request{
		URL:    url,
		Method: http.MethodGet,
		Depth:  depth,
		Name:   name,
	}
}

// 用于生成请求的唯一识别码，用于去重
func (r *Request) Unique() string {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	block := md5.Sum([]byte(r.URL + method))
	return hex.EncodeToString(block[:])
}

// 网络错误或非200响应
type FetchError struct {
	URL        string
	StatusCode int // 传输层失败时为0
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
