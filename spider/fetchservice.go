package spider

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

type FetchType int

const (
	BaseFetchType FetchType = iota
	BrowserFetchType
)

type Fetcher interface {
	/*
	   输入一个上下文和一个请求，输出文档字节流和一个错误

	   阻塞直到取得文档或失败，失败时返回*FetchError
	*/
	Get(ctx context.Context, req *Request) ([]byte, error)
}

/*
输入抓取器类型和配置选项，输出一个Fetcher

BaseFetchType只发起裸GET，BrowserFetchType会限速、随机休眠、设置代理、User-Agent与Cookie
*/
func NewFetchService(typ FetchType, opts ...Option) Fetcher {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	switch typ {
	case BaseFetchType:
		return &baseFetch{client: &http.Client{Timeout: options.Timeout}}
	default:
		return newBrowserFetch(options)
	}
}

type baseFetch struct {
	client *http.Client
}

func (b *baseFetch) Get(ctx context.Context, req *Request) ([]byte, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: req.URL, Err: err}
	}
	resp, err := b.client.Do(r)
	if err != nil {
		return nil, &FetchError{URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	return readBody(req, resp)
}

type browserFetch struct {
	client *http.Client
	Options
}

func newBrowserFetch(options Options) *browserFetch {
	transport := options.Transport
	if transport == nil {
		// 不修改全局的DefaultTransport
		t := http.DefaultTransport.(*http.Transport).Clone()
		if options.Proxy != nil {
			t.Proxy = options.Proxy
		}
		transport = t
	}
	return &browserFetch{
		client: &http.Client{
			Timeout:   options.Timeout,
			Transport: transport,
		},
		Options: options,
	}
}

/*
输入一个上下文和一个请求，输出文档字节流和一个错误

先经过共享限速器保证请求间隔，再随机休眠模拟人类行为，设置User-Agent与Cookie后发起请求，非200响应返回FetchError，最后探测编码并转换为utf-8
*/
func (b *browserFetch) Get(ctx context.Context, request *Request) ([]byte, error) {
	if b.Limit != nil {
		if err := b.Limit.Wait(ctx); err != nil {
			return nil, &FetchError{URL: request.URL, Err: err}
		}
	}
	if b.WaitTime > 0 {
		sleep := time.Duration(rand.Int63n(int64(b.WaitTime)))
		select {
		case <-ctx.Done():
			return nil, &FetchError{URL: request.URL, Err: ctx.Err()}
		case <-time.After(sleep):
		}
	}

	method := request.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, request.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: request.URL, Err: fmt.Errorf("get url failed:%w", err)}
	}
	if len(b.Cookie) > 0 {
		req.Header.Set("Cookie", b.Cookie)
	}
	if b.UserAgent != nil {
		req.Header.Set("User-Agent", b.UserAgent())
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: request.URL, Err: err}
	}
	defer resp.Body.Close()

	body, err := readBody(request, resp)
	b.logger.Debug("fetched",
		zap.String("url", request.URL),
		zap.Int("status", resp.StatusCode),
		zap.Int("length", len(body)),
		zap.Duration("took", time.Since(start)),
	)
	return body, err
}

func readBody(req *Request, resp *http.Response) ([]byte, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{
			URL:        req.URL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("error status code:%d", resp.StatusCode),
		}
	}
	bodyReader := bufio.NewReader(resp.Body)
	e := DeterminEncoding(bodyReader, resp.Header.Get("Content-Type"))
	utf8Reader := transform.NewReader(bodyReader, e.NewDecoder())

	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		return nil, &FetchError{URL: req.URL, Err: err}
	}
	return body, nil
}

// 根据前1024字节和Content-Type探测文档编码，文档不足1024字节时使用已读到的部分
func DeterminEncoding(r *bufio.Reader, contentType string) encoding.Encoding {
	bytes, _ := r.Peek(1024)
	e, _, _ := charset.DetermineEncoding(bytes, contentType)
	return e
}
