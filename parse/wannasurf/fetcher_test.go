package wannasurf

import (
	"context"
	"net/http"
	"sync"

	"github.com/dszqbsm/wannasurf/spider"
)

// 内存中的抓取器，按地址返回固定页面
type fakeFetcher struct {
	pages    map[string]string
	fail     map[string]bool // 每次都失败
	failOnce map[string]bool // 只有第一次失败
	panics   map[string]bool

	mu    sync.Mutex
	calls map[string]int
}

func newFakeFetcher(pages map[string]string) *fakeFetcher {
	return &fakeFetcher{
		pages:    pages,
		fail:     map[string]bool{},
		failOnce: map[string]bool{},
		panics:   map[string]bool{},
		calls:    map[string]int{},
	}
}

func (f *fakeFetcher) Get(ctx context.Context, req *spider.Request) ([]byte, error) {
	f.mu.Lock()
	f.calls[req.URL]++
	n := f.calls[req.URL]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &spider.FetchError{URL: req.URL, Err: err}
	}
	if f.panics[req.URL] {
		panic("broken page " + req.URL)
	}
	if f.fail[req.URL] || (f.failOnce[req.URL] && n == 1) {
		return nil, &spider.FetchError{URL: req.URL, StatusCode: http.StatusInternalServerError}
	}
	page, ok := f.pages[req.URL]
	if !ok {
		return nil, &spider.FetchError{URL: req.URL, StatusCode: http.StatusNotFound}
	}
	return []byte(page), nil
}

func (f *fakeFetcher) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}
