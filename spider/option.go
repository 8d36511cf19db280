package spider

import (
	"net/http"
	"time"

	"github.com/dszqbsm/wannasurf/extensions"
	"github.com/dszqbsm/wannasurf/limiter"
	"github.com/dszqbsm/wannasurf/proxy"
	"go.uber.org/zap"
)

// 抓取器配置
type Options struct {
	Cookie    string        `json:"cookie"`
	WaitTime  time.Duration `json:"wait_time"` // 每次请求前的随机休眠上限，0表示不休眠
	Timeout   time.Duration // http超时时间
	Proxy     proxy.ProxyFunc
	Limit     limiter.RateLimiter // 共享限速器，保证请求之间的最小间隔
	UserAgent func() string
	Transport http.RoundTripper // 为空时使用http.DefaultTransport的副本
	logger    *zap.Logger
}

var defaultOptions = Options{
	logger:    zap.NewNop(),
	Timeout:   10 * time.Second,
	Limit:     limiter.MinInterval(500 * time.Millisecond),
	UserAgent: extensions.GenerateRandomUA,
}

type Option func(opts *Options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		opts.logger = logger
	}
}

func WithCookie(cookie string) Option {
	return func(opts *Options) {
		opts.Cookie = cookie
	}
}

func WithWaitTime(waitTime time.Duration) Option {
	return func(opts *Options) {
		opts.WaitTime = waitTime
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

func WithProxy(proxy proxy.ProxyFunc) Option {
	return func(opts *Options) {
		opts.Proxy = proxy
	}
}

func WithLimit(l limiter.RateLimiter) Option {
	return func(opts *Options) {
		opts.Limit = l
	}
}

func WithUserAgent(ua func() string) Option {
	return func(opts *Options) {
		opts.UserAgent = ua
	}
}

func WithTransport(t http.RoundTripper) Option {
	return func(opts *Options) {
		opts.Transport = t
	}
}
