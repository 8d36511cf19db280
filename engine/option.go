package engine

import (
	"time"

	"github.com/dszqbsm/wannasurf/spider"
	"go.uber.org/zap"
)

type Option func(opts *options)

// 爬虫配置选项
type options struct {
	WorkCount int            // 同时进行的抓取数量，1表示按深度优先顺序依次抓取
	Fetcher   spider.Fetcher // 采集器
	Logger    *zap.Logger    // 日志
	RootURL   string         // 首页地址，大洲与国家从这里发现
	Budget    time.Duration  // 整次抓取的时间上限，0表示不限
	Policy    SamplePolicy   // Crawl使用的采样策略
	Retry     bool           // 首次抓取失败时是否重试一次
	history   spider.ReqHistoryRepository
}

var defaultOptions = options{
	WorkCount: 1,
	Logger:    zap.NewNop(),
	RootURL:   "https://www.wannasurf.com/",
	Retry:     true,
}

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.Logger = logger
	}
}

func WithFetcher(fetcher spider.Fetcher) Option {
	return func(opts *options) {
		opts.Fetcher = fetcher
	}
}

func WithWorkCount(workCount int) Option {
	return func(opts *options) {
		opts.WorkCount = workCount
	}
}

func WithRootURL(url string) Option {
	return func(opts *options) {
		opts.RootURL = url
	}
}

func WithBudget(budget time.Duration) Option {
	return func(opts *options) {
		opts.Budget = budget
	}
}

func WithPolicy(policy SamplePolicy) Option {
	return func(opts *options) {
		opts.Policy = policy
	}
}

func WithRetry(retry bool) Option {
	return func(opts *options) {
		opts.Retry = retry
	}
}

func WithHistory(h spider.ReqHistoryRepository) Option {
	return func(opts *options) {
		opts.history = h
	}
}
