package wannasurf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/PuerkitoBio/goquery"
	"github.com/dszqbsm/wannasurf/spider"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var (
	// 同一地址在一次抓取中只解析一次
	ErrAlreadyVisited = errors.New("already visited")
	// 首页上没有发现任何大洲
	ErrNoGroups = errors.New("no groups found on root document")
)

type options struct {
	logger    *zap.Logger
	history   spider.ReqHistoryRepository
	workCount int
	retry     bool
	maxZones  int
	maxSpots  int
}

var defaultOptions = options{
	logger:    zap.NewNop(),
	workCount: 1,
	retry:     true,
}

type Option func(opts *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// 多次解析之间共享访问记录
func WithHistory(h spider.ReqHistoryRepository) Option {
	return func(opts *options) {
		opts.history = h
	}
}

// 大于1时并发解析同级子节点，同时进行的抓取不超过n个
func WithWorkCount(n int) Option {
	return func(opts *options) {
		opts.workCount = n
	}
}

func WithRetry(retry bool) Option {
	return func(opts *options) {
		opts.retry = retry
	}
}

// 每个节点最多解析的子区域数量，0表示不限
func WithMaxZones(n int) Option {
	return func(opts *options) {
		opts.maxZones = n
	}
}

// 每个节点最多解析的浪点数量，0表示不限
func WithMaxSpots(n int) Option {
	return func(opts *options) {
		opts.maxSpots = n
	}
}

// Parser 负责抓取并解析浪点、区域和国家页面
type Parser struct {
	fetcher spider.Fetcher
	sem     *semaphore.Weighted
	options
}

func NewParser(fetcher spider.Fetcher, opts ...Option) *Parser {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.history == nil {
		options.history = spider.NewReqHistoryRepository()
	}
	if options.workCount < 1 {
		options.workCount = 1
	}
	return &Parser{
		fetcher: fetcher,
		sem:     semaphore.NewWeighted(int64(options.workCount)),
		options: options,
	}
}

/*
输入请求，输出解析好的文档

已访问过的地址返回ErrAlreadyVisited；首次抓取失败时重试一次，仍失败则返回错误
*/
func (p *Parser) fetchDocument(ctx context.Context, req *spider.Request) (*goquery.Document, error) {
	if !p.history.TryVisit(req) {
		return nil, fmt.Errorf("%s: %w", req.URL, ErrAlreadyVisited)
	}

	body, err := p.get(ctx, req)
	if err != nil && p.retry && ctx.Err() == nil && p.history.AddFailures(req) {
		p.logger.Warn("fetch failed, retrying",
			zap.String("name", req.Name),
			zap.String("url", req.URL),
			zap.Error(err))
		p.history.AddVisited(req)
		body, err = p.get(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	p.history.DeleteFailures(req)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", req.URL, err)
	}
	return doc, nil
}

func (p *Parser) get(ctx context.Context, req *spider.Request) ([]byte, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, &spider.FetchError{URL: req.URL, Err: err}
	}
	defer p.sem.Release(1)
	return p.fetcher.Get(ctx, req)
}

// 执行一次子节点解析，panic按失败处理
func (p *Parser) isolate(name, url string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("parse panic",
				zap.String("name", name),
				zap.String("url", url),
				zap.Any("err", r),
				zap.String("stack", string(debug.Stack())))
			err = fmt.Errorf("panic while parsing %s: %v", url, r)
		}
	}()
	return fn()
}

/*
输入任务数量和任务函数，依次或并发执行全部任务

单个任务的失败不会取消其他任务，调用方按下标保存结果以保证顺序与来源一致
*/
func (p *Parser) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	if p.workCount <= 1 {
		for i := 0; i < n; i++ {
			if ctx.Err() != nil {
				return
			}
			fn(ctx, i)
		}
		return
	}

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
}

func capLinks(links []Link, max int) []Link {
	if max > 0 && len(links) > max {
		return links[:max]
	}
	return links
}
