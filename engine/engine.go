package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/dszqbsm/wannasurf/parse/wannasurf"
	"github.com/dszqbsm/wannasurf/spider"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// 采样策略，各项为0表示不限
type SamplePolicy struct {
	MaxCountries int // 每个大洲最多抓取的国家数
	MaxZones     int // 每个节点最多抓取的子区域数
	MaxSpots     int // 每个节点最多抓取的浪点数
}

// 完整抓取
func FullPolicy() SamplePolicy {
	return SamplePolicy{}
}

// 每个大洲一个国家，每个节点一个子区域和五个浪点
func SamplingPolicy() SamplePolicy {
	return SamplePolicy{MaxCountries: 1, MaxZones: 1, MaxSpots: 5}
}

func (p SamplePolicy) IsFull() bool {
	return p == SamplePolicy{}
}

// 爬虫实例，从首页出发构建 大洲 -> 国家 -> 区域 -> 浪点 的完整树
type Crawler struct {
	options
}

func NewEngine(opts ...Option) *Crawler {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.Fetcher == nil {
		options.Fetcher = spider.NewFetchService(spider.BrowserFetchType, spider.WithLogger(options.Logger))
	}
	if options.WorkCount < 1 {
		options.WorkCount = 1
	}
	return &Crawler{options: options}
}

// 未注入访问记录时每次抓取使用新的记录，同一个Crawler可以反复调用Crawl与Run
func (e *Crawler) newHistory() spider.ReqHistoryRepository {
	if e.history != nil {
		return e.history
	}
	return spider.NewReqHistoryRepository()
}

func (e *Crawler) parser(policy SamplePolicy, history spider.ReqHistoryRepository) *wannasurf.Parser {
	return wannasurf.NewParser(e.Fetcher,
		wannasurf.WithLogger(e.Logger),
		wannasurf.WithHistory(history),
		wannasurf.WithWorkCount(e.WorkCount),
		wannasurf.WithRetry(e.Retry),
		wannasurf.WithMaxZones(policy.MaxZones),
		wannasurf.WithMaxSpots(policy.MaxSpots),
	)
}

/*
输入上下文，输出抓取得到的森林

先从首页发现大洲与国家，再按配置的采样策略逐个解析国家；首页失败时返回错误。
超出时间上限时返回已完成的部分
*/
func (e *Crawler) Crawl(ctx context.Context) ([]*wannasurf.Group, error) {
	if e.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Budget)
		defer cancel()
	}

	history := e.newHistory()
	groups, err := e.parser(e.Policy, history).DiscoverGroups(ctx, e.RootURL)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, groups, e.Policy, history), nil
}

// 一个待解析的国家及其在结果中的位置
type countryJob struct {
	group int
	index int
	link  wannasurf.Link
}

/*
输入已发现的大洲和采样策略，输出按来源顺序排列的大洲与国家树

每个国家独立解析，失败的国家只记录日志并被跳过，不影响其他国家
*/
func (e *Crawler) Run(ctx context.Context, groups []wannasurf.GroupLinks, policy SamplePolicy) []*wannasurf.Group {
	if e.Budget > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, e.Budget)
			defer cancel()
		}
	}
	return e.run(ctx, groups, policy, e.newHistory())
}

func (e *Crawler) run(ctx context.Context, groups []wannasurf.GroupLinks, policy SamplePolicy, history spider.ReqHistoryRepository) []*wannasurf.Group {
	p := e.parser(policy, history)
	slots := make([][]*wannasurf.Node, len(groups))
	var jobs []countryJob
	for gi, g := range groups {
		countries := g.Countries
		if policy.MaxCountries > 0 && len(countries) > policy.MaxCountries {
			countries = countries[:policy.MaxCountries]
		}
		slots[gi] = make([]*wannasurf.Node, len(countries))
		for ci, c := range countries {
			jobs = append(jobs, countryJob{group: gi, index: ci, link: c})
		}
	}

	work := func(job countryJob) {
		node, err := e.parseCountry(ctx, p, job.link)
		if err != nil {
			e.Logger.Warn("country skipped",
				zap.String("group", groups[job.group].Name),
				zap.String("country", job.link.Name),
				zap.String("url", job.link.URL),
				zap.Error(err))
			return
		}
		slots[job.group][job.index] = node
	}

	if e.WorkCount <= 1 {
		for _, job := range jobs {
			if ctx.Err() != nil {
				break
			}
			work(job)
		}
	} else {
		var g errgroup.Group
		for _, job := range jobs {
			job := job
			g.Go(func() error {
				if ctx.Err() == nil {
					work(job)
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	if ctx.Err() != nil {
		e.Logger.Warn("crawl stopped before completion, returning partial result", zap.Error(ctx.Err()))
	}

	forest := make([]*wannasurf.Group, 0, len(groups))
	for gi, g := range groups {
		group := &wannasurf.Group{Name: g.Name}
		for _, n := range slots[gi] {
			if n != nil {
				group.Countries = append(group.Countries, n)
			}
		}
		forest = append(forest, group)
	}
	return forest
}

func (e *Crawler) parseCountry(ctx context.Context, p *wannasurf.Parser, link wannasurf.Link) (node *wannasurf.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.Logger.Error("country panic",
				zap.String("country", link.Name),
				zap.Any("err", r),
				zap.String("stack", string(debug.Stack())))
			node, err = nil, fmt.Errorf("panic while parsing %s: %v", link.URL, r)
		}
	}()

	start := time.Now()
	node, err = p.ParseNode(ctx, link.URL, wannasurf.RoleCountry)
	if err != nil {
		return nil, err
	}
	if node.Name == "" {
		node.Name = link.Name
	}
	e.Logger.Info("country parsed",
		zap.String("country", node.Name),
		zap.Int("zones", len(node.Children)),
		zap.Int("spots", node.CountSpots()),
		zap.Duration("elapsed", time.Since(start)))
	return node, nil
}
