package crawl

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dszqbsm/wannasurf/collector"
	"github.com/dszqbsm/wannasurf/collector/csvstorage"
	"github.com/dszqbsm/wannasurf/collector/sqlstorage"
	"github.com/dszqbsm/wannasurf/collector/xlsxstorage"
	"github.com/dszqbsm/wannasurf/engine"
	"github.com/dszqbsm/wannasurf/extensions"
	"github.com/dszqbsm/wannasurf/limiter"
	"github.com/dszqbsm/wannasurf/log"
	"github.com/dszqbsm/wannasurf/proxy"
	"github.com/dszqbsm/wannasurf/report"
	"github.com/dszqbsm/wannasurf/spider"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var CrawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "crawl wannasurf and write reports.",
	Long:  "crawl wannasurf from the home page, then write one csv per leaf zone and one workbook per continent.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context())
	},
}

var (
	configFile string
	sample     bool
	csvDir     string
	excelDir   string
)

func init() {
	CrawlCmd.Flags().StringVar(&configFile, "config", "config.toml", "set config file")
	CrawlCmd.Flags().BoolVar(&sample, "sample", true, "crawl one country per continent, one zone and five spots per node")
	CrawlCmd.Flags().StringVar(&csvDir, "csv-dir", "", "override csv output directory")
	CrawlCmd.Flags().StringVar(&excelDir, "excel-dir", "", "override workbook output directory")
}

func Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if csvDir != "" {
		cfg.CSVDir = csvDir
	}
	if excelDir != "" {
		cfg.ExcelDir = excelDir
	}

	logger, closer, err := log.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	logger.Info("log init end", zap.String("config", configFile), zap.Bool("sample", sample))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}

	policy := engine.FullPolicy()
	if sample {
		policy = engine.SamplePolicy{MaxCountries: cfg.MaxCountries, MaxZones: cfg.MaxZones, MaxSpots: cfg.MaxSpots}
	}
	e := engine.NewEngine(
		engine.WithFetcher(fetcher),
		engine.WithLogger(logger),
		engine.WithRootURL(cfg.BaseURL),
		engine.WithWorkCount(cfg.WorkCount),
		engine.WithBudget(cfg.Budget),
		engine.WithRetry(cfg.Retry),
		engine.WithPolicy(policy),
	)

	forest, err := e.Crawl(ctx)
	if err != nil {
		logger.Error("crawl failed", zap.Error(err))
		return err
	}
	res := report.Aggregate(forest)
	logger.Info("report aggregated",
		zap.Int("workbooks", len(res.Workbooks)),
		zap.Int("tables", len(res.Flat)))

	tables := []collector.Storage{
		csvstorage.New(csvstorage.WithDir(cfg.CSVDir), csvstorage.WithLogger(logger.Named("csv"))),
	}
	if cfg.SqlURL != "" {
		s, err := sqlstorage.New(
			sqlstorage.WithSqlUrl(cfg.SqlURL),
			sqlstorage.WithTable(cfg.Table),
			sqlstorage.WithBatchCount(cfg.BatchCount),
			sqlstorage.WithMaxConns(cfg.MaxConns),
			sqlstorage.WithRecreate(cfg.Recreate),
			sqlstorage.WithLogger(logger.Named("sqlDB")),
		)
		if err != nil {
			logger.Error("create sqlstorage failed", zap.Error(err))
		} else {
			defer s.Close()
			tables = append(tables, s)
		}
	}
	books := []collector.WorkbookStorage{
		xlsxstorage.New(xlsxstorage.WithDir(cfg.ExcelDir), xlsxstorage.WithLogger(logger.Named("xlsx"))),
	}

	if err := collector.Export(res, tables, books); err != nil {
		logger.Error("export failed", zap.Error(err))
		return err
	}
	logger.Info("crawl finished", zap.String("csv", cfg.CSVDir), zap.String("excel", cfg.ExcelDir))
	return nil
}

func newFetcher(cfg Config, logger *zap.Logger) (spider.Fetcher, error) {
	opts := []spider.Option{
		spider.WithLogger(logger.Named("fetcher")),
		spider.WithTimeout(cfg.Timeout),
		spider.WithWaitTime(cfg.WaitTime),
		spider.WithCookie(cfg.Cookie),
		spider.WithLimit(newLimiter(cfg)),
		spider.WithUserAgent(userAgent(cfg)),
	}
	if len(cfg.Proxy) > 0 {
		p, err := proxy.RoundRobinProxySwitcher(cfg.Proxy...)
		if err != nil {
			return nil, fmt.Errorf("proxy: %w", err)
		}
		opts = append(opts, spider.WithProxy(p))
	}
	logger.Info("fetcher config",
		zap.Duration("delay", cfg.Delay),
		zap.Duration("timeout", cfg.Timeout),
		zap.Int("limits", len(cfg.Limits)),
		zap.Bool("randomUA", cfg.RandomUA),
		zap.Strings("proxy", cfg.Proxy))
	return spider.NewFetchService(spider.BrowserFetchType, opts...), nil
}

// 最小请求间隔与配置中的各项限速同时生效，非法的限速项被忽略
func newLimiter(cfg Config) limiter.RateLimiter {
	limits := []limiter.RateLimiter{limiter.MinInterval(cfg.Delay)}
	for _, l := range cfg.Limits {
		if l.EventCount <= 0 || l.EventDur <= 0 {
			continue
		}
		limits = append(limits, rate.NewLimiter(limiter.Per(l.EventCount, time.Duration(l.EventDur)*time.Second), 1))
	}
	return limiter.Multi(limits...)
}

func userAgent(cfg Config) func() string {
	if cfg.RandomUA {
		return extensions.GenerateRandomUA
	}
	return extensions.DefaultUA
}
