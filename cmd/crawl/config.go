package crawl

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/go-micro/plugins/v4/config/encoder/toml"
	"go-micro.dev/v4/config"
	"go-micro.dev/v4/config/reader"
	"go-micro.dev/v4/config/reader/json"
	"go-micro.dev/v4/config/source"
	"go-micro.dev/v4/config/source/file"
)

// 抓取配置
type Config struct {
	LogLevel string
	LogFile  string

	BaseURL  string
	Delay    time.Duration // 两次请求之间的最小间隔
	WaitTime time.Duration // 请求前随机休眠的上限
	Timeout  time.Duration
	Cookie   string
	Proxy    []string
	Retry    bool
	Limits   []LimitConfig
	RandomUA bool // false时始终使用同一个User-Agent

	WorkCount int
	Budget    time.Duration

	MaxCountries int
	MaxZones     int
	MaxSpots     int

	CSVDir   string
	ExcelDir string

	SqlURL     string
	Table      string
	BatchCount int
	MaxConns   int
	Recreate   bool
}

// EventDur秒内最多EventCount次请求
type LimitConfig struct {
	EventCount int `json:"eventCount"`
	EventDur   int `json:"eventDur"`
}

// config.toml的结构，时间类配置以毫秒为单位，budget以秒为单位
type fileConfig struct {
	LogLevel string `json:"logLevel"`
	LogFile  string `json:"logFile"`
	Fetcher  struct {
		BaseURL  string   `json:"baseURL"`
		Delay    int      `json:"delay"`
		WaitTime int      `json:"waitTime"`
		Timeout  int      `json:"timeout"`
		Cookie   string   `json:"cookie"`
		Proxy    []string      `json:"proxy"`
		Retry    bool          `json:"retry"`
		Limits   []LimitConfig `json:"limits"`
		RandomUA bool          `json:"randomUA"`
	} `json:"fetcher"`
	Crawl struct {
		WorkCount int `json:"workCount"`
		Budget    int `json:"budget"`
	} `json:"crawl"`
	Sample struct {
		MaxCountries int `json:"maxCountries"`
		MaxZones     int `json:"maxZones"`
		MaxSpots     int `json:"maxSpots"`
	} `json:"sample"`
	Output struct {
		CSVDir   string `json:"csvDir"`
		ExcelDir string `json:"excelDir"`
	} `json:"output"`
	Storage struct {
		SqlURL     string `json:"sqlURL"`
		Table      string `json:"table"`
		BatchCount int    `json:"batchCount"`
		MaxConns   int    `json:"maxConns"`
		Recreate   bool   `json:"recreate"`
	} `json:"storage"`
}

func defaultFileConfig() fileConfig {
	var fc fileConfig
	fc.LogLevel = "INFO"
	fc.Fetcher.BaseURL = "https://www.wannasurf.com/"
	fc.Fetcher.Delay = 500
	fc.Fetcher.Timeout = 10000
	fc.Fetcher.Retry = true
	fc.Fetcher.RandomUA = true
	fc.Crawl.WorkCount = 1
	fc.Sample.MaxCountries = 1
	fc.Sample.MaxZones = 1
	fc.Sample.MaxSpots = 5
	fc.Output.CSVDir = "output_csv"
	fc.Output.ExcelDir = "excel_output"
	fc.Storage.Table = "surf_spots"
	fc.Storage.BatchCount = 50
	fc.Storage.MaxConns = 16
	return fc
}

/*
输入配置文件路径，输出配置

文件不存在时全部使用默认值，文件中没有出现的配置项同样保留默认值
*/
func LoadConfig(path string) (Config, error) {
	fc := defaultFileConfig()

	if _, err := os.Stat(path); err == nil {
		// 通过toml加载配置
		enc := toml.NewEncoder()
		cfg, err := config.NewConfig(config.WithReader(json.NewReader(reader.WithEncoder(enc))))
		if err != nil {
			return Config{}, err
		}
		defer cfg.Close()
		if err := cfg.Load(file.NewSource(
			file.WithPath(path),
			source.WithEncoder(enc),
		)); err != nil {
			return Config{}, err
		}
		if err := cfg.Scan(&fc); err != nil {
			return Config{}, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return Config{
		LogLevel: fc.LogLevel,
		LogFile:  fc.LogFile,

		BaseURL:  fc.Fetcher.BaseURL,
		Delay:    ms(fc.Fetcher.Delay),
		WaitTime: ms(fc.Fetcher.WaitTime),
		Timeout:  ms(fc.Fetcher.Timeout),
		Cookie:   fc.Fetcher.Cookie,
		Proxy:    fc.Fetcher.Proxy,
		Retry:    fc.Fetcher.Retry,
		Limits:   fc.Fetcher.Limits,
		RandomUA: fc.Fetcher.RandomUA,

		WorkCount: fc.Crawl.WorkCount,
		Budget:    time.Duration(fc.Crawl.Budget) * time.Second,

		MaxCountries: fc.Sample.MaxCountries,
		MaxZones:     fc.Sample.MaxZones,
		MaxSpots:     fc.Sample.MaxSpots,

		CSVDir:   fc.Output.CSVDir,
		ExcelDir: fc.Output.ExcelDir,

		SqlURL:     fc.Storage.SqlURL,
		Table:      fc.Storage.Table,
		BatchCount: fc.Storage.BatchCount,
		MaxConns:   fc.Storage.MaxConns,
		Recreate:   fc.Storage.Recreate,
	}, nil
}
