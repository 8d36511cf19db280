package sqlstorage

// 用于配置sql存储相关的选项

import (
	"github.com/dszqbsm/wannasurf/sqldb"
	"go.uber.org/zap"
)

type options struct {
	logger     *zap.Logger
	sqlUrl     string
	table      string
	BatchCount int // 批量数
	maxConns   int
	recreate   bool
	db         sqldb.DBer
}

// 默认选项
var defaultOptions = options{
	logger:     zap.NewNop(),
	table:      "surf_spots",
	BatchCount: 50,
	maxConns:   16,
}

type Option func(opts *options)

// 配置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// 配置数据库的链接url
func WithSqlUrl(sqlUrl string) Option {
	return func(opts *options) {
		opts.sqlUrl = sqlUrl
	}
}

// 配置浪点表名
func WithTable(table string) Option {
	return func(opts *options) {
		opts.table = table
	}
}

// 配置批量处理的数量
func WithBatchCount(batchCount int) Option {
	return func(opts *options) {
		opts.BatchCount = batchCount
	}
}

// 配置数据库的最大连接数
func WithMaxConns(n int) Option {
	return func(opts *options) {
		opts.maxConns = n
	}
}

// 为true时首次写入前先删除旧表，每次运行得到一份完整的新数据
func WithRecreate(recreate bool) Option {
	return func(opts *options) {
		opts.recreate = recreate
	}
}

// 使用已有的数据库连接，设置后不再根据url建立连接
func WithDB(db sqldb.DBer) Option {
	return func(opts *options) {
		opts.db = db
	}
}
