package sqldb

// 函数式选项模式

import (
	"go.uber.org/zap"
)

type options struct {
	logger   *zap.Logger
	sqlUrl   string
	maxConns int
}

// 默认选项
var defaultOptions = options{
	logger:   zap.NewNop(),
	maxConns: 16,
}

type Option func(opts *options)

// 配置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// 配置数据库的链接url，形如user:password@tcp(host:port)/db?charset=utf8mb4
func WithConnURL(sqlURL string) Option {
	return func(opts *options) {
		opts.sqlUrl = sqlURL
	}
}

// 配置最大连接数与最大空闲连接数
func WithMaxConns(n int) Option {
	return func(opts *options) {
		opts.maxConns = n
	}
}
