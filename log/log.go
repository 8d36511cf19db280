package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Plugin = zapcore.Core

/*
输入一个日志核心和可选的Zap选项，输出一个日志记录器

先应用DefaultOption()中的默认选项，再追加调用方传入的选项
*/
func NewLogger(plugin zapcore.Core, options ...zap.Option) *zap.Logger {
	return zap.New(plugin, append(DefaultOption(), options...)...)
}

// 使用默认JSON编码器创建一个写入writer的日志核心
func NewPlugin(writer zapcore.WriteSyncer, enabler zapcore.LevelEnabler) Plugin {
	return zapcore.NewCore(DefaultEncoder(), writer, enabler)
}

// 终端友好的输出，crawl命令在未配置日志文件时使用
func NewConsolePlugin(enabler zapcore.LevelEnabler) Plugin {
	return zapcore.NewCore(ConsoleEncoder(), zapcore.Lock(zapcore.AddSync(os.Stderr)), enabler)
}

/*
输入一个日志文件路径和日志级别过滤器，输出一个日志核心和一个io.Closer

lumberjack没有Sync，进程退出前需要调用Close
*/
func NewFilePlugin(filePath string, enabler zapcore.LevelEnabler) (Plugin, io.Closer) {
	writer := DefaultLumberjackLogger()
	writer.Filename = filePath
	return NewPlugin(zapcore.AddSync(writer), enabler), writer
}

// 将多个日志核心合并，同一条日志会写入每一个核心
func NewTeePlugin(plugins ...Plugin) Plugin {
	return zapcore.NewTee(plugins...)
}

/*
输入日志级别字符串和日志文件路径，输出一个日志记录器、一个io.Closer和一个错误

级别字符串解析失败时返回错误；filePath为空时只输出到终端，否则同时写入轮转文件
*/
func Setup(levelText string, filePath string) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(levelText)
	if err != nil {
		return nil, nil, err
	}
	console := NewConsolePlugin(level)
	if filePath == "" {
		return NewLogger(console), nopCloser{}, nil
	}
	file, closer := NewFilePlugin(filePath, level)
	return NewLogger(NewTeePlugin(console, file)), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
