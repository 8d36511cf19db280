package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

/*
无输入，输出一个编码器配置

在生产环境编码器配置的基础上，日志级别使用大写，时间使用ISO8601格式，爬取日志里的name、url字段直接作为顶层键输出
*/
func DefaultEncoderConfig() zapcore.EncoderConfig {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	return encoderConfig
}

// 默认使用JSON编码器，便于对爬取日志做grep/jq
func DefaultEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(DefaultEncoderConfig())
}

// 终端输出时使用的编码器，级别带颜色
func ConsoleEncoder() zapcore.Encoder {
	cfg := DefaultEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

/*
无输入，输出一个Zap选项列表

记录调用者信息，仅当日志级别>=DPanicLevel时记录堆栈
*/
func DefaultOption() []zap.Option {
	var stackTraceLevel zap.LevelEnablerFunc = func(level zapcore.Level) bool {
		return level >= zapcore.DPanicLevel
	}
	return []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(stackTraceLevel),
	}
}

// 日志文件单个最大200MB，使用本地时间命名并压缩历史文件
func DefaultLumberjackLogger() *lumberjack.Logger {
	return &lumberjack.Logger{
		MaxSize:    200,
		MaxBackups: 5,
		LocalTime:  true,
		Compress:   true,
	}
}
