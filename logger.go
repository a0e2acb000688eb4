package harbour

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logOnce sync.Once

func (build *HostBuilder) UseLogger() *HostBuilder {
	logOnce.Do(func() {
		zap.ReplaceGlobals(newLogger(Configuration.Logger, build.Environment))
		zap.L().Info(fmt.Sprintf("应用名称:[%v]", build.ApplicationName))
		zap.L().Info(fmt.Sprintf("应用版本:[%v]", Configuration.Version))
		zap.L().Info(fmt.Sprintf("运行环境:[%v]", build.Environment))
	})
	return build
}

func newLogger(options Logger, env Env) *zap.Logger {
	// 日志基础配置
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeName = zapcore.FullNameEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoderConfig.EncodeDuration = zapcore.SecondsDurationEncoder
	encoderConfig.EncodeTime = func(t time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(t.Format(string(DateMillisecond)))
	}
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	// 日志输出配置
	var core zapcore.Core
	if options.WriteFile {
		encoder := zapcore.NewConsoleEncoder(encoderConfig)
		minLevel := options.Level.ToZapLevel()
		levelFile := func(name string, match func(zapcore.Level) bool) zapcore.Core {
			return zapcore.NewCore(encoder, getWriteSyncer(options, filepath.Join(options.Path, name)), zap.LevelEnablerFunc(func(lev zapcore.Level) bool {
				return lev >= minLevel && match(lev)
			}))
		}
		core = zapcore.NewTee(
			levelFile("debug.log", func(lev zapcore.Level) bool { return lev == zap.DebugLevel }),
			levelFile("info.log", func(lev zapcore.Level) bool { return lev == zap.InfoLevel }),
			levelFile("warn.log", func(lev zapcore.Level) bool { return lev == zap.WarnLevel }),
			levelFile("error.log", func(lev zapcore.Level) bool { return lev >= zap.ErrorLevel }),
		)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), options.Level.ToZapLevel())
	}

	// 创建日志实例
	if env == Local || env == Dev {
		return zap.New(core, zap.AddCaller(), zap.Development())
	}
	return zap.New(core, zap.AddCaller())
}

func getWriteSyncer(options Logger, filename string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filename,          // 日志文件路径
		MaxSize:    options.MaxSize,   // 每个日志文件保存的大小 单位:M
		MaxAge:     options.MaxAge,    // 文件最多保存多少天
		MaxBackups: options.MaxBackup, // 日志文件最多保存多少个备份
		Compress:   false,
	})
}
