package harbour

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

var (
	Configuration        = defaultConfiguration() // 配置文件根节点
	configurationManager *viper.Viper             // 配置管理器
	configurationOnce    sync.Once
)

func (build *HostBuilder) UseConfiguration(path string) *HostBuilder {
	configurationOnce.Do(func() {
		manager, root, err := loadConfiguration(path)
		if err != nil {
			panic(err)
		}
		configurationManager = manager
		Configuration = root
		build.ApplicationName = Configuration.AppName
	})
	return build
}

func loadConfiguration(path string) (*viper.Viper, *ConfigurationRoot, error) {
	manager := viper.New()
	manager.SetConfigFile(path)
	manager.SetDefault("logger.level", string(Info))
	manager.SetDefault("logger.path", "./logs")
	manager.SetDefault("converter.tagName", "db")
	manager.SetDefault("converter.cacheSetters", true)
	if err := manager.ReadInConfig(); err != nil {
		return nil, nil, errors.Errorf("配置文件读取失败！Error:%v", err)
	}
	root := new(ConfigurationRoot)
	if err := manager.Unmarshal(root); err != nil {
		return nil, nil, errors.Errorf("转换配置对象错误！Error:%v", err)
	}
	return manager, root, nil
}

func GetSection(key string) (val string) {
	if configurationManager == nil {
		panic(errors.Errorf("请调用UseConfiguration()初始化配置组件！"))
	}
	return configurationManager.GetString(key)
}

type ConfigurationRoot struct {
	AppName   string    `json:"appName" yaml:"appName" mapstructure:"appName"`
	Version   string    `json:"version" yaml:"version" mapstructure:"version"`
	Logger    Logger    `json:"logger" yaml:"logger" mapstructure:"logger"`
	Converter Converter `json:"converter" yaml:"converter" mapstructure:"converter"`
}

func defaultConfiguration() *ConfigurationRoot {
	return &ConfigurationRoot{
		Logger:    Logger{Level: Info, Path: "./logs"},
		Converter: Converter{TagName: "db", CacheSetters: true},
	}
}

// ============================================================================
// 日志配置
// ============================================================================

type Logger struct {
	Level     LogLevel `json:"level" yaml:"level" mapstructure:"level"`
	Path      string   `json:"path" yaml:"path" mapstructure:"path"`
	MaxSize   int      `json:"maxSize" yaml:"maxSize" mapstructure:"maxSize"`
	MaxAge    int      `json:"maxAge" yaml:"maxAge" mapstructure:"maxAge"`
	MaxBackup int      `json:"maxBackup" yaml:"maxBackup" mapstructure:"maxBackup"`
	WriteFile bool     `json:"writeFile" yaml:"writeFile"  mapstructure:"writeFile"`
}

type LogLevel string

const (
	Debug LogLevel = "Debug"
	Info  LogLevel = "Info"
	Warn  LogLevel = "Warn"
	Error LogLevel = "Error"
)

func (enum LogLevel) ToZapLevel() zapcore.Level {
	switch enum {
	case Debug:
		return zapcore.DebugLevel
	case Warn:
		return zapcore.WarnLevel
	case Info:
		return zapcore.InfoLevel
	case Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ============================================================================
// 实体转换配置
// ============================================================================

type Converter struct {
	TagName      string `json:"tagName" yaml:"tagName" mapstructure:"tagName"`
	CacheSetters bool   `json:"cacheSetters" yaml:"cacheSetters" mapstructure:"cacheSetters"`
}

func (options Converter) ToOptions() ConverterOptions {
	return ConverterOptions{
		TagName:      options.TagName,
		CacheSetters: options.CacheSetters,
	}
}
