package harbour

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

const version = "v0.1.0"

type Env string

const (
	Local Env = "Local"
	Dev   Env = "Dev"
	Test  Env = "Test"
	Uat   Env = "Uat"
	Gray  Env = "Gray"
	Prod  Env = "Prod"
)

// HostOptions
//
// @Description:应用启动参数
type HostOptions struct {
	//  EnvironmentName
	//  @Description: 保存运行环境的环境变量名
	EnvironmentName string
}

// HostBuilder
//
// @Description: 应用启动构造器
type HostBuilder struct {
	//  Environment
	//  @Description:  运行环境
	Environment Env

	//  FrameworkVersion
	//  @Description:  框架版本
	FrameworkVersion string

	//  ApplicationName
	//  @Description: 应用名称
	ApplicationName string
}

var (
	hostOnce  sync.Once
	hostBuild *HostBuilder
)

// CreateHostBuilder
//
//	@Description: 创建应用构造器
//	@param options 应用启动参数
//	@return *HostBuilder
func CreateHostBuilder(options *HostOptions) *HostBuilder {
	hostOnce.Do(func() {
		hostBuild = &HostBuilder{
			Environment:      Env(os.Getenv(options.EnvironmentName)),
			FrameworkVersion: version,
		}
	})
	return hostBuild
}

// UseEntityConverter
//
//	@Description: 按配置文件的 converter 节点替换默认实体转换器
//	@return *HostBuilder
func (build *HostBuilder) UseEntityConverter() *HostBuilder {
	options := Configuration.Converter.ToOptions()
	setConverter(NewEntityConverter(options))
	zap.L().Info("初始化实体转换组件完毕！", zap.String("tagName", options.TagName), zap.Bool("cacheSetters", options.CacheSetters))
	return build
}
