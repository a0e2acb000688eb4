package harbour

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfiguration(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appsettings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfiguration(t *testing.T) {
	t.Run("Valid call loadConfiguration", func(t *testing.T) {
		path := writeConfiguration(t, `
appName: harbour-demo
version: 1.0.0
logger:
  level: Debug
  maxSize: 10
  writeFile: true
converter:
  tagName: column
  cacheSetters: false
`)
		manager, root, err := loadConfiguration(path)
		require.NoError(t, err)
		assert.Equal(t, "harbour-demo", root.AppName)
		assert.Equal(t, "1.0.0", root.Version)
		assert.Equal(t, Debug, root.Logger.Level)
		assert.Equal(t, 10, root.Logger.MaxSize)
		assert.True(t, root.Logger.WriteFile)
		assert.Equal(t, "./logs", root.Logger.Path, "Expected default log path")
		assert.Equal(t, ConverterOptions{TagName: "column"}, root.Converter.ToOptions())
		assert.Equal(t, "column", manager.GetString("converter.tagName"))
	})

	t.Run("Valid call loadConfiguration applies converter defaults", func(t *testing.T) {
		path := writeConfiguration(t, "appName: harbour-demo\n")
		_, root, err := loadConfiguration(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultConverterOptions(), root.Converter.ToOptions())
		assert.Equal(t, Info, root.Logger.Level)
	})

	t.Run("Invalid call loadConfiguration with missing file", func(t *testing.T) {
		_, _, err := loadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, Debug.ToZapLevel())
	assert.Equal(t, zapcore.InfoLevel, Info.ToZapLevel())
	assert.Equal(t, zapcore.WarnLevel, Warn.ToZapLevel())
	assert.Equal(t, zapcore.ErrorLevel, Error.ToZapLevel())
	assert.Equal(t, zapcore.InfoLevel, LogLevel("Verbose").ToZapLevel())
}

func TestCreateHostBuilder(t *testing.T) {
	t.Setenv("HARBOUR_ENV", string(Test))
	build := CreateHostBuilder(&HostOptions{EnvironmentName: "HARBOUR_ENV"})
	require.NotNil(t, build)
	assert.Same(t, build, CreateHostBuilder(&HostOptions{EnvironmentName: "OTHER_ENV"}), "Expected a single host builder per process")
	assert.Equal(t, Test, build.Environment)
	assert.Equal(t, version, build.FrameworkVersion)
}
