package harbour

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	t.Run("Valid call newLogger writes per level files", func(t *testing.T) {
		dir := t.TempDir()
		log := newLogger(Logger{Level: Info, Path: dir, MaxSize: 1, WriteFile: true}, Prod)

		log.Debug("hidden")
		log.Info("entity plan ready", zap.String("entity", "person"))
		log.Error("conversion failed")
		_ = log.Sync()

		info, err := os.ReadFile(filepath.Join(dir, "info.log"))
		require.NoError(t, err)
		assert.Contains(t, string(info), "entity plan ready")
		assert.NotContains(t, string(info), "conversion failed")

		errorLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
		require.NoError(t, err)
		assert.Contains(t, string(errorLog), "conversion failed")

		_, err = os.Stat(filepath.Join(dir, "debug.log"))
		assert.True(t, os.IsNotExist(err), "Expected debug file to stay absent below the configured level")
	})

	t.Run("Valid call newLogger on console", func(t *testing.T) {
		log := newLogger(Logger{Level: Warn}, Dev)
		assert.False(t, log.Core().Enabled(zap.InfoLevel))
		assert.True(t, log.Core().Enabled(zap.WarnLevel))
	})
}
