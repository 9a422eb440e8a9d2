package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("level from config", func(t *testing.T) {
		logger, err := New("warn", false)
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		logger, err := New("error", true)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := New("chatty", false)
		assert.Error(t, err)
	})
}
