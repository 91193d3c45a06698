package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("json格式", func(t *testing.T) {
		log, err := New(Config{Level: "warn", Format: "json", Output: "stderr"})
		require.NoError(t, err)

		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("console格式默认输出到stdout", func(t *testing.T) {
		log, err := New(Config{Level: "DEBUG", Format: "console"})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("无效级别", func(t *testing.T) {
		_, err := New(Config{Level: "verbose"})
		assert.ErrorContains(t, err, "无效的日志级别")
	})
}

type fakeContext map[string]any

func (f fakeContext) Get(key string) (any, bool) {
	v, ok := f[key]
	return v, ok
}

func TestFrom(t *testing.T) {
	reqLog, err := New(Config{Level: "info", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	assert.Same(t, reqLog, From(fakeContext{ContextKey: reqLog}))
	assert.Same(t, zap.L(), From(fakeContext{}))
}
