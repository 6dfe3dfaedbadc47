package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"chatty", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(tt.level)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNewSugared(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewSugared(zap.New(core))

	logger.Debugf("slab %d", 1)
	logger.Infof("income %s", "1000000")
	logger.Warnf("retrieval failed")
	logger.Errorf("backend: %v", "timeout")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, "slab 1", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "backend: timeout", entries[3].Message)
}

func TestNewSugared_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() { NewSugared(nil).Infof("ignored") })
	assert.NotPanics(t, func() { Nop().Errorf("ignored") })
}

func TestContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info("from context")

	assert.Equal(t, 1, logs.Len())
	assert.NotNil(t, FromContext(context.Background()))
	assert.Equal(t, context.Background(), WithLogger(context.Background(), nil))
}
