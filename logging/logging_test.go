package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/milk9111/patrolai/config"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		level  string
		format string
		want   zapcore.Level
	}{
		{"debug", "console", zapcore.DebugLevel},
		{"warn", "json", zapcore.WarnLevel},
		{"loud", "console", zapcore.InfoLevel},
	}
	for _, c := range cases {
		t.Run(c.level+"/"+c.format, func(t *testing.T) {
			l, err := New(config.LoggingConfig{Level: c.level, Format: c.format})
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(c.want))
			if c.want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(c.want-1))
			}
		})
	}
}
