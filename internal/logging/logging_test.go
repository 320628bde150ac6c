package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/entityfusion/fusion/internal/logging"
)

func TestNewMapsVerbosityToLevel(t *testing.T) {
	cases := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{3, zapcore.DebugLevel},
	}
	for _, tc := range cases {
		logger, err := logging.New(tc.verbosity)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(tc.want))
	}
}
