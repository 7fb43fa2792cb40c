package logger_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"halfearth/internal/logger"
)

func TestInit(t *testing.T) {
	os.Setenv("GO_ENV", "development")
	require.NoError(t, logger.Init(nil))

	os.Setenv("GO_ENV", "production")
	require.NoError(t, logger.Init(nil))

	os.Unsetenv("GO_ENV")
	require.NoError(t, logger.Shutdown())
}

func TestWithStepContext(t *testing.T) {
	require.NoError(t, logger.Init(nil))
	defer logger.Shutdown()

	l := logger.WithStepContext(2031)
	require.NotNil(t, l)
	l.Info("step completed", zap.Int("completed_projects", 2))
}

func TestGetFallsBackWhenUninitialized(t *testing.T) {
	require.NotNil(t, logger.Get())
}
