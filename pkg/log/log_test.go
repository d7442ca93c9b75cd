package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForContext(t *testing.T) {
	SetupTestLogger()
	hook := test.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithRunID(ctx, "abc123")

	t.Run("Produção registra correlação e execução", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		hook.Reset()

		ForContext(ctx).WithFields(Fields{"query": "year=2024"}).Info("ok")

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, correlationID, entry.Data["correlation_id"])
		assert.Equal(t, "abc123", entry.Data["run_id"])
		assert.Equal(t, "year=2024", entry.Data["query"])
	})

	t.Run("Desenvolvimento omite campos verbosos", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		hook.Reset()

		ForContext(ctx).WithFields(Fields{"query": "year=2024", "path": "/v1/ingest"}).
			WithField("user_agent", "curl").
			Info("ok")

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.NotContains(t, entry.Data, "correlation_id")
		assert.NotContains(t, entry.Data, "query")
		assert.NotContains(t, entry.Data, "user_agent")
		assert.Equal(t, "abc123", entry.Data["run_id"])
		assert.Equal(t, "/v1/ingest", entry.Data["path"])
	})

	t.Run("Contexto sem IDs", func(t *testing.T) {
		assert.Empty(t, GetRunID(context.Background()))
		assert.Empty(t, GetCorrelationID(context.Background()))
	})
}

func TestSetup(t *testing.T) {
	t.Cleanup(SetupTestLogger)

	t.Setenv("APP_ENV", "production")
	require.NoError(t, Setup("warn"))
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	t.Setenv("APP_ENV", "")
	assert.Error(t, Setup("barulhento"))
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
}
