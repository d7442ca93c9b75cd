//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/migration"
)

// setupTestDB sobe um PostgreSQL descartável e aplica as migrações
func setupTestDB(t *testing.T) *postgres.Connection {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("marketplace"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "falha ao subir o container do postgres")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := postgres.Open(ctx, dsn, postgres.Pool{MaxOpenConns: 4, ConnMaxIdleTime: time.Minute})
	require.NoError(t, err)

	require.NoError(t, migration.Apply(ctx, conn))

	t.Cleanup(func() {
		_ = conn.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("falha ao encerrar o container: %v", err)
		}
	})

	return conn
}
