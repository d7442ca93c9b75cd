package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketplace-ingest-api/infrastructure/database/postgres"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Apply executa os scripts de sql/ em ordem de nome, todos na mesma transação. Os scripts são idempotentes.
func Apply(ctx context.Context, conn postgres.Conn) error {
	files, err := fs.Glob(migrationsFS, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("erro ao listar migrações: %w", err)
	}
	sort.Strings(files)

	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, file := range files {
			script, err := migrationsFS.ReadFile(file)
			if err != nil {
				return fmt.Errorf("erro ao ler migração %s: %w", file, err)
			}

			if _, err := tx.ExecContext(ctx, string(script)); err != nil {
				return fmt.Errorf("erro ao executar migração %s: %w", file, err)
			}

			logrus.WithField("file", file).Info("migration: script aplicado")
		}
		return nil
	})
}
