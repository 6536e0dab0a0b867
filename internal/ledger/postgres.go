package ledger

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/sftpfeed/internal/ledger/migrations"
)

// PostgresRecorder persists ledger entries in PostgreSQL.
type PostgresRecorder struct {
	db *sql.DB
}

// NewPostgresRecorder opens the database and brings the schema up to date.
func NewPostgresRecorder(dsn string) (*PostgresRecorder, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	r := &PostgresRecorder{db: db}

	if err := r.runMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return r, nil
}

func (r *PostgresRecorder) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, r.db, ".")
}

func (r *PostgresRecorder) Record(ctx context.Context, e *Entry) error {
	query :=
		`INSERT INTO ingests (remote_name, size_bytes, sha256, status, ingested_at)
         VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, e.RemoteName, e.Size, e.SHA256, e.Status, e.IngestedAt)
	if err != nil {
		return fmt.Errorf("record ingest: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) Close() error {
	return r.db.Close()
}
