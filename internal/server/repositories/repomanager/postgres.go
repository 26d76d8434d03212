// Package repomanager wires repository implementations to a store and runs
// schema migrations (via goose) for the Postgres one.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bookreviews/internal/dbx"
	"github.com/dmitrijs2005/bookreviews/internal/server/migrations"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type postgresRepos struct {
	db dbx.DBTX
}

func (r postgresRepos) Users() users.Repository     { return users.NewPostgresRepository(r.db) }
func (r postgresRepos) Books() books.Repository     { return books.NewPostgresRepository(r.db) }
func (r postgresRepos) Reviews() reviews.Repository { return reviews.NewPostgresRepository(r.db) }

// PostgresRepositoryManager vends PostgreSQL-backed repositories over a pgx
// connection pool.
type PostgresRepositoryManager struct {
	postgresRepos
	conn *sql.DB
}

// NewPostgresRepositoryManager opens a pgx pool for dsn. The connection is
// established lazily; call Ping to check it.
func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return NewPostgresRepositoryManagerFromDB(conn), nil
}

// NewPostgresRepositoryManagerFromDB wraps an already opened database.
func NewPostgresRepositoryManagerFromDB(conn *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{postgresRepos: postgresRepos{db: conn}, conn: conn}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.conn, "."); err != nil {
		return err
	}
	return nil
}

func (m *PostgresRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return dbx.WithTx(ctx, m.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, postgresRepos{db: tx})
	})
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.conn.PingContext(ctx)
}

func (m *PostgresRepositoryManager) Close() error {
	return m.conn.Close()
}
