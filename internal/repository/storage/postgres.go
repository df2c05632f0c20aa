package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// import the PostgreSQL driver to register it with the database/sql package.
	_ "github.com/lib/pq"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
)

const (
	postgresMaxOpenConns    = 10
	postgresConnMaxLifetime = 5 * time.Minute
)

type PostgresStorage struct {
	Connection *sql.DB
}

func NewPostgresStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	conn.SetMaxOpenConns(postgresMaxOpenConns)
	conn.SetConnMaxLifetime(postgresConnMaxLifetime)

	return &PostgresStorage{Connection: conn}, nil
}

func (that *PostgresStorage) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`

	_, err := that.Connection.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *PostgresStorage) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM kv WHERE key = $1`

	var value string

	err := that.Connection.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperror.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("can't get key: %w", err)
	}

	return value, nil
}

func (that *PostgresStorage) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	_, err := that.Connection.ExecContext(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("can't set key: %w", err)
	}

	return nil
}

func (that *PostgresStorage) Close() error {
	return that.Connection.Close()
}
