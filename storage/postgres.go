package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/CreativeUnicorns/simpleprefs"
)

// sqlOpenFunc is a package-level variable that can be overridden for testing.
var sqlOpenFunc = sql.Open

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS preferences (
			store TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			type TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (store, key)
		);
	`

	upsertSQL = `
		INSERT INTO preferences (store, key, value, type, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (store, key)
		DO UPDATE SET value = $3, type = $4, updated_at = $5
	`

	selectSQL = `
		SELECT store, key, value, type, updated_at
		FROM preferences
		WHERE store = $1 AND key = $2
	`

	selectAllSQL = `
		SELECT store, key, value, type, updated_at
		FROM preferences
		WHERE store = $1
	`

	deleteSQL = `DELETE FROM preferences WHERE store = $1 AND key = $2`

	clearSQL = `DELETE FROM preferences WHERE store = $1`
)

// PostgresStorage implements the Storage interface using PostgreSQL.
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage connects to PostgreSQL with connString and runs migrations.
func NewPostgresStorage(connString string) (*PostgresStorage, error) {
	db, err := sqlOpenFunc("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	storage := &PostgresStorage{db: db}
	if err := storage.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: failed to run migrations: %w", err)
	}

	return storage, nil
}

func (s *PostgresStorage) migrate() error {
	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("postgres: failed to execute create table statement: %w", err)
	}
	return nil
}

// Get retrieves an entry. It returns simpleprefs.ErrNotFound if the entry does not exist.
func (s *PostgresStorage) Get(ctx context.Context, store, key string) (*simpleprefs.Entry, error) {
	var e simpleprefs.Entry
	err := s.db.QueryRowContext(ctx, selectSQL, store, key).Scan(
		&e.Store,
		&e.Key,
		&e.Value,
		&e.Type,
		&e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, simpleprefs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan entry for store '%s', key '%s': %w", store, key, err)
	}
	return &e, nil
}

// Set stores or updates an entry.
func (s *PostgresStorage) Set(ctx context.Context, e *simpleprefs.Entry) error {
	_, err := s.db.ExecContext(ctx, upsertSQL,
		e.Store,
		e.Key,
		e.Value,
		string(e.Type),
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to execute upsert for store '%s', key '%s': %w", e.Store, e.Key, err)
	}
	return nil
}

// GetAll retrieves all entries of a store.
func (s *PostgresStorage) GetAll(ctx context.Context, store string) (map[string]*simpleprefs.Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectAllSQL, store)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query entries for store '%s': %w", store, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Delete removes an entry. It returns simpleprefs.ErrNotFound if the entry does not exist.
func (s *PostgresStorage) Delete(ctx context.Context, store, key string) error {
	result, err := s.db.ExecContext(ctx, deleteSQL, store, key)
	if err != nil {
		return fmt.Errorf("postgres: failed to execute delete for store '%s', key '%s': %w", store, key, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres: failed to get affected rows for store '%s', key '%s': %w", store, key, err)
	}
	if n == 0 {
		return simpleprefs.ErrNotFound
	}
	return nil
}

// Clear removes every entry of a store with a single DELETE.
func (s *PostgresStorage) Clear(ctx context.Context, store string) error {
	if _, err := s.db.ExecContext(ctx, clearSQL, store); err != nil {
		return fmt.Errorf("postgres: failed to clear store '%s': %w", store, err)
	}
	return nil
}

// Close closes the PostgreSQL database connection.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
