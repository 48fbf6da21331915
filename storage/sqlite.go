package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/CreativeUnicorns/simpleprefs"
)

const (
	sqliteCreateTableSQL = `
		CREATE TABLE IF NOT EXISTS preferences (
			store TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			type TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (store, key)
		);
	`

	sqliteUpsertSQL = `
		INSERT INTO preferences (store, key, value, type, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(store, key)
		DO UPDATE SET value = excluded.value, type = excluded.type, updated_at = excluded.updated_at
	`

	sqliteSelectSQL = `
		SELECT store, key, value, type, updated_at
		FROM preferences
		WHERE store = ? AND key = ?
	`

	sqliteSelectAllSQL = `
		SELECT store, key, value, type, updated_at
		FROM preferences
		WHERE store = ?
	`

	sqliteDeleteSQL = `DELETE FROM preferences WHERE store = ? AND key = ?`

	sqliteClearSQL = `DELETE FROM preferences WHERE store = ?`
)

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage connects to the SQLite database at dbPath and runs migrations.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) migrate() error {
	_, err := s.db.Exec(sqliteCreateTableSQL)
	return err
}

// Get retrieves an entry. It returns simpleprefs.ErrNotFound if the entry does not exist.
func (s *SQLiteStorage) Get(ctx context.Context, store, key string) (*simpleprefs.Entry, error) {
	var e simpleprefs.Entry
	err := s.db.QueryRowContext(ctx, sqliteSelectSQL, store, key).Scan(
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
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &e, nil
}

// Set stores or updates an entry.
func (s *SQLiteStorage) Set(ctx context.Context, e *simpleprefs.Entry) error {
	_, err := s.db.ExecContext(ctx, sqliteUpsertSQL,
		e.Store,
		e.Key,
		e.Value,
		string(e.Type),
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set entry: %w", err)
	}
	return nil
}

// GetAll retrieves all entries of a store.
func (s *SQLiteStorage) GetAll(ctx context.Context, store string) (map[string]*simpleprefs.Entry, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelectAllSQL, store)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Delete removes an entry. It returns simpleprefs.ErrNotFound if the entry does not exist.
func (s *SQLiteStorage) Delete(ctx context.Context, store, key string) error {
	result, err := s.db.ExecContext(ctx, sqliteDeleteSQL, store, key)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return simpleprefs.ErrNotFound
	}
	return nil
}

// Clear removes every entry of a store with a single statement.
func (s *SQLiteStorage) Clear(ctx context.Context, store string) error {
	if _, err := s.db.ExecContext(ctx, sqliteClearSQL, store); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// scanEntries reads store, key, value, type, updated_at rows into a map keyed by entry key.
func scanEntries(rows *sql.Rows) (map[string]*simpleprefs.Entry, error) {
	entries := make(map[string]*simpleprefs.Entry)

	for rows.Next() {
		var e simpleprefs.Entry
		if err := rows.Scan(&e.Store, &e.Key, &e.Value, &e.Type, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries[e.Key] = &e
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return entries, nil
}
