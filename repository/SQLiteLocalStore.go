package repository

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteLocalStore persists the local key/value pairs in a single-file
// SQLite database on the device.
type SQLiteLocalStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// one writer; sqlite serialises anyway
	db.SetMaxOpenConns(1)
	return db, nil
}

func NewSQLiteLocalStore(conn *sql.DB) (*SQLiteLocalStore, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	_, err = conn.Exec("CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)")
	if err != nil {
		return nil, err
	}
	return &SQLiteLocalStore{
		db: conn,
	}, nil
}

func (s *SQLiteLocalStore) Get(ctx context.Context, key string) (value string, exists bool, err error) {
	err = s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		}
		return
	}
	exists = true
	return
}

func (s *SQLiteLocalStore) Set(ctx context.Context, key string, value string) (err error) {
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return
}
