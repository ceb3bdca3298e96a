package store

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteKV keeps the whole store in a single local file, which is the closest
// server-side analog of the browser's origin-scoped localStorage. Every Set
// is a synchronous upsert.
type SQLiteKV struct {
	db *sql.DB
}

func OpenSQLiteKV(path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv_entries (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return nil, err
	}

	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		log.Printf("[STORE ERROR] get %q: %v", key, err)
		return "", false
	}
	return value, true
}

func (s *SQLiteKV) Set(key, value string) {
	_, err := s.db.Exec(`INSERT INTO kv_entries (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		log.Printf("[STORE ERROR] set %q: %v", key, err)
	}
}

func (s *SQLiteKV) Remove(key string) {
	if _, err := s.db.Exec(`DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		log.Printf("[STORE ERROR] remove %q: %v", key, err)
	}
}

func (s *SQLiteKV) Keys() []string {
	rows, err := s.db.Query(`SELECT key FROM kv_entries`)
	if err != nil {
		log.Printf("[STORE ERROR] keys: %v", err)
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
