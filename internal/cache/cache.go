// Package cache is a sqlite-backed page cache for raw fetched records,
// keyed by (source, username). Only raw records are cached; bucketed views
// are cheap and recomputed on every run.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kertal/git-vegas/internal/activity"
)

// Cache stores fetched record pages with a freshness TTL.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// DefaultPath places the cache under the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "git-vegas", "cache.db"), nil
}

// Open opens (creating if needed) the cache database at path.
func Open(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", "file:"+path+"?cache=shared")
	if err != nil {
		return nil, err
	}
	c := &Cache{db: db, ttl: ttl}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating cache: %w", err)
	}
	return c, nil
}

func (c *Cache) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		source     TEXT NOT NULL,
		username   TEXT NOT NULL,
		payload    BLOB NOT NULL,
		fetched_at DATETIME NOT NULL,
		PRIMARY KEY (source, username)
	);`
	_, err := c.db.Exec(schema)
	return err
}

// Get returns the cached records for (source, username) when a fresh entry
// exists. The cache is best-effort: corruption or staleness is a miss, not
// an error.
func (c *Cache) Get(source, username string) ([]activity.Record, bool) {
	var payload []byte
	var fetchedAt time.Time
	err := c.db.QueryRow(
		`SELECT payload, fetched_at FROM pages WHERE source = ? AND username = ?`,
		source, username).Scan(&payload, &fetchedAt)
	if err != nil {
		return nil, false
	}
	if time.Since(fetchedAt) > c.ttl {
		return nil, false
	}
	var records []activity.Record
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, false
	}
	return records, true
}

// Put stores records for (source, username), replacing any previous entry.
func (c *Cache) Put(source, username string, records []activity.Record) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(`
		INSERT INTO pages (source, username, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (source, username) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at`,
		source, username, payload, time.Now().UTC())
	return err
}

// Purge drops every cached page.
func (c *Cache) Purge() error {
	_, err := c.db.Exec(`DELETE FROM pages`)
	return err
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
