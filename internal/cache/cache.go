// Package cache provides the SQLite-backed store for GitHub blob contents and
// the record of file pairs already scraped. The database lives in
// .jdkmig/cache.db; recently used blobs are also held in memory.
package cache

import (
	"database/sql"
	"fmt"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"
)

// DefaultMemoryEntries is the number of blobs kept in memory.
const DefaultMemoryEntries = 512

// Cache manages the .jdkmig/cache.db SQLite database.
type Cache struct {
	db     *sql.DB
	dbPath string
	mem    *lru.Cache[string, []byte]
}

// Open opens or creates the cache database in dir.
func Open(dir string) (*Cache, error) {
	return OpenSize(dir, DefaultMemoryEntries)
}

// OpenSize is Open with an explicit in-memory entry limit.
func OpenSize(dir string, memEntries int) (*Cache, error) {
	if memEntries <= 0 {
		memEntries = DefaultMemoryEntries
	}
	mem, err := lru.New[string, []byte](memEntries)
	if err != nil {
		return nil, fmt.Errorf("create memory cache: %w", err)
	}

	dbPath := filepath.Join(dir, "cache.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &Cache{db: db, dbPath: dbPath, mem: mem}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Clear removes all blobs and scrape records.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec("DELETE FROM blobs; DELETE FROM scraped_pairs;"); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	c.mem.Purge()
	return nil
}

// ClearScraped removes the scrape records but keeps blobs.
func (c *Cache) ClearScraped() error {
	if _, err := c.db.Exec("DELETE FROM scraped_pairs"); err != nil {
		return fmt.Errorf("clear scraped pairs: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.dbPath
}

// DB returns the underlying database connection.
func (c *Cache) DB() *sql.DB {
	return c.db
}

// Stats describes the cache contents.
type Stats struct {
	Blobs        int64 `json:"blobs" yaml:"blobs"`
	BlobBytes    int64 `json:"blob_bytes" yaml:"blob_bytes"`
	ScrapedPairs int64 `json:"scraped_pairs" yaml:"scraped_pairs"`
	InMemory     int   `json:"in_memory" yaml:"in_memory"`
}

// GetStats returns statistics about the cache contents.
func (c *Cache) GetStats() (*Stats, error) {
	stats := Stats{InMemory: c.mem.Len()}

	err := c.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(LENGTH(content)), 0) FROM blobs").
		Scan(&stats.Blobs, &stats.BlobBytes)
	if err != nil {
		return nil, fmt.Errorf("count blobs: %w", err)
	}

	err = c.db.QueryRow("SELECT COUNT(*) FROM scraped_pairs").Scan(&stats.ScrapedPairs)
	if err != nil {
		return nil, fmt.Errorf("count scraped pairs: %w", err)
	}

	return &stats, nil
}
