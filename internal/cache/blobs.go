package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Get returns the cached content for a blob URL. The memory layer is
// consulted first; a database hit is promoted into it.
func (c *Cache) Get(url string) ([]byte, bool, error) {
	if content, ok := c.mem.Get(url); ok {
		return content, true, nil
	}

	var content []byte
	err := c.db.QueryRow("SELECT content FROM blobs WHERE url = ?", url).Scan(&content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get blob %s: %w", url, err)
	}

	c.mem.Add(url, content)
	return content, true, nil
}

// Put stores content for a blob URL, replacing any previous value.
func (c *Cache) Put(url string, content []byte) error {
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO blobs (url, content, fetched_at)
		VALUES (?, ?, ?)`,
		url, content, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put blob %s: %w", url, err)
	}
	c.mem.Add(url, content)
	return nil
}

// Delete removes a blob from both layers.
func (c *Cache) Delete(url string) error {
	if _, err := c.db.Exec("DELETE FROM blobs WHERE url = ?", url); err != nil {
		return fmt.Errorf("delete blob %s: %w", url, err)
	}
	c.mem.Remove(url)
	return nil
}
