package cache

// schemaSQL defines the cache tables.
//   - blobs: decoded file contents keyed by GitHub blob API URL. Blob URLs
//     name content by hash, so rows never go stale.
//   - scraped_pairs: Java 8 / Java 11 file pairs already mined for
//     candidates, with the counts found.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS blobs (
    url TEXT PRIMARY KEY,
    content BLOB NOT NULL,
    fetched_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scraped_pairs (
    java8_url TEXT NOT NULL,
    java11_url TEXT NOT NULL,
    path TEXT NOT NULL DEFAULT '',
    same_params INTEGER NOT NULL DEFAULT 0,
    diff_params INTEGER NOT NULL DEFAULT 0,
    scraped_at TEXT NOT NULL,
    PRIMARY KEY (java8_url, java11_url)
);

CREATE INDEX IF NOT EXISTS idx_scraped_path ON scraped_pairs(path);
`

func (c *Cache) initSchema() error {
	_, err := c.db.Exec(schemaSQL)
	return err
}
