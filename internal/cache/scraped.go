package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ScrapedPair records one file pair mined for candidates.
type ScrapedPair struct {
	Java8URL   string
	Java11URL  string
	Path       string
	SameParams int
	DiffParams int
	ScrapedAt  time.Time
}

// MarkScraped records a mined file pair, replacing an earlier record.
func (c *Cache) MarkScraped(p ScrapedPair) error {
	if p.ScrapedAt.IsZero() {
		p.ScrapedAt = time.Now()
	}
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO scraped_pairs
			(java8_url, java11_url, path, same_params, diff_params, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Java8URL, p.Java11URL, p.Path, p.SameParams, p.DiffParams,
		p.ScrapedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("mark scraped %s: %w", p.Path, err)
	}
	return nil
}

// GetScraped returns the record for a file pair.
// Returns sql.ErrNoRows if the pair has not been scraped.
func (c *Cache) GetScraped(java8URL, java11URL string) (*ScrapedPair, error) {
	var p ScrapedPair
	var scrapedAt string
	err := c.db.QueryRow(`
		SELECT java8_url, java11_url, path, same_params, diff_params, scraped_at
		FROM scraped_pairs WHERE java8_url = ? AND java11_url = ?`,
		java8URL, java11URL,
	).Scan(&p.Java8URL, &p.Java11URL, &p.Path, &p.SameParams, &p.DiffParams, &scrapedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get scraped %s: %w", java8URL, err)
	}
	p.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
	return &p, nil
}

// IsScraped reports whether a file pair has been recorded.
func (c *Cache) IsScraped(java8URL, java11URL string) (bool, error) {
	_, err := c.GetScraped(java8URL, java11URL)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AllScraped returns every record ordered by path.
func (c *Cache) AllScraped() ([]ScrapedPair, error) {
	rows, err := c.db.Query(`
		SELECT java8_url, java11_url, path, same_params, diff_params, scraped_at
		FROM scraped_pairs ORDER BY path, java8_url`)
	if err != nil {
		return nil, fmt.Errorf("list scraped pairs: %w", err)
	}
	defer rows.Close()

	var out []ScrapedPair
	for rows.Next() {
		var p ScrapedPair
		var scrapedAt string
		if err := rows.Scan(&p.Java8URL, &p.Java11URL, &p.Path, &p.SameParams, &p.DiffParams, &scrapedAt); err != nil {
			return nil, fmt.Errorf("scan scraped pair: %w", err)
		}
		p.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}
