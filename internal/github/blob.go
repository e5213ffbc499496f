package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// BlobCache stores decoded blob contents by blob URL.
type BlobCache interface {
	Get(url string) ([]byte, bool, error)
	Put(url string, content []byte) error
}

type blobResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// BlobSource returns the decoded content of the blob at blobURL, reading
// through the cache when one is configured. Cache failures fall back to the
// API.
func (c *Client) BlobSource(ctx context.Context, blobURL string) (string, error) {
	if c.cache != nil {
		if content, ok, err := c.cache.Get(blobURL); err == nil && ok {
			return string(content), nil
		}
	}

	var blob blobResponse
	if err := c.getJSON(ctx, blobURL, nil, &blob); err != nil {
		return "", err
	}
	if blob.Encoding != "" && blob.Encoding != "base64" {
		return "", fmt.Errorf("blob %s: unsupported encoding %q", blobURL, blob.Encoding)
	}

	content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(blob.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("blob %s: decode: %w", blobURL, err)
	}

	if c.cache != nil {
		_ = c.cache.Put(blobURL, content)
	}
	return string(content), nil
}
