package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// JSONLWriter appends one JSON object per line to a file. Each record is
// flushed before Write returns, so an interrupted run keeps every record
// written so far.
type JSONLWriter[T any] struct {
	mu   sync.Mutex
	path string
	f    *os.File
	w    *bufio.Writer
}

// NewJSONLWriter opens path for appending, creating it if needed.
func NewJSONLWriter[T any](path string) (*JSONLWriter[T], error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &JSONLWriter[T]{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

// Write appends one record.
func (jw *JSONLWriter[T]) Write(record T) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}

	jw.mu.Lock()
	defer jw.mu.Unlock()
	if jw.f == nil {
		return fmt.Errorf("write %s: writer closed", jw.path)
	}
	if _, err := jw.w.Write(b); err != nil {
		return err
	}
	if err := jw.w.WriteByte('\n'); err != nil {
		return err
	}
	return jw.w.Flush()
}

// Close flushes and closes the file.
func (jw *JSONLWriter[T]) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	if jw.f == nil {
		return nil
	}
	err := jw.w.Flush()
	if cerr := jw.f.Close(); err == nil {
		err = cerr
	}
	jw.f = nil
	return err
}

// ReadJSONL reads every record of a JSONL file. Blank lines and lines
// starting with '#' are skipped. A missing file yields ErrNotFound.
func ReadJSONL[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	var records []T
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		records = append(records, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
