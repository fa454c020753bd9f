// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metacache persists lightweight per-publication metadata between
// ingestion runs so stale or excluded remote IDs can be rejected without a
// network round trip.
package metacache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Well-known meta keys written by the ingestion pipeline.
const (
	// MetaCollaboration stores the collaboration classification. A value
	// written here (by the pipeline or a human reviewer) is reused verbatim
	// on every later run; it never regresses to a recomputed guess.
	MetaCollaboration = "collaboration"

	// MetaExclude marks a publication a reviewer rejected permanently.
	// Any non-empty value short-circuits the pipeline before fetching.
	MetaExclude = "exclude"
)

// titleSanitizer strips characters that break downstream quoting: single
// and double quotes and curly braces.
var titleSanitizer = strings.NewReplacer(`"`, "", "'", "", "{", "", "}", "")

// sanitizeTitle cleans a remote title before caching: drops a UTF-8 BOM
// prefix, quote and brace characters, and surrounding whitespace.
func sanitizeTitle(title string) string {
	title = strings.TrimPrefix(title, "\ufeff")
	return strings.TrimSpace(titleSanitizer.Replace(title))
}

// Cache is the in-memory meta-cache. It is loaded once at the start of a
// run, mutated throughout, and flushed exactly once at the end via Persist.
// Entries are merge-upserted and never deleted by the pipeline.
type Cache struct {
	path    string
	entries map[string]*Entry
}

// Load reads the cache file at path. A missing file yields an empty cache;
// an unreadable or corrupt file is a construction error and aborts the run.
func Load(path string) (*Cache, error) {
	c := &Cache{path: path, entries: make(map[string]*Entry)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("parsing cache %s: %w", path, err)
	}
	return c, nil
}

// Len returns the number of cached publication IDs.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Contains reports whether the remote publication ID has a cache entry.
func (c *Cache) Contains(id string) bool {
	_, ok := c.entries[id]
	return ok
}

// Write merge-upserts the core fields of an entry. The title is sanitized
// before storing; existing meta keys on the entry are left untouched.
func (c *Cache) Write(id, title, published string) {
	e := c.entry(id)
	e.Title = sanitizeTitle(title)
	e.Published = published
}

// WriteMeta sets one extra key on an entry, creating the entry if needed.
func (c *Cache) WriteMeta(id, key, value string) {
	c.entry(id).setMeta(key, value)
}

// ReadMeta returns the value of an extra key. It is an error to read a key
// that was never written; call KeyExists first.
func (c *Cache) ReadMeta(id, key string) (string, error) {
	e, ok := c.entries[id]
	if !ok {
		return "", fmt.Errorf("cache: no entry for publication %s", id)
	}
	v, ok := e.meta[key]
	if !ok {
		return "", fmt.Errorf("cache: entry %s has no key %q", id, key)
	}
	return v, nil
}

// KeyExists reports whether the entry exists and carries the given key.
func (c *Cache) KeyExists(id, key string) bool {
	e, ok := c.entries[id]
	if !ok {
		return false
	}
	_, ok = e.meta[key]
	return ok
}

// Published returns the cached publishing date. It is an error to ask for
// an ID the cache has never seen; call Contains first.
func (c *Cache) Published(id string) (string, error) {
	e, ok := c.entries[id]
	if !ok {
		return "", fmt.Errorf("cache: no entry for publication %s", id)
	}
	return e.Published, nil
}

// Title returns the cached sanitized title. It is an error to ask for an
// ID the cache has never seen; call Contains first.
func (c *Cache) Title(id string) (string, error) {
	e, ok := c.entries[id]
	if !ok {
		return "", fmt.Errorf("cache: no entry for publication %s", id)
	}
	return e.Title, nil
}

// Persist writes the full cache to its file atomically (temp file plus
// rename). The pipeline calls this exactly once, after the fetch loop, to
// bound I/O; a crash mid-run loses that run's writes and the affected IDs
// are simply re-fetched next time.
func (c *Cache) Persist() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".cache-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func (c *Cache) entry(id string) *Entry {
	e, ok := c.entries[id]
	if !ok {
		e = &Entry{}
		c.entries[id] = e
	}
	return e
}
