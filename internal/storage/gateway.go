// Package storage persists named collections as whole JSON documents on
// disk. Every save replaces the full collection; there are no partial or
// incremental writes, and the last writer wins.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Collection names. Each maps to a <name>.json file in the data directory.
const (
	CollectionUsers     = "users"
	CollectionPatients  = "patients"
	CollectionIncidents = "incidents"
	CollectionSession   = "session"
)

// Gateway reads and writes named collections under a single data directory.
type Gateway struct {
	dir string
	log zerolog.Logger
}

// New creates the data directory if needed and returns a gateway over it.
func New(dir string, log zerolog.Logger) (*Gateway, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return &Gateway{dir: dir, log: log}, nil
}

// Dir returns the data directory path.
func (g *Gateway) Dir() string { return g.dir }

func (g *Gateway) path(name string) string {
	return filepath.Join(g.dir, name+".json")
}

// Exists reports whether the named collection has ever been written.
func (g *Gateway) Exists(name string) bool {
	_, err := os.Stat(g.path(name))
	return err == nil
}

// Load unmarshals the named collection into out. A missing file leaves out
// untouched. Malformed persisted data is treated as an empty collection:
// it is logged and out is left untouched, never surfaced as an error.
func (g *Gateway) Load(name string, out any) error {
	data, err := os.ReadFile(g.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		g.log.Warn().Str("collection", name).Err(err).
			Msg("malformed persisted data, treating as empty")
		return nil
	}
	return nil
}

// Save writes the full collection atomically: marshal to a temp file in the
// same directory, then rename over the previous version.
func (g *Gateway) Save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(g.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file for %s: %w", name, err)
	}
	if err := os.Rename(tmpName, g.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace collection %s: %w", name, err)
	}
	return nil
}

// Remove deletes the named collection. Removing an absent collection is
// not an error.
func (g *Gateway) Remove(name string) error {
	err := os.Remove(g.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
