// Package filestore is the secondary persistence backend: one JSON array
// file per entity type on local disk. It is a best-effort fallback, not a
// database. Files are rewritten wholesale per mutation and a corrupt or
// missing file reads as empty rather than failing.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// jsonFile serializes all access to one backing file. The mutex is held
// across the whole read-modify-write cycle so concurrent in-process writers
// cannot lose updates.
type jsonFile struct {
	path string
	mu   sync.Mutex
}

// load decodes the file into out (a pointer to a slice). A missing or
// unparseable file leaves out empty.
func (f *jsonFile) load(out interface{}) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Corrupt files are treated as empty containers.
		return nil
	}
	return nil
}

// store rewrites the whole file. Output stays human-readable UTF-8.
func (f *jsonFile) store(in interface{}) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f.path, err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	return nil
}
