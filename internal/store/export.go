// JSONL export. Dumps every record table to one .jsonl file per kind so
// data can be taken off-device without the remote endpoint.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// ExportJSONL writes catches.jsonl, entries.jsonl, observations.jsonl, and
// gear_incidents.jsonl under dir, one JSON object per line. Files are
// written atomically via the temp-file, fsync, rename pattern. Returns the
// paths written.
func (s *Store) ExportJSONL(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	all := Query{Limit: math.MaxInt32}
	var written []string

	catches, err := s.Catches(all)
	if err != nil {
		return written, err
	}
	if written, err = exportTable(written, dir, TableCatches, catches); err != nil {
		s.log.Error("export failed", "table", TableCatches, "error", err)
		return written, err
	}

	entries, err := s.Entries(all)
	if err != nil {
		return written, err
	}
	if written, err = exportTable(written, dir, TableEntries, entries); err != nil {
		s.log.Error("export failed", "table", TableEntries, "error", err)
		return written, err
	}

	observations, err := s.Observations(all)
	if err != nil {
		return written, err
	}
	if written, err = exportTable(written, dir, TableObservations, observations); err != nil {
		s.log.Error("export failed", "table", TableObservations, "error", err)
		return written, err
	}

	incidents, err := s.GearIncidents(all)
	if err != nil {
		return written, err
	}
	if written, err = exportTable(written, dir, TableGearIncidents, incidents); err != nil {
		s.log.Error("export failed", "table", TableGearIncidents, "error", err)
		return written, err
	}

	return written, nil
}

func exportTable[T any](written []string, dir, table string, records []T) ([]string, error) {
	path := filepath.Join(dir, table+".jsonl")
	if err := writeJSONL(path, records); err != nil {
		return written, err
	}
	return append(written, path), nil
}

// writeJSONL writes one JSON object per line, atomically via temp file and
// rename.
func writeJSONL[T any](path string, records []T) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for i := range records {
		// Encode appends the newline itself.
		if err := enc.Encode(records[i]); err != nil {
			cleanup()
			return fmt.Errorf("writing record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		cleanup()
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
