// Package snapshot persists normalized metadata records between the fetch
// and assess steps, as JSONL or parquet depending on the file extension.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/berlinonline/mqa/internal/mqa/record"
)

// Store reads and writes one snapshot file.
type Store struct {
	path string
}

// NewStore returns a store for the given snapshot path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every record in the snapshot.
func (s *Store) Load() ([]record.MetadataRecord, error) {
	return s.load(0)
}

// LoadSample reads at most limit records, for quick runs.
func (s *Store) LoadSample(limit int) ([]record.MetadataRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("sample limit must be positive, got %d", limit)
	}
	return s.load(limit)
}

func (s *Store) load(limit int) ([]record.MetadataRecord, error) {
	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".parquet":
		return s.loadParquet(limit)
	case ".jsonl", ".json":
		return s.loadJSONL(limit)
	default:
		return nil, fmt.Errorf("unsupported snapshot format: %s (supported: .parquet, .jsonl)", ext)
	}
}

// Save writes the records, creating parent directories as needed. The
// format follows the file extension, like Load.
func (s *Store) Save(records []record.MetadataRecord) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}
	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".parquet":
		return s.saveParquet(records)
	case ".jsonl", ".json":
		return s.saveJSONL(records)
	default:
		return fmt.Errorf("unsupported snapshot format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func (s *Store) loadJSONL(limit int) ([]record.MetadataRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	var records []record.MetadataRecord
	scanner := bufio.NewScanner(file)

	// Large records need more than the default scanner buffer
	const maxCapacity = 10 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec record.MetadataRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot line %d: %w", lineNum, err)
		}
		records = append(records, rec)

		if limit > 0 && len(records) >= limit {
			break
		}
		if lineNum%1000 == 0 {
			slog.Debug("Reading snapshot", "lines_read", lineNum)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}

	slog.Debug("Finished reading JSONL snapshot", "records", len(records))
	return records, nil
}

func (s *Store) loadParquet(limit int) ([]record.MetadataRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet snapshot: %w", err)
	}
	slog.Debug("Parquet snapshot opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[record.MetadataRecord](pf)
	defer reader.Close()

	var records []record.MetadataRecord
	rows := make([]record.MetadataRecord, 128) // Read in batches

	for limit <= 0 || len(records) < limit {
		n, err := reader.Read(rows)
		if n > 0 {
			if limit > 0 && len(records)+n > limit {
				n = limit - len(records)
			}
			records = append(records, rows[:n]...)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading parquet snapshot", "records", len(records))
	return records, nil
}

func (s *Store) saveJSONL(records []record.MetadataRecord) error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return fmt.Errorf("failed to write snapshot record %d: %w", i, err)
		}
	}
	slog.Debug("Wrote JSONL snapshot", "path", s.path, "records", len(records))
	return nil
}

func (s *Store) saveParquet(records []record.MetadataRecord) error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[record.MetadataRecord](file)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet snapshot: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet snapshot: %w", err)
	}
	slog.Debug("Wrote parquet snapshot", "path", s.path, "records", len(records))
	return nil
}
