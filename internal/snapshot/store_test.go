package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/berlinonline/mqa/internal/mqa/record"
)

func sampleRecords() []record.MetadataRecord {
	return []record.MetadataRecord{
		{
			ID:      "rec-1",
			Title:   "First",
			Tags:    []string{"umwelt", "luft"},
			Spatial: "Berlin",
			Distributions: []record.Distribution{
				{DownloadURL: "https://example.org/a.csv", Format: "csv", ByteSize: "1024"},
			},
		},
		{ID: "rec-2", Title: "Second", Themes: []string{"geo"}},
		{ID: "rec-3", Title: "Third"},
	}
}

func TestSaveAndLoadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.jsonl")
	store := NewStore(path)

	if err := store.Save(sampleRecords()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0].ID != "rec-1" || records[2].ID != "rec-3" {
		t.Errorf("Records out of order: %s ... %s", records[0].ID, records[2].ID)
	}
	if len(records[0].Tags) != 2 || records[0].Tags[0] != "umwelt" {
		t.Errorf("Tags did not survive the round trip: %v", records[0].Tags)
	}
	if len(records[0].Distributions) != 1 || records[0].Distributions[0].Format != "csv" {
		t.Errorf("Distributions did not survive the round trip: %v", records[0].Distributions)
	}
	if len(records[2].Distributions) != 0 {
		t.Errorf("Expected no distributions on rec-3, got %d", len(records[2].Distributions))
	}
}

func TestSaveAndLoadParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.parquet")
	store := NewStore(path)

	if err := store.Save(sampleRecords()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0].ID != "rec-1" {
		t.Errorf("Expected rec-1 first, got %s", records[0].ID)
	}
	if records[0].Spatial != "Berlin" {
		t.Errorf("Spatial did not survive the round trip: %q", records[0].Spatial)
	}
	if len(records[0].Distributions) != 1 || records[0].Distributions[0].ByteSize != "1024" {
		t.Errorf("Distributions did not survive the round trip: %v", records[0].Distributions)
	}
}

func TestLoadSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.jsonl")
	store := NewStore(path)
	if err := store.Save(sampleRecords()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, err := store.LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}

	// A limit beyond the snapshot size returns everything.
	records, err = store.LoadSample(10)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(records))
	}

	if _, err := store.LoadSample(0); err == nil {
		t.Error("Expected an error for a non-positive sample limit")
	}
}

func TestLoadSampleParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.parquet")
	store := NewStore(path)
	if err := store.Save(sampleRecords()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, err := store.LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.jsonl")
	data := `{"id":"rec-1","title":"First"}

{"id":"rec-2","title":"Second"}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	records, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 records, got %d", len(records))
	}
}

func TestLoadReportsBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.jsonl")
	data := `{"id":"rec-1","title":"First"}
{not json}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	_, err := NewStore(path).Load()
	if err == nil {
		t.Fatal("Expected an error for a malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected the line number in the error, got %v", err)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	store := NewStore("snapshot.txt")

	if _, err := store.Load(); err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}
	if _, err := store.LoadSample(10); err == nil {
		t.Error("Expected error for unsupported format in LoadSample, got nil")
	}
	if err := store.Save(sampleRecords()); err == nil {
		t.Error("Expected error for unsupported format in Save, got nil")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.jsonl"))

	if _, err := store.Load(); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "snapshot.jsonl")
	store := NewStore(path)

	if err := store.Save(sampleRecords()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected snapshot file to exist: %v", err)
	}
}
