package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/yschen25/apprank/internal/scrape"
)

func testSnapshot() *scrape.Snapshot {
	v1 := "3.29.1"
	return &scrape.Snapshot{
		Timestamp: "2024-01-01T12:00:00",
		Apps: []scrape.AppRecord{
			{
				Name:      "MAX 虛擬貨幣交易所",
				Ranking:   12,
				Version:   &v1,
				URL:       "https://apps.apple.com/tw/app/max/id1370837255",
				Timestamp: "2024-01-01T12:00:00",
			},
			{
				Name:      scrape.UnknownName,
				Ranking:   scrape.RankingSentinel,
				URL:       "https://apps.apple.com/tw/app/gone/id0",
				Timestamp: "2024-01-01T12:00:02",
				Error:     "unexpected status 404 Not Found",
			},
		},
	}
}

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	snap := testSnapshot()

	path, err := Write(snap, dir)
	if err != nil {
		t.Fatalf("Failed to write snapshot: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), FilePrefix) {
		t.Errorf("Unexpected file name: %s", path)
	}

	t.Run("RoundTripPreservesRecords", func(t *testing.T) {
		got, err := Read(path)
		if err != nil {
			t.Fatalf("Failed to read snapshot: %v", err)
		}
		if !reflect.DeepEqual(got, snap) {
			t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", got, snap)
		}
	})

	t.Run("UTF8EmittedLiterally", func(t *testing.T) {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if !strings.Contains(string(data), "虛擬貨幣") {
			t.Error("Expected CJK text to be emitted literally, not escaped")
		}
		if strings.Contains(string(data), `\u`) {
			t.Error("Expected no unicode escapes in snapshot JSON")
		}
	})

	t.Run("FourSpaceIndent", func(t *testing.T) {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if !strings.Contains(string(data), "\n    \"timestamp\"") {
			t.Error("Expected 4-space indented JSON")
		}
	})

	t.Run("FailureRecordOmitsVersion", func(t *testing.T) {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if strings.Count(string(data), `"version"`) != 1 {
			t.Error("Expected exactly one version key (success record only)")
		}
	})
}

func TestReadRejectsMalformedRanking(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FilePrefix+"20240101_120000.json")
	body := `{"timestamp": "2024-01-01T12:00:00", "apps": [{"name": "A", "ranking": "12b", "url": "u", "timestamp": "2024-01-01T12:00:00"}]}`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := Read(path); err == nil {
		t.Error("Expected error for non-digit ranking")
	}
}

func TestLatest(t *testing.T) {
	t.Run("EmptyDirectory", func(t *testing.T) {
		if _, err := Latest(t.TempDir()); !errors.Is(err, ErrNoSnapshot) {
			t.Errorf("Expected ErrNoSnapshot, got %v", err)
		}
	})

	t.Run("PicksMostRecentlyModified", func(t *testing.T) {
		dir := t.TempDir()
		older := filepath.Join(dir, FilePrefix+"20240101_120000.json")
		newer := filepath.Join(dir, FilePrefix+"20240102_120000.json")

		for _, path := range []string{older, newer} {
			if err := os.WriteFile(path, []byte(`{"timestamp":"","apps":[]}`), 0600); err != nil {
				t.Fatalf("Failed to write fixture: %v", err)
			}
		}

		now := time.Now()
		if err := os.Chtimes(older, now, now); err != nil {
			t.Fatalf("Failed to set mtime: %v", err)
		}
		if err := os.Chtimes(newer, now.Add(-time.Hour), now.Add(-time.Hour)); err != nil {
			t.Fatalf("Failed to set mtime: %v", err)
		}

		// Selection follows mtime, not the name-embedded date.
		got, err := Latest(dir)
		if err != nil {
			t.Fatalf("Failed to resolve latest snapshot: %v", err)
		}
		if got != older {
			t.Errorf("Expected %s, got %s", older, got)
		}
	})

	t.Run("IgnoresUnrelatedFiles", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "notes.json"), []byte(`{}`), 0600); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
		if _, err := Latest(dir); !errors.Is(err, ErrNoSnapshot) {
			t.Errorf("Expected ErrNoSnapshot, got %v", err)
		}
	})
}
