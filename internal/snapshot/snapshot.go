// Package snapshot persists scrape results as timestamped JSON files
// and resolves the most recent file for the load pipeline.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yschen25/apprank/internal/scrape"
)

// FilePrefix is shared by the writer and the latest-file glob.
const FilePrefix = "app_store_ranking_"

// ErrNoSnapshot is returned by Latest when the directory holds no
// snapshot files.
var ErrNoSnapshot = errors.New("no snapshot file found")

// Write serializes the snapshot into dir, named by the current wall
// clock down to the second. Two writes within the same second target
// the same file; the later one wins. The record order given by the
// caller is persisted as-is.
func Write(snap *scrape.Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	name := FilePrefix + time.Now().Format("20060102_150405") + ".json"
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(snap); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close snapshot file: %w", err)
	}
	return path, nil
}

// Read parses a snapshot file. Decoding is strict about the ranking
// field: non-digit content fails here rather than at insert time.
func Read(path string) (*scrape.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap scrape.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// Latest returns the snapshot file in dir with the most recent
// modification time, or ErrNoSnapshot when none exists.
func Latest(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, FilePrefix+"*.json"))
	if err != nil {
		return "", fmt.Errorf("failed to list snapshot directory: %w", err)
	}

	var latest string
	var latestMod time.Time
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = path
			latestMod = info.ModTime()
		}
	}

	if latest == "" {
		return "", ErrNoSnapshot
	}
	return latest, nil
}
