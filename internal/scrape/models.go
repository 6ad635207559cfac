// Package scrape implements the App Store listing-page scrape pipeline:
// fetching target pages, extracting ranking fields, and assembling the
// snapshot that the load pipeline consumes.
package scrape

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// UnknownName is the placeholder display name for targets whose name
// could not be extracted. The literal matches the snapshot JSON contract.
const UnknownName = "未知"

// RankingSentinel is the ranking assigned to failed or unranked targets.
// It is large enough that such records always sort after ranked apps.
const RankingSentinel Ranking = 999999

// Ranking is an app's category ranking. It is an integer in process but
// travels as a digits-only string in snapshot JSON.
type Ranking int

// MarshalJSON encodes the ranking as a quoted decimal string.
func (r Ranking) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(r)))
}

// UnmarshalJSON decodes a quoted digits-only string. Anything else is a
// schema violation and fails the whole snapshot decode.
func (r *Ranking) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ranking must be a string: %w", err)
	}
	if s == "" {
		return fmt.Errorf("ranking is empty")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return fmt.Errorf("ranking %q contains non-digit characters", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("ranking %q out of range: %w", s, err)
	}
	*r = Ranking(n)
	return nil
}

// AppRecord is the per-target scrape result. A record is either a
// successful extraction or a sentinel-filled failure; a non-empty Error
// field is the discriminator.
type AppRecord struct {
	Name      string  `json:"name"`
	Ranking   Ranking `json:"ranking"`
	Version   *string `json:"version,omitempty"` // always set on success; the loader requires it
	URL       string  `json:"url"`
	Timestamp string  `json:"timestamp"`
	Error     string  `json:"error,omitempty"`
}

// Failed reports whether the record is a failure record.
func (a AppRecord) Failed() bool {
	return a.Error != ""
}

// Snapshot is one complete scrape run over all configured targets.
type Snapshot struct {
	Timestamp string      `json:"timestamp"`
	Apps      []AppRecord `json:"apps"`
}

// BatchDate returns the calendar-date portion of the snapshot timestamp,
// used as the overwrite key during load.
func (s *Snapshot) BatchDate() (time.Time, error) {
	t, err := ParseTimestamp(s.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse snapshot timestamp: %w", err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
}

// SortByRanking stably sorts records by ascending ranking. Failure
// records carry RankingSentinel and therefore end up last; ties keep
// their original relative order.
func SortByRanking(records []AppRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Ranking < records[j].Ranking
	})
}

// taipei is the fixed UTC+8 offset used for all scrape timestamps.
// Timestamps are emitted without a zone suffix.
var taipei = time.FixedZone("UTC+8", 8*60*60)

const timestampLayout = "2006-01-02T15:04:05"

// FormatTimestamp renders t as Taiwan local time in ISO-8601 form
// without a zone suffix.
func FormatTimestamp(t time.Time) string {
	return t.In(taipei).Format(timestampLayout)
}

// ParseTimestamp parses a snapshot timestamp. Fractional seconds are
// accepted for compatibility with older snapshot files.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(timestampLayout, s, taipei)
}
