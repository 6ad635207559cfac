package scrape

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRankingJSON(t *testing.T) {
	t.Run("MarshalAsDigitsString", func(t *testing.T) {
		data, err := json.Marshal(Ranking(12))
		if err != nil {
			t.Fatalf("Failed to marshal ranking: %v", err)
		}
		if string(data) != `"12"` {
			t.Errorf("Expected \"12\", got %s", data)
		}

		data, err = json.Marshal(RankingSentinel)
		if err != nil {
			t.Fatalf("Failed to marshal sentinel: %v", err)
		}
		if string(data) != `"999999"` {
			t.Errorf("Expected \"999999\", got %s", data)
		}
	})

	t.Run("UnmarshalDigits", func(t *testing.T) {
		var r Ranking
		if err := json.Unmarshal([]byte(`"42"`), &r); err != nil {
			t.Fatalf("Failed to unmarshal ranking: %v", err)
		}
		if r != 42 {
			t.Errorf("Expected 42, got %d", r)
		}
	})

	t.Run("RejectNonDigits", func(t *testing.T) {
		var r Ranking
		if err := json.Unmarshal([]byte(`"12a"`), &r); err == nil {
			t.Error("Expected error for non-digit ranking")
		}
		if err := json.Unmarshal([]byte(`""`), &r); err == nil {
			t.Error("Expected error for empty ranking")
		}
	})

	t.Run("RejectNumber", func(t *testing.T) {
		var r Ranking
		if err := json.Unmarshal([]byte(`42`), &r); err == nil {
			t.Error("Expected error for unquoted ranking")
		}
	})
}

func TestSortByRanking(t *testing.T) {
	t.Run("AscendingWithFailuresLast", func(t *testing.T) {
		records := []AppRecord{
			{Name: "c", Ranking: 30},
			{Name: UnknownName, Ranking: RankingSentinel, Error: "boom"},
			{Name: "a", Ranking: 1},
			{Name: "b", Ranking: 15},
		}
		SortByRanking(records)

		want := []string{"a", "b", "c", UnknownName}
		for i, name := range want {
			if records[i].Name != name {
				t.Errorf("Position %d: expected %s, got %s", i, name, records[i].Name)
			}
		}
	})

	t.Run("StableOnTies", func(t *testing.T) {
		records := []AppRecord{
			{Name: "first", Ranking: 5, URL: "u1"},
			{Name: "second", Ranking: 5, URL: "u2"},
			{Name: "third", Ranking: 5, URL: "u3"},
		}
		SortByRanking(records)

		want := []string{"u1", "u2", "u3"}
		for i, url := range want {
			if records[i].URL != url {
				t.Errorf("Position %d: expected %s, got %s", i, url, records[i].URL)
			}
		}
	})
}

func TestTimestamps(t *testing.T) {
	t.Run("FormatIsTaiwanTimeWithoutZone", func(t *testing.T) {
		utc := time.Date(2024, 1, 1, 20, 30, 0, 0, time.UTC)
		got := FormatTimestamp(utc)
		if got != "2024-01-02T04:30:00" {
			t.Errorf("Expected 2024-01-02T04:30:00, got %s", got)
		}
	})

	t.Run("ParseRoundTrip", func(t *testing.T) {
		ts := "2024-01-02T04:30:00"
		parsed, err := ParseTimestamp(ts)
		if err != nil {
			t.Fatalf("Failed to parse timestamp: %v", err)
		}
		if FormatTimestamp(parsed) != ts {
			t.Errorf("Round trip mismatch: %s", FormatTimestamp(parsed))
		}
	})

	t.Run("ParseAcceptsFractionalSeconds", func(t *testing.T) {
		// Older snapshots carry Python isoformat() microseconds.
		parsed, err := ParseTimestamp("2024-01-02T04:30:00.123456")
		if err != nil {
			t.Fatalf("Failed to parse fractional timestamp: %v", err)
		}
		if parsed.Second() != 0 || parsed.Nanosecond() != 123456000 {
			t.Errorf("Unexpected parse result: %v", parsed)
		}
	})
}

func TestBatchDate(t *testing.T) {
	snap := &Snapshot{Timestamp: "2024-03-15T18:22:03"}
	day, err := snap.BatchDate()
	if err != nil {
		t.Fatalf("Failed to derive batch date: %v", err)
	}
	if day.Format("2006-01-02") != "2024-03-15" {
		t.Errorf("Expected 2024-03-15, got %s", day.Format("2006-01-02"))
	}
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 {
		t.Errorf("Expected midnight, got %v", day)
	}

	bad := &Snapshot{Timestamp: "not-a-timestamp"}
	if _, err := bad.BatchDate(); err == nil {
		t.Error("Expected error for malformed timestamp")
	}
}
