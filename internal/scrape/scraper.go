package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// Scraper runs the fetch-extract stage over a fixed list of targets,
// sequentially and with a courtesy delay between requests.
type Scraper struct {
	client  *Client
	limiter *rate.Limiter
	now     func() time.Time
}

// NewScraper creates a scraper. delay is the minimum interval between
// requests; it is deliberately not adaptive.
func NewScraper(userAgent string, timeout, delay time.Duration) *Scraper {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Scraper{
		client:  NewClient(userAgent, timeout),
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		now:     time.Now,
	}
}

// FetchAll scrapes every URL in order and returns exactly one record
// per URL. It never returns an error: a failed target becomes a
// sentinel record with the failure message attached, and processing
// continues with the remaining targets.
func (s *Scraper) FetchAll(ctx context.Context, urls []string) []AppRecord {
	records := make([]AppRecord, 0, len(urls))
	for _, url := range urls {
		slog.Info("fetching target", "url", url)
		rec, err := s.scrapeOne(ctx, url)
		if err != nil {
			slog.Error("fetch failed", "url", url, "error", err)
			rec = failureRecord(url, err, FormatTimestamp(s.now()))
		} else {
			slog.Info("fetched app", "name", rec.Name, "ranking", int(rec.Ranking), "url", url)
		}
		records = append(records, rec)
	}
	return records
}

// scrapeOne fetches and extracts a single target. The error return is
// the statically visible failure path; FetchAll folds it into the
// sentinel record shape.
func (s *Scraper) scrapeOne(ctx context.Context, url string) (AppRecord, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return AppRecord{}, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := s.client.Get(ctx, url)
	if err != nil {
		return AppRecord{}, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return AppRecord{}, fmt.Errorf("parse html: %w", err)
	}

	version := extractVersion(doc)
	return AppRecord{
		Name:      extractName(doc),
		Ranking:   extractRanking(doc),
		Version:   &version,
		URL:       url,
		Timestamp: FormatTimestamp(s.now()),
	}, nil
}

// Close releases the underlying HTTP client.
func (s *Scraper) Close() {
	s.client.Close()
}

// failureRecord builds the sentinel record for a failed target. The
// sentinel ranking guarantees failed entries sort after ranked apps.
func failureRecord(url string, cause error, timestamp string) AppRecord {
	return AppRecord{
		Name:      UnknownName,
		Ranking:   RankingSentinel,
		URL:       url,
		Timestamp: timestamp,
		Error:     cause.Error(),
	}
}
