package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DailyFileWriter appends to a per-day log file (prefix_YYYYMMDD.log)
// and rolls over to a new file when the calendar date changes.
type DailyFileWriter struct {
	mu     sync.Mutex
	file   *os.File
	dir    string
	prefix string
	day    string
	now    func() time.Time
}

// NewDailyFileWriter creates a daily file writer inside dir, creating
// the directory if needed.
func NewDailyFileWriter(dir, prefix string) (*DailyFileWriter, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	w := &DailyFileWriter{
		dir:    dir,
		prefix: prefix,
		now:    time.Now,
	}
	if err := w.openFor(w.now()); err != nil {
		return nil, err
	}
	return w, nil
}

// Write implements io.Writer, switching files at the date boundary.
func (w *DailyFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if day := w.now().Format("20060102"); day != w.day {
		if err := w.openFor(w.now()); err != nil {
			return 0, err
		}
	}
	return w.file.Write(p)
}

// Close closes the current file.
func (w *DailyFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// Path returns the file currently being written.
func (w *DailyFileWriter) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s.log", w.prefix, w.day))
}

func (w *DailyFileWriter) openFor(t time.Time) error {
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return err
		}
		w.file = nil
	}

	day := t.Format("20060102")
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%s.log", w.prefix, day))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	w.file = file
	w.day = day
	return nil
}

// Ensure DailyFileWriter implements io.WriteCloser
var _ io.WriteCloser = (*DailyFileWriter)(nil)
