package attendance

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kozaktomas/face-attendance/internal/constants"
)

// Record is one attendance row.
type Record struct {
	Name string
	Date string // YYYY-MM-DD
	Time string // HH:MM:SS
}

// NewRecord stamps name with the date and time-of-day of t.
func NewRecord(name string, t time.Time) Record {
	return Record{
		Name: name,
		Date: t.Format(constants.CSVDateLayout),
		Time: t.Format(constants.CSVTimeLayout),
	}
}

// Log is the per-day attendance CSV. Rows have no header and are flushed
// as soon as they are appended.
type Log struct {
	path string
	file *os.File
	w    *csv.Writer
	rows int
}

// LogPath returns the path of the attendance file for day in dir.
func LogPath(dir string, day time.Time) string {
	return filepath.Join(dir, day.Format(constants.CSVDateLayout)+".csv")
}

// OpenLog creates (or truncates) the attendance file for day in dir.
func OpenLog(dir string, day time.Time) (*Log, error) {
	path := LogPath(dir, day)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create attendance file: %w", err)
	}
	return &Log{path: path, file: f, w: csv.NewWriter(f)}, nil
}

// Append writes rec and flushes it to disk.
func (l *Log) Append(rec Record) error {
	if err := l.w.Write([]string{rec.Name, rec.Date, rec.Time}); err != nil {
		return fmt.Errorf("failed to write attendance row: %w", err)
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("failed to flush attendance row: %w", err)
	}
	l.rows++
	return nil
}

// Path returns the file the log writes to.
func (l *Log) Path() string {
	return l.path
}

// Rows returns the number of rows appended so far.
func (l *Log) Rows() int {
	return l.rows
}

// Close flushes pending data and closes the file.
func (l *Log) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}
