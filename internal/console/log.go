package console

import (
	"time"

	"github.com/watchfire-io/autodeploy/internal/models"
)

// LogStream is the append-only ordered output of a session.
// Insertion order is display order.
type LogStream struct {
	entries []models.LogEntry
	now     func() time.Time
}

// NewLogStream creates an empty stream stamping entries with now.
func NewLogStream(now func() time.Time) *LogStream {
	return &LogStream{now: now}
}

// Append records message at level and returns the new entry.
func (l *LogStream) Append(message string, level models.LogLevel) models.LogEntry {
	entry := models.NewLogEntry(message, level, l.now())
	l.entries = append(l.entries, entry)
	return entry
}

// Clear drops every entry at once.
func (l *LogStream) Clear() {
	l.entries = nil
}

// Entries returns a copy of the stream in insertion order.
func (l *LogStream) Entries() []models.LogEntry {
	out := make([]models.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *LogStream) Len() int {
	return len(l.entries)
}

// Since returns the entries after the first n, for incremental consumers.
// If the stream was cleared below n, the whole stream is returned.
func (l *LogStream) Since(n int) []models.LogEntry {
	if n < 0 || n > len(l.entries) {
		n = 0
	}
	out := make([]models.LogEntry, len(l.entries)-n)
	copy(out, l.entries[n:])
	return out
}
