package models

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the wall-clock format shown next to every log entry (24h).
const TimestampLayout = "15:04:05"

// LogLevel is the severity/category tag of a console log entry.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelSuccess LogLevel = "success"
	LogLevelError   LogLevel = "error"
	LogLevelWarning LogLevel = "warning"
)

// Valid reports whether l is one of the known levels.
func (l LogLevel) Valid() bool {
	switch l {
	case LogLevelInfo, LogLevelSuccess, LogLevelError, LogLevelWarning:
		return true
	}
	return false
}

// LogEntry is a single line of console output. Entries are immutable once created.
type LogEntry struct {
	ID        string    `yaml:"id"`
	Timestamp string    `yaml:"timestamp"` // HH:MM:SS
	Message   string    `yaml:"message"`
	Level     LogLevel  `yaml:"level"`
	CreatedAt time.Time `yaml:"-"`
}

// NewLogEntry creates an entry stamped with the given time.
// An unknown level falls back to info.
func NewLogEntry(message string, level LogLevel, at time.Time) LogEntry {
	if !level.Valid() {
		level = LogLevelInfo
	}
	return LogEntry{
		ID:        uuid.NewString(),
		Timestamp: at.Format(TimestampLayout),
		Message:   message,
		Level:     level,
		CreatedAt: at,
	}
}
