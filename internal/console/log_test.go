package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/autodeploy/internal/models"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestLogStreamAppend(t *testing.T) {
	at := time.Date(2026, 10, 16, 21, 5, 9, 0, time.Local)
	l := NewLogStream(fixedNow(at))

	first := l.Append("one", models.LogLevelInfo)
	second := l.Append("two", models.LogLevelSuccess)
	third := l.Append("three", models.LogLevel("bogus"))

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{entries[0].Message, entries[1].Message, entries[2].Message})
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])

	assert.Equal(t, "21:05:09", first.Timestamp)
	assert.Equal(t, models.LogLevelSuccess, second.Level)
	assert.Equal(t, models.LogLevelInfo, third.Level, "unknown levels fall back to info")

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, second.ID, third.ID)
}

func TestLogStreamEntriesIsACopy(t *testing.T) {
	l := NewLogStream(time.Now)
	l.Append("original", models.LogLevelInfo)

	entries := l.Entries()
	entries[0].Message = "mutated"

	assert.Equal(t, "original", l.Entries()[0].Message)
}

func TestLogStreamClear(t *testing.T) {
	l := NewLogStream(time.Now)
	l.Append("a", models.LogLevelInfo)
	l.Append("b", models.LogLevelError)

	l.Clear()
	assert.Zero(t, l.Len())
	assert.Empty(t, l.Entries())

	l.Clear()
	assert.Zero(t, l.Len())

	l.Append("c", models.LogLevelInfo)
	assert.Equal(t, 1, l.Len())
}

func TestLogStreamSince(t *testing.T) {
	l := NewLogStream(time.Now)
	for _, m := range []string{"a", "b", "c"} {
		l.Append(m, models.LogLevelInfo)
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"from start", 0, []string{"a", "b", "c"}},
		{"middle", 2, []string{"c"}},
		{"caught up", 3, []string{}},
		{"beyond length after clear", 10, []string{"a", "b", "c"}},
		{"negative", -1, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, e := range l.Since(tt.n) {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
