// Package console implements the command console: the log stream, the agent
// status machine, the command interpreter and the simulated pipeline runner.
//
// A Session is not safe for concurrent use. All calls, including the clock
// callbacks that resume a pipeline, must come from one goroutine; the TUI
// satisfies this by advancing the clock from its Update loop.
package console

import (
	"log"
	"time"

	"github.com/watchfire-io/autodeploy/internal/clock"
	"github.com/watchfire-io/autodeploy/internal/models"
)

// DefaultTimeUnit is the length of one pipeline delay unit.
const DefaultTimeUnit = time.Millisecond

// EventKind identifies what changed in a session.
type EventKind int

const (
	EventAppend EventKind = iota
	EventClear
	EventTransition
	EventPhase
)

func (k EventKind) String() string {
	switch k {
	case EventAppend:
		return "append"
	case EventClear:
		return "clear"
	case EventTransition:
		return "transition"
	case EventPhase:
		return "phase"
	}
	return "unknown"
}

// Event describes one change to a session.
type Event struct {
	Kind     EventKind
	Entry    models.LogEntry    // EventAppend
	Status   models.AgentStatus // EventTransition: the new status
	Previous models.AgentStatus // EventTransition: the replaced status
	Pipeline string             // EventPhase
	Phase    string             // EventPhase
	Index    int                // EventPhase
}

// Observer is notified synchronously of every session change.
type Observer func(Event)

// Option configures a Session.
type Option func(*Session)

// WithTimeUnit sets the length of one pipeline delay unit.
func WithTimeUnit(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.unit = d
		}
	}
}

// WithObserver registers an observer at construction.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observers = append(s.observers, o)
	}
}

// Session owns the log stream and the agent status of one console.
type Session struct {
	clock     clock.Clock
	log       *LogStream
	status    *StatusMachine
	unit      time.Duration
	observers []Observer
	runs      int
}

// NewSession creates an idle session with an empty log.
func NewSession(clk clock.Clock, opts ...Option) *Session {
	s := &Session{
		clock:  clk,
		log:    NewLogStream(clk.Now),
		status: NewStatusMachine(),
		unit:   DefaultTimeUnit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entries returns the log in display order.
func (s *Session) Entries() []models.LogEntry {
	return s.log.Entries()
}

// LogLen returns the number of log entries.
func (s *Session) LogLen() int {
	return s.log.Len()
}

// EntriesSince returns entries after the first n.
func (s *Session) EntriesSince(n int) []models.LogEntry {
	return s.log.Since(n)
}

// Status returns the current agent status.
func (s *Session) Status() models.AgentStatus {
	return s.status.Status()
}

// Busy reports whether a pipeline is in flight.
func (s *Session) Busy() bool {
	return s.status.Busy()
}

// Runs returns how many pipelines have been started.
func (s *Session) Runs() int {
	return s.runs
}

// TimeUnit returns the current delay unit.
func (s *Session) TimeUnit() time.Duration {
	return s.unit
}

// SetTimeUnit changes the delay unit for pipelines started afterwards.
func (s *Session) SetTimeUnit(d time.Duration) {
	if d > 0 {
		s.unit = d
	}
}

// Subscribe registers an observer.
func (s *Session) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// DeployNow is the pre-bound deploy action. It is inert while busy and
// reports whether it submitted anything.
func (s *Session) DeployNow() bool {
	if s.Busy() {
		return false
	}
	s.Submit("deploy")
	return true
}

func (s *Session) append(message string, level models.LogLevel) models.LogEntry {
	entry := s.log.Append(message, level)
	s.emit(Event{Kind: EventAppend, Entry: entry})
	return entry
}

func (s *Session) clear() {
	s.log.Clear()
	s.emit(Event{Kind: EventClear})
}

func (s *Session) transition(state models.AgentState, task string, progress int) {
	prev := s.status.Transition(state, task, progress)
	next := s.status.Status()
	log.Printf("[agent] %s -> %s (%d%%) %s", prev.State, next.State, next.Progress, next.CurrentTask)
	s.emit(Event{Kind: EventTransition, Status: next, Previous: prev})
}

func (s *Session) start(p Pipeline) {
	s.runs++
	log.Printf("[agent] starting %s pipeline #%d (unit %s, %d units)", p.Name, s.runs, s.unit, p.Duration())
	r := &run{s: s, p: p, unit: s.unit, started: s.clock.Now()}
	r.step(0)
}

func (s *Session) emit(e Event) {
	for _, o := range s.observers {
		o(e)
	}
}
