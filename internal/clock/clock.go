// Package clock provides the time source and delayed-continuation scheduler
// the console pipeline suspends on.
package clock

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Clock tells time and schedules continuations.
type Clock interface {
	Now() time.Time
	// AfterFunc arranges for fn to run once d has elapsed on this clock.
	AfterFunc(d time.Duration, fn func())
}

type timer struct {
	due time.Time
	seq uint64
	fn  func()
}

// Manual is a virtual clock. Time only moves when Advance or AdvanceTo is called,
// and due callbacks run synchronously on the caller's goroutine, in due order.
// Callbacks with the same due time run in the order they were scheduled.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []timer
}

// NewManual creates a manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn to run d after the current virtual time.
// A non-positive d still waits for the next Advance call.
func (m *Manual) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.timers = append(m.timers, timer{due: m.now.Add(d), seq: m.seq, fn: fn})
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due.Equal(m.timers[j].due) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].due.Before(m.timers[j].due)
	})
}

// Advance moves virtual time forward by d, firing every callback that becomes due.
func (m *Manual) Advance(d time.Duration) int {
	return m.AdvanceTo(m.Now().Add(d))
}

// AdvanceTo moves virtual time to t (never backwards) and fires due callbacks.
// Callbacks scheduled by a firing callback fire too if they fall due by t.
// Returns the number of callbacks run.
func (m *Manual) AdvanceTo(t time.Time) int {
	fired := 0
	for {
		m.mu.Lock()
		if len(m.timers) == 0 || m.timers[0].due.After(t) {
			if t.After(m.now) {
				m.now = t
			}
			m.mu.Unlock()
			return fired
		}
		next := m.timers[0]
		m.timers = m.timers[1:]
		if next.due.After(m.now) {
			m.now = next.due
		}
		m.mu.Unlock()

		next.fn()
		fired++
	}
}

// Pending returns the number of scheduled callbacks that have not fired.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// NextDue returns the due time of the earliest pending callback.
func (m *Manual) NextDue() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.timers) == 0 {
		return time.Time{}, false
	}
	return m.timers[0].due, true
}

// Sleeper waits for d of real time or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// RealSleep is a Sleeper backed by the wall clock.
func RealSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoSleep is a Sleeper that returns immediately, letting Drain run in virtual time only.
func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Drain fires pending callbacks one deadline at a time, waiting on sleep for the
// gap before each, until nothing is pending or ctx is cancelled.
func (m *Manual) Drain(ctx context.Context, sleep Sleeper) error {
	for {
		due, ok := m.NextDue()
		if !ok {
			return nil
		}
		if err := sleep(ctx, due.Sub(m.Now())); err != nil {
			return err
		}
		m.AdvanceTo(due)
	}
}
