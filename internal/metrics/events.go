package metrics

import (
	"sync"
	"time"
)

// EventType represents the type of resize activity event
type EventType string

const (
	EventQueued    EventType = "queued"
	EventCompleted EventType = "completed"
	EventFailed    EventType = "failed"
)

// Recorder counts resize activity since process start.
type Recorder struct {
	mu      sync.Mutex
	counts  map[EventType]int64
	last    map[EventType]time.Time
	started time.Time
}

// New creates a new metrics recorder
func New() *Recorder {
	return &Recorder{
		counts:  map[EventType]int64{},
		last:    map[EventType]time.Time{},
		started: time.Now().UTC(),
	}
}

// Record adds n events of the given type.
func (r *Recorder) Record(eventType EventType, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[eventType] += int64(n)
	r.last[eventType] = time.Now().UTC()
}

// Stats holds aggregated counters
type Stats struct {
	Queued        int64      `json:"queued"`
	Completed     int64      `json:"completed"`
	Failed        int64      `json:"failed"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
	LastFailed    *time.Time `json:"last_failed,omitempty"`
	Uptime        string     `json:"uptime"`
}

// Snapshot returns the current counters.
func (r *Recorder) Snapshot() Stats {
	if r == nil {
		return Stats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Stats{
		Queued:    r.counts[EventQueued],
		Completed: r.counts[EventCompleted],
		Failed:    r.counts[EventFailed],
		Uptime:    time.Since(r.started).Round(time.Second).String(),
	}
	if t, ok := r.last[EventCompleted]; ok {
		s.LastCompleted = &t
	}
	if t, ok := r.last[EventFailed]; ok {
		s.LastFailed = &t
	}
	return s
}
