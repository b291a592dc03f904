package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing value safe for concurrent use.
type Counter struct {
	value atomic.Uint64
}

func (c *Counter) Inc() { c.value.Add(1) }
func (c *Counter) Add(n uint64) { c.value.Add(n) }
func (c *Counter) Load() uint64 { return c.value.Load() }

// Timer measures one operation; hand it to Registry.Observe when done.
type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry hands out named counters and keeps the latest duration observed
// per name. A nil *Registry is valid and records nothing.
type Registry struct {
	mu        sync.Mutex
	counters  map[string]*Counter
	durations map[string]time.Duration
}

func NewRegistry() *Registry {
	return &Registry{
		counters:  make(map[string]*Counter),
		durations: make(map[string]time.Duration),
	}
}

func (r *Registry) Counter(name string) *Counter {
	if r == nil {
		return &Counter{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.counters[name]
	if !ok {
		c = &Counter{}
		r.counters[name] = c
	}
	return c
}

// Observe records the elapsed time of t under name.
func (r *Registry) Observe(name string, t *Timer) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations[name] = t.Duration()
}

type Snapshot struct {
	Counters  map[string]uint64 `json:"counters"`
	Durations map[string]string `json:"last_durations"`
}

func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{Counters: map[string]uint64{}, Durations: map[string]string{}}
	if r == nil {
		return s
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, c := range r.counters {
		s.Counters[name] = c.Load()
	}
	for name, d := range r.durations {
		s.Durations[name] = d.String()
	}
	return s
}

// Names lists registered counters, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.counters))
	for n := range r.counters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
