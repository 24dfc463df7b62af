package run

import "sync"

// ClockEntry records one instruction's estimated cost for the running
// clock-estimate trailer: "Clocks: +4 = 12", or "Clocks: +17 = 31 (8 + 9ea)"
// when EA is nonzero.
type ClockEntry struct {
	Text  string
	Base  int
	EA    int
	Cost  int
	Total int
}

// ClockTrace accumulates per-instruction clock estimates: a mutex-guarded
// slice with a running total, append-only. This simulator never executes
// concurrently, but the driver loop and any future streaming consumer
// (e.g. printing the trace while still decoding) share the same collector
// instance, so the locking stays in place regardless.
type ClockTrace struct {
	mu      sync.Mutex
	entries []ClockEntry
	total   int
}

// NewClockTrace returns an empty trace.
func NewClockTrace() *ClockTrace {
	return &ClockTrace{}
}

// Add records a (base, ea) pair against the running total and returns the
// entry. cost is base+ea; ea is kept separate so callers can render the
// effective-address breakdown.
func (c *ClockTrace) Add(text string, base, ea int) ClockEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	cost := base + ea
	c.total += cost
	e := ClockEntry{Text: text, Base: base, EA: ea, Cost: cost, Total: c.total}
	c.entries = append(c.entries, e)
	return e
}

// Entries returns a copy of every recorded entry, in recording order.
func (c *ClockTrace) Entries() []ClockEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ClockEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Total returns the running clock total.
func (c *ClockTrace) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}
