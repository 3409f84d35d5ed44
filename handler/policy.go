package handler

import (
	"sync/atomic"

	"github.com/philipp01105/nlog/v2/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest log entry when queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest log entry when queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default level-based overflow policies
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.DebugLevel: DropNewest,
		core.InfoLevel:  DropNewest,
		core.WarnLevel:  DropNewest,
		core.ErrorLevel: Block,
		core.FatalLevel: Block,
		core.PanicLevel: Block,
	}
}

// Stats tracks handler statistics
type Stats struct {
	dropped   [core.PanicLevel + 1]atomic.Uint64
	blocked   atomic.Uint64
	processed atomic.Uint64
	failed    atomic.Uint64
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Dropped   map[core.Level]uint64
	Blocked   uint64
	Processed uint64
	// Failed counts entries whose write returned an error
	Failed uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) incDropped(level core.Level) {
	if level >= 0 && int(level) < len(s.dropped) {
		s.dropped[level].Add(1)
	}
}

// Dropped returns the dropped count for a level
func (s *Stats) Dropped(level core.Level) uint64 {
	if level < 0 || int(level) >= len(s.dropped) {
		return 0
	}
	return s.dropped[level].Load()
}

// TotalDropped returns the total dropped across all levels
func (s *Stats) TotalDropped() uint64 {
	var n uint64
	for i := range s.dropped {
		n += s.dropped[i].Load()
	}
	return n
}

// Snapshot returns a snapshot of current statistics
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{
		Dropped:   make(map[core.Level]uint64, len(s.dropped)),
		Blocked:   s.blocked.Load(),
		Processed: s.processed.Load(),
		Failed:    s.failed.Load(),
	}
	for i := range s.dropped {
		snap.Dropped[core.Level(i)] = s.dropped[i].Load()
	}
	return snap
}
