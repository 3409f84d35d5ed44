package handler

import (
	"io"
	"os"
	"time"

	"github.com/philipp01105/nlog/v2/core"
	"github.com/philipp01105/nlog/v2/formatter"
)

// ConsoleHandler writes log entries to stdout/stderr or any io.Writer
type ConsoleHandler struct {
	out *output
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	return &ConsoleHandler{
		out: newOutput(cfg.Writer, cfg.Formatter, queueConfig{
			async:          cfg.Async,
			bufferSize:     cfg.BufferSize,
			overflowPolicy: cfg.OverflowPolicy,
			blockTimeout:   cfg.BlockTimeout,
			drainTimeout:   cfg.DrainTimeout,
		}),
	}
}

// Handle processes a log entry
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	return h.out.handle(entry)
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *ConsoleHandler) CanRecycleEntry() bool {
	return !h.out.cfg.async
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() Snapshot {
	return h.out.stats.Snapshot()
}

// Close drains pending entries and stops the background writer
func (h *ConsoleHandler) Close() error {
	h.out.close()
	return nil
}
