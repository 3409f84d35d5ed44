package handler

import (
	"errors"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/nlog/v2/core"
	"github.com/philipp01105/nlog/v2/formatter"
)

var errFilenameRequired = errors.New("filename is required")

// FileHandler writes log entries to a file. Rotation and backup cleanup
// are delegated to lumberjack.
type FileHandler struct {
	out  *output
	file *lumberjack.Logger
}

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Async enables asynchronous logging
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// MaxSizeMB is the size in megabytes that triggers rotation (default: 100)
	MaxSizeMB int
	// MaxAgeDays is how long rotated files are kept (0 = keep all)
	MaxAgeDays int
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// Compress gzips rotated files
	Compress bool
	// LocalTime names backups using local time instead of UTC
	LocalTime bool
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewFileHandler creates a new file handler
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, errFilenameRequired
	}

	file := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
		LocalTime:  cfg.LocalTime,
	}

	return &FileHandler{
		file: file,
		out: newOutput(file, cfg.Formatter, queueConfig{
			async:          cfg.Async,
			bufferSize:     cfg.BufferSize,
			overflowPolicy: cfg.OverflowPolicy,
			blockTimeout:   cfg.BlockTimeout,
			drainTimeout:   cfg.DrainTimeout,
		}),
	}, nil
}

// Handle processes a log entry
func (h *FileHandler) Handle(entry *core.Entry) error {
	return h.out.handle(entry)
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *FileHandler) CanRecycleEntry() bool {
	return !h.out.cfg.async
}

// Rotate closes the current file and starts a new one
func (h *FileHandler) Rotate() error {
	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	return h.file.Rotate()
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() Snapshot {
	return h.out.stats.Snapshot()
}

// Close drains pending entries and closes the file
func (h *FileHandler) Close() error {
	h.out.close()
	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	return h.file.Close()
}
