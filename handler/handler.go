package handler

import (
	"github.com/philipp01105/nlog/v2/core"
)

// Handler defines the interface for log handlers. Entries reaching a
// handler have already been run through the logger's serializers.
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}
