package handler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/nlog/v2/core"
)

// MultiHandler sends log entries to multiple handlers
type MultiHandler struct {
	handlers     []Handler
	recycleEntry bool // true when every child supports entry recycling
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{
		handlers:     handlers,
		recycleEntry: true,
	}
	for _, h := range handlers {
		rc, ok := h.(interface{ CanRecycleEntry() bool })
		if !ok || !rc.CanRecycleEntry() {
			m.recycleEntry = false
		}
	}
	return m
}

// Handle sends the entry to every handler. All handlers are tried; their
// errors are combined.
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Handle(entry))
	}
	return err
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns.
// This is safe when all child handlers process entries synchronously.
func (h *MultiHandler) CanRecycleEntry() bool {
	return h.recycleEntry
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Close())
	}
	return err
}
