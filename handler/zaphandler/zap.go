package zaphandler

import (
	"io"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlog/v2/core"
)

// Handler writes entries through a zapcore.Core.
type Handler struct {
	core   zapcore.Core
	closer io.Closer
}

// New wraps c. A nil core discards everything.
func New(c zapcore.Core) *Handler {
	if c == nil {
		c = zapcore.NewNopCore()
	}
	return &Handler{core: c}
}

// NewJSON builds a handler encoding JSON to ws with zap's production
// encoder config. messageKey overrides the message field name when set.
func NewJSON(ws zapcore.WriteSyncer, messageKey string) *Handler {
	cfg := zap.NewProductionEncoderConfig()
	if messageKey != "" {
		cfg.MessageKey = messageKey
	}
	return New(zapcore.NewCore(zapcore.NewJSONEncoder(cfg), ws, zapcore.DebugLevel))
}

// NewJSONFile is NewJSON over a file-like writer that Close also closes.
func NewJSONFile(w io.WriteCloser, messageKey string) *Handler {
	h := NewJSON(zapcore.AddSync(w), messageKey)
	h.closer = w
	return h
}

// Handle converts the entry and writes it if the core enables its level.
func (h *Handler) Handle(entry *core.Entry) error {
	ent := zapcore.Entry{
		Level:   toZapLevel(entry.Level),
		Time:    entry.Time,
		Message: entry.Message,
	}
	if entry.Caller.Defined {
		ent.Caller = zapcore.NewEntryCaller(0, entry.Caller.File, entry.Caller.Line, true)
		ent.Caller.Function = entry.Caller.Function
	}
	if !h.core.Enabled(ent.Level) {
		return nil
	}

	fields := make([]zapcore.Field, 0, len(entry.Fields)+1)
	if entry.NestedKey != "" {
		fields = append(fields, zap.Namespace(entry.NestedKey))
	}
	for _, f := range entry.Fields {
		fields = append(fields, toZapField(f))
	}
	return h.core.Write(ent, fields)
}

// CanRecycleEntry reports that entries are fully consumed by Handle.
func (h *Handler) CanRecycleEntry() bool {
	return true
}

// Close flushes the core and closes the writer given to NewJSONFile.
func (h *Handler) Close() error {
	err := h.core.Sync()
	if h.closer != nil {
		err = multierr.Append(err, h.closer.Close())
	}
	return err
}

func toZapLevel(l core.Level) zapcore.Level {
	switch l {
	case core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel:
		return zapcore.ErrorLevel
	case core.FatalLevel:
		return zapcore.FatalLevel
	case core.PanicLevel:
		return zapcore.PanicLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapField(f core.Field) zapcore.Field {
	switch f.Type {
	case core.StringType:
		return zap.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return zap.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return zap.Float64(f.Key, f.Float64)
	case core.BoolType:
		return zap.Bool(f.Key, f.Int64 == 1)
	case core.TimeType:
		return zap.Time(f.Key, time.Unix(0, f.Int64))
	case core.DurationType:
		return zap.Duration(f.Key, time.Duration(f.Int64))
	case core.ErrorType:
		if err, ok := f.Any.(error); ok {
			return zap.NamedError(f.Key, err)
		}
		return zap.String(f.Key, f.Str)
	default:
		if m, ok := f.Any.(zapcore.ObjectMarshaler); ok {
			return zap.Object(f.Key, m)
		}
		return zap.Any(f.Key, f.Any)
	}
}
