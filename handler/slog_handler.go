package handler

import (
	"context"
	"log/slog"

	"github.com/philipp01105/nlog/v2/core"
	"github.com/philipp01105/nlog/v2/serializer"
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// Handler. Records pass through a serializer table before being handed
// on, exactly like entries emitted by a Logger.
type SlogHandler struct {
	handler     Handler
	level       core.Level
	serializers *serializer.Table
	attrs       []core.Field
	group       string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given
// Handler. A nil table means the built-in defaults.
func NewSlogHandler(h Handler, level core.Level, serializers *serializer.Table) *SlogHandler {
	if serializers == nil {
		serializers = serializer.Defaults()
	}
	return &SlogHandler{
		handler:     h,
		level:       level,
		serializers: serializers,
	}
}

// Serializers returns the table applied to records.
func (s *SlogHandler) Serializers() *serializer.Table {
	return s.serializers
}

// WithSerializers returns a SlogHandler whose table has overrides layered
// on top of this one's.
func (s *SlogHandler) WithSerializers(overrides ...serializer.Override) *SlogHandler {
	c := *s
	c.serializers = serializer.Merge(s.serializers, overrides...)
	return &c
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevelToCore(level) >= s.level
}

// Handle converts the record to an Entry, applies the serializers and
// passes it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	entry.Time = record.Time
	entry.Level = slogLevelToCore(record.Level)
	entry.Message = s.serializers.Message(record.Message)

	if len(s.attrs) > 0 {
		entry.Fields = append(entry.Fields, s.serializers.Apply(s.attrs)...)
	}

	start := len(entry.Fields)
	record.Attrs(func(a slog.Attr) bool {
		entry.Fields = append(entry.Fields, slogAttrToField(s.group, a))
		return true
	})
	if len(entry.Fields) > start {
		applied := s.serializers.Apply(entry.Fields[start:])
		entry.Fields = append(entry.Fields[:start], applied...)
	}

	return s.handler.Handle(entry)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = append(newAttrs, slogAttrToField(s.group, a))
	}
	c := *s
	c.attrs = newAttrs
	return &c
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	c := *s
	if s.group != "" {
		c.group = s.group + "." + name
	} else {
		c.group = name
	}
	return &c
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// slogAttrToField converts a slog.Attr to a core.Field, prepending the group prefix if present.
func slogAttrToField(group string, a slog.Attr) core.Field {
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindString:
		return core.Field{Key: key, Type: core.StringType, Str: a.Value.String()}
	case slog.KindInt64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()}
	case slog.KindFloat64:
		return core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()}
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return core.Field{Key: key, Type: core.BoolType, Int64: val}
	case slog.KindTime:
		return core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()}
	case slog.KindDuration:
		return core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())}
	case slog.KindGroup:
		m := make(map[string]any)
		for _, ga := range a.Value.Group() {
			m[ga.Key] = ga.Value.Resolve().Any()
		}
		return core.Object(key, m)
	default:
		if err, ok := a.Value.Any().(error); ok {
			return core.Err(key, err)
		}
		return core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()}
	}
}
