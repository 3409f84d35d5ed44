package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/philipp01105/nlog/v2/core"
	"github.com/philipp01105/nlog/v2/handler"
	"github.com/philipp01105/nlog/v2/serializer"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// Logger is the main logging interface (immutable)
type Logger struct {
	handler       handler.Handler
	level         core.Level
	fields        []core.Field
	serializers   *serializer.Table
	nestedKey     string
	includeCaller bool
	callerSkip    int
	recycleEntry  bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	level         core.Level
	fields        []core.Field
	overrides     []serializer.Override
	detector      serializer.Detector
	ownDetector   bool
	nestedKey     string
	includeCaller bool
	callerSkip    int
	recycleEntry  bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoLevel, // Default level
		callerSkip: 3,              // Default skip for getCaller
		detector:   serializer.DefaultDetector,
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	if rc, ok := h.(interface{ CanRecycleEntry() bool }); ok {
		b.recycleEntry = rc.CanRecycleEntry()
	} else {
		b.recycleEntry = false
	}
	return b
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithSerializers appends serializer overrides. They are layered over the
// built-in defaults in the order given.
func (b *Builder) WithSerializers(overrides ...serializer.Override) *Builder {
	b.overrides = append(b.overrides, overrides...)
	return b
}

// WithErrorDetector replaces the detector behind the default error
// serializer. A nil detector makes Build fail.
func (b *Builder) WithErrorDetector(d serializer.Detector) *Builder {
	b.detector = d
	b.ownDetector = true
	return b
}

// WithNestedKey places all structured fields under key in the output.
func (b *Builder) WithNestedKey(key string) *Builder {
	b.nestedKey = key
	return b
}

// Build creates the Logger instance. It fails if the error serializer
// cannot be constructed.
func (b *Builder) Build() (*Logger, error) {
	errFn, err := serializer.NewErrorSerializer(b.detector)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	overrides := b.overrides
	if b.ownDetector {
		overrides = make([]serializer.Override, 0, len(b.overrides)+1)
		overrides = append(overrides, serializer.SetField(serializer.ErrorKey, errFn))
		overrides = append(overrides, b.overrides...)
	}

	fields := make([]core.Field, len(b.fields))
	copy(fields, b.fields)

	return &Logger{
		handler:       b.handler,
		level:         b.level,
		fields:        fields,
		serializers:   serializer.New(overrides...),
		nestedKey:     b.nestedKey,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		recycleEntry:  b.recycleEntry,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Logger {
	l, err := b.Build()
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Logger) clone() *Logger {
	c := *l
	return &c
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	return l.Child(fields)
}

// WithSerializers creates a child Logger whose serializer table is the
// parent's with overrides layered on top. The parent is not affected.
func (l *Logger) WithSerializers(overrides ...serializer.Override) *Logger {
	return l.Child(nil, overrides...)
}

// Child creates a new Logger carrying extra fields and serializer
// overrides.
func (l *Logger) Child(fields []core.Field, overrides ...serializer.Override) *Logger {
	c := l.clone()
	if len(fields) > 0 {
		newFields := make([]core.Field, len(l.fields)+len(fields))
		copy(newFields, l.fields)
		copy(newFields[len(l.fields):], fields)
		c.fields = newFields
	}
	c.serializers = serializer.Merge(l.serializers, overrides...)
	return c
}

// Serializers returns the resolved serializer table. It exists for
// diagnostics and tests; the table is read-only.
func (l *Logger) Serializers() *serializer.Table {
	return l.serializers
}

// Level returns the minimum level this logger emits.
func (l *Logger) Level() core.Level {
	return l.level
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	// Level check optimization - exit early BEFORE any allocations
	if level < l.level {
		return
	}

	l.log(level, msg, fields)
}

// log is the internal logging method that takes a pre-allocated slice
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	if l.handler == nil {
		return
	}

	entry := core.GetEntry()
	entry.Time = time.Now()
	entry.Level = level
	entry.Message = l.serializers.Message(msg)
	entry.NestedKey = l.nestedKey

	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.serializers.Apply(l.fields)...)
	}
	if len(fields) > 0 {
		entry.Fields = append(entry.Fields, l.serializers.Apply(fields)...)
	}

	if l.includeCaller {
		entry.Caller = core.GetCaller(l.callerSkip)
	}

	err := l.handler.Handle(entry)
	if err != nil {
		return
	}

	// Return entry to pool if handler supports it
	if l.recycleEntry {
		core.PutEntry(entry)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// Fatal logs a fatal message and exits the program with os.Exit(1)
func (l *Logger) Fatal(msg string, fields ...core.Field) {
	l.log(core.FatalLevel, msg, fields)
	osExit(1)
}

// Panic logs a panic message and panics
func (l *Logger) Panic(msg string, fields ...core.Field) {
	l.log(core.PanicLevel, msg, fields)
	panic(msg)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a fatal message with formatting and exits the program with os.Exit(1)
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(core.FatalLevel, fmt.Sprintf(format, args...), nil)
	osExit(1)
}

// Panicf logs a panic message with formatting and panics
func (l *Logger) Panicf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.log(core.PanicLevel, msg, nil)
	panic(msg)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
