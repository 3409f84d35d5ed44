// Package logger is the public API of NLog. Most users only need to
// import this package.
//
// A Logger is immutable after construction. Fields, level, handler and
// serializer table are set once via the Builder and never modified, so a
// Logger is safe for concurrent use without locking on the read path.
//
// The package initializes a default Logger (async, InfoLevel, text
// format to stdout) in init(). The package-level functions Info,
// Error, Debugf, etc. delegate to this default instance, so simple
// programs can log without any setup:
//
//	logger.Info("ready", logger.Int("port", 8080))
//
// For custom configuration, use the Builder:
//
//	log, err := logger.NewBuilder().
//	    WithHandler(myHandler).
//	    WithLevel(logger.DebugLevel).
//	    WithCaller(true).
//	    Build()
//
// Build fails only when the error serializer cannot be constructed,
// which happens if WithErrorDetector was given nil. MustBuild panics
// instead.
//
// # Serializers
//
// Every Logger carries a serializer table that maps field keys to
// transforms. Values are transformed at emission time, before the
// handler sees them. The built-in table turns anything logged under
// "error" (see Err) into a structured object with type, message and
// stack. Overrides are layered on with WithSerializers, either on the
// Builder or on an existing Logger:
//
//	audit := log.WithSerializers(
//	    serializer.SetField("password", func(any) any { return "[redacted]" }),
//	    serializer.RemoveField("error"),
//	)
//
// A child never changes its parent's table, and siblings never see each
// other's overrides. Child combines extra fields and overrides in one
// step; With is Child without overrides. Serializers exposes the
// resolved table for inspection.
//
// Level checks happen before any allocation, so filtered-out
// messages cost only a single integer comparison.
package logger
