// Package serializer decides, for every emitted log record, which
// transform (if any) rewrites the value bound to a field before it is
// handed to a formatter.
//
// A Table maps a Key to an Entry. An Entry is either a transform Func or
// an explicit removal. Tables are immutable: New builds one from the
// built-in Defaults plus user overrides, and Merge layers a child's
// overrides over a parent table, returning a new Table and leaving the
// parent untouched. Loggers therefore never share mutable serializer
// state, and concurrent log calls only ever read a Table.
//
// Two reserved keys exist besides plain field names. Wildcard applies to
// any field that has no dedicated entry. Message binds a transform to the
// message argument of a log call, whatever the formatter names that
// field.
//
// Removal is distinct from absence. An absent key lets an inherited or
// wildcard transform show through. A removed key blocks both, and the raw
// value passes through unchanged:
//
//	parent := serializer.New(serializer.SetField("user", redact))
//	child := serializer.Merge(parent, serializer.RemoveField("user"))
//	child.Transform(serializer.Field("user"), u) // returns u untouched
//
// The default error serializer turns any error logged under ErrorKey into
// an ErrorObject carrying its type, message and stack. Stack traces come
// from errors that expose a github.com/pkg/errors StackTrace.
package serializer
