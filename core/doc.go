// Package core defines the shared types used across NLog.
//
// It provides the Level type for severity filtering, the Entry type that
// represents a single log event, and the Field type for structured
// key-value pairs.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and return it with PutEntry once the handler has consumed it.
//
// A Field keeps its raw value so that serializers (see package
// serializer) can rewrite it before it reaches a formatter. Error fields
// hold the error itself, not only its message. Serializer results are
// stored as ObjectType fields and rendered as structured data.
package core
