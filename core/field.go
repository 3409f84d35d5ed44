package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
	// ObjectType marks a value produced by a serializer. Encoders render it
	// as structured data; text output prefers its JSON form over String.
	ObjectType
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// Err builds an error field under key. The error itself is kept in Any so
// serializers can inspect it; Str caches the message.
func Err(key string, err error) Field {
	if err == nil {
		return Field{Key: key, Type: ErrorType}
	}
	return Field{Key: key, Type: ErrorType, Str: err.Error(), Any: err}
}

// Object builds a field carrying an arbitrary serialized value.
func Object(key string, val interface{}) Field {
	return Field{Key: key, Type: ObjectType, Any: val}
}

// Value returns the raw Go value held by the field. This is what a
// serializer receives.
func (f Field) Value() interface{} {
	switch f.Type {
	case StringType:
		return f.Str
	case IntType:
		return int(f.Int64)
	case Int64Type:
		return f.Int64
	case Float64Type:
		return f.Float64
	case BoolType:
		return f.Int64 == 1
	case TimeType:
		return time.Unix(0, f.Int64)
	case DurationType:
		return time.Duration(f.Int64)
	case ErrorType:
		if f.Any != nil {
			return f.Any
		}
		return f.Str
	default:
		return f.Any
	}
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(time.RFC3339)
	case DurationType:
		return time.Duration(f.Int64).String()
	case ErrorType:
		if err, ok := f.Any.(error); ok {
			return err.Error()
		}
		return f.Str
	case AnyType:
		return fmt.Sprintf("%v", f.Any)
	case ObjectType:
		switch v := f.Any.(type) {
		case string:
			return v
		case json.Marshaler:
			if data, err := v.MarshalJSON(); err == nil {
				return string(data)
			}
		case fmt.Stringer:
			return v.String()
		}
		if data, err := json.Marshal(f.Any); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", f.Any)
	default:
		return ""
	}
}
