package serializer

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// ErrorKey is the field key the default error serializer is bound to.
const ErrorKey = "error"

// ErrMissingDetector is returned when an error serializer is built
// without a Detector.
var ErrMissingDetector = stderrors.New("serializer: error detector is required")

// ErrorObject is the plain structured form of an error.
type ErrorObject struct {
	Type    string
	Message string
	Stack   string
	// Fields holds extra properties exposed by the error.
	Fields map[string]any
	Cause  *ErrorObject
}

// Detector recognises error-shaped values and extracts their parts.
type Detector interface {
	Detect(v any) (ErrorObject, bool)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(v any) (ErrorObject, bool)

// Detect calls f(v).
func (f DetectorFunc) Detect(v any) (ErrorObject, bool) {
	return f(v)
}

// Fielder is implemented by errors that carry extra properties worth
// logging next to type, message and stack.
type Fielder interface {
	LogFields() map[string]any
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type defaultDetector struct{}

// DefaultDetector accepts any non-nil error.
var DefaultDetector Detector = defaultDetector{}

func (defaultDetector) Detect(v any) (ErrorObject, bool) {
	err, ok := v.(error)
	if !ok || err == nil {
		return ErrorObject{}, false
	}
	obj := describe(err)

	root := err
	for next := stderrors.Unwrap(root); next != nil; next = stderrors.Unwrap(root) {
		root = next
	}
	if root != err && root.Error() != err.Error() {
		cause := describe(root)
		obj.Cause = &cause
	}
	return obj, true
}

func describe(err error) ErrorObject {
	obj := ErrorObject{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Stack:   stackOf(err),
	}
	var f Fielder
	if stderrors.As(err, &f) {
		src := f.LogFields()
		if len(src) > 0 {
			obj.Fields = make(map[string]any, len(src))
			for k, v := range src {
				obj.Fields[k] = v
			}
		}
	}
	return obj
}

// stackOf returns the outermost pkg/errors stack in the chain, or "".
func stackOf(err error) string {
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			return strings.TrimLeft(fmt.Sprintf("%+v", st.StackTrace()), "\n")
		}
	}
	return ""
}

// NewErrorSerializer returns a Func that converts error-shaped values
// recognised by d into ErrorObject values and passes anything else
// through unchanged.
func NewErrorSerializer(d Detector) (Func, error) {
	if d == nil {
		return nil, ErrMissingDetector
	}
	return func(v any) any {
		if obj, ok := d.Detect(v); ok {
			return obj
		}
		return v
	}, nil
}

// Map returns the object as a flat map. Extra fields never shadow type,
// message or stack.
func (o ErrorObject) Map() map[string]any {
	m := make(map[string]any, len(o.Fields)+4)
	for k, v := range o.Fields {
		m[k] = v
	}
	m["type"] = o.Type
	m["message"] = o.Message
	m["stack"] = o.Stack
	if o.Cause != nil {
		m["cause"] = o.Cause.Map()
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (o ErrorObject) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Map())
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (o ErrorObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	keys := make([]string, 0, len(o.Fields))
	for k := range o.Fields {
		switch k {
		case "type", "message", "stack", "cause":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := enc.AddReflected(k, o.Fields[k]); err != nil {
			return err
		}
	}
	enc.AddString("type", o.Type)
	enc.AddString("message", o.Message)
	enc.AddString("stack", o.Stack)
	if o.Cause != nil {
		return enc.AddObject("cause", o.Cause)
	}
	return nil
}

func (o ErrorObject) String() string {
	return o.Type + ": " + o.Message
}
