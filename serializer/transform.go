package serializer

import (
	"fmt"
	"time"

	"github.com/philipp01105/nlog/v2/core"
)

// resolve finds the transform for k. An exact entry wins; a removed exact
// entry yields nil without falling back. Otherwise plain field keys fall
// back to Wildcard.
func (t *Table) resolve(k Key) Func {
	if t.Len() == 0 {
		return nil
	}
	if e, ok := t.entries[k]; ok {
		return e.fn
	}
	if k.kind != fieldKey {
		return nil
	}
	if e, ok := t.entries[Wildcard]; ok {
		return e.fn
	}
	return nil
}

// Transform applies the transform resolved for k to v, or returns v
// unchanged when there is none.
func (t *Table) Transform(k Key, v any) any {
	if fn := t.resolve(k); fn != nil {
		return fn(v)
	}
	return v
}

// Message applies the Message transform to msg. Non-string results are
// rendered with fmt.Sprint.
func (t *Table) Message(msg string) string {
	fn := t.resolve(Message)
	if fn == nil {
		return msg
	}
	switch out := fn(msg).(type) {
	case string:
		return out
	case nil:
		return ""
	default:
		return fmt.Sprint(out)
	}
}

// Apply runs the table over fields. The input slice is never modified; a
// new slice is allocated only if at least one field is rewritten.
func (t *Table) Apply(fields []core.Field) []core.Field {
	if t.Len() == 0 || len(fields) == 0 {
		return fields
	}
	var out []core.Field
	for i, f := range fields {
		fn := t.resolve(Field(f.Key))
		if fn == nil {
			if out != nil {
				out = append(out, f)
			}
			continue
		}
		if out == nil {
			out = make([]core.Field, i, len(fields))
			copy(out, fields[:i])
		}
		out = append(out, fieldOf(f.Key, fn(f.Value())))
	}
	if out == nil {
		return fields
	}
	return out
}

// fieldOf wraps a transform result back into a Field, keeping the compact
// encodings for scalar types.
func fieldOf(key string, v any) core.Field {
	switch val := v.(type) {
	case string:
		return core.Field{Key: key, Type: core.StringType, Str: val}
	case int:
		return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
	case int64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: val}
	case float64:
		return core.Field{Key: key, Type: core.Float64Type, Float64: val}
	case bool:
		f := core.Field{Key: key, Type: core.BoolType}
		if val {
			f.Int64 = 1
		}
		return f
	case time.Time:
		return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
	case time.Duration:
		return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
	case error:
		return core.Err(key, val)
	default:
		return core.Object(key, v)
	}
}
