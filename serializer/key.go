package serializer

type keyKind uint8

const (
	fieldKey keyKind = iota
	wildcardKey
	messageKey
)

// Key identifies a table entry: either a plain field name or one of the
// reserved keys. Keys are comparable and can be used as map keys.
type Key struct {
	kind keyKind
	name string
}

var (
	// Wildcard is the fallback entry for fields without a dedicated one.
	Wildcard = Key{kind: wildcardKey}
	// Message binds a transform to the log call's message argument.
	Message = Key{kind: messageKey}
)

// Field returns the key for a structured field name.
func Field(name string) Key {
	return Key{kind: fieldKey, name: name}
}

// Reserved reports whether k is Wildcard or Message.
func (k Key) Reserved() bool {
	return k.kind != fieldKey
}

func (k Key) String() string {
	switch k.kind {
	case wildcardKey:
		return "<*>"
	case messageKey:
		return "<message>"
	default:
		return k.name
	}
}
