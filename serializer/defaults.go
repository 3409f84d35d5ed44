package serializer

var defaults = buildDefaults()

func buildDefaults() *Table {
	fn, err := NewErrorSerializer(DefaultDetector)
	if err != nil {
		panic(err)
	}
	return newTable(nil, []Override{SetField(ErrorKey, fn)})
}

// Defaults returns the built-in table. It is shared and must be treated
// as read-only, like every Table.
func Defaults() *Table {
	return defaults
}

// SerializeError is the built-in error serializer.
func SerializeError(v any) any {
	return defaults.Transform(Field(ErrorKey), v)
}
