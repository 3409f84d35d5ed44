package serializer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/philipp01105/nlog/v2/core"
)

func constant(v any) Func {
	return func(any) any { return v }
}

func TestNew_ContainsDefaultErrorEntry(t *testing.T) {
	t.Parallel()

	tbl := New()
	e, ok := tbl.Lookup(Field(ErrorKey))
	require.True(t, ok)
	require.False(t, e.IsRemoved())
	require.NotNil(t, e.Func())
	require.Same(t, Defaults(), tbl)
}

func TestNew_LastDeclaredWins(t *testing.T) {
	t.Parallel()

	fn := constant("set")
	tbl := New(SetField("a", fn), RemoveField("a"))
	e, ok := tbl.Lookup(Field("a"))
	require.True(t, ok)
	require.True(t, e.IsRemoved())

	tbl = New(RemoveField("a"), SetField("a", fn))
	require.Equal(t, "set", tbl.Transform(Field("a"), "raw"))
}

func TestNew_NilFuncIsRemoval(t *testing.T) {
	t.Parallel()

	tbl := New(SetField(ErrorKey, nil))
	e, ok := tbl.Lookup(Field(ErrorKey))
	require.True(t, ok)
	require.True(t, e.IsRemoved())
	require.True(t, Defaults().entries[Field(ErrorKey)].Func() != nil, "defaults must stay intact")
}

func TestNew_DoesNotAliasOverrides(t *testing.T) {
	t.Parallel()

	overrides := []Override{SetField("a", constant("first"))}
	tbl := New(overrides...)
	overrides[0] = SetField("a", constant("second"))

	require.Equal(t, "first", tbl.Transform(Field("a"), "raw"))
}

func TestMerge_ParentUnchanged(t *testing.T) {
	t.Parallel()

	parent := New(SetField("test", constant("parent")))
	before := parent.Entries()

	child := Merge(parent, SetField("test", constant("child")))

	require.Equal(t, "child", child.Transform(Field("test"), "x"))
	require.Equal(t, "parent", parent.Transform(Field("test"), "x"))
	require.Equal(t, before, parent.Entries())
}

func TestMerge_NoOverridesSharesParent(t *testing.T) {
	t.Parallel()

	parent := New(SetField("a", constant(1)))
	require.Same(t, parent, Merge(parent))
	require.Equal(t, 0, Merge(nil).Len())
}

func TestMerge_SiblingsAreIndependent(t *testing.T) {
	t.Parallel()

	parent := New(SetField("shared", constant("parent")))
	a := Merge(parent, SetField("onlyA", constant("a")))
	b := Merge(parent, SetField("onlyB", constant("b")))

	require.Equal(t, "raw", a.Transform(Field("onlyB"), "raw"))
	require.Equal(t, "raw", b.Transform(Field("onlyA"), "raw"))
	require.Equal(t, "raw", parent.Transform(Field("onlyA"), "raw"))
	require.Equal(t, "parent", a.Transform(Field("shared"), "raw"))
	require.Equal(t, "parent", b.Transform(Field("shared"), "raw"))
}

func TestMerge_InheritedAndChildOnlyKeys(t *testing.T) {
	t.Parallel()

	parent := New(
		SetField("shared", constant("parent")),
		SetField("onlyParent", constant("parent")),
	)
	child := Merge(parent,
		SetField("shared", constant("child")),
		SetField("onlyChild", constant("child")),
	)

	require.Equal(t, "parent", child.Transform(Field("onlyParent"), "v"))
	require.Equal(t, "child", child.Transform(Field("shared"), "v"))
	require.Equal(t, "v", parent.Transform(Field("onlyChild"), "v"))
}

func toA(any) any { return "a" }
func toB(any) any { return "b" }
func toC(any) any { return "c" }

func TestMerge_IsAssociative(t *testing.T) {
	t.Parallel()

	parent := New(SetField("x", toA), SetField("y", toA))
	childOverrides := []Override{SetField("y", toB), RemoveField("x"), SetField("z", toB)}
	grandOverrides := []Override{SetField("x", toC), RemoveField("z")}

	stepwise := Merge(Merge(parent, childOverrides...), grandOverrides...)
	flat := Merge(parent, append(append([]Override{}, childOverrides...), grandOverrides...)...)

	require.True(t, stepwise.Equal(flat), "stepwise %s != flat %s", stepwise, flat)
	for _, k := range []string{"x", "y", "z", ErrorKey} {
		require.Equal(t, flat.Transform(Field(k), "raw"), stepwise.Transform(Field(k), "raw"), k)
	}
	require.Equal(t, "c", stepwise.Transform(Field("x"), "raw"))
	require.Equal(t, "b", stepwise.Transform(Field("y"), "raw"))
	require.Equal(t, "raw", stepwise.Transform(Field("z"), "raw"))
}

func TestMerge_RemovalOfUnknownKeyIsRecorded(t *testing.T) {
	t.Parallel()

	child := Merge(Empty(), RemoveField("ghost"))
	grandchild := Merge(child)

	e, ok := grandchild.Lookup(Field("ghost"))
	require.True(t, ok)
	require.True(t, e.IsRemoved())
	require.Equal(t, "raw", grandchild.Transform(Field("ghost"), "raw"))
}

func TestTable_EqualByContent(t *testing.T) {
	t.Parallel()

	fn := constant("x")
	a := New(SetField("k", fn), Remove(Wildcard))
	b := New(SetField("k", fn), Remove(Wildcard))
	c := New(SetField("k", constant("x")))

	require.NotSame(t, a, b)
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.True(t, Empty().Equal(nil))

	require.True(t, New(SetField("k", toA)).Equal(New(SetField("k", toA))))
	require.False(t, New(SetField("k", toA)).Equal(New(SetField("k", toB))))
	require.False(t, New(SetField("k", toA)).Equal(New(RemoveField("k"))))
}

type redactor struct {
	mask string
}

func (r redactor) Redact(any) any { return r.mask }

func TestTable_DifferentTransformsSameKeyAreNotEqual(t *testing.T) {
	t.Parallel()

	var tables []*Table
	for _, v := range []string{"x", "y"} {
		tables = append(tables, New(SetField("k", func(any) any { return v })))
	}
	require.Equal(t, tables[0].Len(), tables[1].Len())
	require.Equal(t, "x", tables[0].Transform(Field("k"), "raw"))
	require.Equal(t, "y", tables[1].Transform(Field("k"), "raw"))
	require.False(t, tables[0].Equal(tables[1]))

	a := New(SetField("k", redactor{"A"}.Redact))
	b := New(SetField("k", redactor{"B"}.Redact))
	require.False(t, a.Equal(b))

	// A method value is one function value however often it is installed.
	r := redactor{"A"}.Redact
	require.True(t, New(SetField("k", r)).Equal(New(SetField("k", r))))
}

func TestMerge_RemovedWildcardBlocksInherited(t *testing.T) {
	t.Parallel()

	parent := New(Set(Wildcard, constant("wild")))
	child := Merge(parent, Remove(Wildcard))

	fields := []core.Field{{Key: "user", Type: core.StringType, Str: "alice"}}
	require.Equal(t, "wild", parent.Apply(fields)[0].Str)
	require.Equal(t, "alice", child.Apply(fields)[0].Str)
	require.Equal(t, "wild", parent.Transform(Field("user"), "alice"))
}

func TestMerge_RemovedMessageBlocksInherited(t *testing.T) {
	t.Parallel()

	parent := New(Set(Message, constant("replaced")))
	child := Merge(parent, Remove(Message))

	require.Equal(t, "replaced", parent.Message("hello"))
	require.Equal(t, "hello", child.Message("hello"))

	grandchild := Merge(child, SetField("other", constant(1)))
	require.Equal(t, "hello", grandchild.Message("hello"))
}

func TestTable_KeysOrder(t *testing.T) {
	t.Parallel()

	tbl := New(SetField("b", constant(1)), Set(Message, constant(2)), SetField("a", constant(3)), SetField("b", nil))
	require.Equal(t, []Key{Field(ErrorKey), Field("b"), Message, Field("a")}, tbl.Keys())
	require.Equal(t, "<message>", Message.String())
	require.True(t, Wildcard.Reserved())
	require.False(t, Field("a").Reserved())
}

func TestFromMap_SortedAndNilRemoves(t *testing.T) {
	t.Parallel()

	fn := constant("z")
	got := FromMap(map[string]Func{"z": fn, "a": nil})
	require.Len(t, got, 2)
	require.Equal(t, Field("a"), got[0].Key)
	require.True(t, got[0].Entry.IsRemoved())
	require.Equal(t, Field("z"), got[1].Key)
	require.True(t, got[1].Entry.Equal(Transform(fn)))
}

func TestApply_ExactRemovedWildcard(t *testing.T) {
	t.Parallel()

	tbl := New(
		Set(Wildcard, constant("wild")),
		SetField("exact", constant("exact")),
		RemoveField("plain"),
	)
	in := []core.Field{
		{Key: "exact", Type: core.StringType, Str: "1"},
		{Key: "plain", Type: core.StringType, Str: "2"},
		{Key: "other", Type: core.StringType, Str: "3"},
	}
	out := tbl.Apply(in)

	require.Equal(t, "exact", out[0].Str)
	require.Equal(t, "2", out[1].Str)
	require.Equal(t, "wild", out[2].Str)
	require.Equal(t, "1", in[0].Str, "input must not be modified")
}

func TestApply_UntouchedReturnsInput(t *testing.T) {
	t.Parallel()

	in := []core.Field{{Key: "a", Type: core.IntType, Int64: 1}}
	out := Empty().Apply(in)
	require.Same(t, &in[0], &out[0])

	out = New().Apply(in)
	require.Same(t, &in[0], &out[0])
}

func TestApply_ResultTypes(t *testing.T) {
	t.Parallel()

	tbl := Merge(Empty(),
		SetField("n", func(v any) any { return v.(int) * 2 }),
		SetField("m", constant(map[string]any{"k": "v"})),
	)
	out := tbl.Apply([]core.Field{
		{Key: "n", Type: core.IntType, Int64: 21},
		{Key: "m", Type: core.StringType, Str: "x"},
	})

	require.Equal(t, core.IntType, out[0].Type)
	require.Equal(t, int64(42), out[0].Int64)
	require.Equal(t, core.ObjectType, out[1].Type)
	require.Equal(t, map[string]any{"k": "v"}, out[1].Any)
}

func TestApply_PanicPropagates(t *testing.T) {
	t.Parallel()

	tbl := New(SetField("boom", func(any) any { panic("serializer failed") }))
	require.PanicsWithValue(t, "serializer failed", func() {
		tbl.Apply([]core.Field{{Key: "boom", Type: core.StringType, Str: "x"}})
	})
}

func TestMessage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "hello", New().Message("hello"))

	tbl := New(Set(Message, constant("replaced")))
	require.Equal(t, "replaced", tbl.Message("hello"))

	tbl = New(Set(Message, constant(42)))
	require.Equal(t, "42", tbl.Message("hello"))

	// The wildcard is a field fallback; it does not touch the message.
	tbl = New(Set(Wildcard, constant("wild")))
	require.Equal(t, "hello", tbl.Message("hello"))
}
