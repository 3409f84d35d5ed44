package logger

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/philipp01105/nlog/v2/core"
	"github.com/philipp01105/nlog/v2/formatter"
	"github.com/philipp01105/nlog/v2/handler"
	"github.com/philipp01105/nlog/v2/serializer"
)

func newJSONLogger(t *testing.T, buf *bytes.Buffer, overrides ...serializer.Override) *Logger {
	t.Helper()
	h := handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer:    buf,
		Formatter: formatter.NewJSONFormatter(formatter.Config{MessageKey: "msg"}),
	})
	log, err := NewBuilder().
		WithHandler(h).
		WithLevel(DebugLevel).
		WithSerializers(overrides...).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return log
}

// lastLine decodes the most recent JSON record in buf.
func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &data); err != nil {
		t.Fatalf("Invalid JSON: %v\n%s", err, buf.String())
	}
	return data
}

func constant(v interface{}) serializer.Func {
	return func(interface{}) interface{} { return v }
}

func TestLogger_DefaultErrorSerializer(t *testing.T) {
	var buf bytes.Buffer
	log := newJSONLogger(t, &buf)

	err := errors.New("connection refused")
	log.Error("request failed", Err(err))

	data := lastLine(t, &buf)
	obj, ok := data["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error object, got: %v", data["error"])
	}
	if obj["type"] != "*errors.fundamental" {
		t.Errorf("Expected type '*errors.fundamental', got: %v", obj["type"])
	}
	if obj["message"] != "connection refused" {
		t.Errorf("Expected message 'connection refused', got: %v", obj["message"])
	}
	if stack, _ := obj["stack"].(string); !strings.Contains(stack, "TestLogger_DefaultErrorSerializer") {
		t.Errorf("Expected stack to mention the test, got: %v", obj["stack"])
	}
}

func TestLogger_RemovedErrorSerializerPassesRawError(t *testing.T) {
	var buf bytes.Buffer
	log := newJSONLogger(t, &buf, serializer.RemoveField(serializer.ErrorKey))

	log.Error("request failed", Err(stderrors.New("connection refused")))

	data := lastLine(t, &buf)
	if data["error"] != "connection refused" {
		t.Errorf("Expected raw error text, got: %v", data["error"])
	}
}

func TestLogger_MessageSerializer(t *testing.T) {
	var buf bytes.Buffer
	log := newJSONLogger(t, &buf, serializer.Set(serializer.Message, constant("replaced")))

	log.Info("original text")
	log.Infof("formatted %d", 1)

	if strings.Contains(buf.String(), "original text") || strings.Contains(buf.String(), "formatted") {
		t.Errorf("Message should have been replaced, got: %s", buf.String())
	}
	if data := lastLine(t, &buf); data["msg"] != "replaced" {
		t.Errorf("Expected msg 'replaced', got: %v", data["msg"])
	}
}

func TestLogger_ParentChildSerializers(t *testing.T) {
	var buf bytes.Buffer
	parent := newJSONLogger(t, &buf, serializer.SetField("test", constant("parent")))
	child := parent.WithSerializers(serializer.SetField("test", constant("child")))

	parent.Info("p", String("test", "x"))
	if got := lastLine(t, &buf)["test"]; got != "parent" {
		t.Errorf("Parent: expected 'parent', got %v", got)
	}

	child.Info("c", String("test", "x"))
	if got := lastLine(t, &buf)["test"]; got != "child" {
		t.Errorf("Child: expected 'child', got %v", got)
	}

	parent.Info("p", String("test", "x"))
	if got := lastLine(t, &buf)["test"]; got != "parent" {
		t.Errorf("Parent after child: expected 'parent', got %v", got)
	}
}

func TestLogger_InheritedAndChildOnlySerializers(t *testing.T) {
	var buf bytes.Buffer
	parent := newJSONLogger(t, &buf,
		serializer.SetField("shared", constant("parent")),
		serializer.SetField("onlyParent", constant("parent")),
	)
	child := parent.WithSerializers(
		serializer.SetField("shared", constant("child")),
		serializer.SetField("onlyChild", constant("child")),
	)

	child.Info("c", String("onlyParent", "v"))
	if got := lastLine(t, &buf)["onlyParent"]; got != "parent" {
		t.Errorf("Child should inherit parent serializer, got %v", got)
	}

	parent.Info("p", String("onlyChild", "v"))
	if got := lastLine(t, &buf)["onlyChild"]; got != "v" {
		t.Errorf("Parent must not see child serializer, got %v", got)
	}
}

func TestLogger_SiblingsAndIntrospection(t *testing.T) {
	var buf bytes.Buffer
	parent := newJSONLogger(t, &buf, serializer.SetField("a", constant("parent")))
	before := parent.Serializers()

	left := parent.WithSerializers(serializer.SetField("left", constant("L")))
	right := parent.WithSerializers(serializer.SetField("right", constant("R")))

	if parent.Serializers() != before || before.Len() != 2 {
		t.Errorf("Parent table changed: %s", parent.Serializers())
	}
	if _, ok := left.Serializers().Lookup(serializer.Field("right")); ok {
		t.Error("Left sibling sees right sibling's serializer")
	}
	if _, ok := right.Serializers().Lookup(serializer.Field("left")); ok {
		t.Error("Right sibling sees left sibling's serializer")
	}

	// A child without overrides may share the parent's table
	if parent.With(String("k", "v")).Serializers() != parent.Serializers() {
		t.Error("With without overrides should reuse the parent table")
	}
}

func TestLogger_IndependentLoggersHaveEqualTables(t *testing.T) {
	fn := constant("x")
	a := NewBuilder().WithSerializers(serializer.SetField("k", fn)).MustBuild()
	b := NewBuilder().WithSerializers(serializer.SetField("k", fn)).MustBuild()

	if a.Serializers() == b.Serializers() {
		t.Error("Independent loggers should not share a table")
	}
	if !a.Serializers().Equal(b.Serializers()) {
		t.Errorf("Expected equal tables, got %s and %s", a.Serializers(), b.Serializers())
	}
}

func TestLogger_DifferentDetectorsGiveDifferentTables(t *testing.T) {
	detect := func(typ string) serializer.Detector {
		return serializer.DetectorFunc(func(v interface{}) (serializer.ErrorObject, bool) {
			return serializer.ErrorObject{Type: typ}, true
		})
	}
	a := NewBuilder().WithErrorDetector(detect("a")).MustBuild()
	b := NewBuilder().WithErrorDetector(detect("b")).MustBuild()

	if a.Serializers().Equal(b.Serializers()) {
		t.Errorf("Tables with different error detectors reported equal: %s", a.Serializers())
	}
}

func TestBuilder_ReuseAfterBuild(t *testing.T) {
	b := NewBuilder().WithSerializers(serializer.SetField("k", constant("first")))
	first := b.MustBuild()

	b.WithSerializers(serializer.SetField("k", constant("second")))
	if got := first.Serializers().Transform(serializer.Field("k"), "raw"); got != "first" {
		t.Errorf("Builder reuse leaked into built logger, got %v", got)
	}
}

func TestBuilder_NilDetectorFails(t *testing.T) {
	_, err := NewBuilder().WithErrorDetector(nil).Build()
	if !stderrors.Is(err, serializer.ErrMissingDetector) {
		t.Errorf("Expected ErrMissingDetector, got %v", err)
	}
}

func TestBuilder_CustomDetector(t *testing.T) {
	var buf bytes.Buffer
	h := handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})
	log := NewBuilder().
		WithHandler(h).
		WithErrorDetector(serializer.DetectorFunc(func(v interface{}) (serializer.ErrorObject, bool) {
			err, ok := v.(error)
			if !ok {
				return serializer.ErrorObject{}, false
			}
			return serializer.ErrorObject{Type: "custom", Message: err.Error()}, true
		})).
		MustBuild()

	log.Info("x", Err(stderrors.New("boom")))
	obj, _ := lastLine(t, &buf)["error"].(map[string]interface{})
	if obj["type"] != "custom" || obj["message"] != "boom" {
		t.Errorf("Expected custom error object, got %v", obj)
	}
}

func TestLogger_WildcardAndNestedKey(t *testing.T) {
	var buf bytes.Buffer
	h := handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer:    &buf,
		Formatter: formatter.NewJSONFormatter(formatter.Config{}),
	})
	log := NewBuilder().
		WithHandler(h).
		WithNestedKey("payload").
		WithFields(String("bound", "b")).
		WithSerializers(
			serializer.Set(serializer.Wildcard, func(v interface{}) interface{} {
				return strings.ToUpper(v.(string))
			}),
			serializer.RemoveField("keep"),
		).
		MustBuild()

	log.Info("nested", String("a", "x"), String("keep", "y"))

	payload, ok := lastLine(t, &buf)["payload"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected payload object, got: %s", buf.String())
	}
	if payload["a"] != "X" || payload["bound"] != "B" {
		t.Errorf("Wildcard should transform before nesting, got %v", payload)
	}
	if payload["keep"] != "y" {
		t.Errorf("Removed key must pass through raw, got %v", payload["keep"])
	}
}

func TestLogger_ChildSerializerAppliesToBoundFields(t *testing.T) {
	var buf bytes.Buffer
	parent := newJSONLogger(t, &buf).With(String("user", "alice"))
	child := parent.Child(
		[]core.Field{String("session", "s1")},
		serializer.SetField("user", constant("[redacted]")),
	)

	child.Info("c")
	data := lastLine(t, &buf)
	if data["user"] != "[redacted]" || data["session"] != "s1" {
		t.Errorf("Unexpected child record: %v", data)
	}

	parent.Info("p")
	if got := lastLine(t, &buf)["user"]; got != "alice" {
		t.Errorf("Parent bound field must stay raw, got %v", got)
	}
}

func TestLogger_SerializerPanicIsNotMasked(t *testing.T) {
	var buf bytes.Buffer
	log := newJSONLogger(t, &buf, serializer.SetField("boom", func(interface{}) interface{} {
		panic("serializer failed")
	}))

	defer func() {
		if r := recover(); r != "serializer failed" {
			t.Errorf("Expected serializer panic to propagate, got %v", r)
		}
	}()
	log.Info("x", String("boom", "v"))
}
