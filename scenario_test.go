package toon_test

import (
	"os"
	"testing"

	toon "github.com/vadelabs/toon-sub000"
	"github.com/vadelabs/toon-sub000/encoder"
	"github.com/vadelabs/toon-sub000/value"
)

// readScenario loads a testdata/scenarios/<name>.toon fixture's exact
// bytes (no trailing newline), matching canonical encoder output.
func readScenario(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/scenarios/" + name + ".toon")
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// TestScenarioFlatPrimitiveObject is spec scenario 1.
func TestScenarioFlatPrimitiveObject(t *testing.T) {
	o := value.NewObject()
	o.Set("name", value.String("Alice"))
	o.Set("age", value.Number(30))
	o.Set("tags", value.Array([]value.Value{value.String("dev"), value.String("clj")}))
	v := value.FromObject(o)

	want := readScenario(t, "01_flat_primitive_object")
	got, err := toon.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	back, err := toon.Unmarshal(got)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(v) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", back, v)
	}
}

// TestScenarioTabularUniformArray is spec scenario 2.
func TestScenarioTabularUniformArray(t *testing.T) {
	row := func(id float64, name, role string) value.Value {
		o := value.NewObject()
		o.Set("id", value.Number(id))
		o.Set("name", value.String(name))
		o.Set("role", value.String(role))
		return value.FromObject(o)
	}
	v := value.Array([]value.Value{row(1, "Alice", "admin"), row(2, "Bob", "user"), row(3, "Carol", "user")})

	want := readScenario(t, "02_tabular_uniform_array")
	got, err := toon.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	back, err := toon.Unmarshal(got)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(v) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", back, v)
	}
}

// TestScenarioListArrayWithNestedObjects is spec scenario 3.
func TestScenarioListArrayWithNestedObjects(t *testing.T) {
	item := func(name string, price float64) value.Value {
		o := value.NewObject()
		o.Set("name", value.String(name))
		o.Set("price", value.Number(price))
		return value.FromObject(o)
	}
	root := value.NewObject()
	root.Set("items", value.Array([]value.Value{item("Laptop", 999), item("Mouse", 29)}))
	v := value.FromObject(root)

	want := readScenario(t, "03_list_array_with_nested_objects")
	got, err := toon.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestScenarioQuotingNecessity is spec scenario 4.
func TestScenarioQuotingNecessity(t *testing.T) {
	o := value.NewObject()
	o.Set("value", value.String("05"))
	v := value.FromObject(o)

	want := readScenario(t, "04_quoting_necessity")
	got, err := toon.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestScenarioKeyCollapseAndExpand is spec scenario 5.
func TestScenarioKeyCollapseAndExpand(t *testing.T) {
	server := value.NewObject()
	server.Set("server", value.String("localhost"))
	config := value.NewObject()
	config.Set("config", value.FromObject(server))
	data := value.NewObject()
	data.Set("data", value.FromObject(config))
	v := value.FromObject(data)

	want := readScenario(t, "05_key_collapse_and_expand")
	got, err := toon.Marshal(v, toon.KeyCollapsing(encoder.CollapseSafe))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	back, err := toon.Unmarshal(got, toon.ExpandPaths(true))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(v) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", back, v)
	}
}

// TestScenarioStrictLengthMismatch is spec scenario 6.
func TestScenarioStrictLengthMismatch(t *testing.T) {
	text := []byte("[2]{id,name}:\n  1,Alice\n  2,Bob\n  3,Charlie")

	if _, err := toon.Unmarshal(text); err == nil {
		t.Fatal("expected a strict-mode tabular-array-length-mismatch error")
	}

	got, err := toon.Unmarshal(text, toon.Strict(false))
	if err != nil {
		t.Fatalf("Unmarshal non-strict: %v", err)
	}
	if got.Kind() != value.KindArray || len(got.ArrayValue()) != 3 {
		t.Fatalf("expected 3 rows tolerated in non-strict mode, got %+v", got)
	}
}

// TestScenarioRowVsKeyValueDisambiguation is spec scenario 7.
func TestScenarioRowVsKeyValueDisambiguation(t *testing.T) {
	raw := []byte(readScenario(t, "07_row_vs_key_value_disambiguation"))

	got, err := toon.Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	obj := got.ObjectValue()
	if obj == nil {
		t.Fatalf("expected a root object, got %+v", got)
	}
	rows, ok := obj.Get("")
	if !ok || rows.Kind() != value.KindArray || len(rows.ArrayValue()) != 2 {
		t.Fatalf("expected a 2-row anonymous array field, got %+v (ok=%v)", rows, ok)
	}
	next, ok := obj.Get("next")
	if !ok || next.StrValue() != "x" {
		t.Fatalf("expected sibling next: x, got %+v (ok=%v)", next, ok)
	}
}
