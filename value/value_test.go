package value_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vadelabs/toon-sub000/value"
)

func TestNumberNormalizesNegativeZero(t *testing.T) {
	got := value.Number(math.Copysign(0, -1))
	want := value.Number(0)
	if math.Signbit(got.NumberValue()) || !got.Equal(want) {
		t.Fatalf("Number(-0) = %#v, want positive zero", got)
	}
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	obj := value.NewObject()
	obj.Set("b", value.Number(2))
	obj.Set("a", value.Number(1))
	obj.Set("b", value.Number(20)) // overwrite keeps position

	want := []string{"b", "a"}
	if diff := cmp.Diff(want, obj.Keys()); diff != "" {
		t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
	}
	got, ok := obj.Get("b")
	if !ok || !got.Equal(value.Number(20)) {
		t.Fatalf("Get(b) = %v, %v; want 20, true", got, ok)
	}
}

func TestValueEqualAcrossKinds(t *testing.T) {
	tests := []struct {
		name  string
		a, b  value.Value
		equal bool
	}{
		{"null==null", value.Null(), value.Null(), true},
		{"null!=bool", value.Null(), value.Bool(false), false},
		{"string match", value.String("x"), value.String("x"), true},
		{"array order matters", value.Array([]value.Value{value.Number(1), value.Number(2)}), value.Array([]value.Value{value.Number(2), value.Number(1)}), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.equal {
				t.Fatalf("Equal() = %v, want %v", got, tc.equal)
			}
		})
	}
}

func TestCmpOptionComparesValueTrees(t *testing.T) {
	a := value.Array([]value.Value{value.String("x"), value.Number(1)})
	b := value.Array([]value.Value{value.String("x"), value.Number(1)})
	if diff := cmp.Diff(a, b, value.CmpOption()); diff != "" {
		t.Fatalf("unexpected diff (-want +got):\n%s", diff)
	}
}
