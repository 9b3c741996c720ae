package toon_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	toon "github.com/vadelabs/toon-sub000"
	"github.com/vadelabs/toon-sub000/value"
)

// jsonToValue bridges encoding/json's untyped decode result into a
// value.Value tree for round-trip fuzzing.
func jsonToValue(data []byte) (value.Value, error) {
	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return value.Null(), err
	}
	return fromInterface(parsed), nil
}

func fromInterface(v interface{}) value.Value {
	switch x := v.(type) {
	case nil:
		return value.Null()
	case bool:
		return value.Bool(x)
	case float64:
		return value.Number(x)
	case string:
		return value.String(x)
	case []interface{}:
		out := make([]value.Value, len(x))
		for i, item := range x {
			out[i] = fromInterface(item)
		}
		return value.Array(out)
	case map[string]interface{}:
		o := value.NewObject()
		for k, fv := range x {
			o.Set(k, fromInterface(fv))
		}
		return value.FromObject(o)
	default:
		return value.Null()
	}
}

// FuzzUnmarshal exercises the scanner/parser boundary: Unmarshal must
// never panic on arbitrary input, only return an error or a value.
// Grounded on the teacher's FuzzUnmarshalToMap seed-corpus shape.
func FuzzUnmarshal(f *testing.F) {
	const validDoc = "id: 1\nmessage: Hello, World\nverified: true\ntags[2]: dev,clj"

	malformed := []string{
		"0::",
		"{0",
		"[-1]",
		"[abc]",
		"",
		"-\n-",
		"a:\n b:\nc:",
		"[2]{a,b}:\n 1,2\n",
		"[0]{}:",
		"a[x]: 1",
		"\t\ta: 1",
		"a: \"unterminated",
	}

	f.Add([]byte(validDoc))
	for _, s := range malformed {
		f.Add([]byte(s))
		f.Add([]byte(validDoc + "\n" + s))
		f.Add([]byte(s + "\n" + validDoc))
		f.Add([]byte(strings.Repeat(s, 3)))
	}

	f.Fuzz(func(t *testing.T, src []byte) {
		if _, err := toon.Unmarshal(src); err != nil {
			t.Logf("decode error: %v", err)
		}
	})
}

// FuzzMarshalUnmarshalRoundTrip checks that any value JSON can represent
// encodes to TOON, that the text decodes without error, and that encoding
// the decoded value a second time reproduces the same text.
func FuzzMarshalUnmarshalRoundTrip(f *testing.F) {
	f.Add(`null`)
	f.Add(`0`)
	f.Add(`true`)
	f.Add(`false`)
	f.Add(`""`)
	f.Add(`{}`)
	f.Add(`[]`)
	f.Add(`{"a":[]}`)
	f.Add(`{"a":{"b":{"c":1}}}`)
	f.Add(`[{"a":1},{"a":2,"b":3}]`)

	f.Fuzz(func(t *testing.T, s string) {
		v, err := jsonToValue([]byte(s))
		if err != nil {
			t.Skip("not a value this module's JSON bridge can represent")
		}

		b, err := toon.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}

		v2, err := toon.Unmarshal(b)
		if err != nil {
			t.Fatalf("Unmarshal(%q): %v", b, err)
		}

		b2, err := toon.Marshal(v2)
		if err != nil {
			t.Fatalf("re-Marshal: %v", err)
		}
		if !bytes.Equal(b, b2) {
			t.Errorf("Marshal->Unmarshal->Marshal mismatch:\n- expected: %q\n- got:      %q", b, b2)
		}
	})
}
