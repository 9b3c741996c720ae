// Package encoder implements Encoder: Arrays and Encoder: Objects + Key
// Collapser (spec §4.3, §4.4): it walks a value.Value tree and produces
// canonical TOON lines via internal/writer, choosing between the
// empty/inline/tabular/list array forms and optionally collapsing
// single-key object chains into dotted paths.
//
// Grounded on the teacher's encode.go encodeValue/encodeMap/encodeSlice
// dispatch shape: one exported Encoder type with unexported recursive
// methods, generalized from reflect.Value dispatch to value.Kind dispatch.
package encoder

import (
	"strconv"
	"strings"

	"github.com/vadelabs/toon-sub000/internal/quote"
	"github.com/vadelabs/toon-sub000/internal/writer"
	"github.com/vadelabs/toon-sub000/value"
)

// DefaultIndentSpaces is the number of spaces per depth level when Options
// leaves Indent unset.
const DefaultIndentSpaces = 2

// CollapseMode selects the key-collapsing behavior of §4.4.
type CollapseMode int

const (
	// CollapseOff never joins single-key object chains.
	CollapseOff CollapseMode = iota
	// CollapseSafe joins them when it can do so without a key collision.
	CollapseSafe
)

// Replacer is invoked pre-order on every (key, value) pair the encoder
// visits, including the synthetic root (empty key, empty path). Returning
// keep=false at a non-root position omits the field or element; at the
// root it is ignored and the original value is kept.
type Replacer func(key string, v value.Value, path []string) (out value.Value, keep bool)

// Options configures an Encoder.
type Options struct {
	Indent        int
	Delimiter     byte
	KeyCollapsing CollapseMode
	// FlattenDepth caps the number of segments a collapsed key may
	// accumulate. Zero or negative means unbounded.
	FlattenDepth int
	Replacer     Replacer
	// Collisions is a caller-provided set of root-literal keys that a
	// collapsed key must not match, per §4.4(b).
	Collisions []string
}

// Encoder produces TOON text from a value.Value tree.
type Encoder struct {
	opts       Options
	collisions map[string]bool
}

// New returns an Encoder configured by opts. A zero Indent defaults to
// DefaultIndentSpaces; a zero Delimiter defaults to ','.
func New(opts Options) *Encoder {
	if opts.Indent <= 0 {
		opts.Indent = DefaultIndentSpaces
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	e := &Encoder{opts: opts}
	if len(opts.Collisions) > 0 {
		e.collisions = make(map[string]bool, len(opts.Collisions))
		for _, c := range opts.Collisions {
			e.collisions[c] = true
		}
	}
	return e
}

// Encode returns the canonical TOON text for v: no trailing newline, no
// trailing spaces on any line.
func (e *Encoder) Encode(v value.Value) (string, error) {
	w := writer.New(e.opts.Indent)
	if err := e.encodeRoot(w, v); err != nil {
		return "", err
	}
	return w.String(), nil
}

// EncodeLines is Encode's sibling returning the same content as an ordered
// sequence of lines.
func (e *Encoder) EncodeLines(v value.Value) ([]string, error) {
	w := writer.New(e.opts.Indent)
	if err := e.encodeRoot(w, v); err != nil {
		return nil, err
	}
	return w.Lines(), nil
}

func (e *Encoder) encodeRoot(w *writer.Writer, v value.Value) error {
	rv, keep := e.applyReplacer("", v, []string{})
	if !keep {
		rv = v
	}
	switch {
	case rv.IsArray():
		return e.encodeArrayBody(w, 0, rv.ArrayValue(), []string{})
	case rv.IsObject():
		obj := rv.ObjectValue()
		if obj.Len() == 0 {
			return nil
		}
		return e.encodeObjectFields(w, 0, obj, nil, false)
	default:
		w.DelimitedValue(rv, e.opts.Delimiter)
		w.Newline()
		return nil
	}
}

func (e *Encoder) applyReplacer(key string, v value.Value, path []string) (value.Value, bool) {
	if e.opts.Replacer == nil {
		return v, true
	}
	return e.opts.Replacer(key, v, path)
}

func (e *Encoder) collides(key string) bool { return e.collisions[key] }

// fieldPlan is the resolved (replacer-applied, collapse-attempted) output
// for one object key, before collision resolution.
type fieldPlan struct {
	key   string
	value value.Value
	omit  bool
}

// encodeObjectFields writes obj's fields starting at depth, applying the
// replacer and key collapsing and resolving collapse collisions across
// the full set of sibling fields before committing to any one line.
// When firstSameLine is true the first non-omitted field is written
// without a leading Indent (it continues a "- " list-item dash line).
func (e *Encoder) encodeObjectFields(w *writer.Writer, depth int, obj *value.Object, path []string, firstSameLine bool) error {
	keys := obj.Keys()
	plans := make([]fieldPlan, len(keys))
	candidates := make([]string, len(keys))

	for i, k := range keys {
		fv, _ := obj.Get(k)
		rv, keep := e.applyReplacer(k, fv, appendPath(path, k))
		if !keep {
			plans[i] = fieldPlan{omit: true}
			continue
		}
		finalKey, finalValue := k, rv
		if e.opts.KeyCollapsing == CollapseSafe && rv.IsObject() {
			if ck, cv, ok := e.collapseChain(k, rv); ok {
				finalKey, finalValue = ck, cv
			}
		}
		plans[i] = fieldPlan{key: finalKey, value: finalValue}
		candidates[i] = finalKey
	}

	counts := make(map[string]int, len(keys))
	for _, c := range candidates {
		if c != "" {
			counts[c]++
		}
	}

	first := true
	for i, k := range keys {
		p := plans[i]
		if p.omit {
			continue
		}
		finalKey, finalValue := p.key, p.value
		if finalKey != k && (counts[finalKey] > 1 || e.collides(finalKey)) {
			// collapse would collide with a sibling (including another
			// collapsed output) or the caller's collision set: fall back
			// to the plain, uncollapsed field.
			fv, _ := obj.Get(k)
			finalValue, _ = e.applyReplacer(k, fv, appendPath(path, k))
			finalKey = k
		}
		sameLine := first && firstSameLine
		if err := e.encodeField(w, depth, finalKey, finalValue, path, sameLine); err != nil {
			return err
		}
		first = false
	}
	return nil
}

func (e *Encoder) encodeField(w *writer.Writer, depth int, key string, v value.Value, path []string, sameLine bool) error {
	if !sameLine {
		w.Indent(depth)
	}
	w.Key(key)
	switch {
	case v.IsArray():
		return e.encodeArrayBody(w, depth, v.ArrayValue(), appendPath(path, key))
	case v.IsObject():
		w.Colon()
		obj := v.ObjectValue()
		if obj.Len() == 0 {
			w.Newline()
			return nil
		}
		w.Newline()
		return e.encodeObjectFields(w, depth+1, obj, appendPath(path, key), false)
	default:
		w.Raw(": ")
		w.DelimitedValue(v, e.opts.Delimiter)
		w.Newline()
		return nil
	}
}

// collapseChain follows k -> v -> (its single key) -> ... while each
// value is an object with exactly one identifier-segment key, stopping at
// the first non-object, empty object, multi-key object, or the
// FlattenDepth ceiling. ok is false when fewer than two segments result.
func (e *Encoder) collapseChain(k string, v value.Value) (key string, terminal value.Value, ok bool) {
	if !quote.IsIdentifierSegment(k) {
		return "", value.Value{}, false
	}
	segs := []string{k}
	cur := v
	for {
		if e.opts.FlattenDepth > 0 && len(segs) >= e.opts.FlattenDepth {
			break
		}
		if !cur.IsObject() {
			break
		}
		obj := cur.ObjectValue()
		if obj.Len() != 1 {
			break
		}
		nextKey := obj.Keys()[0]
		if !quote.IsIdentifierSegment(nextKey) {
			break
		}
		nextVal, _ := obj.Get(nextKey)
		segs = append(segs, nextKey)
		cur = nextVal
	}
	if len(segs) < 2 {
		return "", value.Value{}, false
	}
	return strings.Join(segs, "."), cur, true
}

// arrayItemPlan is the resolved (replacer-applied) output for one array
// element along with the path it was resolved at, the array-element
// counterpart of fieldPlan.
type arrayItemPlan struct {
	value value.Value
	path  []string
}

// planArrayItems applies the replacer to every element of arr, keyed by
// its index (as §6 requires for array elements, mirroring
// encodeObjectFields's per-field application), dropping omitted
// elements. The returned plans drive both the array-form decision
// (primitive/tabular/list) and the body encoding, so an element the
// replacer rewrites or omits is reflected in the header length and in
// tabular-eligibility as well as in the emitted rows/items.
func (e *Encoder) planArrayItems(arr []value.Value, path []string) []arrayItemPlan {
	plans := make([]arrayItemPlan, 0, len(arr))
	for i, item := range arr {
		ip := appendPath(path, strconv.Itoa(i))
		rv, keep := e.applyReplacer(strconv.Itoa(i), item, ip)
		if !keep {
			continue
		}
		plans = append(plans, arrayItemPlan{value: rv, path: ip})
	}
	return plans
}

// encodeArrayBody writes an array's header line (continuing whatever
// prefix the caller already wrote on the current line) and, for tabular
// and list forms, the rows/items at depth+1.
func (e *Encoder) encodeArrayBody(w *writer.Writer, depth int, arr []value.Value, path []string) error {
	plans := e.planArrayItems(arr, path)
	n := len(plans)
	if n == 0 {
		w.Raw("[0]")
		w.Newline()
		return nil
	}
	values := make([]value.Value, n)
	for i, p := range plans {
		values[i] = p.value
	}
	if allPrimitive(values) {
		w.Raw(bracketHeader(n, e.opts.Delimiter))
		w.Raw(": ")
		for i, v := range values {
			if i > 0 {
				w.Raw(string(e.opts.Delimiter))
			}
			w.DelimitedValue(v, e.opts.Delimiter)
		}
		w.Newline()
		return nil
	}
	if common := tabularKeys(values); len(common) > 0 {
		w.Raw(bracketHeader(n, e.opts.Delimiter))
		w.Raw("{")
		for i, k := range common {
			if i > 0 {
				w.Raw(",")
			}
			w.Key(k)
		}
		w.Raw("}:")
		w.Newline()
		for _, v := range values {
			w.Indent(depth + 1)
			obj := v.ObjectValue()
			for i, k := range common {
				if i > 0 {
					w.Raw(string(e.opts.Delimiter))
				}
				cv, _ := obj.Get(k)
				w.DelimitedValue(cv, e.opts.Delimiter)
			}
			w.Newline()
		}
		return nil
	}
	w.Raw(bracketHeader(n, e.opts.Delimiter))
	w.Raw(":")
	w.Newline()
	for _, p := range plans {
		if err := e.encodeListItem(w, depth+1, p.value, p.path); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeListItem(w *writer.Writer, depth int, item value.Value, path []string) error {
	w.Indent(depth)
	w.Raw("- ")
	switch {
	case item.IsObject():
		obj := item.ObjectValue()
		if obj.Len() == 0 {
			w.Newline()
			return nil
		}
		return e.encodeObjectFields(w, depth+1, obj, path, true)
	case item.IsArray():
		return e.encodeArrayBody(w, depth, item.ArrayValue(), path)
	default:
		w.DelimitedValue(item, e.opts.Delimiter)
		w.Newline()
		return nil
	}
}

func bracketHeader(n int, delim byte) string {
	if delim == ',' {
		return "[" + strconv.Itoa(n) + "]"
	}
	return "[" + strconv.Itoa(n) + string(delim) + "]"
}

func allPrimitive(arr []value.Value) bool {
	for _, v := range arr {
		if !v.IsPrimitive() {
			return false
		}
	}
	return true
}

// minTabularRows is the smallest element count at which a uniform-object
// array is emitted tabular rather than as a list. Two same-shape rows
// read more naturally as named list entries than as a table; three or
// more reads as data. This also resolves the tension between the
// "common keys non-empty" tabular-eligibility rule and the two-item
// list-array example: without a row-count floor the rule alone would
// make that example tabular (see DESIGN.md).
const minTabularRows = 3

// tabularKeys returns arr's shared key set, in the first element's
// order, when arr is tabular-eligible: every element is an object, every
// element has exactly the same key set (the stricter of the two rules
// §9 allows, chosen so dropping non-common keys never happens silently),
// and there are at least minTabularRows elements. Returns nil otherwise,
// in which case the caller falls back to list form.
func tabularKeys(arr []value.Value) []string {
	if len(arr) < minTabularRows {
		return nil
	}
	for _, v := range arr {
		if !v.IsObject() {
			return nil
		}
	}
	first := arr[0].ObjectValue()
	keys := first.Keys()
	for _, v := range arr[1:] {
		obj := v.ObjectValue()
		if obj.Len() != len(keys) {
			return nil
		}
		for _, k := range keys {
			if !obj.Has(k) {
				return nil
			}
		}
	}
	return keys
}

func appendPath(path []string, k string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = k
	return out
}
