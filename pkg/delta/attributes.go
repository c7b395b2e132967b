package delta

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Attributes maps attribute names to attribute values.
//
// A value is one of:
//   - a JSON scalar (string, number, boolean)
//   - nil, the removal sentinel: valid only inside change deltas, where it
//     marks an attribute to be cleared on application
//   - a nested *Delta (used for embed sub-documents), which the attribute
//     algebra recurses through
//
// A nil or empty map means "no attributes"; operations normalize empty maps
// to nil so that attribute-free ops compare equal regardless of construction.
type Attributes map[string]interface{}

// Clone returns a copy of the attribute map. Values are shared; they are
// treated as immutable throughout the package.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	result := make(Attributes, len(a))
	for k, v := range a {
		result[k] = v
	}
	return result
}

// String returns a deterministic representation for debugging,
// e.g. {bold: true, color: red}.
func (a Attributes) String() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", k, a[k])
	}
	b.WriteByte('}')
	return b.String()
}

// normAttrs normalizes an empty attribute map to nil.
func normAttrs(a Attributes) Attributes {
	if len(a) == 0 {
		return nil
	}
	return a
}

// asNestedDelta reports whether an attribute value is a nested delta.
//
// In memory a nested delta is a *Delta. A value freshly decoded from JSON may
// still be a map carrying an "ops" array; it is recognized and converted here
// so hand-built raw attribute maps behave like unmarshalled ones.
func asNestedDelta(v interface{}) (*Delta, bool) {
	switch t := v.(type) {
	case *Delta:
		return t, true
	case map[string]interface{}:
		ops, ok := t["ops"].([]interface{})
		if !ok {
			return nil, false
		}
		d, err := deltaFromInterface(ops)
		if err != nil {
			return nil, false
		}
		return d, true
	}
	return nil, false
}

// attrValueEqual compares two attribute values: nested deltas op-by-op,
// everything else by deep equality.
func attrValueEqual(x, y interface{}) bool {
	xd, xok := asNestedDelta(x)
	yd, yok := asNestedDelta(y)
	if xok || yok {
		return xok && yok && xd.Equals(yd)
	}
	return reflect.DeepEqual(x, y)
}

// attributesEqual compares two attribute maps: same key set, values equal
// under attrValueEqual. nil and empty compare equal.
func attributesEqual(a, b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !attrValueEqual(av, bv) {
			return false
		}
	}
	return true
}

// composeAttributes folds two attribute maps applied in sequence.
//
// Keys present on only one side are kept; where both sides carry nested
// deltas the deltas are composed; otherwise the second map wins. With
// keepNil false, removal sentinels are applied and stripped (composing into
// a document); with keepNil true they survive so a later application can
// still clear the attribute (composing two changes).
func composeAttributes(first, second Attributes, keepNil bool) Attributes {
	result := make(Attributes, len(first)+len(second))
	for k, v := range first {
		result[k] = v
	}
	for k, sv := range second {
		if fv, ok := first[k]; ok {
			fd, fok := asNestedDelta(fv)
			sd, sok := asNestedDelta(sv)
			if fok && sok {
				result[k] = Compose(fd, sd)
				continue
			}
		}
		result[k] = sv
	}
	if !keepNil {
		for k, v := range result {
			if v == nil {
				delete(result, k)
			}
		}
	}
	return normAttrs(result)
}

// transformAttributes rebases right's attribute changes against left's.
//
// With Right priority the two changes are siblings and right wins outright;
// with Left priority left's formatting is preserved and only right's
// additions survive. Keys carried by both sides as nested deltas are
// transformed recursively regardless of priority.
func transformAttributes(left, right Attributes, priority Priority) Attributes {
	result := make(Attributes, len(right))
	for k, rv := range right {
		lv, inLeft := left[k]
		if !inLeft {
			result[k] = rv
			continue
		}
		ld, lok := asNestedDelta(lv)
		rd, rok := asNestedDelta(rv)
		if lok && rok {
			result[k] = Transform(ld, rd, priority)
			continue
		}
		if priority == Right {
			result[k] = rv
		}
	}
	return normAttrs(result)
}

// diffAttributes computes the attribute change that turns before into after.
//
// Removed keys map to the nil sentinel, added or changed keys to after's
// value, and keys carried by both sides as nested deltas to the recursive
// delta diff (omitted when empty).
func diffAttributes(before, after Attributes) Attributes {
	result := make(Attributes)
	for k := range before {
		if _, ok := after[k]; !ok {
			result[k] = nil
		}
	}
	for k, av := range after {
		bv, ok := before[k]
		if !ok {
			result[k] = av
			continue
		}
		bd, bok := asNestedDelta(bv)
		ad, aok := asNestedDelta(av)
		if bok && aok {
			nested, err := Diff(bd, ad)
			if err == nil {
				if len(nested.ops) > 0 {
					result[k] = nested
				}
				continue
			}
			// Not valid sub-documents; fall through to value comparison.
		}
		if !attrValueEqual(bv, av) {
			result[k] = av
		}
	}
	return normAttrs(result)
}

// invertAttributes computes the attribute change that undoes attrs against
// the attributes base carried by the affected document slice. Changed keys
// revert to base's value; keys base never had map to the removal sentinel.
func invertAttributes(attrs, base Attributes) Attributes {
	result := make(Attributes)
	for k, bv := range base {
		if av, ok := attrs[k]; ok && !attrValueEqual(av, bv) {
			result[k] = bv
		}
	}
	for k := range attrs {
		if _, ok := base[k]; !ok {
			result[k] = nil
		}
	}
	return normAttrs(result)
}
