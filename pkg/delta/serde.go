package delta

import (
	"encoding/json"
	"fmt"
	"math"
)

// The wire format is Quill-compatible JSON: a delta is an array of operation
// objects, each exactly one of
//
//	{"insert": <string | number | object>, "attributes": <object>?}
//	{"retain": <non-negative integer>, "attributes": <object>?}
//	{"delete": <non-negative integer>}
//
// "attributes" is omitted when empty. An attribute value that is an object
// carrying an "ops" array is a nested delta; an attribute value of null is
// the removal sentinel. A non-string insert value is an embed.

// nestedDelta is the wire form of a delta stored inside an attribute value.
type nestedDelta struct {
	Ops []Op `json:"ops"`
}

// MarshalJSON encodes the delta as a Quill-compatible JSON array.
func (d *Delta) MarshalJSON() ([]byte, error) {
	ops := d.ops
	if ops == nil {
		ops = []Op{}
	}
	return json.Marshal(ops)
}

// MarshalJSON encodes the insert as {"insert": ..., "attributes": ...}.
func (o InsertOp) MarshalJSON() ([]byte, error) {
	obj := map[string]interface{}{"insert": encodeAttrValue(o.value)}
	if len(o.attrs) > 0 {
		obj["attributes"] = encodeAttributes(o.attrs)
	}
	return json.Marshal(obj)
}

// MarshalJSON encodes the retain as {"retain": n, "attributes": ...}.
func (o RetainOp) MarshalJSON() ([]byte, error) {
	obj := map[string]interface{}{"retain": o.n}
	if len(o.attrs) > 0 {
		obj["attributes"] = encodeAttributes(o.attrs)
	}
	return json.Marshal(obj)
}

// MarshalJSON encodes the delete as {"delete": n}.
func (o DeleteOp) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"delete": o.n})
}

// encodeAttributes rewrites nested *Delta values into their {"ops": [...]}
// wire form; everything else marshals as-is.
func encodeAttributes(attrs Attributes) map[string]interface{} {
	obj := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		obj[k] = encodeAttrValue(v)
	}
	return obj
}

func encodeAttrValue(v interface{}) interface{} {
	if d, ok := v.(*Delta); ok {
		ops := d.ops
		if ops == nil {
			ops = []Op{}
		}
		return nestedDelta{Ops: ops}
	}
	return v
}

// UnmarshalJSON decodes a Quill-compatible JSON array, normalizing the
// result to canonical form. Objects carrying an "ops" array inside attribute
// values decode to nested *Delta recursively.
func (d *Delta) UnmarshalJSON(data []byte) error {
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := deltaFromInterface(raw)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// deltaFromInterface builds a delta from a decoded JSON array. Construction
// routes through Push, so zero-length operations are elided and adjacent
// operations merge exactly as with the builder API.
func deltaFromInterface(items []interface{}) (*Delta, error) {
	d := New()
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("operation must be an object, got %T", item)
		}
		attrs, err := decodeAttributes(obj["attributes"])
		if err != nil {
			return nil, err
		}
		switch {
		case hasKey(obj, "insert"):
			d.Push(Insert(decodeAttrValue(obj["insert"]), attrs))
		case hasKey(obj, "retain"):
			n, err := decodeLength(obj["retain"], "retain")
			if err != nil {
				return nil, err
			}
			d.Push(Retain(n, attrs))
		case hasKey(obj, "delete"):
			n, err := decodeLength(obj["delete"], "delete")
			if err != nil {
				return nil, err
			}
			d.Push(Delete(n))
		default:
			return nil, fmt.Errorf("unknown operation: %v", obj)
		}
	}
	return d, nil
}

func hasKey(obj map[string]interface{}, key string) bool {
	_, ok := obj[key]
	return ok
}

func decodeLength(v interface{}, kind string) (int, error) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("%s length must be an integer, got %v", kind, v)
	}
	return int(f), nil
}

func decodeAttributes(v interface{}) (Attributes, error) {
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("attributes must be an object, got %T", v)
	}
	attrs := make(Attributes, len(obj))
	for k, av := range obj {
		attrs[k] = decodeAttrValue(av)
	}
	return attrs, nil
}

// decodeAttrValue converts an {"ops": [...]} object into a nested *Delta;
// any other value (including embed descriptors) passes through untouched.
func decodeAttrValue(v interface{}) interface{} {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	ops, ok := obj["ops"].([]interface{})
	if !ok {
		return v
	}
	nested, err := deltaFromInterface(ops)
	if err != nil {
		return v
	}
	return nested
}
