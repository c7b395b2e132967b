package delta

import "strings"

// Delta is an ordered sequence of operations describing a document or a
// change to one.
//
// Every constructor routes through Push, so a Delta always satisfies the
// canonical form invariants:
//   - no zero-length operation
//   - adjacent operations of the same kind with identical attributes are
//     merged (text concatenates, lengths add; embeds never merge)
//   - an insert following a delete at the same position is reordered to
//     insert, delete
//
// The algebra (Compose, Transform, Diff, ...) never mutates its inputs; the
// chainable Insert/Retain/Delete/Push methods mutate the receiver and exist
// for construction only, in the builder style:
//
//	change := delta.New().Retain(5, nil).Insert("Hello", delta.Attributes{"bold": true})
type Delta struct {
	ops []Op
}

// New creates a delta from ops, normalizing to canonical form.
func New(ops ...Op) *Delta {
	d := &Delta{}
	for _, op := range ops {
		d.Push(op)
	}
	return d
}

// Insert appends an insert operation and returns the receiver for chaining.
// value is a text string or an embed; inserting an empty string is a no-op.
func (d *Delta) Insert(value interface{}, attrs Attributes) *Delta {
	return d.Push(Insert(value, attrs))
}

// Retain appends a retain operation and returns the receiver for chaining.
// Retaining a non-positive length is a no-op.
func (d *Delta) Retain(n int, attrs Attributes) *Delta {
	return d.Push(Retain(n, attrs))
}

// Delete appends a delete operation and returns the receiver for chaining.
// Deleting a non-positive length is a no-op.
func (d *Delta) Delete(n int) *Delta {
	return d.Push(Delete(n))
}

// Push places op onto the tail of the delta, maintaining canonical form.
//
// Zero-length operations are dropped. A delete followed by an insert is
// reordered so the insert comes first, after which the insert is compacted
// against the element before the delete as well. Adjacent operations of the
// same kind with equal attributes merge.
func (d *Delta) Push(op Op) *Delta {
	if op == nil || opZeroLength(op) {
		return d
	}
	index := len(d.ops)
	if index > 0 {
		lastOp := d.ops[index-1]
		if del, ok := op.(DeleteOp); ok {
			if lastDel, ok := lastOp.(DeleteOp); ok {
				d.ops[index-1] = Delete(lastDel.n + del.n)
				return d
			}
		}
		// An insert and a delete at the same position commute; keep the
		// insert first so inverse pairs always line up the same way.
		if IsDelete(lastOp) && IsInsert(op) {
			index--
			if index == 0 {
				d.ops = append([]Op{op}, d.ops...)
				return d
			}
			lastOp = d.ops[index-1]
		}
		if merged, ok := mergeOps(lastOp, op); ok {
			d.ops[index-1] = merged
			return d
		}
	}
	if index == len(d.ops) {
		d.ops = append(d.ops, op)
	} else {
		d.ops = append(d.ops, nil)
		copy(d.ops[index+1:], d.ops[index:])
		d.ops[index] = op
	}
	return d
}

// opZeroLength reports whether op would be a no-op: an empty insert string,
// a non-positive retain or a non-positive delete. Embeds always have length 1.
func opZeroLength(op Op) bool {
	if ins, ok := op.(InsertOp); ok {
		if s, isText := ins.value.(string); isText {
			return s == ""
		}
		return false
	}
	return op.Length() <= 0
}

// mergeOps merges two adjacent operations of the same kind with equal
// attributes. Embeds are indivisible and never merge.
func mergeOps(a, b Op) (Op, bool) {
	switch av := a.(type) {
	case InsertOp:
		bv, ok := b.(InsertOp)
		if !ok {
			return nil, false
		}
		as, aText := av.value.(string)
		bs, bText := bv.value.(string)
		if aText && bText && attributesEqual(av.attrs, bv.attrs) {
			return Insert(as+bs, av.attrs), true
		}
	case RetainOp:
		bv, ok := b.(RetainOp)
		if !ok {
			return nil, false
		}
		if attributesEqual(av.attrs, bv.attrs) {
			return Retain(av.n+bv.n, av.attrs), true
		}
	}
	return nil, false
}

// Ops returns the underlying operation sequence. The slice and the
// operations it holds must not be mutated.
func (d *Delta) Ops() []Op {
	return d.ops
}

// Length returns the total length of the delta: the sum of the lengths of
// all operations.
func (d *Delta) Length() int {
	length := 0
	for _, op := range d.ops {
		length += op.Length()
	}
	return length
}

// BaseLength returns the length of the document this delta addresses: the
// sum of its retain and delete lengths.
func (d *Delta) BaseLength() int {
	length := 0
	for _, op := range d.ops {
		if !IsInsert(op) {
			length += op.Length()
		}
	}
	return length
}

// ChangeLength returns the net length change the delta causes when applied:
// inserted length minus deleted length.
func (d *Delta) ChangeLength() int {
	length := 0
	for _, op := range d.ops {
		switch op.Type() {
		case OpInsert:
			length += op.Length()
		case OpDelete:
			length -= op.Length()
		}
	}
	return length
}

// Chop removes a trailing attribute-free retain, which is a no-op, and
// returns the receiver. Canonical form guarantees at most one can trail.
func (d *Delta) Chop() *Delta {
	if n := len(d.ops); n > 0 {
		if ret, ok := d.ops[n-1].(RetainOp); ok && ret.attrs == nil {
			d.ops = d.ops[:n-1]
		}
	}
	return d
}

// Equals compares two deltas operation by operation, recursing through
// nested deltas in attribute values.
func (d *Delta) Equals(other *Delta) bool {
	if len(d.ops) != len(other.ops) {
		return false
	}
	for i := range d.ops {
		if !opsEqual(d.ops[i], other.ops[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy sharing the (immutable) operations.
func (d *Delta) Clone() *Delta {
	ops := make([]Op, len(d.ops))
	copy(ops, d.ops)
	return &Delta{ops: ops}
}

// String returns a representation for debugging, e.g.
// `insert "Hel" {bold: true}, retain 3, delete 1`.
func (d *Delta) String() string {
	parts := make([]string, len(d.ops))
	for i, op := range d.ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, ", ")
}

// IsDocument reports whether the delta is a valid document: every operation
// an insert, no removal sentinels among attribute values, and every nested
// delta recursively a valid document.
func (d *Delta) IsDocument() bool {
	for _, op := range d.ops {
		ins, ok := op.(InsertOp)
		if !ok {
			return false
		}
		for _, v := range ins.attrs {
			if v == nil {
				return false
			}
			if nested, isDelta := asNestedDelta(v); isDelta && !nested.IsDocument() {
				return false
			}
		}
	}
	return true
}

// Concat appends another document delta to this one, re-merging at the seam.
func (d *Delta) Concat(other *Delta) *Delta {
	result := d.Clone()
	if len(other.ops) > 0 {
		result.Push(other.ops[0])
		result.ops = append(result.ops, other.ops[1:]...)
	}
	return result
}

// Slice returns the sub-range [start, end) of the delta, counted in Unicode
// scalar values, with attributes preserved.
func (d *Delta) Slice(start, end int) *Delta {
	result := New()
	iter := newIterator(d.ops)
	index := 0
	for index < end && iter.hasNext() {
		if index < start {
			op := iter.next(start - index)
			index += op.Length()
		} else {
			op := iter.next(end - index)
			index += op.Length()
			result.Push(op)
		}
	}
	return result
}

// SliceFrom returns the suffix of the delta starting at start.
func (d *Delta) SliceFrom(start int) *Delta {
	return d.Slice(start, infinity)
}

// Invert returns the change that undoes this one against base, the document
// it was applied to. Inserts invert to deletes, deletes restore the deleted
// slice of base, and attribute retains invert their attribute changes
// against base's formatting.
func (d *Delta) Invert(base *Delta) *Delta {
	inverted := New()
	baseIndex := 0
	for _, op := range d.ops {
		switch v := op.(type) {
		case InsertOp:
			inverted.Delete(v.Length())
		case RetainOp:
			if v.attrs == nil {
				inverted.Retain(v.n, nil)
				baseIndex += v.n
				continue
			}
			slice := base.Slice(baseIndex, baseIndex+v.n)
			for _, baseOp := range slice.ops {
				inverted.Retain(baseOp.Length(), invertAttributes(v.attrs, baseOp.Attributes()))
			}
			baseIndex += v.n
		case DeleteOp:
			slice := base.Slice(baseIndex, baseIndex+v.n)
			for _, baseOp := range slice.ops {
				inverted.Push(baseOp)
			}
			baseIndex += v.n
		}
	}
	return inverted.Chop()
}

// TransformPosition rebases a cursor index through this change. With Left
// priority the cursor is considered to have come first, so an insert exactly
// at the index leaves the cursor in place; with Right priority the insert
// pushes the cursor past it.
func (d *Delta) TransformPosition(index int, priority Priority) int {
	iter := newIterator(d.ops)
	offset := 0
	for iter.hasNext() && offset <= index {
		length := iter.peekLength()
		opType := iter.peekType()
		iter.next(length)
		if opType == OpDelete {
			index -= minInt(length, index-offset)
			continue
		}
		if opType == OpInsert && (offset < index || priority != Left) {
			index += length
		}
		offset += length
	}
	return index
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
