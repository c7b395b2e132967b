package delta

import "math"

// infinity is the length reported for an exhausted iterator. Past its end a
// delta behaves as an unbounded attribute-free retain, which lets the
// lockstep walks in Compose, Transform and Diff run without bounds checks.
const infinity = math.MaxInt

// opIterator is a cursor over a delta's operations that emits head slices of
// bounded length, splitting operations as needed. The source slice is shared
// and never mutated; position is the index of the head operation plus a
// scalar offset into it.
type opIterator struct {
	ops    []Op
	index  int
	offset int
}

func newIterator(ops []Op) *opIterator {
	return &opIterator{ops: ops}
}

// hasNext reports whether any input remains.
func (it *opIterator) hasNext() bool {
	return it.peekLength() < infinity
}

// peek returns the head operation without consuming it, or nil when
// exhausted. The returned op is the whole head; the consumed offset into it
// is not applied.
func (it *opIterator) peek() Op {
	if it.index < len(it.ops) {
		return it.ops[it.index]
	}
	return nil
}

// peekLength returns the remaining length of the head operation, or infinity
// when exhausted.
func (it *opIterator) peekLength() int {
	if it.index < len(it.ops) {
		return it.ops[it.index].Length() - it.offset
	}
	return infinity
}

// peekType returns the kind of the head operation. An exhausted iterator
// reports OpRetain, matching the implicit retain past end of input.
func (it *opIterator) peekType() OpType {
	if it.index < len(it.ops) {
		return it.ops[it.index].Type()
	}
	return OpRetain
}

// next consumes and returns a prefix of the head operation of length at most
// n, splitting it if needed. Text is sliced by Unicode scalar values with the
// parent's attributes; an embed is always taken whole. Past the end of input
// it returns an attribute-free retain of length n.
func (it *opIterator) next(n int) Op {
	op := it.peek()
	if op == nil {
		return Retain(n, nil)
	}
	offset := it.offset
	length := op.Length()
	if n >= length-offset {
		n = length - offset
		it.index++
		it.offset = 0
	} else {
		it.offset += n
	}
	switch v := op.(type) {
	case DeleteOp:
		return Delete(n)
	case RetainOp:
		return Retain(n, v.attrs)
	case InsertOp:
		if s, ok := v.value.(string); ok {
			runes := []rune(s)
			return Insert(string(runes[offset:offset+n]), v.attrs)
		}
		// Embeds are indivisible; taking any length yields the whole embed.
		return Insert(v.value, v.attrs)
	}
	return nil
}

// rest returns the residual operations, splitting the head if partially
// consumed.
func (it *opIterator) rest() []Op {
	if !it.hasNext() {
		return nil
	}
	if it.offset == 0 {
		result := make([]Op, len(it.ops)-it.index)
		copy(result, it.ops[it.index:])
		return result
	}
	offset := it.offset
	index := it.index
	head := it.next(it.peekLength())
	result := make([]Op, 0, len(it.ops)-index)
	result = append(result, head)
	result = append(result, it.ops[it.index:]...)
	it.index = index
	it.offset = offset
	return result
}
