package delta

// Priority selects which of two concurrent deltas is considered to have
// happened first when both insert at the same position.
type Priority int

const (
	// Left means the first argument of Transform came first; the second
	// argument's insertions are pushed right past its insertions.
	Left Priority = iota
	// Right means the two deltas are siblings; the second argument's
	// insertions land before the first argument's at the same index.
	Right
)

// String returns the priority name for debugging.
func (p Priority) String() string {
	if p == Right {
		return "right"
	}
	return "left"
}

// Transform rebases b against a concurrent delta a.
//
// Given two deltas applied concurrently to the same document, Transform
// returns b' such that applying a then b' has the same effect as applying b
// then a', satisfying the operational transformation convergence property:
//
//	Compose(a, Transform(a, b, Right)) == Compose(b, Transform(b, a, Left))
//
// Inputs are never mutated. The result is in canonical form with any
// trailing attribute-free retain trimmed.
//
// Example:
//
//	a := delta.New().Retain(3, nil).Insert("aa", nil)
//	b := delta.New().Retain(3, nil).Insert("bb", nil)
//	delta.Transform(a, b, Left)  // retain 5, insert "bb"
//	delta.Transform(b, a, Right) // retain 3, insert "aa"
func Transform(a, b *Delta, priority Priority) *Delta {
	thisIter := newIterator(a.ops)
	otherIter := newIterator(b.ops)
	result := New()

	for thisIter.hasNext() || otherIter.hasNext() {
		if thisIter.peekType() == OpInsert &&
			(priority == Left || otherIter.peekType() != OpInsert) {
			// a's insert wins this position; b must skip over it.
			result.Retain(thisIter.next(thisIter.peekLength()).Length(), nil)
			continue
		}
		if otherIter.peekType() == OpInsert {
			result.Push(otherIter.next(otherIter.peekLength()))
			continue
		}

		length := minInt(thisIter.peekLength(), otherIter.peekLength())
		thisOp := thisIter.next(length)
		otherOp := otherIter.next(length)

		if IsDelete(thisOp) {
			// a already deleted the region b addresses; b's retain or
			// delete there has nothing left to act on.
			continue
		}
		if IsDelete(otherOp) {
			result.Push(otherOp)
			continue
		}
		result.Retain(length, transformAttributes(thisOp.Attributes(), otherOp.Attributes(), priority))
	}
	return result.Chop()
}
