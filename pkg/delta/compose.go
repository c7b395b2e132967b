package delta

// Compose folds two sequential deltas into one.
//
// For deltas a and b where a is applied before b, Compose returns a delta c
// such that applying c is equivalent to applying a then b:
//
//	apply(apply(doc, a), b) = apply(doc, c)
//
// Inputs are never mutated. The result is in canonical form with any
// trailing attribute-free retain trimmed.
//
// Example:
//
//	a := delta.New().Insert("A", nil)
//	b := delta.New().Retain(1, delta.Attributes{"bold": true})
//	c := delta.Compose(a, b)
//	// c == insert "A" {bold: true}
func Compose(a, b *Delta) *Delta {
	thisIter := newIterator(a.ops)
	otherIter := newIterator(b.ops)
	result := New()

	for thisIter.hasNext() || otherIter.hasNext() {
		if otherIter.peekType() == OpInsert {
			// b's insertions land before anything a still has.
			result.Push(otherIter.next(otherIter.peekLength()))
			continue
		}
		if thisIter.peekType() == OpDelete {
			// a's deletions happened before anything b addresses.
			result.Push(thisIter.next(thisIter.peekLength()))
			continue
		}

		length := minInt(thisIter.peekLength(), otherIter.peekLength())
		thisOp := thisIter.next(length)
		otherOp := otherIter.next(length)

		switch other := otherOp.(type) {
		case RetainOp:
			// b keeps the region; a contributed either an insert or a
			// retain (deletes were handled above, including a's implicit
			// retain past its end).
			switch this := thisOp.(type) {
			case InsertOp:
				// Composing into document content applies and strips
				// removal sentinels.
				result.Push(Insert(this.value, composeAttributes(this.attrs, other.attrs, false)))
			case RetainOp:
				// Composing two changes keeps sentinels so they can still
				// clear attributes on a later application.
				result.Push(Retain(length, composeAttributes(this.attrs, other.attrs, true)))
			}
		case DeleteOp:
			if IsRetain(thisOp) {
				result.Push(Delete(length))
			}
			// b deleting what a inserted cancels both.
		}
	}
	return result.Chop()
}
