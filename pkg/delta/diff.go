package delta

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// embedRune stands in for an embed in the flattened content text handed to
// the LCS diff. Embeds compare by their actual value during replay, so two
// different embeds sharing the placeholder still diff correctly.
const embedRune = '\x00'

// Diff computes the change that turns document a into document b:
//
//	Compose(a, Diff(a, b)) == b
//
// Both arguments must be valid documents (inserts only, recursively through
// nested deltas); otherwise ErrBadDocument is returned.
//
// The edit script is a longest-common-subsequence diff over the flattened
// document text, replayed against both documents to recover attributes:
// equal regions become retains carrying the attribute diff, with embeds
// whose payloads differ emitted as a delete plus insert instead.
func Diff(a, b *Delta) (*Delta, error) {
	if !a.IsDocument() || !b.IsDocument() {
		return nil, ErrBadDocument
	}
	result := New()
	if a.Equals(b) {
		return result, nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(documentText(a), documentText(b), false)

	thisIter := newIterator(a.ops)
	otherIter := newIterator(b.ops)
	for _, component := range diffs {
		length := utf8.RuneCountInString(component.Text)
		for length > 0 {
			opLength := 0
			switch component.Type {
			case diffmatchpatch.DiffInsert:
				opLength = minInt(otherIter.peekLength(), length)
				result.Push(otherIter.next(opLength))
			case diffmatchpatch.DiffDelete:
				opLength = minInt(length, thisIter.peekLength())
				thisIter.next(opLength)
				result.Delete(opLength)
			case diffmatchpatch.DiffEqual:
				opLength = minInt(minInt(thisIter.peekLength(), otherIter.peekLength()), length)
				thisOp := thisIter.next(opLength)
				otherOp := otherIter.next(opLength)
				if insertValuesEqual(thisOp, otherOp) {
					result.Retain(opLength, diffAttributes(thisOp.Attributes(), otherOp.Attributes()))
				} else {
					// Same placeholder, different embed payloads: replace.
					result.Push(otherOp)
					result.Delete(opLength)
				}
			}
			length -= opLength
		}
	}
	return result.Chop(), nil
}

// documentText flattens a document's insert payloads into the content text
// used as the diff backbone, with each embed contributing embedRune.
func documentText(d *Delta) string {
	var b strings.Builder
	for _, op := range d.ops {
		ins, ok := op.(InsertOp)
		if !ok {
			continue
		}
		if s, isText := ins.value.(string); isText {
			b.WriteString(s)
		} else {
			b.WriteRune(embedRune)
		}
	}
	return b.String()
}

// insertValuesEqual reports whether two insert slices carry equal content,
// comparing embed payloads by deep structural equality.
func insertValuesEqual(a, b Op) bool {
	ai, aok := a.(InsertOp)
	bi, bok := b.(InsertOp)
	return aok && bok && attrValueEqual(ai.value, bi.value)
}
