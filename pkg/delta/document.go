package delta

import "errors"

var (
	// ErrLengthMismatch is returned by Apply when the change addresses
	// positions past the end of the document.
	ErrLengthMismatch = errors.New("change addresses positions past the end of the document")

	// ErrBadDocument is returned by Diff and Lines when an input that must
	// be a document contains retain or delete operations, directly or
	// within a nested delta attribute value.
	ErrBadDocument = errors.New("document delta must contain only insert operations")
)

// Apply runs a change against a document.
//
// The change may not address positions past the end of the document: if the
// total length of its retains and deletes exceeds the document length,
// ErrLengthMismatch is returned. On success the result is the composition of
// document and change.
//
// Example:
//
//	doc := delta.New().Insert("test", nil)
//	delta.Apply(doc, delta.New().Delete(3)) // insert "t", nil error
//	delta.Apply(doc, delta.New().Delete(5)) // nil, ErrLengthMismatch
func Apply(document, change *Delta) (*Delta, error) {
	if change.BaseLength() > document.Length() {
		return nil, ErrLengthMismatch
	}
	return Compose(document, change), nil
}

// MustApply is like Apply but panics on error, for callers that have
// externally ensured the change fits the document.
func MustApply(document, change *Delta) *Delta {
	result, err := Apply(document, change)
	if err != nil {
		panic(err)
	}
	return result
}

// Line is one logical line of a document: the line's content without its
// trailing newline, and the attributes carried by the newline itself
// (Quill's convention for block-level formatting such as header or list).
type Line struct {
	Delta      *Delta
	Attributes Attributes
}

// Lines splits a document delta into logical lines at every newline in its
// text inserts.
//
// Embeds belong to the line they appear in. A trailing newline closes the
// last line without opening an empty one, and an empty document yields an
// empty slice. Returns ErrBadDocument if the input contains any retain or
// delete, directly or within a nested delta attribute value.
//
// Example:
//
//	doc := delta.New().
//		Insert("ab", delta.Attributes{"bold": true}).
//		Insert("\n", delta.Attributes{"header": 1}).
//		Insert("cd", nil)
//	lines, _ := delta.Lines(doc)
//	// lines[0]: insert "ab" {bold: true}, block attributes {header: 1}
//	// lines[1]: insert "cd", no block attributes
func Lines(document *Delta) ([]Line, error) {
	if !document.IsDocument() {
		return nil, ErrBadDocument
	}
	lines := []Line{}
	line := New()
	iter := newIterator(document.ops)
	for iter.hasNext() {
		head := iter.peek().(InsertOp)
		text, isText := head.value.(string)
		if !isText {
			line.Push(iter.next(1))
			continue
		}
		// Scalar offset of the first newline within the unconsumed head.
		runes := []rune(text)
		start := head.Length() - iter.peekLength()
		index := -1
		for i := start; i < len(runes); i++ {
			if runes[i] == '\n' {
				index = i - start
				break
			}
		}
		switch {
		case index < 0:
			line.Push(iter.next(iter.peekLength()))
		case index > 0:
			line.Push(iter.next(index))
		default:
			iter.next(1)
			lines = append(lines, Line{Delta: line, Attributes: head.attrs})
			line = New()
		}
	}
	if line.Length() > 0 {
		lines = append(lines, Line{Delta: line})
	}
	return lines, nil
}
