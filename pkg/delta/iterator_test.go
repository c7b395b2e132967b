package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOps() []Op {
	return []Op{
		Insert("Hello", Attributes{"bold": true}),
		Retain(3, nil),
		Delete(4),
	}
}

func TestIterator_Peek(t *testing.T) {
	iter := newIterator(testOps())
	assert.Equal(t, OpInsert, iter.peekType())
	assert.Equal(t, 5, iter.peekLength())
	assert.True(t, iter.hasNext())
}

func TestIterator_PeekAfterPartialTake(t *testing.T) {
	iter := newIterator(testOps())
	iter.next(2)
	assert.Equal(t, 3, iter.peekLength())
	assert.Equal(t, OpInsert, iter.peekType())
}

func TestIterator_TakeSplitsText(t *testing.T) {
	iter := newIterator(testOps())
	op := iter.next(2)
	require.True(t, IsInsert(op))
	ins := op.(InsertOp)
	assert.Equal(t, "He", ins.value)
	// Split slices keep the parent's attributes.
	assert.Equal(t, Attributes{"bold": true}, ins.attrs)

	op = iter.next(10)
	assert.Equal(t, "llo", op.(InsertOp).value)
}

func TestIterator_TakeSplitsTextByScalars(t *testing.T) {
	iter := newIterator([]Op{Insert("a𝕏é", nil)})
	assert.Equal(t, "a", iter.next(1).(InsertOp).value)
	assert.Equal(t, "𝕏", iter.next(1).(InsertOp).value)
	assert.Equal(t, "é", iter.next(1).(InsertOp).value)
}

func TestIterator_TakeSplitsRetainAndDelete(t *testing.T) {
	iter := newIterator(testOps())
	iter.next(5)
	assert.Equal(t, Retain(1, nil), iter.next(1))
	assert.Equal(t, Retain(2, nil), iter.next(2))
	assert.Equal(t, Delete(3), iter.next(3))
	assert.Equal(t, Delete(1), iter.next(1))
	assert.False(t, iter.hasNext())
}

func TestIterator_EmbedIndivisible(t *testing.T) {
	iter := newIterator([]Op{Insert(1, nil)})
	op := iter.next(1)
	assert.Equal(t, 1, op.(InsertOp).value)
	assert.False(t, iter.hasNext())
}

func TestIterator_Exhausted(t *testing.T) {
	iter := newIterator(nil)
	assert.False(t, iter.hasNext())
	assert.Nil(t, iter.peek())
	assert.Equal(t, infinity, iter.peekLength())
	// Past the end the input behaves as an implicit plain retain.
	assert.Equal(t, OpRetain, iter.peekType())
	assert.Equal(t, Retain(5, nil), iter.next(5))
}

func TestIterator_Rest(t *testing.T) {
	iter := newIterator(testOps())
	iter.next(2)
	rest := iter.rest()
	require.Len(t, rest, 3)
	assert.Equal(t, "llo", rest[0].(InsertOp).value)
	assert.Equal(t, Retain(3, nil), rest[1])
	assert.Equal(t, Delete(4), rest[2])
	// rest does not consume.
	assert.Equal(t, 3, iter.peekLength())

	iter = newIterator(testOps())
	iter.next(5)
	iter.next(3)
	iter.next(4)
	assert.Nil(t, iter.rest())
}
