package delta

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// Property tests use a fixed seed so failures reproduce.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// randomString generates text for property tests, mixing ASCII, newlines and
// multi-byte runes so scalar counting is exercised.
// Corresponds to quill-delta test/helpers.js: randomString
func randomString(r *rand.Rand, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		switch f := r.Float64(); {
		case f < 0.1:
			b.WriteRune('\n')
		case f < 0.2:
			b.WriteRune('é')
		case f < 0.25:
			b.WriteRune('𝕏')
		default:
			b.WriteRune('a' + rune(r.Intn(26)))
		}
	}
	return b.String()
}

var attrPool = []Attributes{
	nil,
	{"bold": true},
	{"italic": true},
	{"color": "red"},
	{"color": "blue", "bold": true},
}

func randomAttrs(r *rand.Rand) Attributes {
	return attrPool[r.Intn(len(attrPool))]
}

// randomChangeAttrs may also yield removal sentinels, which only change
// deltas carry.
func randomChangeAttrs(r *rand.Rand) Attributes {
	if r.Float64() < 0.2 {
		return Attributes{"bold": nil}
	}
	return randomAttrs(r)
}

// randomDocument builds a valid document of the given length out of
// attributed text spans and the occasional embed.
func randomDocument(r *rand.Rand, length int) *Delta {
	doc := New()
	for doc.Length() < length {
		if r.Float64() < 0.1 {
			doc.Insert(map[string]interface{}{"image": "a.png"}, randomAttrs(r))
			continue
		}
		n := 1 + r.Intn(minInt(length-doc.Length(), 8))
		doc.Insert(randomString(r, n), randomAttrs(r))
	}
	return doc
}

// randomChange builds a change addressing exactly baseLength characters.
// Corresponds to quill-delta test/helpers.js: randomOperation
func randomChange(r *rand.Rand, baseLength int) *Delta {
	change := New()
	for change.BaseLength() < baseLength {
		n := 1 + r.Intn(minInt(baseLength-change.BaseLength(), 6))
		switch f := r.Float64(); {
		case f < 0.2:
			change.Insert(randomString(r, n), randomAttrs(r))
		case f < 0.4:
			change.Delete(n)
		case f < 0.6:
			change.Retain(n, randomChangeAttrs(r))
		default:
			change.Retain(n, nil)
		}
	}
	if r.Float64() < 0.3 {
		change.Insert(randomString(r, 1+r.Intn(5)), randomAttrs(r))
	}
	return change
}

// assertCanonical fails if d violates canonical form: a zero-length
// operation, two adjacent mergeable operations, or an insert directly after
// a delete.
func assertCanonical(t *testing.T, d *Delta) {
	t.Helper()
	for i, op := range d.ops {
		assert.Falsef(t, opZeroLength(op), "op %d is zero-length: %s", i, op)
		if i == 0 {
			continue
		}
		prev := d.ops[i-1]
		if _, ok := mergeOps(prev, op); ok {
			t.Errorf("ops %d and %d should have merged: %s | %s", i-1, i, prev, op)
		}
		if IsDelete(prev) && IsDelete(op) {
			t.Errorf("ops %d and %d are adjacent deletes: %s | %s", i-1, i, prev, op)
		}
		if IsDelete(prev) && IsInsert(op) {
			t.Errorf("op %d is an insert directly after a delete: %s | %s", i, prev, op)
		}
	}
}

// assertDeltasEqual compares two deltas with a readable diff on failure.
func assertDeltasEqual(t *testing.T, want, got *Delta, msgAndArgs ...interface{}) {
	t.Helper()
	if !want.Equals(got) {
		assert.Fail(t, "deltas differ", append([]interface{}{
			cmp.Diff(want.String(), got.String()),
		}, msgAndArgs...)...)
	}
}
