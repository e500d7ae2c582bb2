package hpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceSetAddContains(t *testing.T) {
	r := newReferenceSet()
	r.add(1)
	assert.True(t, r.contains(1))
	assert.False(t, r.contains(2))
	assert.Equal(t, 1, r.len())
}

func TestReferenceSetRemove(t *testing.T) {
	r := newReferenceSet()
	r.add(1)
	r.remove(1)
	assert.False(t, r.contains(1))
	assert.Equal(t, 0, r.len())
}

func TestReferenceSetClear(t *testing.T) {
	r := newReferenceSet()
	r.add(1)
	r.add(2)
	r.clear()
	assert.Equal(t, 0, r.len())
	assert.False(t, r.contains(1))
}

func TestReferenceSetResetFlags(t *testing.T) {
	r := newReferenceSet()
	r.add(1)
	assert.True(t, r.added[1])
	r.resetFlags()
	assert.False(t, r.added[1])
	assert.True(t, r.contains(1)) // resetFlags clears the flag, not membership
}

func TestReferenceSetPrunesEvictedEntries(t *testing.T) {
	table := newDynamicTable(256)
	e1, _ := table.insert("a", "b")
	e2, _ := table.insert("c", "d")

	r := newReferenceSet()
	r.add(e1.id)
	r.add(e2.id)

	table.setMaxSize(0) // evicts everything
	r.prune(table)

	assert.Equal(t, 0, r.len())
	assert.False(t, r.contains(e1.id))
	assert.False(t, r.contains(e2.id))
}

func TestReferenceSetRemoveNotAddedThisRequest(t *testing.T) {
	r := newReferenceSet()
	r.add(1)
	r.add(2)
	r.resetFlags()
	r.add(2) // only 2 gets added_on_current_request=true again

	r.removeNotAddedThisRequest()
	assert.False(t, r.contains(1))
	assert.True(t, r.contains(2))
}
