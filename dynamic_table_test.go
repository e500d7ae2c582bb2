package hpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDynamicTableInsertAndLookup(t *testing.T) {
	table := newDynamicTable(256)
	_, ok := table.insert("custom-key", "custom-header")
	assert.True(t, ok)

	entry, ok := table.lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "custom-key", entry.name)
	assert.Equal(t, "custom-header", entry.value)
	assert.Equal(t, 55, entry.size)
	assert.Equal(t, 55, table.currentSize)
}

func TestDynamicTableNewestFirst(t *testing.T) {
	table := newDynamicTable(256)
	table.insert("a", "b")
	table.insert("c", "d")

	newest, ok := table.lookup(1)
	assert.True(t, ok)
	assert.Equal(t, "c", newest.name)

	oldest, ok := table.lookup(2)
	assert.True(t, ok)
	assert.Equal(t, "a", oldest.name)
}

func TestDynamicTableEvictionUnderTightMax(t *testing.T) {
	table := newDynamicTable(64)
	_, ok := table.insert("a", "0123456789012345678901234567890") // 32 + 1 + 31 = 64
	assert.True(t, ok)
	assert.Equal(t, 1, table.length())

	_, ok = table.insert("b", "0123456789012345678901234567890")
	assert.True(t, ok)
	// The first entry must have been evicted to make room for the second.
	assert.Equal(t, 1, table.length())
	entry, _ := table.lookup(1)
	assert.Equal(t, "b", entry.name)
}

func TestDynamicTableEntryBiggerThanTableNotInserted(t *testing.T) {
	table := newDynamicTable(32 + 12)
	table.insert("a", "b")
	_, ok := table.insert(
		"aafadslkjasfdkljasfkdjlajklsfdfajklsfdjkladsfjklasjklfdf",
		"adfsljasfdkjlsdalkfajklsdfjkalsfdjalsdfjalksdfjaldskfjlsjk",
	)
	assert.False(t, ok)
	assert.Equal(t, 0, table.length())
}

func TestDynamicTableSetMaxSizeEvicts(t *testing.T) {
	table := newDynamicTable(64 + 4)
	table.insert("a", "b")
	table.insert("b", "c")
	assert.Equal(t, 2, table.length())

	table.setMaxSize(63)
	assert.Equal(t, 1, table.length())
	entry, _ := table.lookup(1)
	assert.Equal(t, "b", entry.name)
	assert.Equal(t, "c", entry.value)
}

func TestDynamicTableFindExactMatch(t *testing.T) {
	table := newDynamicTable(256)
	table.insert("custom-key", "custom-value")

	entry, found, exact := table.find("custom-key", "custom-value")
	assert.True(t, found)
	assert.True(t, exact)
	assert.Equal(t, "custom-value", entry.value)
}

func TestDynamicTableFindNameOnlyMatch(t *testing.T) {
	table := newDynamicTable(256)
	table.insert("custom-key", "custom-value")

	entry, found, exact := table.find("custom-key", "other-value")
	assert.True(t, found)
	assert.False(t, exact)
	assert.Equal(t, "custom-value", entry.value)
}

func TestDynamicTableFindStopsAtFirstNameMatch(t *testing.T) {
	table := newDynamicTable(256)
	table.insert("custom-key", "custom-value") // oldest
	table.insert("custom-key", "other-value")  // newest

	// find() must return the first (newest) name match, not continue
	// scanning for a later exact match further back.
	entry, found, exact := table.find("custom-key", "custom-value")
	assert.True(t, found)
	assert.False(t, exact)
	assert.Equal(t, "other-value", entry.value)
}

func TestDynamicTablePositionOfAfterEviction(t *testing.T) {
	table := newDynamicTable(256)
	e1, _ := table.insert("a", "b")
	_, ok := table.positionOf(e1.id)
	assert.True(t, ok)

	table.setMaxSize(0)
	_, ok = table.positionOf(e1.id)
	assert.False(t, ok)
}

func TestDynamicTableByIDResolvesAndFailsPastEviction(t *testing.T) {
	table := newDynamicTable(256)
	e1, _ := table.insert("a", "b")

	got, ok := table.byID(e1.id)
	assert.True(t, ok)
	assert.Equal(t, "a", got.name)

	table.setMaxSize(0)
	_, ok = table.byID(e1.id)
	assert.False(t, ok)
}
