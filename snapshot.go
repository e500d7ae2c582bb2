package hpack

import json "github.com/goccy/go-json"

// SnapshotEntry describes one dynamic table entry for introspection.
type SnapshotEntry struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Size    int    `json:"size"`
	InRefs  bool   `json:"in_reference_set"`
	Emitted bool   `json:"added_on_current_request"`
}

// Snapshot is a point-in-time, JSON-serializable view of a Context's
// state, useful for debugging and for golden-file style test assertions
// against the dynamic table and reference set (spec.md §8 testable
// invariants 1, 2, and 6 are most directly checked against a Snapshot).
type Snapshot struct {
	CurrentSize int             `json:"current_size"`
	MaxSize     int             `json:"max_size"`
	Entries     []SnapshotEntry `json:"entries"`
}

// Snapshot captures the Context's dynamic table newest-first, alongside
// reference set membership for each entry.
func (c *Context) Snapshot() Snapshot {
	s := Snapshot{
		CurrentSize: c.table.currentSize,
		MaxSize:     c.table.maxSize,
		Entries:     make([]SnapshotEntry, 0, len(c.table.order)),
	}
	for _, id := range c.table.order {
		e := c.table.entries[id]
		s.Entries = append(s.Entries, SnapshotEntry{
			Name:    e.name,
			Value:   e.value,
			Size:    e.size,
			InRefs:  c.refs.contains(id),
			Emitted: c.refs.added[id],
		})
	}
	return s
}

// MarshalJSON renders the Snapshot with goccy/go-json, the drop-in
// encoding/json replacement used elsewhere in the pack for wire-adjacent
// structures (yyocio-drip/internal/shared/protocol/http_codec.go).
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type alias Snapshot
	return json.Marshal(alias(s))
}
