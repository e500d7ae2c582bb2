package hpack

import "go.uber.org/zap"

func headerKey(name, value string) string {
	return name + "\x00" + value
}

// Encode renders headers against the Context, mutating its dynamic table
// and reference set, and returns the header block bytes (spec.md §4.7).
// The strategy below is not mandated by the wire format; any conforming
// encoder may choose differently so long as the decoder reproduces the
// input.
func (c *Context) Encode(headers []Header) ([]byte, error) {
	var out []byte

	if c.pendingSizeUpdate {
		upd := encodeInteger(c.table.maxSize, 5)
		upd[0] |= opDynamicSizeUpdate
		out = append(out, upd...)
		c.pendingSizeUpdate = false
	}

	wanted := make(map[string]bool, len(headers))
	for _, h := range headers {
		wanted[headerKey(h.Name, h.Value)] = true
	}

	// Step 1: if the reference set holds any entry the caller no longer
	// wants, empty it on the wire with an index-0 instruction. A decoder
	// emits a referenced entry the first time it is indexed in a block, so
	// a single Indexed instruction cannot drop it silently; after the reset
	// every wanted header is encoded explicitly below.
	for _, id := range c.refs.order {
		e, ok := c.table.byID(id)
		if ok && !wanted[headerKey(e.name, e.value)] {
			out = append(out, encodeIndexedInstruction(0)...)
			c.refs.clear()
			break
		}
	}

	emittedThisBlock := make(map[uint64]bool)
	for _, h := range headers {
		if h.Sensitive {
			out = append(out, c.encodeSensitive(h)...)
			continue
		}
		out = append(out, c.encodeHeader(h, emittedThisBlock)...)
	}

	c.refs.resetFlags()
	c.log.Debug("encoded header block", zap.Int("header_count", len(headers)), zap.Int("block_bytes", len(out)))
	return out, nil
}

func (c *Context) encodeHeader(h Header, emittedThisBlock map[uint64]bool) []byte {
	key := headerKey(h.Name, h.Value)
	match, hasMatch, isExact := c.table.find(h.Name, h.Value)

	if hasMatch && isExact {
		if c.refs.contains(match.id) {
			if !emittedThisBlock[match.id] {
				emittedThisBlock[match.id] = true
				return nil
			}
			// A second occurrence of a header already relied on this block:
			// another Indexed instruction would toggle the entry off rather
			// than emit it again (spec.md §4.6), so fall back to a literal
			// that leaves the dynamic table and reference set untouched.
			nameIndex := 0
			if pos, ok := c.table.positionOf(match.id); ok {
				nameIndex = len(staticTable) + pos
			}
			return c.encodeLiteralInstruction(opLiteralNotIndexed, 4, nameIndex, h.Name, h.Value)
		}
		pos, ok := c.table.positionOf(match.id)
		if ok {
			enc := encodeIndexedInstruction(len(staticTable) + pos)
			c.refs.add(match.id)
			emittedThisBlock[match.id] = true
			return enc
		}
	}

	if sidx, ok := staticTableByNameValue[key]; ok {
		enc := encodeIndexedInstruction(sidx)
		entry, inserted := c.table.insert(h.Name, h.Value)
		c.refs.prune(c.table)
		if inserted {
			c.refs.add(entry.id)
			emittedThisBlock[entry.id] = true
		}
		return enc
	}

	nameIndex := 0
	if hasMatch && !isExact {
		if pos, ok := c.table.positionOf(match.id); ok {
			nameIndex = len(staticTable) + pos
		}
	} else if sidx, ok := staticTableByName[h.Name]; ok {
		nameIndex = sidx
	}

	enc := c.encodeLiteralInstruction(opLiteralIncremental, 6, nameIndex, h.Name, h.Value)
	entry, inserted := c.table.insert(h.Name, h.Value)
	c.refs.prune(c.table)
	if inserted {
		c.refs.add(entry.id)
		emittedThisBlock[entry.id] = true
	}
	return enc
}

// encodeSensitive renders a header marked Sensitive as literal-never-
// indexed (spec.md §4.6/§4.7): it is never inserted into the dynamic table
// or reference set, regardless of whether an identical entry already
// exists there.
func (c *Context) encodeSensitive(h Header) []byte {
	nameIndex := 0
	if sidx, ok := staticTableByName[h.Name]; ok {
		nameIndex = sidx
	}
	return c.encodeLiteralInstruction(opLiteralNeverIndexed, 4, nameIndex, h.Name, h.Value)
}

// EncodeVolatile renders a single header as literal-without-indexing: it
// is emitted on the wire but never inserted into the dynamic table or
// reference set. Use this for headers whose value is unlikely to recur
// (spec.md §4.7's "literal-without-indexing for values deemed volatile").
// It does not participate in the multi-header Encode pass above and does
// not emit a pending dynamic table size update; callers mixing this with
// Encode are responsible for ordering.
func (c *Context) EncodeVolatile(h Header) []byte {
	nameIndex := 0
	if sidx, ok := staticTableByName[h.Name]; ok {
		nameIndex = sidx
	} else if match, hasMatch, _ := c.table.find(h.Name, ""); hasMatch {
		if pos, ok := c.table.positionOf(match.id); ok {
			nameIndex = len(staticTable) + pos
		}
	}
	return c.encodeLiteralInstruction(opLiteralNotIndexed, 4, nameIndex, h.Name, h.Value)
}

func encodeIndexedInstruction(index int) []byte {
	enc := encodeInteger(index, 7)
	enc[0] |= opIndexed
	return enc
}

// encodeLiteralInstruction renders a literal instruction (incremental,
// never-indexed, or without-indexing depending on opFlag/prefixBits): the
// name is encoded by index when index != 0, otherwise as a string, and the
// value is always encoded as a string.
func (c *Context) encodeLiteralInstruction(opFlag byte, prefixBits int, index int, name, value string) []byte {
	head := encodeInteger(index, prefixBits)
	head[0] |= opFlag

	out := append([]byte{}, head...)
	if index == 0 {
		out = append(out, encodeString(c.huffman, name)...)
	}
	out = append(out, encodeString(c.huffman, value)...)
	return out
}
