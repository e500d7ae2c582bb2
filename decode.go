package hpack

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	opIndexed             = 0x80
	opLiteralIncremental  = 0x40
	opDynamicSizeUpdate   = 0x20
	opLiteralNeverIndexed = 0x10
	opLiteralNotIndexed   = 0x00
)

// Decode parses one complete header block against the Context, mutating
// its dynamic table and reference set, and returns the ordered list of
// header fields the block represents (spec.md §4.6). The returned error is
// one of ErrMalformedInteger, ErrMalformedString, ErrInvalidIndex,
// ErrHuffmanDecode, ErrSizeUpdateTooLarge, or ErrProtocol; any of these
// aborts the block and leaves the Context unfit for further use on this
// connection (HPACK desync is terminal, per spec.md §7).
func (c *Context) Decode(block []byte) ([]Header, error) {
	c.refs.resetFlags()
	emitted := make(map[uint64]bool)

	if c.mustSeeSizeFirst {
		if len(block) == 0 || block[0]&0xe0 != opDynamicSizeUpdate {
			return nil, fmt.Errorf("%w: dynamic table size update must precede any header instruction after the table size ceiling was lowered", ErrProtocol)
		}
	}

	var headers []Header
	buf := block
	for len(buf) > 0 {
		first := buf[0]
		var (
			header *Header
			err    error
		)

		switch {
		case first&opIndexed == opIndexed:
			buf, header, err = c.decodeIndexed(buf, emitted)
		case first&opLiteralIncremental == opLiteralIncremental:
			buf, header, err = c.decodeLiteral(buf, 6, true, false, emitted)
		case first&opDynamicSizeUpdate == opDynamicSizeUpdate:
			buf, err = c.decodeSizeUpdate(buf)
		case first&opLiteralNeverIndexed == opLiteralNeverIndexed:
			buf, header, err = c.decodeLiteral(buf, 4, false, true, emitted)
		default:
			buf, header, err = c.decodeLiteral(buf, 4, false, false, emitted)
		}
		if err != nil {
			return nil, err
		}
		if header != nil {
			headers = append(headers, *header)
		}
	}

	for _, id := range append([]uint64(nil), c.refs.order...) {
		if emitted[id] {
			continue
		}
		e, ok := c.table.byID(id)
		if !ok {
			continue
		}
		headers = append(headers, Header{Name: e.name, Value: e.value})
	}

	c.refs.resetFlags()
	c.log.Debug("decoded header block", zap.Int("header_count", len(headers)), zap.Int("block_bytes", len(block)))
	return headers, nil
}

// decodeIndexed handles the 1xxxxxxx instruction: index 0 clears the
// reference set; a static index emits and also seeds the dynamic table and
// reference set. A dynamic index emits an entry that has not been emitted
// yet in this block (adding it to the reference set if absent); indexing an
// entry that was already emitted in this block removes it from the
// reference set and emits nothing.
func (c *Context) decodeIndexed(buf []byte, emitted map[uint64]bool) ([]byte, *Header, error) {
	rest, _, index, err := decodeInteger(buf, 7, c.maxIntegerValue, c.maxIntegerEncodedLength)
	if err != nil {
		return nil, nil, err
	}

	if index == 0 {
		c.refs.clear()
		return rest, nil, nil
	}

	if index <= len(staticTable) {
		name, value, _ := staticLookup(index)
		entry, inserted := c.table.insert(name, value)
		c.refs.prune(c.table)
		if inserted {
			c.refs.add(entry.id)
			emitted[entry.id] = true
		}
		return rest, &Header{Name: name, Value: value}, nil
	}

	dynPos := index - len(staticTable)
	entry, ok := c.table.lookup(dynPos)
	if !ok {
		return nil, nil, fmt.Errorf("%w: index %d", ErrInvalidIndex, index)
	}

	if c.refs.contains(entry.id) {
		if emitted[entry.id] {
			c.refs.remove(entry.id)
			return rest, nil, nil
		}
		emitted[entry.id] = true
		return rest, &Header{Name: entry.name, Value: entry.value}, nil
	}

	c.refs.add(entry.id)
	emitted[entry.id] = true
	return rest, &Header{Name: entry.name, Value: entry.value}, nil
}

// decodeLiteral handles the 01xxxxxx / 0001xxxx / 0000xxxx instructions.
// When addToIndex is true the new entry is inserted into the dynamic table
// and added to the reference set; otherwise it is emitted only. sensitive
// marks the header as never-indexed for the caller's benefit.
func (c *Context) decodeLiteral(buf []byte, prefixBits int, addToIndex, sensitive bool, emitted map[uint64]bool) ([]byte, *Header, error) {
	rest, _, index, err := decodeInteger(buf, prefixBits, c.maxIntegerValue, c.maxIntegerEncodedLength)
	if err != nil {
		return nil, nil, err
	}

	var name string
	if index == 0 {
		rest, name, err = decodeString(c.huffman, rest, c.maxIntegerValue, c.maxIntegerEncodedLength, c.maxStringLiteralLength)
		if err != nil {
			return nil, nil, err
		}
	} else {
		var ok bool
		name, _, ok = c.resolveName(index)
		if !ok {
			return nil, nil, fmt.Errorf("%w: index %d", ErrInvalidIndex, index)
		}
	}

	var value string
	rest, value, err = decodeString(c.huffman, rest, c.maxIntegerValue, c.maxIntegerEncodedLength, c.maxStringLiteralLength)
	if err != nil {
		return nil, nil, err
	}

	if addToIndex {
		entry, inserted := c.table.insert(name, value)
		c.refs.prune(c.table)
		if inserted {
			c.refs.add(entry.id)
			emitted[entry.id] = true
		}
	}

	return rest, &Header{Name: name, Value: value, Sensitive: sensitive}, nil
}

// resolveName resolves a static-or-dynamic index to a (name, value) pair,
// used when a literal instruction names its header by index.
func (c *Context) resolveName(index int) (name, value string, ok bool) {
	if index <= len(staticTable) {
		name, value, ok = staticLookup(index)
		return
	}
	entry, found := c.table.lookup(index - len(staticTable))
	if !found {
		return "", "", false
	}
	return entry.name, entry.value, true
}

func (c *Context) decodeSizeUpdate(buf []byte) ([]byte, error) {
	rest, _, size, err := decodeInteger(buf, 5, c.maxIntegerValue, c.maxIntegerEncodedLength)
	if err != nil {
		return nil, err
	}
	if size > c.settingsCeiling {
		return nil, fmt.Errorf("%w: %d exceeds ceiling %d", ErrSizeUpdateTooLarge, size, c.settingsCeiling)
	}
	c.table.setMaxSize(size)
	c.refs.prune(c.table)
	c.mustSeeSizeFirst = false
	c.log.Debug("applied dynamic table size update", zap.Int("new_max", size))
	return rest, nil
}
