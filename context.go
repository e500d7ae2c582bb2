package hpack

import "go.uber.org/zap"

// DefaultMaxStringLiteralLength bounds the length of any single decoded
// string literal (compressed length, for Huffman-encoded literals).
const DefaultMaxStringLiteralLength = 1024 * 64

// Context is the unit of connection-lifetime HPACK state: a dynamic table
// and a reference set (spec.md §4.6/§6). A Context is not safe for
// concurrent use; the caller must serialize Decode/Encode calls on a given
// Context the way it would serialize writes to the underlying connection.
// Two independent Contexts (e.g. inbound and outbound on one connection)
// share no state and may be driven from different goroutines.
type Context struct {
	table *dynamicTable
	refs  *referenceSet

	settingsCeiling   int
	pendingSizeUpdate bool
	mustSeeSizeFirst  bool

	huffman HuffmanCodec

	maxIntegerValue         int
	maxIntegerEncodedLength int
	maxStringLiteralLength  int

	log *zap.Logger
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithLogger attaches a structured logger that receives Debug-level
// entries when a header block is decoded or encoded, when a dynamic table
// size update is applied, and when SetDynamicTableMaxSize is called.
// Individual instructions, evictions and reference-set changes are not
// logged. The default is a no-op logger, so a Context stays silent unless
// a host opts in.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Context) { c.log = logger }
}

// WithHuffmanCodec overrides the default RFC 7541 Huffman codec used for
// string literals (spec.md §6 collaborator contract).
func WithHuffmanCodec(codec HuffmanCodec) Option {
	return func(c *Context) { c.huffman = codec }
}

// WithMaxIntegerValue overrides the ceiling a decoded integer may not
// exceed (spec.md §4.1).
func WithMaxIntegerValue(v int) Option {
	return func(c *Context) { c.maxIntegerValue = v }
}

// WithMaxIntegerEncodedLength overrides the maximum number of octets,
// counting the prefix octet, accepted while decoding a single integer.
func WithMaxIntegerEncodedLength(v int) Option {
	return func(c *Context) { c.maxIntegerEncodedLength = v }
}

// WithMaxStringLiteralLength overrides the maximum accepted length of a
// decoded string literal.
func WithMaxStringLiteralLength(v int) Option {
	return func(c *Context) { c.maxStringLiteralLength = v }
}

// NewContext creates a Context whose dynamic table starts at
// initialMaxSize, which also becomes the initial settings ceiling
// (spec.md §4.4: max_size ≤ settings_max).
func NewContext(initialMaxSize int, opts ...Option) *Context {
	c := &Context{
		table:                   newDynamicTable(initialMaxSize),
		refs:                    newReferenceSet(),
		settingsCeiling:         initialMaxSize,
		huffman:                 Huffman,
		maxIntegerValue:         DefaultMaxIntegerValue,
		maxIntegerEncodedLength: DefaultMaxIntegerEncodedLength,
		maxStringLiteralLength:  DefaultMaxStringLiteralLength,
		log:                     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDynamicTableMaxSize updates the dynamic table's bound, evicting from
// the oldest end if lowering requires it. Call this whenever local HTTP/2
// SETTINGS change the table size this side is willing to maintain.
//
// If this lowers the ceiling, the next Decode call on this Context must
// begin with a dynamic table size update instruction reflecting the new
// bound, or it fails with ErrProtocol (spec.md §4.6); the next Encode call
// always emits one so a peer decoder sees the change.
func (c *Context) SetDynamicTableMaxSize(newMax int) {
	lowered := newMax < c.settingsCeiling
	c.settingsCeiling = newMax
	c.table.setMaxSize(newMax)
	c.refs.prune(c.table)
	c.pendingSizeUpdate = true
	if lowered {
		c.mustSeeSizeFirst = true
	}
	c.log.Debug("dynamic table max size changed", zap.Int("new_max", newMax), zap.Bool("lowered", lowered))
}

// DynamicTableSize reports the current and maximum size, in octets, of the
// dynamic table.
func (c *Context) DynamicTableSize() (current, max int) {
	return c.table.currentSize, c.table.maxSize
}
