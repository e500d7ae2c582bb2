package hpack

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamSetDecodeAllRunsPerStreamConcurrently(t *testing.T) {
	set := NewStreamSet()
	set.Add("stream-1", NewContext(4096))
	set.Add("stream-3", NewContext(4096))

	blocks := map[string][]byte{
		"stream-1": {0x82},
		"stream-3": decodeHex(t, "040c2f73616d706c652f70617468"),
	}

	results, err := set.DecodeAll(context.Background(), blocks)
	require.NoError(t, err)

	assert.Equal(t, []Header{{Name: ":method", Value: "GET"}}, results["stream-1"])
	assert.Equal(t, []Header{{Name: ":path", Value: "/sample/path"}}, results["stream-3"])
}

func TestStreamSetDecodeAllSkipsUnregisteredStreams(t *testing.T) {
	set := NewStreamSet()
	set.Add("known", NewContext(4096))

	results, err := set.DecodeAll(context.Background(), map[string][]byte{
		"known":   {0x82},
		"unknown": {0x82},
	})
	require.NoError(t, err)
	assert.Contains(t, results, "known")
	assert.NotContains(t, results, "unknown")
}

func TestStreamSetDecodeAllReturnsFirstError(t *testing.T) {
	set := NewStreamSet()
	set.Add("bad", NewContext(4096))

	_, err := set.DecodeAll(context.Background(), map[string][]byte{
		"bad": {0xff, 0x00}, // invalid dynamic index
	})
	assert.Error(t, err)
}

func TestStreamSetContextLookup(t *testing.T) {
	set := NewStreamSet()
	ctx := NewContext(4096)
	set.Add("s", ctx)

	got, ok := set.Context("s")
	assert.True(t, ok)
	assert.Same(t, ctx, got)

	_, ok = set.Context("missing")
	assert.False(t, ok)
}
