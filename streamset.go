package hpack

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// StreamSet fans work out across a batch of independent Contexts
// concurrently. Spec.md §5 notes that separate contexts share nothing and
// may be operated in parallel; StreamSet is the concurrency helper the
// core codec itself deliberately does not provide, grounded on the
// errgroup usage in
// other_examples/1061b2ef_fenilsonani-vcs__internal-pack-hyperpack.go.go
// and on golang.org/x/sync being carried as a dependency of
// MiraiMindz-watt/capacitor.
//
// A single Context is still never touched concurrently: StreamSet assigns
// each unit of work to a distinct Context.
type StreamSet struct {
	contexts map[string]*Context
}

// NewStreamSet creates an empty StreamSet.
func NewStreamSet() *StreamSet {
	return &StreamSet{contexts: make(map[string]*Context)}
}

// Add registers ctx under streamID. Re-adding a streamID replaces its
// Context.
func (s *StreamSet) Add(streamID string, ctx *Context) {
	s.contexts[streamID] = ctx
}

// Context returns the Context registered for streamID, if any.
func (s *StreamSet) Context(streamID string) (*Context, bool) {
	c, ok := s.contexts[streamID]
	return c, ok
}

// DecodeAll decodes one block per stream concurrently, one goroutine per
// entry in blocks whose stream id is registered (other entries are
// skipped), and returns the results keyed by stream id. If any block fails
// to decode, DecodeAll returns the first error encountered and no results;
// the other decodes are not cancelled and run to completion, since Decode
// does not observe ctx. The caller must still tear down every named
// Context per spec.md §7, since HPACK desync is per-connection
// (per-Context), not per-goroutine.
func (s *StreamSet) DecodeAll(ctx context.Context, blocks map[string][]byte) (map[string][]Header, error) {
	g, _ := errgroup.WithContext(ctx)
	results := make(map[string][]Header, len(blocks))
	var mu sync.Mutex

	for streamID, block := range blocks {
		streamID, block := streamID, block
		hpackCtx, ok := s.contexts[streamID]
		if !ok {
			continue
		}
		g.Go(func() error {
			headers, err := hpackCtx.Decode(block)
			if err != nil {
				return err
			}
			mu.Lock()
			results[streamID] = headers
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
