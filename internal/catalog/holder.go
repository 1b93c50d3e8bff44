package catalog

import (
	"context"
	"errors"
	"sync"
)

var ErrNotInitialized = errors.New("catalog not initialized")

// Holder publishes a catalog exactly once. Readers block in Get until Init has
// finished, which gives every reader a happens-before edge on the build.
type Holder struct {
	once  sync.Once
	ready chan struct{}
	cat   *Catalog
	err   error
}

func NewHolder() *Holder {
	return &Holder{ready: make(chan struct{})}
}

// Init runs build on the first call only and returns its error. Subsequent
// calls return the outcome of the first one.
func (h *Holder) Init(build func() (*Catalog, error)) error {
	h.once.Do(func() {
		defer close(h.ready)
		cat, err := build()
		if err == nil && cat == nil {
			err = ErrNotInitialized
		}
		h.cat, h.err = cat, err
	})
	<-h.ready
	return h.err
}

// Get waits for Init to complete or ctx to end.
func (h *Holder) Get(ctx context.Context) (*Catalog, error) {
	select {
	case <-h.ready:
		return h.cat, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Ready reports whether Init has completed successfully.
func (h *Holder) Ready() bool {
	select {
	case <-h.ready:
		return h.err == nil
	default:
		return false
	}
}
