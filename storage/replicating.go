package storage

import (
	"fmt"
	"sync"

	"github.com/ipfs/go-cid"
	"golang.org/x/sync/errgroup"
)

// NamedCAS associates a CAS with a stable backend name for reporting.
type NamedCAS struct {
	Name string
	CAS  CAS
}

// ReplicatingCAS writes every block to all backends and reads from the first
// backend that has it, in slice order.
//
// Callers MUST supply a fixed backend order so reads are deterministic.
type ReplicatingCAS struct {
	Backends []NamedCAS
}

var _ CAS = ReplicatingCAS{}

// PutAll writes block to all backends concurrently and returns the CID each
// one assigned. Any backend disagreeing with the computed CID fails the
// write with ErrCIDMismatch.
func (r ReplicatingCAS) PutAll(block []byte) (cid.Cid, map[string]cid.Cid, error) {
	want, err := BlockID(block)
	if err != nil {
		return cid.Undef, nil, err
	}
	if len(r.Backends) == 0 {
		return cid.Undef, nil, fmt.Errorf("storage: ReplicatingCAS has no backends")
	}
	for _, b := range r.Backends {
		if b.CAS == nil {
			return cid.Undef, nil, fmt.Errorf("storage: nil CAS for backend %q", b.Name)
		}
	}

	var (
		mu  sync.Mutex
		out = make(map[string]cid.Cid, len(r.Backends))
		g   errgroup.Group
	)
	for _, b := range r.Backends {
		g.Go(func() error {
			got, err := b.CAS.Put(block)
			if err != nil {
				return fmt.Errorf("storage: backend %q: %w", b.Name, err)
			}
			mu.Lock()
			out[b.Name] = got
			mu.Unlock()
			if !got.Equals(want) {
				return ErrCIDMismatch
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return cid.Undef, out, err
	}
	return want, out, nil
}

func (r ReplicatingCAS) Put(block []byte) (cid.Cid, error) {
	id, _, err := r.PutAll(block)
	return id, err
}

// Get returns the first copy found. A backend error other than ErrNotFound
// stops the search.
func (r ReplicatingCAS) Get(id cid.Cid) ([]byte, error) {
	for _, b := range r.Backends {
		if b.CAS == nil {
			continue
		}
		out, err := b.CAS.Get(id)
		if err == nil {
			return out, nil
		}
		if !IsNotFound(err) {
			return nil, fmt.Errorf("storage: backend %q: %w", b.Name, err)
		}
	}
	return nil, ErrNotFound
}

func (r ReplicatingCAS) Has(id cid.Cid) bool {
	for _, b := range r.Backends {
		if b.CAS != nil && b.CAS.Has(id) {
			return true
		}
	}
	return false
}
