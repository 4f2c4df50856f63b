package storage

import (
	"bytes"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/ipfs/go-cid"
)

// CachingCAS keeps recently read or written blocks in memory in front of a
// slower backend. Blocks are immutable, so cached entries never go stale.
type CachingCAS struct {
	Backend CAS
	cache   *lru.Cache[cid.Cid, []byte]
}

var _ CAS = (*CachingCAS)(nil)

func NewCachingCAS(backend CAS, size int) (*CachingCAS, error) {
	cache, err := lru.New[cid.Cid, []byte](size)
	if err != nil {
		return nil, err
	}
	return &CachingCAS{Backend: backend, cache: cache}, nil
}

func (c *CachingCAS) Put(block []byte) (cid.Cid, error) {
	id, err := c.Backend.Put(block)
	if err != nil {
		return cid.Undef, err
	}
	c.cache.Add(id, bytes.Clone(block))
	return id, nil
}

func (c *CachingCAS) Get(id cid.Cid) ([]byte, error) {
	if b, ok := c.cache.Get(id); ok {
		return bytes.Clone(b), nil
	}
	b, err := c.Backend.Get(id)
	if err != nil {
		return nil, err
	}
	if err := VerifyBlock(id, b); err != nil {
		return nil, err
	}
	c.cache.Add(id, bytes.Clone(b))
	return b, nil
}

func (c *CachingCAS) Has(id cid.Cid) bool {
	if c.cache.Contains(id) {
		return true
	}
	return c.Backend.Has(id)
}

// Cached reports how many blocks are held in memory.
func (c *CachingCAS) Cached() int {
	return c.cache.Len()
}
