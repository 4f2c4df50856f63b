package storage

import (
	"bytes"
	"sync"

	"github.com/ipfs/go-cid"
)

// MemoryCAS is an in-process CAS. It is safe for concurrent use.
type MemoryCAS struct {
	mu     sync.RWMutex
	blocks map[cid.Cid][]byte
}

func NewMemoryCAS() *MemoryCAS {
	return &MemoryCAS{blocks: make(map[cid.Cid][]byte)}
}

var _ CAS = (*MemoryCAS)(nil)

func (m *MemoryCAS) Put(block []byte) (cid.Cid, error) {
	id, err := BlockID(block)
	if err != nil {
		return cid.Undef, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.blocks[id]; ok {
		if !bytes.Equal(existing, block) {
			return cid.Undef, ErrImmutable
		}
		return id, nil
	}
	m.blocks[id] = bytes.Clone(block)
	return id, nil
}

func (m *MemoryCAS) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	m.mu.RLock()
	b, ok := m.blocks[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(b), nil
}

func (m *MemoryCAS) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blocks[id]
	return ok
}

// Len reports the number of stored blocks.
func (m *MemoryCAS) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blocks)
}
