package storage_test

import (
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendlt/accumulate-go-sdk/storage"
	"github.com/opendlt/accumulate-go-sdk/storage/testkit"
)

type countingCAS struct {
	storage.CAS
	gets int
}

func (c *countingCAS) Get(id cid.Cid) ([]byte, error) {
	c.gets++
	return c.CAS.Get(id)
}

func TestCachingCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		c, err := storage.NewCachingCAS(storage.NewMemoryCAS(), 4)
		require.NoError(t, err)
		return c
	})
}

func TestCachingCAS_ServesRepeatReadsFromMemory(t *testing.T) {
	backend := storage.NewMemoryCAS()
	id, err := backend.Put([]byte("stored before the cache existed"))
	require.NoError(t, err)

	counting := &countingCAS{CAS: backend}
	c, err := storage.NewCachingCAS(counting, 2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := c.Get(id)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, counting.gets)
	assert.Equal(t, 1, c.Cached())
}

func TestCachingCAS_Evicts(t *testing.T) {
	c, err := storage.NewCachingCAS(storage.NewMemoryCAS(), 2)
	require.NoError(t, err)
	for _, b := range []string{"a", "b", "c"} {
		_, err := c.Put([]byte(b))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Cached())

	first, err := storage.BlockID([]byte("a"))
	require.NoError(t, err)
	assert.True(t, c.Has(first), "evicted blocks are still in the backend")
}

func TestCachingCAS_RejectsBadSize(t *testing.T) {
	_, err := storage.NewCachingCAS(storage.NewMemoryCAS(), 0)
	assert.Error(t, err)
}
