// Package leveldbcas stores transaction blocks in a LevelDB database keyed
// by the binary CID.
package leveldbcas

import (
	"bytes"
	"errors"

	"github.com/ipfs/go-cid"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/opendlt/accumulate-go-sdk/storage"
)

type CAS struct {
	db *leveldb.DB
}

var _ storage.CAS = (*CAS)(nil)

// Open opens or creates the database at path.
func Open(path string) (*CAS, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &CAS{db: db}, nil
}

func (c *CAS) Close() error {
	return c.db.Close()
}

func (c *CAS) Put(block []byte) (cid.Cid, error) {
	id, err := storage.BlockID(block)
	if err != nil {
		return cid.Undef, err
	}
	key := id.Bytes()

	existing, err := c.db.Get(key, nil)
	switch {
	case err == nil:
		if !bytes.Equal(existing, block) {
			return cid.Undef, storage.ErrImmutable
		}
		return id, nil
	case !errors.Is(err, leveldb.ErrNotFound):
		return cid.Undef, err
	}

	if err := c.db.Put(key, block, &opt.WriteOptions{Sync: true}); err != nil {
		return cid.Undef, err
	}
	return id, nil
}

func (c *CAS) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	b, err := c.db.Get(id.Bytes(), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := storage.VerifyBlock(id, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (c *CAS) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	ok, err := c.db.Has(id.Bytes(), nil)
	return err == nil && ok
}
