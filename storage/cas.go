// Package storage archives canonical transaction documents by content
// identifier.
//
// A block is the canonical JSON encoding of one transaction. Its CID is
// CIDv1 raw with a sha2-256 multihash, so the digest inside the CID is the
// flat transaction hash.
package storage

import (
	"github.com/ipfs/go-cid"

	"github.com/opendlt/accumulate-go-sdk/cidutil"
)

// CAS is a minimal content-addressable block store.
//
// Contract:
// - Put MUST be idempotent.
// - Stored blocks MUST be immutable.
// - CIDs MUST be derived from the bytes written.
// - Get MUST return ErrNotFound when the CID is absent.
type CAS interface {
	Put(block []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}

// BlockID returns the CID a CAS must assign to block.
func BlockID(block []byte) (cid.Cid, error) {
	id, err := cidutil.CIDv1RawSHA256CID(block)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, ErrInvalidCID
	}
	return id, nil
}

// VerifyBlock checks that block hashes to id.
func VerifyBlock(id cid.Cid, block []byte) error {
	got, err := BlockID(block)
	if err != nil {
		return err
	}
	if !got.Equals(id) {
		return ErrCIDMismatch
	}
	return nil
}
