package storage

import (
	"github.com/ipfs/go-cid"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/cidutil"
	"github.com/opendlt/accumulate-go-sdk/hashing"
)

// Archive stores transactions in a CAS as canonical JSON blocks, so a
// transaction can be fetched back by its flat hash.
type Archive struct {
	CAS CAS
}

func NewArchive(cas CAS) *Archive {
	return &Archive{CAS: cas}
}

// Put canonicalizes tx, stores it and returns its CID and transaction hash.
// tx must contain header and body.
func (a *Archive) Put(tx canonjson.Value) (cid.Cid, hashing.Digest, error) {
	txHash, err := hashing.HashTransaction(tx)
	if err != nil {
		return cid.Undef, hashing.Digest{}, err
	}
	block, err := canonjson.CanonicalBytes(tx)
	if err != nil {
		return cid.Undef, hashing.Digest{}, err
	}
	id, err := a.CAS.Put(block)
	if err != nil {
		return cid.Undef, hashing.Digest{}, err
	}
	return id, txHash, nil
}

// Get loads the transaction stored under id. The block must match id, be
// canonical JSON and be a transaction.
func (a *Archive) Get(id cid.Cid) (canonjson.Value, error) {
	block, err := a.CAS.Get(id)
	if err != nil {
		return canonjson.Value{}, err
	}
	if err := VerifyBlock(id, block); err != nil {
		return canonjson.Value{}, err
	}
	if err := canonjson.CheckCanonical(block); err != nil {
		return canonjson.Value{}, err
	}
	tx, err := canonjson.Parse(block)
	if err != nil {
		return canonjson.Value{}, err
	}
	if _, err := hashing.HashTransaction(tx); err != nil {
		return canonjson.Value{}, err
	}
	return tx, nil
}

// GetByHash loads the transaction whose flat hash is txHash.
func (a *Archive) GetByHash(txHash hashing.Digest) (canonjson.Value, error) {
	id, err := cidutil.CIDFromSHA256Digest(txHash[:])
	if err != nil {
		return canonjson.Value{}, err
	}
	return a.Get(id)
}

// Has reports whether a transaction with flat hash txHash is stored.
func (a *Archive) Has(txHash hashing.Digest) bool {
	id, err := cidutil.CIDFromSHA256Digest(txHash[:])
	if err != nil {
		return false
	}
	return a.CAS.Has(id)
}
