package hashing

import (
	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/cidutil"
	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

// TransactionCID returns the content identifier of the transaction's canonical
// document. Its sha2-256 digest equals HashTransaction(tx).
func TransactionCID(tx canonjson.Value) (string, error) {
	if _, _, err := requireTransaction(tx); err != nil {
		return "", err
	}
	return cidutil.DocumentCID(tx)
}

// DigestFromCID extracts the transaction hash carried by a CID produced by
// TransactionCID.
func DigestFromCID(s string) (Digest, error) {
	raw, err := cidutil.SHA256Digest(s)
	if err != nil {
		return Digest{}, sdkerr.Wrap(sdkerr.KindValidation, sdkerr.RuleBadDigest, "invalid transaction CID", err)
	}
	var d Digest
	copy(d[:], raw)
	return d, nil
}
