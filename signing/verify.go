package signing

import (
	"encoding/hex"

	"github.com/opendlt/accumulate-go-sdk/hashing"
	"github.com/opendlt/accumulate-go-sdk/keys"
	"github.com/opendlt/accumulate-go-sdk/model"
	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

// Verify reports whether every signature in env is valid for its
// transaction. A transaction whose hash no longer matches env.Hash, or an
// envelope without signatures, verifies false. Errors are reserved for
// envelopes that cannot be interpreted at all.
func Verify(env *model.SignedTransaction) (bool, error) {
	if env == nil {
		return false, sdkerr.New(sdkerr.KindValidation, sdkerr.RuleNotObject, "nil signed transaction")
	}
	strategy, err := hashing.ParseStrategy(env.Strategy)
	if err != nil {
		return false, sdkerr.Wrap(sdkerr.KindValidation, sdkerr.RuleBadStrategy, "signed transaction", err)
	}
	txHash, err := hashing.NewTransactionHasher(hashing.Options{Strategy: strategy}).Hash(env.Transaction)
	if err != nil {
		return false, err
	}
	if hashing.Hex(txHash) != env.Hash || len(env.Signatures) == 0 {
		return false, nil
	}
	for _, sig := range env.Signatures {
		if sig.TransactionHash != env.Hash {
			return false, nil
		}
		ok, err := VerifySignature(sig, txHash)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// VerifySignature checks one stored signature against a transaction hash.
func VerifySignature(sig model.Signature, txHash hashing.Digest) (bool, error) {
	meta, err := MetadataFromSignature(sig)
	if err != nil {
		return false, err
	}
	metaHash, err := hashing.HashSignatureMetadata(meta.Value())
	if err != nil {
		return false, err
	}
	raw, err := hex.DecodeString(sig.Signature)
	if err != nil {
		return false, nil
	}
	msg := hashing.SHA256Concat(metaHash[:], txHash[:])
	return keys.VerifySignature(meta.PublicKey, msg[:], raw), nil
}
