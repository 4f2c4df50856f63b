package signing

import (
	"bytes"
	"encoding/hex"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/hashing"
	"github.com/opendlt/accumulate-go-sdk/keys"
	"github.com/opendlt/accumulate-go-sdk/model"
	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

// Signer produces signed transaction envelopes. The zero value signs with
// the flat transaction hash.
type Signer struct {
	Hasher *hashing.TransactionHasher
}

func (s Signer) hasher() *hashing.TransactionHasher {
	if s.Hasher == nil {
		return hashing.NewTransactionHasher(hashing.Options{})
	}
	return s.Hasher
}

// Sign signs tx with kp using the default Signer.
func Sign(kp *keys.KeyPair, meta Metadata, tx canonjson.Value) (*model.SignedTransaction, error) {
	return Signer{}.Sign(kp, meta, tx)
}

// Sign hashes tx, signs it with kp under meta and returns a new envelope
// holding the single signature.
func (s Signer) Sign(kp *keys.KeyPair, meta Metadata, tx canonjson.Value) (*model.SignedTransaction, error) {
	h := s.hasher()
	txHash, err := h.Hash(tx)
	if err != nil {
		return nil, err
	}
	cid, err := hashing.TransactionCID(tx)
	if err != nil {
		return nil, err
	}
	env := &model.SignedTransaction{
		Transaction: tx,
		Strategy:    h.Strategy().String(),
		Hash:        hashing.Hex(txHash),
		CID:         cid,
	}
	if err := appendSignature(env, txHash, kp, meta); err != nil {
		return nil, err
	}
	return env, nil
}

// AddSignature appends a signature by kp to an existing envelope. The
// envelope's recorded hash must still match its transaction.
func AddSignature(env *model.SignedTransaction, kp *keys.KeyPair, meta Metadata) error {
	strategy, err := hashing.ParseStrategy(env.Strategy)
	if err != nil {
		return sdkerr.Wrap(sdkerr.KindValidation, sdkerr.RuleBadStrategy, "signed transaction", err)
	}
	txHash, err := hashing.NewTransactionHasher(hashing.Options{Strategy: strategy}).Hash(env.Transaction)
	if err != nil {
		return err
	}
	if hashing.Hex(txHash) != env.Hash {
		return model.NewError(model.ErrHashMismatch, "envelope hash does not match its transaction")
	}
	return appendSignature(env, txHash, kp, meta)
}

func appendSignature(env *model.SignedTransaction, txHash hashing.Digest, kp *keys.KeyPair, meta Metadata) error {
	if err := meta.Validate(); err != nil {
		return err
	}
	if !bytes.Equal(meta.PublicKey, kp.PublicKey()) {
		return sdkerr.New(sdkerr.KindKeyFormat, sdkerr.RulePublicKey, "signature metadata public key does not match the signing key")
	}
	metaHash, err := hashing.HashSignatureMetadata(meta.Value())
	if err != nil {
		return err
	}
	msg := hashing.SHA256Concat(metaHash[:], txHash[:])
	env.Signatures = append(env.Signatures, model.Signature{
		Type:            TypeED25519,
		PublicKey:       hex.EncodeToString(meta.PublicKey),
		Signer:          meta.Signer,
		SignerVersion:   meta.SignerVersion,
		Timestamp:       meta.Timestamp,
		Memo:            meta.Memo,
		Signature:       hex.EncodeToString(kp.Sign(msg[:])),
		TransactionHash: env.Hash,
	})
	return nil
}
