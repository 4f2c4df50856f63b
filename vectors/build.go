package vectors

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/hashing"
	"github.com/opendlt/accumulate-go-sdk/keys"
	"github.com/opendlt/accumulate-go-sdk/signing"
)

// BuildTxVector computes every field of a transaction vector with this
// module. The signature covers the raw 32-byte transaction hash.
func BuildTxVector(name string, tx canonjson.Value, kp *keys.KeyPair) (TxVector, error) {
	canonical, err := canonjson.Canonicalize(tx)
	if err != nil {
		return TxVector{}, err
	}
	txHash, err := hashing.HashTransaction(tx)
	if err != nil {
		return TxVector{}, err
	}
	layered, err := hashing.HashTransactionLayered(tx)
	if err != nil {
		return TxVector{}, err
	}
	return TxVector{
		Name:                name,
		Transaction:         tx,
		CanonicalJSON:       canonical,
		TxHash:              hashing.Hex(txHash),
		LayeredTxHash:       hashing.Hex(layered),
		PrivateKey:          hex.EncodeToString(kp.Seed()),
		PublicKey:           kp.PublicKeyHex(),
		Signature:           kp.SignHex(txHash[:]),
		LiteIdentityURL:     kp.LiteIdentityURL(),
		LiteTokenAccountURL: kp.LiteTokenAccountURL(),
	}, nil
}

// BuildSigningVector computes a signing vector for kp signing tx as its own
// lite identity.
func BuildSigningVector(name string, tx canonjson.Value, kp *keys.KeyPair, signerVersion, timestamp uint64) (SigningVector, error) {
	meta := signing.NewMetadata(kp, signerVersion, timestamp).Value()
	metaHash, err := hashing.HashSignatureMetadata(meta)
	if err != nil {
		return SigningVector{}, err
	}
	txHash, err := hashing.HashTransaction(tx)
	if err != nil {
		return SigningVector{}, err
	}
	signingHash, err := hashing.HashForEd25519Signing(meta, tx)
	if err != nil {
		return SigningVector{}, err
	}
	return SigningVector{
		Name:              name,
		PrivateKey:        hex.EncodeToString(kp.Seed()),
		PublicKey:         kp.PublicKeyHex(),
		SignatureMetadata: meta,
		Transaction:       tx,
		MetadataHash:      hashing.Hex(metaHash),
		TxHash:            hashing.Hex(txHash),
		SigningHash:       hashing.Hex(signingHash),
		Signature:         kp.SignHex(signingHash[:]),
	}, nil
}

// Encode renders a vector file as indented JSON without HTML escaping.
func Encode(f any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes f and writes it to path, creating parent directories.
func WriteFile(path string, f any) error {
	b, err := Encode(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
