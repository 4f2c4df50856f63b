// Package signing binds Ed25519 signatures to transactions.
//
// A signature covers SHA256(HashValue(metadata) || transaction hash), so the
// signer identity, key version and timestamp cannot be replayed against
// another transaction or altered without invalidating the signature.
package signing

import (
	"encoding/hex"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/keys"
	"github.com/opendlt/accumulate-go-sdk/model"
	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

// TypeED25519 is the metadata type of an Ed25519 signature.
const TypeED25519 = "ed25519"

// Metadata describes the signer of a transaction. It is hashed together with
// the transaction to form the message that is signed.
type Metadata struct {
	PublicKey     []byte
	Signer        string
	SignerVersion uint64
	Timestamp     uint64
	Memo          string
}

// NewMetadata returns metadata for kp signing as its own lite identity.
func NewMetadata(kp *keys.KeyPair, signerVersion, timestamp uint64) Metadata {
	return Metadata{
		PublicKey:     kp.PublicKey(),
		Signer:        kp.LiteIdentityURL(),
		SignerVersion: signerVersion,
		Timestamp:     timestamp,
	}
}

// Validate checks the fields every signature needs.
func (m Metadata) Validate() error {
	if len(m.PublicKey) != keys.PublicKeySize {
		return sdkerr.Newf(sdkerr.KindKeyFormat, sdkerr.RulePublicKey, "signature public key must be %d bytes, got %d", keys.PublicKeySize, len(m.PublicKey))
	}
	if m.Signer == "" {
		return sdkerr.New(sdkerr.KindValidation, sdkerr.RuleMissingSigner, "signature metadata: missing signer")
	}
	return nil
}

// Value renders the metadata document that is hashed. Memo is omitted when
// empty.
func (m Metadata) Value() canonjson.Value {
	fields := map[string]canonjson.Value{
		"type":          canonjson.String(TypeED25519),
		"publicKey":     canonjson.String(hex.EncodeToString(m.PublicKey)),
		"signer":        canonjson.String(m.Signer),
		"signerVersion": canonjson.Uint(m.SignerVersion),
		"timestamp":     canonjson.Uint(m.Timestamp),
	}
	if m.Memo != "" {
		fields["memo"] = canonjson.String(m.Memo)
	}
	return canonjson.Object(fields)
}

// MetadataFromSignature recovers the signed metadata of a stored signature.
func MetadataFromSignature(sig model.Signature) (Metadata, error) {
	if sig.Type != TypeED25519 {
		return Metadata{}, sdkerr.Newf(sdkerr.KindValidation, sdkerr.RuleSignatureType, "unsupported signature type %q", sig.Type)
	}
	pub, err := hex.DecodeString(sig.PublicKey)
	if err != nil {
		return Metadata{}, sdkerr.Wrap(sdkerr.KindKeyFormat, sdkerr.RuleKeyHex, "signature public key", err)
	}
	m := Metadata{
		PublicKey:     pub,
		Signer:        sig.Signer,
		SignerVersion: sig.SignerVersion,
		Timestamp:     sig.Timestamp,
		Memo:          sig.Memo,
	}
	return m, m.Validate()
}

// MetadataFromValue reads metadata from its JSON document form, the inverse
// of Metadata.Value.
func MetadataFromValue(v canonjson.Value) (Metadata, error) {
	if v.Kind() != canonjson.KindObject {
		return Metadata{}, sdkerr.Newf(sdkerr.KindValidation, sdkerr.RuleNotObject, "signature metadata: expected object, got %s", v.Kind())
	}
	sig := model.Signature{}
	var ok bool
	if sig.Type, ok = stringField(v, "type"); !ok {
		return Metadata{}, sdkerr.New(sdkerr.KindValidation, sdkerr.RuleSignatureType, "signature metadata: missing type")
	}
	var err error
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"publicKey", &sig.PublicKey},
		{"signer", &sig.Signer},
		{"memo", &sig.Memo},
	} {
		if *f.dst, err = optionalString(v, f.key); err != nil {
			return Metadata{}, err
		}
	}
	if sig.SignerVersion, err = optionalUint(v, "signerVersion"); err != nil {
		return Metadata{}, err
	}
	if sig.Timestamp, err = optionalUint(v, "timestamp"); err != nil {
		return Metadata{}, err
	}
	return MetadataFromSignature(sig)
}

func stringField(v canonjson.Value, key string) (string, bool) {
	f, ok := v.Get(key)
	if !ok {
		return "", false
	}
	return f.Str()
}

// optionalString returns "" for an absent field and fails when the field is
// present with another kind.
func optionalString(v canonjson.Value, key string) (string, error) {
	if !v.Has(key) {
		return "", nil
	}
	s, ok := stringField(v, key)
	if !ok {
		return "", badField(v, key, "a string")
	}
	return s, nil
}

// optionalUint returns 0 for an absent field and fails when the field is not
// an integer in the uint64 range.
func optionalUint(v canonjson.Value, key string) (uint64, error) {
	f, ok := v.Get(key)
	if !ok {
		return 0, nil
	}
	n, ok := f.BigInt()
	if !ok || n.Sign() < 0 || !n.IsUint64() {
		return 0, badField(v, key, "an unsigned 64-bit integer")
	}
	return n.Uint64(), nil
}

func badField(v canonjson.Value, key, want string) error {
	f, _ := v.Get(key)
	return sdkerr.Newf(sdkerr.KindValidation, sdkerr.RuleMetadataField, "signature metadata: %s must be %s, got %s", key, want, f.Kind())
}
