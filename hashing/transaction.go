package hashing

import (
	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

// Body types whose opaque payload lives in body.entry and is hashed
// separately from the rest of the body.
var payloadBodyTypes = map[string]bool{
	"WriteData":          true,
	"WriteDataTo":        true,
	"SyntheticWriteData": true,
	"SystemWriteData":    true,
}

// IsPayloadBody reports whether a body of the given type carries a separately
// hashed entry.
func IsPayloadBody(bodyType string) bool {
	return payloadBodyTypes[bodyType]
}

// HashHeader returns HashValue(header).
func HashHeader(header canonjson.Value) (Digest, error) {
	return HashValue(header)
}

// HashBody hashes a transaction body.
//
// Payload-carrying bodies (see IsPayloadBody) must contain an entry object
// with a data member; their hash is SHA256(HashValue(body without entry) ||
// HashValue(entry)). Every other body hashes as HashValue(body).
func HashBody(body canonjson.Value) (Digest, error) {
	typ, _ := bodyType(body)
	if !IsPayloadBody(typ) {
		return HashValue(body)
	}

	entry, ok := body.Get("entry")
	if !ok {
		return Digest{}, sdkerr.Newf(sdkerr.KindValidation, sdkerr.RuleMissingEntry, "invalid %s: missing entry", typ)
	}
	if entry.Kind() != canonjson.KindObject || !entry.Has("data") {
		return Digest{}, sdkerr.Newf(sdkerr.KindValidation, sdkerr.RuleMissingEntryData, "invalid %s: missing entry data", typ)
	}

	withoutEntry, err := HashValue(body.Without("entry"))
	if err != nil {
		return Digest{}, err
	}
	entryHash, err := HashValue(entry)
	if err != nil {
		return Digest{}, err
	}
	return combine(withoutEntry, entryHash), nil
}

func bodyType(body canonjson.Value) (string, bool) {
	t, ok := body.Get("type")
	if !ok {
		return "", false
	}
	return t.Str()
}

// requireTransaction checks the structural presence of header and body.
func requireTransaction(tx canonjson.Value) (header, body canonjson.Value, err error) {
	if tx.Kind() != canonjson.KindObject {
		return header, body, sdkerr.Newf(sdkerr.KindValidation, sdkerr.RuleNotObject, "invalid transaction: expected object, got %s", tx.Kind())
	}
	header, ok := tx.Get("header")
	if !ok {
		return header, body, sdkerr.New(sdkerr.KindValidation, sdkerr.RuleMissingHeader, "invalid transaction: missing header")
	}
	body, ok = tx.Get("body")
	if !ok {
		return header, body, sdkerr.New(sdkerr.KindValidation, sdkerr.RuleMissingBody, "invalid transaction: missing body")
	}
	return header, body, nil
}

// HashTransaction hashes the whole transaction as one canonical document
// (the flat strategy). tx must contain header and body.
func HashTransaction(tx canonjson.Value) (Digest, error) {
	if _, _, err := requireTransaction(tx); err != nil {
		return Digest{}, err
	}
	return HashValue(tx)
}

// HashTransactionLayered returns SHA256(HashHeader(header) || HashBody(body)).
func HashTransactionLayered(tx canonjson.Value) (Digest, error) {
	header, body, err := requireTransaction(tx)
	if err != nil {
		return Digest{}, err
	}
	headerHash, err := HashHeader(header)
	if err != nil {
		return Digest{}, err
	}
	bodyHash, err := HashBody(body)
	if err != nil {
		return Digest{}, err
	}
	return combine(headerHash, bodyHash), nil
}

// HashForSigning is the transaction identity used by default when signing.
// It is the flat HashTransaction.
func HashForSigning(tx canonjson.Value) (Digest, error) {
	return HashTransaction(tx)
}

// HashSignatureMetadata returns HashValue(meta).
func HashSignatureMetadata(meta canonjson.Value) (Digest, error) {
	return HashValue(meta)
}

// HashForEd25519Signing returns the 32-byte message an Ed25519 key signs:
// SHA256(HashSignatureMetadata(meta) || HashTransaction(tx)).
func HashForEd25519Signing(meta, tx canonjson.Value) (Digest, error) {
	metaHash, err := HashSignatureMetadata(meta)
	if err != nil {
		return Digest{}, err
	}
	txHash, err := HashTransaction(tx)
	if err != nil {
		return Digest{}, err
	}
	return combine(metaHash, txHash), nil
}

// HashTransactionHex is HashTransaction rendered as hex.
func HashTransactionHex(tx canonjson.Value) (string, error) {
	d, err := HashTransaction(tx)
	if err != nil {
		return "", err
	}
	return Hex(d), nil
}

// HashForEd25519SigningHex is HashForEd25519Signing rendered as hex.
func HashForEd25519SigningHex(meta, tx canonjson.Value) (string, error) {
	d, err := HashForEd25519Signing(meta, tx)
	if err != nil {
		return "", err
	}
	return Hex(d), nil
}

// VerifyTransactionHash reports whether tx hashes (flat strategy) to
// expected, which may be 32 raw bytes or a 64-character hex string.
func VerifyTransactionHash(tx canonjson.Value, expected []byte) (bool, error) {
	got, err := HashTransaction(tx)
	if err != nil {
		return false, err
	}
	want, err := digestFromBytesOrHex(expected)
	if err != nil {
		return false, err
	}
	return got == want, nil
}

func digestFromBytesOrHex(b []byte) (Digest, error) {
	if len(b) == DigestSize {
		var d Digest
		copy(d[:], b)
		return d, nil
	}
	return ParseDigestHex(string(b))
}
