// Package hashing composes SHA-256 digests over canonical JSON documents.
//
// Every function is a pure transformation of its arguments and is safe for
// concurrent use.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

// DigestSize is the size of every digest produced by this package.
const DigestSize = sha256.Size

// Digest is a raw SHA-256 output.
type Digest = [DigestSize]byte

// SHA256 hashes data.
func SHA256(data []byte) Digest {
	return sha256.Sum256(data)
}

// DoubleSHA256 returns SHA256(SHA256(data)).
func DoubleSHA256(data []byte) Digest {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// SHA256Concat hashes the concatenation of parts without allocating the
// joined buffer.
func SHA256Concat(parts ...[]byte) Digest {
	h := sha256.New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	h.Sum(out[:0])
	return out
}

func combine(a, b Digest) Digest {
	return SHA256Concat(a[:], b[:])
}

// CanonicalBytes returns the UTF-8 canonical encoding of v.
func CanonicalBytes(v canonjson.Value) ([]byte, error) {
	return canonjson.CanonicalBytes(v)
}

// HashValue returns SHA256(CanonicalBytes(v)).
func HashValue(v canonjson.Value) (Digest, error) {
	b, err := canonjson.CanonicalBytes(v)
	if err != nil {
		return Digest{}, err
	}
	return sha256.Sum256(b), nil
}

// Hex renders a digest as 64 lower-case hex characters.
func Hex(d Digest) string {
	return hex.EncodeToString(d[:])
}

// ParseDigestHex decodes a 64-character hex digest. Upper-case input and a
// leading "0x" are accepted.
func ParseDigestHex(s string) (Digest, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	var d Digest
	if len(s) != 2*DigestSize {
		return d, sdkerr.Newf(sdkerr.KindValidation, sdkerr.RuleBadDigest, "digest must be %d hex characters, got %d", 2*DigestSize, len(s))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return Digest{}, sdkerr.Wrap(sdkerr.KindValidation, sdkerr.RuleBadDigest, "invalid digest hex", err)
	}
	return d, nil
}
