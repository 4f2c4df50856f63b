package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

const (
	liteScheme      = "acc://"
	liteTokenSuffix = "/ACME"
	liteKeyHashSize = 20
	liteChecksumLen = 4
)

// LiteIdentityURL derives the lite identity address of an Ed25519 public key:
// "acc://" followed by the hex of the first 20 bytes of SHA256(pub) and the
// hex of the last 4 bytes of SHA256 over that 40-character hex string.
func LiteIdentityURL(pub []byte) string {
	keyHash := sha256.Sum256(pub)
	keyStr := hex.EncodeToString(keyHash[:liteKeyHashSize])
	checksum := sha256.Sum256([]byte(keyStr))
	return liteScheme + keyStr + hex.EncodeToString(checksum[sha256.Size-liteChecksumLen:])
}

// LiteTokenAccountURL is the ACME token account under the lite identity.
func LiteTokenAccountURL(pub []byte) string {
	return LiteIdentityURL(pub) + liteTokenSuffix
}

// ParseLiteIdentityURL validates a lite identity or ACME lite token account
// URL and returns the 20-byte public key hash it encodes. The checksum must
// match.
func ParseLiteIdentityURL(url string) ([]byte, error) {
	rest, ok := cutPrefixFold(url, liteScheme)
	if !ok {
		return nil, sdkerr.Newf(sdkerr.KindKeyFormat, sdkerr.RuleLiteURL, "lite URL %q must start with %s", url, liteScheme)
	}
	if n := len(rest) - len(liteTokenSuffix); n > 0 && strings.EqualFold(rest[n:], liteTokenSuffix) {
		rest = rest[:n]
	}
	rest = strings.ToLower(rest)
	if len(rest) != 2*(liteKeyHashSize+liteChecksumLen) {
		return nil, sdkerr.Newf(sdkerr.KindKeyFormat, sdkerr.RuleLiteURL, "lite URL %q: expected %d hex characters", url, 2*(liteKeyHashSize+liteChecksumLen))
	}
	keyStr := rest[:2*liteKeyHashSize]
	keyHash, err := hex.DecodeString(keyStr)
	if err != nil {
		return nil, sdkerr.Wrap(sdkerr.KindKeyFormat, sdkerr.RuleLiteURL, "lite URL is not hex", err)
	}
	got, err := hex.DecodeString(rest[2*liteKeyHashSize:])
	if err != nil {
		return nil, sdkerr.Wrap(sdkerr.KindKeyFormat, sdkerr.RuleLiteURL, "lite URL checksum is not hex", err)
	}
	checksum := sha256.Sum256([]byte(keyStr))
	if string(got) != string(checksum[sha256.Size-liteChecksumLen:]) {
		return nil, sdkerr.Newf(sdkerr.KindKeyFormat, sdkerr.RuleLiteChecksum, "lite URL %q: checksum mismatch", url)
	}
	return keyHash, nil
}

// IsLiteIdentityOf reports whether url is the lite identity (or ACME lite
// token account) of pub.
func IsLiteIdentityOf(url string, pub []byte) bool {
	keyHash, err := ParseLiteIdentityURL(url)
	if err != nil {
		return false
	}
	want := sha256.Sum256(pub)
	return string(keyHash) == string(want[:liteKeyHashSize])
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
