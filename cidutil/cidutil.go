// Package cidutil derives content identifiers for canonical documents.
//
// A CID here is always CIDv1 with the "raw" multicodec and a sha2-256
// multihash, so its digest equals the plain SHA-256 of the canonical bytes.
package cidutil

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
)

// CIDv1RawSHA256CID returns a CIDv1 (raw + sha2-256) derived from data.
func CIDv1RawSHA256CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// DocumentCID canonicalizes v and returns the CID of the canonical bytes.
func DocumentCID(v canonjson.Value) (string, error) {
	b, err := canonjson.CanonicalBytes(v)
	if err != nil {
		return "", err
	}
	c, err := CIDv1RawSHA256CID(b)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// SHA256Digest decodes a CID string and returns its 32-byte sha2-256 digest.
// CIDs using another hash function or codec are rejected.
func SHA256Digest(s string) ([]byte, error) {
	c, err := cid.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode cid: %w", err)
	}
	if c.Prefix().Codec != cid.Raw {
		return nil, fmt.Errorf("cid codec 0x%x is not raw", c.Prefix().Codec)
	}
	dec, err := multihash.Decode(c.Hash())
	if err != nil {
		return nil, fmt.Errorf("decode multihash: %w", err)
	}
	if dec.Code != multihash.SHA2_256 {
		return nil, fmt.Errorf("multihash code 0x%x is not sha2-256", dec.Code)
	}
	if len(dec.Digest) != 32 {
		return nil, fmt.Errorf("sha2-256 digest must be 32 bytes, got %d", len(dec.Digest))
	}
	return dec.Digest, nil
}

// CIDFromSHA256Digest rebuilds the CIDv1 (raw + sha2-256) whose digest is d.
func CIDFromSHA256Digest(d []byte) (cid.Cid, error) {
	if len(d) != 32 {
		return cid.Undef, fmt.Errorf("sha2-256 digest must be 32 bytes, got %d", len(d))
	}
	mh, err := multihash.Encode(d, multihash.SHA2_256)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}
