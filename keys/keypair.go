package keys

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"

	"github.com/cloudflare/circl/sign/ed25519"

	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

const (
	// SeedSize is the length of an Ed25519 seed.
	SeedSize = ed25519.SeedSize
	// PublicKeySize is the length of an Ed25519 public key.
	PublicKeySize = ed25519.PublicKeySize
	// KeyBlobSize is the length of an exported public‖seed key blob.
	KeyBlobSize = PublicKeySize + SeedSize
	// SignatureSize is the length of an Ed25519 signature.
	SignatureSize = ed25519.SignatureSize
)

// KeyPair is an Ed25519 seed together with its public key. It is immutable
// after construction and safe for concurrent use.
type KeyPair struct {
	seed []byte
	pub  []byte
	priv []byte
}

// FromSeedOrKey builds a KeyPair from raw key material.
//
// 32 bytes are treated as a seed and expanded. 64 bytes are treated as
// public(32)‖seed(32); the public half is taken as given without recomputing
// it. Use VerifyKeyDerivation to check such a blob. Any other length fails
// with a KindKeyFormat error.
func FromSeedOrKey(b []byte) (*KeyPair, error) {
	switch len(b) {
	case SeedSize:
		return fromSeed(b), nil
	case KeyBlobSize:
		seed := bytes.Clone(b[PublicKeySize:])
		pub := bytes.Clone(b[:PublicKeySize])
		return &KeyPair{seed: seed, pub: pub, priv: privateFromParts(seed, pub)}, nil
	default:
		return nil, sdkerr.Newf(sdkerr.KindKeyFormat, sdkerr.RuleKeyLength,
			"invalid key length %d: expected %d-byte seed or %d-byte public||seed", len(b), SeedSize, KeyBlobSize)
	}
}

// FromHex is FromSeedOrKey for hex input. A leading "0x" is accepted.
func FromHex(s string) (*KeyPair, error) {
	b, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	return FromSeedOrKey(b)
}

// Generate creates a KeyPair from a fresh seed read from rand.
func Generate(rand io.Reader) (*KeyPair, error) {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, sdkerr.Wrap(sdkerr.KindInternal, "", "read seed", err)
	}
	return fromSeed(seed), nil
}

func fromSeed(seed []byte) *KeyPair {
	seed = bytes.Clone(seed)
	pub := DefaultProvider.PublicKey(seed)
	return &KeyPair{seed: seed, pub: pub, priv: privateFromParts(seed, pub)}
}

// privateFromParts lays the key out the way the signer expects: seed‖public.
func privateFromParts(seed, pub []byte) []byte {
	priv := make([]byte, ed25519.PrivateKeySize)
	copy(priv, seed)
	copy(priv[SeedSize:], pub)
	return priv
}

// Seed returns a copy of the 32-byte seed.
func (k *KeyPair) Seed() []byte { return bytes.Clone(k.seed) }

// PublicKey returns a copy of the 32-byte public key.
func (k *KeyPair) PublicKey() []byte { return bytes.Clone(k.pub) }

// PublicKeyHex returns the public key as lower-case hex.
func (k *KeyPair) PublicKeyHex() string { return hex.EncodeToString(k.pub) }

// Bytes exports the key as a 64-byte public‖seed blob accepted by
// FromSeedOrKey.
func (k *KeyPair) Bytes() []byte {
	out := make([]byte, 0, KeyBlobSize)
	out = append(out, k.pub...)
	return append(out, k.seed...)
}

// Sign returns the deterministic 64-byte Ed25519 signature of msg.
func (k *KeyPair) Sign(msg []byte) []byte {
	return DefaultProvider.Sign(k.priv, msg)
}

// Verify reports whether sig is a valid signature of msg under this key.
func (k *KeyPair) Verify(msg, sig []byte) bool {
	return VerifySignature(k.pub, msg, sig)
}

// LiteIdentityURL derives the lite identity address of this key.
func (k *KeyPair) LiteIdentityURL() string { return LiteIdentityURL(k.pub) }

// LiteTokenAccountURL derives the ACME lite token account of this key.
func (k *KeyPair) LiteTokenAccountURL() string { return LiteTokenAccountURL(k.pub) }

// PublicKeyFromSeed expands a 32-byte seed and returns its public key.
func PublicKeyFromSeed(seed []byte) ([]byte, error) {
	if len(seed) != SeedSize {
		return nil, sdkerr.Newf(sdkerr.KindKeyFormat, sdkerr.RuleKeyLength, "seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	return fromSeed(seed).PublicKey(), nil
}

// VerifyKeyDerivation reports whether pub is the public key of seed.
func VerifyKeyDerivation(seed, pub []byte) bool {
	want, err := PublicKeyFromSeed(seed)
	if err != nil {
		return false
	}
	return bytes.Equal(want, pub)
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, sdkerr.Wrap(sdkerr.KindKeyFormat, sdkerr.RuleKeyHex, "invalid key hex", err)
	}
	return b, nil
}
