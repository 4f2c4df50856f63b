package keys

import "github.com/cloudflare/circl/sign/ed25519"

// SigningProvider is the Ed25519 backend used by KeyPair. The implementation
// is fixed at build time.
type SigningProvider interface {
	Name() string
	PublicKey(seed []byte) []byte
	// Sign signs msg with a 64-byte seed‖public private key.
	Sign(priv, msg []byte) []byte
	Verify(pub, msg, sig []byte) bool
}

// Ed25519Provider implements SigningProvider with pure Ed25519 (RFC 8032).
type Ed25519Provider struct{}

// DefaultProvider is the provider this build signs with.
var DefaultProvider SigningProvider = Ed25519Provider{}

func (Ed25519Provider) Name() string { return "ed25519" }

// PublicKey expands seed. seed must be SeedSize bytes.
func (Ed25519Provider) PublicKey(seed []byte) []byte {
	priv := ed25519.NewKeyFromSeed(seed)
	return append([]byte(nil), priv[SeedSize:]...)
}

func (Ed25519Provider) Sign(priv, msg []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(priv), msg)
}

// Verify returns false for malformed keys or signatures.
func (Ed25519Provider) Verify(pub, msg, sig []byte) bool {
	if len(pub) != PublicKeySize || len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}
