package keys

import (
	"encoding/hex"
	"strings"
)

// VerifySignature reports whether sig is a valid Ed25519 signature of msg
// under pub. Malformed inputs yield false rather than an error.
func VerifySignature(pub, msg, sig []byte) bool {
	return DefaultProvider.Verify(pub, msg, sig)
}

// VerifySignatureHex is VerifySignature with hex-encoded public key and
// signature. Undecodable hex yields false.
func VerifySignatureHex(pubHex string, msg []byte, sigHex string) bool {
	pub, err := hex.DecodeString(strings.TrimPrefix(pubHex, "0x"))
	if err != nil {
		return false
	}
	sig, err := hex.DecodeString(strings.TrimPrefix(sigHex, "0x"))
	if err != nil {
		return false
	}
	return VerifySignature(pub, msg, sig)
}

// SignHex signs msg and returns the signature as lower-case hex.
func (k *KeyPair) SignHex(msg []byte) string {
	return hex.EncodeToString(k.Sign(msg))
}
