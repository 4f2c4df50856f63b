package keys

import (
	"crypto/sha256"
	"fmt"
)

const roleDerivationTag = "accumulate-go-sdk-keystore-v1"

// DeriveRoleSeed deterministically derives a role-specific Ed25519 seed from a
// root seed: SHA256(root || 0 || tag || 0 || "role:" || role).
func DeriveRoleSeed(rootSeed []byte, role string) ([]byte, error) {
	if len(rootSeed) != SeedSize {
		return nil, fmt.Errorf("root seed must be %d bytes", SeedSize)
	}
	if err := CheckRole(role); err != nil {
		return nil, err
	}

	h := sha256.New()
	_, _ = h.Write(rootSeed)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(roleDerivationTag))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte("role:"))
	_, _ = h.Write([]byte(role))
	return h.Sum(nil)[:SeedSize], nil
}
