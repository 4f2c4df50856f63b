// Package keys holds Ed25519 key material for signing transactions.
//
// API stability:
//
// Stable (SemVer-protected):
//   - KeyPair construction from 32-byte seeds or 64-byte public‖seed blobs,
//     deterministic signing, stateless verification and lite URL derivation.
//
// Experimental:
//   - Filesystem-backed key storage (KeyStore and related functions). It is a
//     local-first convenience and not part of the hashing and signing contract.
package keys
