// Package vectors loads golden test vectors and checks this module against
// them.
//
// Vector files are JSON documents of the form {"version":1,"vectors":[...]}.
// Transaction vectors pin canonical text, transaction hashes, derived keys and
// signatures; signing vectors pin the metadata and signing hash composition.
package vectors

import "github.com/opendlt/accumulate-go-sdk/canonjson"

// TxVector is one transaction vector. LayeredTxHash, LiteIdentityURL and
// LiteTokenAccountURL are optional.
type TxVector struct {
	Name                string          `json:"name"`
	Transaction         canonjson.Value `json:"transaction"`
	CanonicalJSON       string          `json:"canonicalJSON"`
	TxHash              string          `json:"txHash"`
	LayeredTxHash       string          `json:"layeredTxHash,omitempty"`
	PrivateKey          string          `json:"privateKey"`
	PublicKey           string          `json:"publicKey"`
	Signature           string          `json:"signature"`
	LiteIdentityURL     string          `json:"liteIdentityUrl,omitempty"`
	LiteTokenAccountURL string          `json:"liteTokenAccountUrl,omitempty"`
}

// SigningVector pins the Ed25519 signing hash of a transaction under a given
// signature metadata document.
type SigningVector struct {
	Name              string          `json:"name"`
	PrivateKey        string          `json:"privateKey"`
	PublicKey         string          `json:"publicKey"`
	SignatureMetadata canonjson.Value `json:"signatureMetadata"`
	Transaction       canonjson.Value `json:"transaction"`
	MetadataHash      string          `json:"metadataHash"`
	TxHash            string          `json:"txHash"`
	SigningHash       string          `json:"signingHash"`
	Signature         string          `json:"signature"`
}

// TxFile is a transaction vector file.
type TxFile struct {
	Version int        `json:"version"`
	Vectors []TxVector `json:"vectors"`
}

// SigningFile is a signing vector file.
type SigningFile struct {
	Version int             `json:"version"`
	Vectors []SigningVector `json:"vectors"`
}

// FileVersion is the vector file format this package reads and writes.
const FileVersion = 1
