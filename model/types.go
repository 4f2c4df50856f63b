package model

import "github.com/opendlt/accumulate-go-sdk/canonjson"

// Signature is one Ed25519 signature over a transaction. Every field except
// Signature and TransactionHash is part of the signed metadata.
type Signature struct {
	Type            string `json:"type"`
	PublicKey       string `json:"publicKey"`
	Signer          string `json:"signer"`
	SignerVersion   uint64 `json:"signerVersion"`
	Timestamp       uint64 `json:"timestamp"`
	Memo            string `json:"memo,omitempty"`
	Signature       string `json:"signature"`
	TransactionHash string `json:"transactionHash"`
}

// SignedTransaction is a transaction together with its identity and the
// signatures collected over it.
//
// JSON note: Transaction is always written in canonical form.
type SignedTransaction struct {
	Transaction canonjson.Value `json:"transaction"`
	Strategy    string          `json:"strategy"`
	Hash        string          `json:"hash"`
	CID         string          `json:"cid"`
	Signatures  []Signature     `json:"signatures"`
}

type ComplianceMode string

const (
	CompliancePermissive ComplianceMode = "permissive"
	ComplianceStrict     ComplianceMode = "strict"
)

// VectorCheck is the outcome of one property checked against a golden vector.
type VectorCheck struct {
	Property string `json:"property"`
	Passed   bool   `json:"passed"`
	Skipped  bool   `json:"skipped,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// VectorResult aggregates the checks for one named vector.
type VectorResult struct {
	Name   string        `json:"name"`
	Passed bool          `json:"passed"`
	Checks []VectorCheck `json:"checks"`
	Error  *CodedError   `json:"error,omitempty"`
}

// VectorReport is the result of checking a whole fixture file.
type VectorReport struct {
	File       string         `json:"file"`
	Compliance ComplianceMode `json:"compliance"`
	Passed     int            `json:"passed"`
	Failed     int            `json:"failed"`
	Results    []VectorResult `json:"results"`
}
