package hashing

import (
	"fmt"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
)

// Strategy selects how a whole transaction is reduced to one digest.
type Strategy int

const (
	// Flat hashes the transaction as one canonical document. It is the zero
	// value and the default.
	Flat Strategy = iota
	// Layered hashes header and body separately and hashes the concatenation.
	Layered
)

func (s Strategy) String() string {
	switch s {
	case Flat:
		return "flat"
	case Layered:
		return "layered"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "flat" or "layered" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "flat":
		return Flat, nil
	case "layered":
		return Layered, nil
	default:
		return Flat, fmt.Errorf("unknown hash strategy %q", s)
	}
}

// Options configures a TransactionHasher.
//
// Default behavior is Flat when Options{} is used.
type Options struct {
	Strategy Strategy
}

func (o Options) withDefaults() Options {
	if o.Strategy != Layered {
		o.Strategy = Flat
	}
	return o
}

// TransactionHasher binds a hashing strategy so a deployment can pick which
// transaction identity it treats as authoritative without changing call sites.
// Both strategies stay available as package functions.
type TransactionHasher struct {
	opts Options
}

// NewTransactionHasher returns a hasher using opts.
func NewTransactionHasher(opts Options) *TransactionHasher {
	return &TransactionHasher{opts: opts.withDefaults()}
}

// Strategy reports the configured strategy.
func (h *TransactionHasher) Strategy() Strategy { return h.opts.Strategy }

// Hash returns the transaction digest under the configured strategy.
func (h *TransactionHasher) Hash(tx canonjson.Value) (Digest, error) {
	if h.opts.Strategy == Layered {
		return HashTransactionLayered(tx)
	}
	return HashTransaction(tx)
}

// SigningHash returns SHA256(HashSignatureMetadata(meta) || h.Hash(tx)).
func (h *TransactionHasher) SigningHash(meta, tx canonjson.Value) (Digest, error) {
	metaHash, err := HashSignatureMetadata(meta)
	if err != nil {
		return Digest{}, err
	}
	txHash, err := h.Hash(tx)
	if err != nil {
		return Digest{}, err
	}
	return combine(metaHash, txHash), nil
}
