// Package testkit holds conformance tests shared by every CAS backend.
package testkit

import (
	"bytes"
	"testing"

	"github.com/ipfs/go-cid"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/hashing"
	"github.com/opendlt/accumulate-go-sdk/storage"
)

// NewCAS constructs a fresh, empty CAS instance for a test.
// The returned CAS MUST be isolated from other tests.
type NewCAS func(t *testing.T) storage.CAS

// SampleTransaction returns a small transaction document whose content
// depends on n.
func SampleTransaction(n int) canonjson.Value {
	return canonjson.MustFromGo(map[string]any{
		"header": map[string]any{"principal": "acc://alice.acme/tokens", "timestamp": 1700000000000 + n},
		"body":   map[string]any{"type": "burn-tokens", "amount": "1"},
	})
}

func RunCASConformance(t *testing.T, newCAS NewCAS) {
	t.Helper()

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		cas := newCAS(t)
		want, err := canonjson.CanonicalBytes(SampleTransaction(1))
		if err != nil {
			t.Fatalf("CanonicalBytes failed: %v", err)
		}

		id, err := cas.Put(want)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		wantID, err := storage.BlockID(want)
		if err != nil {
			t.Fatalf("BlockID failed: %v", err)
		}
		if !id.Equals(wantID) {
			t.Fatalf("Put CID mismatch: got %s want %s", id, wantID)
		}

		got, err := cas.Get(id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get bytes mismatch")
		}
		if err := storage.VerifyBlock(id, got); err != nil {
			t.Fatalf("Get returned bytes not matching requested CID: %v", err)
		}
	})

	t.Run("CIDCarriesTransactionHash", func(t *testing.T) {
		cas := newCAS(t)
		tx := SampleTransaction(2)
		block, err := canonjson.CanonicalBytes(tx)
		if err != nil {
			t.Fatalf("CanonicalBytes failed: %v", err)
		}
		id, err := cas.Put(block)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		d, err := hashing.DigestFromCID(id.String())
		if err != nil {
			t.Fatalf("DigestFromCID failed: %v", err)
		}
		want, err := hashing.HashTransaction(tx)
		if err != nil {
			t.Fatalf("HashTransaction failed: %v", err)
		}
		if d != want {
			t.Fatalf("CID digest %s is not the transaction hash %s", hashing.Hex(d), hashing.Hex(want))
		}
	})

	t.Run("PutIdempotent", func(t *testing.T) {
		cas := newCAS(t)
		b := []byte(`{"body":{},"header":{}}`)

		id1, err := cas.Put(b)
		if err != nil {
			t.Fatalf("Put(1) failed: %v", err)
		}
		id2, err := cas.Put(b)
		if err != nil {
			t.Fatalf("Put(2) failed: %v", err)
		}
		if !id1.Equals(id2) {
			t.Fatalf("Put not idempotent: %s vs %s", id1, id2)
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		cas := newCAS(t)
		b := []byte(`{"body":{"type":"missing"},"header":{}}`)
		id, err := storage.BlockID(b)
		if err != nil {
			t.Fatalf("BlockID failed: %v", err)
		}

		if cas.Has(id) {
			t.Fatalf("Has returned true for missing CID")
		}
		if _, err := cas.Get(id); !storage.IsNotFound(err) {
			t.Fatalf("Get missing: got err=%v want ErrNotFound", err)
		}

		if _, err := cas.Put(b); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if !cas.Has(id) {
			t.Fatalf("Has returned false after Put")
		}
	})

	t.Run("RejectUndefCID", func(t *testing.T) {
		cas := newCAS(t)
		var undef cid.Cid
		if cas.Has(undef) {
			t.Fatalf("Has should be false for undefined CID")
		}
		if _, err := cas.Get(undef); err == nil {
			t.Fatalf("Get should fail for undefined CID")
		}
	})
}
