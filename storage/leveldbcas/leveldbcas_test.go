package leveldbcas

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/opendlt/accumulate-go-sdk/storage"
	"github.com/opendlt/accumulate-go-sdk/storage/testkit"
)

func open(t *testing.T, path string) *CAS {
	t.Helper()
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestLevelDBCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return open(t, filepath.Join(t.TempDir(), "blocks"))
	})
}

func TestLevelDBCAS_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks")

	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id, err := c.Put([]byte(`{"body":{},"header":{}}`))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := open(t, path)
	got, err := reopened.Get(id)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != `{"body":{},"header":{}}` {
		t.Fatalf("unexpected block %q", got)
	}
}

func TestLevelDBCAS_DetectsCorruption(t *testing.T) {
	c := open(t, filepath.Join(t.TempDir(), "blocks"))
	id, err := storage.BlockID([]byte("original"))
	if err != nil {
		t.Fatalf("BlockID: %v", err)
	}
	if err := c.db.Put(id.Bytes(), []byte("tampered"), nil); err != nil {
		t.Fatalf("raw put: %v", err)
	}
	if _, err := c.Get(id); !errors.Is(err, storage.ErrCIDMismatch) {
		t.Fatalf("expected ErrCIDMismatch, got %v", err)
	}
}
