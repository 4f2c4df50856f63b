package grpccas

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/hashing"
	"github.com/opendlt/accumulate-go-sdk/storage"
	"github.com/opendlt/accumulate-go-sdk/storage/localfs"
	"github.com/opendlt/accumulate-go-sdk/storage/testkit"
)

func startServer(t *testing.T, srvImpl *Server, opts ...grpc.ServerOption) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer(opts...)
	RegisterBlockStoreServer(srv, srvImpl)

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	client := NewClient(cc)
	client.Timeout = 2 * time.Second
	return client
}

func TestGRPCCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return startServer(t, &Server{CAS: storage.NewMemoryCAS()})
	})
}

func TestGRPCCAS_LocalFS_Archive(t *testing.T) {
	backend, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}
	client := startServer(t, &Server{CAS: backend, RequireTransactions: true})
	archive := storage.NewArchive(client)

	tx := testkit.SampleTransaction(7)
	id, txHash, err := archive.Put(tx)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if want, _ := hashing.HashTransaction(tx); txHash != want {
		t.Fatalf("hash mismatch")
	}
	if !archive.Has(txHash) {
		t.Fatalf("Has: expected true")
	}
	got, err := archive.GetByHash(txHash)
	if err != nil {
		t.Fatalf("GetByHash: %v", err)
	}
	if !canonjson.Equal(got, tx) {
		t.Fatalf("transaction mismatch")
	}
	if !backend.Has(id) {
		t.Fatalf("block did not reach the backend")
	}
}

func TestGRPCCAS_RejectsNonTransactionBlocks(t *testing.T) {
	client := startServer(t, &Server{CAS: storage.NewMemoryCAS(), RequireTransactions: true})

	cases := map[string][]byte{
		"not json":      []byte("hello grpccas"),
		"not canonical": []byte(`{"header":{}, "body":{}}`),
		"missing body":  []byte(`{"header":{}}`),
	}
	for name, block := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := client.Put(block); err == nil {
				t.Fatalf("expected rejection")
			}
		})
	}

	ok, err := canonjson.CanonicalBytes(testkit.SampleTransaction(1))
	if err != nil {
		t.Fatalf("CanonicalBytes: %v", err)
	}
	if _, err := client.Put(ok); err != nil {
		t.Fatalf("Put(transaction): %v", err)
	}
}

func TestGRPCCAS_ErrorMapping(t *testing.T) {
	client := startServer(t, &Server{CAS: storage.NewMemoryCAS()})

	missing, err := storage.BlockID([]byte("never stored"))
	if err != nil {
		t.Fatalf("BlockID: %v", err)
	}
	if _, err := client.Get(missing); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get(missing): expected ErrNotFound, got %v", err)
	}
	if client.Has(missing) {
		t.Fatalf("Has(missing): expected false")
	}
	if _, err := client.Get(cid.Undef); !errors.Is(err, storage.ErrInvalidCID) {
		t.Fatalf("Get(undef): expected ErrInvalidCID, got %v", err)
	}
}

func TestGRPCCAS_MissingBackend(t *testing.T) {
	client := startServer(t, &Server{})
	if _, err := client.Put([]byte("x")); err == nil {
		t.Fatalf("expected error without backend")
	}
}

func TestGRPCCAS_InterceptorSeesFullMethodNames(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
	)
	record := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		mu.Lock()
		methods = append(methods, info.FullMethod)
		mu.Unlock()
		return handler(ctx, req)
	}
	client := startServer(t, &Server{CAS: storage.NewMemoryCAS()}, grpc.UnaryInterceptor(record))

	id, err := client.Put([]byte("intercepted"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !client.Has(id) {
		t.Fatalf("Has: expected true")
	}
	if _, err := client.Get(id); err != nil {
		t.Fatalf("Get: %v", err)
	}

	want := []string{
		"/accumulate.sdk.storage.v1.BlockStore/Put",
		"/accumulate.sdk.storage.v1.BlockStore/Has",
		"/accumulate.sdk.storage.v1.BlockStore/Get",
	}
	mu.Lock()
	defer mu.Unlock()
	if len(methods) != len(want) {
		t.Fatalf("got methods %v want %v", methods, want)
	}
	for i := range want {
		if methods[i] != want[i] {
			t.Fatalf("method %d: got %s want %s", i, methods[i], want[i])
		}
	}
}

func TestClient_ContextVariants(t *testing.T) {
	client := startServer(t, &Server{CAS: storage.NewMemoryCAS()})

	id, err := client.PutContext(context.Background(), []byte("with context"))
	if err != nil {
		t.Fatalf("PutContext: %v", err)
	}
	ok, err := client.HasContext(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("HasContext: %v, %v", ok, err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.HasContext(cancelled, id); err == nil {
		t.Fatalf("HasContext: expected error on cancelled context")
	}
	if _, err := client.GetContext(cancelled, id); err == nil {
		t.Fatalf("GetContext: expected error on cancelled context")
	}
	if !client.Has(id) {
		t.Fatalf("Has: expected true with a fresh context")
	}
}

func TestDial_ConfiguresClient(t *testing.T) {
	c, err := Dial("127.0.0.1:0", DialOptions{CallTimeout: time.Second, MaxMsgBytes: 1 << 20})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()
	if c.Timeout != time.Second {
		t.Fatalf("Timeout: got %v", c.Timeout)
	}
}
