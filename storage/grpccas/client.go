// Package grpccas serves and consumes a transaction block store over gRPC.
package grpccas

import (
	"context"
	"time"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/opendlt/accumulate-go-sdk/storage"
)

// Client implements storage.CAS against a remote BlockStore service. Every
// block it returns is checked against the requested CID.
type Client struct {
	cc     *grpc.ClientConn
	client BlockStoreClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var _ storage.CAS = (*Client)(nil)

type DialOptions struct {
	// CallTimeout becomes Client.Timeout.
	CallTimeout time.Duration

	// MaxMsgBytes caps both send and receive message sizes when non-zero.
	MaxMsgBytes int
}

// Dial creates a client for target. The connection is established lazily on
// the first RPC.
func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if n := opts.MaxMsgBytes; n > 0 {
		dialOpts = append(dialOpts, grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(n), grpc.MaxCallSendMsgSize(n)))
	}
	cc, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, err
	}
	c := NewClient(cc)
	c.Timeout = opts.CallTimeout
	return c, nil
}

// NewClient wraps an existing connection.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc, client: NewBlockStoreClient(cc)}
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) Put(block []byte) (cid.Cid, error) {
	ctx, cancel := c.callContext(context.Background())
	defer cancel()
	return c.PutContext(ctx, block)
}

func (c *Client) Get(id cid.Cid) ([]byte, error) {
	ctx, cancel := c.callContext(context.Background())
	defer cancel()
	return c.GetContext(ctx, id)
}

func (c *Client) Has(id cid.Cid) bool {
	ctx, cancel := c.callContext(context.Background())
	defer cancel()
	ok, err := c.HasContext(ctx, id)
	return err == nil && ok
}

// PutContext stores block and checks that the server assigned the CID the
// block hashes to.
func (c *Client) PutContext(ctx context.Context, block []byte) (cid.Cid, error) {
	expected, err := storage.BlockID(block)
	if err != nil {
		return cid.Undef, err
	}
	reply, err := c.client.Put(ctx, wrapperspb.Bytes(block))
	if err != nil {
		return cid.Undef, mapRPC(err)
	}
	switch id, err := cid.Decode(reply.GetValue()); {
	case err != nil || !id.Defined():
		return cid.Undef, storage.ErrInvalidCID
	case !id.Equals(expected):
		return cid.Undef, storage.ErrCIDMismatch
	default:
		return id, nil
	}
}

// GetContext fetches the block for id. A block that does not hash to id is
// reported as storage.ErrCIDMismatch.
func (c *Client) GetContext(ctx context.Context, id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	reply, err := c.client.Get(ctx, wrapperspb.String(id.String()))
	if err != nil {
		return nil, mapRPC(err)
	}
	if err := storage.VerifyBlock(id, reply.GetValue()); err != nil {
		return nil, err
	}
	return reply.GetValue(), nil
}

// HasContext is Has with transport errors reported instead of read as false.
func (c *Client) HasContext(ctx context.Context, id cid.Cid) (bool, error) {
	if !id.Defined() {
		return false, nil
	}
	reply, err := c.client.Has(ctx, wrapperspb.String(id.String()))
	if err != nil {
		return false, mapRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(parent, c.Timeout)
	}
	return context.WithCancel(parent)
}
