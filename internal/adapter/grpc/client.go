package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls the entry form service over a client connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a new Client instance
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with req encoded as a Struct
func (c *Client) Call(ctx context.Context, method string, req map[string]interface{}, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// OpenForm opens a new session. Leave transactionID empty in create mode.
func (c *Client) OpenForm(ctx context.Context, mode string, transactionID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req := map[string]interface{}{"mode": mode}
	if transactionID != "" {
		req["transaction_id"] = transactionID
	}
	return c.Call(ctx, "OpenForm", req, opts...)
}

// UpdateField sets one draft field in a session
func (c *Client) UpdateField(ctx context.Context, sessionID, field, value string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.Call(ctx, "UpdateField", map[string]interface{}{
		"session_id": sessionID,
		"field":      field,
		"value":      value,
	}, opts...)
}

// Submit commits a session's draft
func (c *Client) Submit(ctx context.Context, sessionID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.Call(ctx, "Submit", map[string]interface{}{"session_id": sessionID}, opts...)
}

// GetForm returns a session's current state
func (c *Client) GetForm(ctx context.Context, sessionID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.Call(ctx, "GetForm", map[string]interface{}{"session_id": sessionID}, opts...)
}
