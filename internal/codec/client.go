package codec

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/fuzzify"
)

// #region client-struct
// Client wraps the gRPC connection to a Diagnoser service.
type Client struct {
	conn   *grpc.ClientConn
	client DiagnoserClient
}

// #endregion client-struct

// #region constructor
// NewClient connects to the Diagnoser gRPC server at addr. Extra dial
// options are appended after insecure transport credentials.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		client: NewDiagnoserClient(conn),
	}, nil
}

// NewClientWithService creates a Client with an injected service implementation.
// Used for testing without a real gRPC connection.
func NewClientWithService(svc DiagnoserClient) *Client {
	return &Client{client: svc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region diagnose
// Diagnose sends m to the service and decodes the scores.
func (c *Client) Diagnose(ctx context.Context, m fuzzify.Measurement) (Result, error) {
	resp, err := c.client.Diagnose(ctx, EncodeMeasurement(m))
	if err != nil {
		return Result{}, fmt.Errorf("diagnose rpc: %w", err)
	}
	r, err := decodeResult(resp)
	if err != nil {
		return Result{}, fmt.Errorf("diagnose response: %w", err)
	}
	return r, nil
}

// #endregion diagnose
