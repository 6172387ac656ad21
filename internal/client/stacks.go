package client

import (
	"context"

	"github.com/hostbridge-io/hbapi/pkg/hbapi"
)

// StacksClient implements hbapi.StacksClient.
//
// The stacks endpoint exists remotely, but the client has never materialized
// stack objects; sites reference stacks by id only. List is an explicit stub
// until the stack entity is designed.
type StacksClient struct {
	session *Client
}

// List always fails with ErrorKindUnimplemented.
func (c *StacksClient) List(ctx context.Context) ([]hbapi.StackRecord, error) {
	if _, err := c.session.session(); err != nil {
		return nil, err
	}

	return nil, hbapi.NewError(hbapi.ErrorKindUnimplemented, "stack materialization is not supported")
}
