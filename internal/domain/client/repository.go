package client

import (
	"context"

	"github.com/jurisflow/jurisflow/internal/types"
)

type Repository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id string) error
	ListByFilter(ctx context.Context, filter *types.ClientFilter) ([]*Client, error)
	Count(ctx context.Context, filter *types.ClientFilter) (int64, error)
}
