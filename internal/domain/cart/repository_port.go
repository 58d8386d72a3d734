// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository persists session carts.
// GetBySessionID returns (nil, nil) when the cart does not exist.
type Repository interface {
	GetBySessionID(ctx context.Context, sessionID string) (*Cart, error)
	Upsert(ctx context.Context, c *Cart) error
	DeleteBySessionID(ctx context.Context, sessionID string) error
}
