// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	cartdom "framecraft/internal/domain/cart"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartNotFound        = errors.New("cart_usecase: not found")
)

// CartUsecase coordinates session cart operations.
type CartUsecase struct {
	repo  cartdom.Repository
	clock Clock
}

func NewCartUsecase(repo cartdom.Repository) *CartUsecase {
	return &CartUsecase{
		repo:  repo,
		clock: systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, clock: clock}
}

// GetOrCreate returns an existing cart; if absent, creates an empty one
// and persists it.
func (uc *CartUsecase) GetOrCreate(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetBySessionID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	now := uc.clock.Now()
	newCart, err := cartdom.NewCart(sid, nil, now)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, newCart); err != nil {
		return nil, err
	}
	return newCart, nil
}

// AddItem adds a line item (or bumps quantity for an existing id).
func (uc *CartUsecase) AddItem(ctx context.Context, sessionID string, it cartdom.Item) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" || strings.TrimSpace(it.ID) == "" || it.Quantity <= 0 {
		return nil, ErrCartInvalidArgument
	}

	now := uc.clock.Now()

	c, err := uc.repo.GetBySessionID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c, err = cartdom.NewCart(sid, nil, now)
		if err != nil {
			return nil, err
		}
	}

	if err := c.Add(it, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetItemQty sets quantity for an item id; qty <= 0 removes it.
func (uc *CartUsecase) SetItemQty(ctx context.Context, sessionID, itemID string, qty int) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	id := strings.TrimSpace(itemID)
	if sid == "" || id == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetBySessionID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	if err := c.SetQty(id, qty, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem removes an item id from the cart.
func (uc *CartUsecase) RemoveItem(ctx context.Context, sessionID, itemID string) (*cartdom.Cart, error) {
	return uc.SetItemQty(ctx, sessionID, itemID, 0)
}

// Clear deletes the cart document.
func (uc *CartUsecase) Clear(ctx context.Context, sessionID string) error {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return ErrCartInvalidArgument
	}
	return uc.repo.DeleteBySessionID(ctx, sid)
}
