// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"

	assetdom "framecraft/internal/domain/asset"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
	ErrInvalidItem = errors.New("cart: invalid item")
)

// DefaultCartTTL is the inactivity window after which the cart becomes
// eligible for auto deletion (Firestore TTL is configured on expiresAt).
const DefaultCartTTL = 7 * 24 * time.Hour

// Item represents one frame order line.
//
// The five inline image fields mirror the variant names used by the
// asset tiers. None of them is guaranteed to be populated; they are the
// last-resort fallback when no tier holds a record for the item.
// FrameSize/FrameColor/Quantity/Price are display attributes owned by
// the cart; this package carries them opaquely.
type Item struct {
	ID         string `json:"id" firestore:"id"`
	FrameSize  string `json:"frameSize" firestore:"frameSize"`
	FrameColor string `json:"frameColor" firestore:"frameColor"`
	Quantity   int    `json:"quantity" firestore:"quantity"`
	Price      int64  `json:"price" firestore:"price"`

	HighQualityPrintImage string `json:"highQualityPrintImage,omitempty" firestore:"highQualityPrintImage,omitempty"`
	AdminCroppedImage     string `json:"adminCroppedImage,omitempty" firestore:"adminCroppedImage,omitempty"`
	PrintImage            string `json:"printImage,omitempty" firestore:"printImage,omitempty"`
	OriginalImage         string `json:"originalImage,omitempty" firestore:"originalImage,omitempty"`
	DisplayImage          string `json:"displayImage,omitempty" firestore:"displayImage,omitempty"`
}

// InlineRecord views the item's inline image fields as an asset record,
// so variant selection applies identically to tiers and inline fields.
func (it Item) InlineRecord() assetdom.Record {
	return assetdom.Record{
		HighQualityPrintImage: it.HighQualityPrintImage,
		AdminCroppedImage:     it.AdminCroppedImage,
		PrintImage:            it.PrintImage,
		OriginalImage:         it.OriginalImage,
		DisplayImage:          it.DisplayImage,
	}
}

// Cart represents a session cart document.
//   - docId = sessionId (Firestore)
//   - Items: ordered line items (input order is preserved; the upload
//     batch is keyed by position)
//   - ExpiresAt: refreshed on each mutation, used for Firestore TTL
type Cart struct {
	ID    string `json:"id" firestore:"id"`
	Items []Item `json:"items" firestore:"items"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt" firestore:"expiresAt"`
}

// NewCart creates a new cart doc. id is the Firestore docId (sessionId).
// items can be nil (treated as empty).
func NewCart(id string, items []Item, now time.Time) (*Cart, error) {
	docID := strings.TrimSpace(id)

	c := &Cart{
		ID:        docID,
		Items:     cloneItems(items),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add appends a line item. If an item with the same id already exists
// its quantity is increased instead (same frame line, more copies).
func (c *Cart) Add(it Item, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	it.ID = strings.TrimSpace(it.ID)
	if it.ID == "" || it.Quantity <= 0 {
		return ErrInvalidItem
	}

	idx := findItemIndex(c.Items, it.ID)
	if idx >= 0 {
		c.Items[idx].Quantity += it.Quantity
	} else {
		c.Items = append(c.Items, it)
	}

	c.touch(now)
	return c.validate()
}

// SetQty sets quantity for an item id. qty <= 0 removes the item.
func (c *Cart) SetQty(itemID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	id := strings.TrimSpace(itemID)
	if id == "" {
		return ErrInvalidItem
	}

	idx := findItemIndex(c.Items, id)

	if qty <= 0 {
		if idx >= 0 {
			c.Items = removeIndex(c.Items, idx)
		}
		c.touch(now)
		return c.validate()
	}

	if idx < 0 {
		return ErrInvalidItem
	}
	c.Items[idx].Quantity = qty

	c.touch(now)
	return c.validate()
}

// Remove removes an item id from the cart.
func (c *Cart) Remove(itemID string, now time.Time) error {
	return c.SetQty(itemID, 0, now)
}

// ConsumeAll clears items for order creation and returns a snapshot.
// Call this in the same request that creates the order so the cart is
// emptied exactly once.
func (c *Cart) ConsumeAll(now time.Time) ([]Item, error) {
	if c == nil {
		return nil, ErrInvalidCart
	}

	snap := cloneItems(c.Items)
	c.Items = []Item{}

	c.touch(now)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(DefaultCartTTL)
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.ExpiresAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}
	if c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}

	for _, it := range c.Items {
		if strings.TrimSpace(it.ID) == "" || it.Quantity <= 0 {
			return ErrInvalidItem
		}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func findItemIndex(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func removeIndex(items []Item, idx int) []Item {
	if idx < 0 || idx >= len(items) {
		return items
	}
	// preserve order
	return append(items[:idx], items[idx+1:]...)
}

func cloneItems(src []Item) []Item {
	if len(src) == 0 {
		return []Item{}
	}
	cp := make([]Item, len(src))
	copy(cp, src)
	return cp
}
