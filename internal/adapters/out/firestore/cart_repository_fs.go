// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "framecraft/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: carts (configurable)
// - docId: sessionId (docId is the source of truth)
// - fields: items (array), createdAt, updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on "expiresAt".
type CartRepositoryFS struct {
	Client     *firestore.Client
	Collection string
}

func NewCartRepositoryFS(client *firestore.Client, collection string) *CartRepositoryFS {
	c := strings.TrimSpace(collection)
	if c == "" {
		c = "carts"
	}
	return &CartRepositoryFS{Client: client, Collection: c}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(r.Collection)
}

// GetBySessionID returns (nil, nil) if not found (nil policy).
func (r *CartRepositoryFS) GetBySessionID(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, errors.New("cart_repository_fs: sessionID is empty")
	}

	snap, err := r.col().Doc(sid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc cartDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	c := doc.toDomain()
	// docId is the source of truth even if the doc body lacks an id.
	c.ID = sid
	return c, nil
}

// Upsert saves cart by docId=cart.ID (= sessionId).
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}

	sid := strings.TrimSpace(c.ID)
	if sid == "" {
		return errors.New("cart_repository_fs: Upsert requires cart.ID (= sessionId) as docId")
	}

	// Overwrite full doc (simple & predictable).
	_, err := r.col().Doc(sid).Set(ctx, cartDocFromDomain(c))
	return err
}

// DeleteBySessionID removes the cart doc; a missing doc is fine.
func (r *CartRepositoryFS) DeleteBySessionID(ctx context.Context, sessionID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return errors.New("cart_repository_fs: sessionID is empty")
	}

	_, err := r.col().Doc(sid).Delete(ctx)
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

// cartDoc keeps the wire shape separate from the domain struct so a
// schema change never turns existing carts into decode failures.
type cartDoc struct {
	Items     []cartItemDoc `firestore:"items"`
	CreatedAt time.Time     `firestore:"createdAt"`
	UpdatedAt time.Time     `firestore:"updatedAt"`
	ExpiresAt time.Time     `firestore:"expiresAt"`
}

type cartItemDoc struct {
	ID         string `firestore:"id"`
	FrameSize  string `firestore:"frameSize"`
	FrameColor string `firestore:"frameColor"`
	Quantity   int    `firestore:"quantity"`
	Price      int64  `firestore:"price"`

	HighQualityPrintImage string `firestore:"highQualityPrintImage,omitempty"`
	AdminCroppedImage     string `firestore:"adminCroppedImage,omitempty"`
	PrintImage            string `firestore:"printImage,omitempty"`
	OriginalImage         string `firestore:"originalImage,omitempty"`
	DisplayImage          string `firestore:"displayImage,omitempty"`
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	items := make([]cartItemDoc, 0, len(c.Items))
	for _, it := range c.Items {
		id := strings.TrimSpace(it.ID)
		if id == "" || it.Quantity <= 0 {
			continue
		}
		items = append(items, cartItemDoc{
			ID:         id,
			FrameSize:  strings.TrimSpace(it.FrameSize),
			FrameColor: strings.TrimSpace(it.FrameColor),
			Quantity:   it.Quantity,
			Price:      it.Price,

			HighQualityPrintImage: it.HighQualityPrintImage,
			AdminCroppedImage:     it.AdminCroppedImage,
			PrintImage:            it.PrintImage,
			OriginalImage:         it.OriginalImage,
			DisplayImage:          it.DisplayImage,
		})
	}

	return cartDoc{
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

func (d cartDoc) toDomain() *cartdom.Cart {
	items := make([]cartdom.Item, 0, len(d.Items))
	for _, it := range d.Items {
		id := strings.TrimSpace(it.ID)
		if id == "" || it.Quantity <= 0 {
			continue
		}
		items = append(items, cartdom.Item{
			ID:         id,
			FrameSize:  it.FrameSize,
			FrameColor: it.FrameColor,
			Quantity:   it.Quantity,
			Price:      it.Price,

			HighQualityPrintImage: it.HighQualityPrintImage,
			AdminCroppedImage:     it.AdminCroppedImage,
			PrintImage:            it.PrintImage,
			OriginalImage:         it.OriginalImage,
			DisplayImage:          it.DisplayImage,
		})
	}

	return &cartdom.Cart{
		// ID is filled by the caller (docId).
		Items:     items,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		ExpiresAt: d.ExpiresAt,
	}
}
