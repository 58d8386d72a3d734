// internal/adapters/out/firestore/session_asset_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SessionAssetRepositoryFS implements asset.SessionStore using Firestore.
//
// Collection design:
// - collection: session_assets (configurable)
// - docId: the session key ("cartimg_full_{id}" / "cartimg_{id}")
// - fields: payload (JSON string), updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on "expiresAt". TTL deletion lags, so Get
//   also treats an expired doc as a miss.
type SessionAssetRepositoryFS struct {
	Client     *firestore.Client
	Collection string
	TTL        time.Duration
}

// DefaultSessionAssetTTL matches the session-scoped nature of the
// store: entries vanish with the checkout session, not with the item.
const DefaultSessionAssetTTL = 24 * time.Hour

func NewSessionAssetRepositoryFS(client *firestore.Client, collection string, ttl time.Duration) *SessionAssetRepositoryFS {
	c := strings.TrimSpace(collection)
	if c == "" {
		c = "session_assets"
	}
	if ttl <= 0 {
		ttl = DefaultSessionAssetTTL
	}
	return &SessionAssetRepositoryFS{Client: client, Collection: c, TTL: ttl}
}

func (r *SessionAssetRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(r.Collection)
}

type sessionAssetDoc struct {
	Payload   string    `firestore:"payload"`
	UpdatedAt time.Time `firestore:"updatedAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

// Get returns "" on a miss (absent, expired or empty payload).
func (r *SessionAssetRepositoryFS) Get(ctx context.Context, key string) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("session_asset_repository_fs: firestore client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return "", errors.New("session_asset_repository_fs: key is empty")
	}

	snap, err := r.col().Doc(k).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", nil
		}
		return "", err
	}

	var doc sessionAssetDoc
	if err := snap.DataTo(&doc); err != nil {
		return "", err
	}

	// TTL deletion is asynchronous; enforce expiry on read.
	if !doc.ExpiresAt.IsZero() && doc.ExpiresAt.Before(time.Now().UTC()) {
		return "", nil
	}
	return doc.Payload, nil
}

// Put overwrites the full doc and refreshes the TTL window.
func (r *SessionAssetRepositoryFS) Put(ctx context.Context, key, payload string) error {
	if r == nil || r.Client == nil {
		return errors.New("session_asset_repository_fs: firestore client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("session_asset_repository_fs: key is empty")
	}

	now := time.Now().UTC()
	doc := sessionAssetDoc{
		Payload:   payload,
		UpdatedAt: now,
		ExpiresAt: now.Add(r.TTL),
	}

	_, err := r.col().Doc(k).Set(ctx, doc)
	return err
}

// Delete removes the doc; a missing doc is not an error.
func (r *SessionAssetRepositoryFS) Delete(ctx context.Context, key string) error {
	if r == nil || r.Client == nil {
		return errors.New("session_asset_repository_fs: firestore client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("session_asset_repository_fs: key is empty")
	}

	_, err := r.col().Doc(k).Delete(ctx)
	return err
}
