// internal/adapters/out/db/assetrecord_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	assetdom "framecraft/internal/domain/asset"
)

// AssetRecordRepositoryPG is the durable structured store (highest
// priority tier), backed by Postgres. One record row per item id,
// schema created on first open; reads run inside a scoped read-only
// transaction so a handle is never held across calls.
type AssetRecordRepositoryPG struct {
	DB *sql.DB
}

func NewAssetRecordRepositoryPG(db *sql.DB) *AssetRecordRepositoryPG {
	return &AssetRecordRepositoryPG{DB: db}
}

// EnsureSchema creates the record table if it does not exist yet.
// Called once at wiring time (first open).
func (r *AssetRecordRepositoryPG) EnsureSchema(ctx context.Context) error {
	if r == nil || r.DB == nil {
		return errors.New("assetrecord_repository_pg: db is nil")
	}
	const q = `
CREATE TABLE IF NOT EXISTS asset_records (
  item_id    TEXT PRIMARY KEY,
  record     JSONB NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)
`
	if _, err := r.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("assetrecord_repository_pg: ensure schema: %w", err)
	}
	return nil
}

// Get returns (nil, nil) when no record exists (nil policy).
func (r *AssetRecordRepositoryPG) Get(ctx context.Context, itemID string) (*assetdom.Record, error) {
	if r == nil || r.DB == nil {
		return nil, errors.New("assetrecord_repository_pg: db is nil")
	}
	id := strings.TrimSpace(itemID)
	if id == "" {
		return nil, errors.New("assetrecord_repository_pg: itemID is empty")
	}

	// Scoped transaction per call; rollback on every path except the
	// explicit commit, so no handle leaks across calls.
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("assetrecord_repository_pg: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `SELECT record FROM asset_records WHERE item_id = $1`

	var raw []byte
	if err := tx.QueryRowContext(ctx, q, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	var rec assetdom.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("assetrecord_repository_pg: decode record: %w", err)
	}
	rec = rec.Normalize()
	if rec.IsEmpty() {
		return nil, nil
	}
	return &rec, nil
}

// Put upserts the record for the item id.
func (r *AssetRecordRepositoryPG) Put(ctx context.Context, itemID string, rec assetdom.Record) error {
	if r == nil || r.DB == nil {
		return errors.New("assetrecord_repository_pg: db is nil")
	}
	id := strings.TrimSpace(itemID)
	if id == "" {
		return errors.New("assetrecord_repository_pg: itemID is empty")
	}

	raw, err := json.Marshal(rec.Normalize())
	if err != nil {
		return fmt.Errorf("assetrecord_repository_pg: encode record: %w", err)
	}

	const q = `
INSERT INTO asset_records (item_id, record, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (item_id) DO UPDATE SET
  record     = EXCLUDED.record,
  updated_at = EXCLUDED.updated_at
`
	_, err = r.DB.ExecContext(ctx, q, id, raw, time.Now().UTC())
	return err
}

// Delete removes the record row; a missing row is not an error.
func (r *AssetRecordRepositoryPG) Delete(ctx context.Context, itemID string) error {
	if r == nil || r.DB == nil {
		return errors.New("assetrecord_repository_pg: db is nil")
	}
	id := strings.TrimSpace(itemID)
	if id == "" {
		return errors.New("assetrecord_repository_pg: itemID is empty")
	}

	_, err := r.DB.ExecContext(ctx, `DELETE FROM asset_records WHERE item_id = $1`, id)
	return err
}
