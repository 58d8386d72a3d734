// internal/application/usecase/asset_resolve_usecase.go
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	assetdom "framecraft/internal/domain/asset"
)

var (
	ErrResolveInvalidArgument = errors.New("asset_resolve: invalid argument")
)

// tierProbe is one storage tier in resolution order. Collapsing the
// tiers into an ordered probe list keeps the control flow fixed while
// tiers get added or retired (they accumulated through migrations, and
// more than one deployment still writes the older ones).
type tierProbe struct {
	name  string
	fetch func(ctx context.Context, itemID string) (*assetdom.Record, error)
}

// AssetResolveUsecase locates the best available record for an item by
// probing tiers in fixed priority order:
//
//	durable store > session full > session compressed > memory
//
// Each probe is taken only if the previous yielded nothing. A tier
// error (store down, corrupt payload) is logged and treated as a miss;
// resolution itself never fails on tier trouble.
type AssetResolveUsecase struct {
	probes []tierProbe
}

// NewAssetResolveUsecase wires the tier list. Any nil store is simply
// not probed (deployments without e.g. the durable store degrade to the
// remaining tiers). keyPrefix "" falls back to the default session
// key prefix.
func NewAssetResolveUsecase(
	durable assetdom.Repository,
	session assetdom.SessionStore,
	memory assetdom.MemoryStore,
	keyPrefix string,
) *AssetResolveUsecase {
	uc := &AssetResolveUsecase{}

	if durable != nil {
		uc.probes = append(uc.probes, tierProbe{
			name:  "durable",
			fetch: durable.Get,
		})
	}
	if session != nil {
		uc.probes = append(uc.probes, tierProbe{
			name: "session_full",
			fetch: func(ctx context.Context, itemID string) (*assetdom.Record, error) {
				return fetchSessionRecord(ctx, session, assetdom.SessionFullKey(keyPrefix, itemID))
			},
		})
		uc.probes = append(uc.probes, tierProbe{
			name: "session_compressed",
			fetch: func(ctx context.Context, itemID string) (*assetdom.Record, error) {
				return fetchSessionRecord(ctx, session, assetdom.SessionCompressedKey(keyPrefix, itemID))
			},
		})
	}
	if memory != nil {
		uc.probes = append(uc.probes, tierProbe{
			name:  "memory",
			fetch: memory.Get,
		})
	}

	return uc
}

// Resolve returns the first non-empty record found, or (nil, nil) when
// every tier misses (caller falls back to the item's inline fields).
func (uc *AssetResolveUsecase) Resolve(ctx context.Context, itemID string) (*assetdom.Record, error) {
	if uc == nil {
		return nil, ErrResolveInvalidArgument
	}
	id := strings.TrimSpace(itemID)
	if id == "" {
		return nil, ErrResolveInvalidArgument
	}

	for _, p := range uc.probes {
		rec, err := p.fetch(ctx, id)
		if err != nil {
			// tier-miss semantics: log and fall through
			log.Printf("[resolve] tier=%s itemId=%s error (treated as miss): %v", p.name, id, err)
			continue
		}
		if rec == nil || rec.IsEmpty() {
			continue
		}
		return rec, nil
	}

	return nil, nil
}

func fetchSessionRecord(ctx context.Context, store assetdom.SessionStore, key string) (*assetdom.Record, error) {
	payload, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, nil
	}

	var rec assetdom.Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, err
	}
	rec = rec.Normalize()
	if rec.IsEmpty() {
		return nil, nil
	}
	return &rec, nil
}
