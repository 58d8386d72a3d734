// internal/application/usecase/asset_save_usecase.go
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
	ErrAssetInvalidArgument = errors.New("asset_save: invalid argument")
	ErrAssetSaveFailed      = errors.New("asset_save: all tiers failed")
)

// DefaultCompressedCapBytes caps the compressed session entry. The
// compressed tier exists because the original session store had a hard
// size ceiling; entries above the cap are simply not written there.
const DefaultCompressedCapBytes = 2 << 20

// AssetSaveUsecase writes a record through the storage tiers the way
// the migrations left them: durable store, session full entry,
// size-capped session compressed entry, and the in-memory map.
//
// Writes are best-effort per tier (a down tier is logged and skipped);
// the save fails only if every tier rejected the record.
type AssetSaveUsecase struct {
	durable   assetdom.Repository
	session   assetdom.SessionStore
	memory    assetdom.MemoryStore
	keyPrefix string
	capBytes  int
}

func NewAssetSaveUsecase(
	durable assetdom.Repository,
	session assetdom.SessionStore,
	memory assetdom.MemoryStore,
	keyPrefix string,
	capBytes int,
) *AssetSaveUsecase {
	if capBytes <= 0 {
		capBytes = DefaultCompressedCapBytes
	}
	return &AssetSaveUsecase{
		durable:   durable,
		session:   session,
		memory:    memory,
		keyPrefix: keyPrefix,
		capBytes:  capBytes,
	}
}

// Save stores the record in every available tier.
func (uc *AssetSaveUsecase) Save(ctx context.Context, itemID string, rec assetdom.Record) error {
	if uc == nil {
		return ErrAssetInvalidArgument
	}
	id := strings.TrimSpace(itemID)
	rec = rec.Normalize()
	if id == "" || rec.IsEmpty() {
		return ErrAssetInvalidArgument
	}

	attempted := 0
	succeeded := 0

	if uc.durable != nil {
		attempted++
		if err := uc.durable.Put(ctx, id, rec); err != nil {
			log.Printf("[asset_save] durable put failed itemId=%s: %v", id, err)
		} else {
			succeeded++
		}
	}

	if uc.session != nil {
		payload, err := json.Marshal(rec)
		if err != nil {
			return ErrAssetInvalidArgument
		}

		attempted++
		if err := uc.session.Put(ctx, assetdom.SessionFullKey(uc.keyPrefix, id), string(payload)); err != nil {
			log.Printf("[asset_save] session full put failed itemId=%s: %v", id, err)
		} else {
			succeeded++
		}

		// Compressed entry: lower-fidelity copy, only under the cap.
		compressed := rec.CompressedCopy()
		if !compressed.IsEmpty() {
			cPayload, err := json.Marshal(compressed)
			if err == nil && len(cPayload) <= uc.capBytes {
				attempted++
				if err := uc.session.Put(ctx, assetdom.SessionCompressedKey(uc.keyPrefix, id), string(cPayload)); err != nil {
					log.Printf("[asset_save] session compressed put failed itemId=%s: %v", id, err)
				} else {
					succeeded++
				}
			} else if err == nil {
				log.Printf("[asset_save] compressed entry over cap itemId=%s size=%d cap=%d (skipped)", id, len(cPayload), uc.capBytes)
			}
		}
	}

	if uc.memory != nil {
		attempted++
		if err := uc.memory.Put(ctx, id, rec); err != nil {
			log.Printf("[asset_save] memory put failed itemId=%s: %v", id, err)
		} else {
			succeeded++
		}
	}

	if attempted > 0 && succeeded == 0 {
		return ErrAssetSaveFailed
	}
	return nil
}

// Delete clears the record from every tier (best-effort).
func (uc *AssetSaveUsecase) Delete(ctx context.Context, itemID string) error {
	if uc == nil {
		return ErrAssetInvalidArgument
	}
	id := strings.TrimSpace(itemID)
	if id == "" {
		return ErrAssetInvalidArgument
	}

	if uc.durable != nil {
		if err := uc.durable.Delete(ctx, id); err != nil {
			log.Printf("[asset_save] durable delete failed itemId=%s: %v", id, err)
		}
	}
	if uc.session != nil {
		if err := uc.session.Delete(ctx, assetdom.SessionFullKey(uc.keyPrefix, id)); err != nil {
			log.Printf("[asset_save] session full delete failed itemId=%s: %v", id, err)
		}
		if err := uc.session.Delete(ctx, assetdom.SessionCompressedKey(uc.keyPrefix, id)); err != nil {
			log.Printf("[asset_save] session compressed delete failed itemId=%s: %v", id, err)
		}
	}
	if uc.memory != nil {
		if err := uc.memory.Delete(ctx, id); err != nil {
			log.Printf("[asset_save] memory delete failed itemId=%s: %v", id, err)
		}
	}
	return nil
}
