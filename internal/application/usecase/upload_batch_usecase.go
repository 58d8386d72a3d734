// internal/application/usecase/upload_batch_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	assetdom "framecraft/internal/domain/asset"
	cartdom "framecraft/internal/domain/cart"
	orderdom "framecraft/internal/domain/order"
)

var (
	ErrBatchInvalidArgument = errors.New("upload_batch: invalid argument")
	ErrBatchNotConfigured   = errors.New("upload_batch: not configured")
)

// NoImageDataMessage is the per-item error recorded when neither the
// tiers nor the inline fields yield a usable image.
const NoImageDataMessage = "No image data found"

// AssetResolver is the tiered reader consulted per item.
type AssetResolver interface {
	Resolve(ctx context.Context, itemID string) (*assetdom.Record, error)
}

// UploadBatchUsecase runs the per-item resolve → select → upload chain
// over a whole cart.
//
// Items are processed strictly one at a time: image payloads are large
// (multi-MB data URIs) and the asset host rate-limits, so the upload
// for item i+1 is never issued before item i's result is recorded.
// Per-item failures are reified into the result slice and never abort
// the batch; the returned error is reserved for structural problems.
//
// Known risk: a caller that stops consuming mid-batch leaves the
// in-flight upload to finish uncoordinated. No cancellation beyond
// ctx is threaded through.
type UploadBatchUsecase struct {
	resolver AssetResolver
	uploader AssetUploader
	clock    Clock
}

func NewUploadBatchUsecase(resolver AssetResolver, uploader AssetUploader) *UploadBatchUsecase {
	return &UploadBatchUsecase{
		resolver: resolver,
		uploader: uploader,
		clock:    systemClock{},
	}
}

// NewUploadBatchUsecaseWithClock is useful for tests.
func NewUploadBatchUsecaseWithClock(resolver AssetResolver, uploader AssetUploader, clock Clock) *UploadBatchUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &UploadBatchUsecase{resolver: resolver, uploader: uploader, clock: clock}
}

// UploadBatch returns exactly len(items) results, in input order.
func (uc *UploadBatchUsecase) UploadBatch(ctx context.Context, items []cartdom.Item, batchLabel string) ([]orderdom.UploadResult, error) {
	if uc == nil || uc.uploader == nil || uc.resolver == nil {
		return nil, ErrBatchNotConfigured
	}
	label := strings.TrimSpace(batchLabel)
	if label == "" {
		return nil, ErrBatchInvalidArgument
	}

	results := make([]orderdom.UploadResult, 0, len(items))

	for i, it := range items {
		imageData := uc.resolveImageData(ctx, it)
		if imageData == "" {
			log.Printf("[upload_batch] label=%s item=%d id=%s no image data", label, i, it.ID)
			results = append(results, orderdom.UploadResult{
				ItemIndex: i,
				Error:     NoImageDataMessage,
			})
			continue
		}

		// Destination id carries the 1-based position plus a timestamp
		// so a retried batch never collides with remote objects from a
		// previous attempt.
		destID := fmt.Sprintf("%s_item_%d_%d", label, i+1, uc.clock.Now().UnixMilli())

		url, assetID, err := uc.uploader.Upload(ctx, imageData, destID)
		if err != nil {
			log.Printf("[upload_batch] label=%s item=%d id=%s upload failed: %v", label, i, it.ID, err)
			results = append(results, orderdom.UploadResult{
				ItemIndex: i,
				Error:     err.Error(),
			})
			continue
		}

		results = append(results, orderdom.UploadResult{
			ItemIndex: i,
			URLs:      orderdom.SingleUploadBundle(url, assetID),
		})
	}

	return results, nil
}

// resolveImageData picks the best variant from the tiers, falling back
// to the item's inline fields when every tier misses.
func (uc *UploadBatchUsecase) resolveImageData(ctx context.Context, it cartdom.Item) string {
	rec, err := uc.resolver.Resolve(ctx, it.ID)
	if err != nil {
		// invalid item id etc.; inline fields are still worth a try
		log.Printf("[upload_batch] resolve failed id=%s: %v", it.ID, err)
	}
	if rec != nil {
		if v := rec.Best(); v != "" {
			return v
		}
	}
	return assetdom.SelectBest(it.InlineRecord())
}
