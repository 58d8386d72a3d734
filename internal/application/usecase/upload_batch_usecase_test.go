// internal/application/usecase/upload_batch_usecase_test.go
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assetdom "framecraft/internal/domain/asset"
	cartdom "framecraft/internal/domain/cart"
)

var batchNow = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func newBatchResolver(session *fakeSessionStore) *AssetResolveUsecase {
	if session == nil {
		session = newFakeSessionStore()
	}
	return NewAssetResolveUsecase(nil, session, nil, "cartimg")
}

func TestUploadBatch_ResultsMatchItemOrder(t *testing.T) {
	up := &fakeUploader{}
	uc := NewUploadBatchUsecaseWithClock(newBatchResolver(nil), up, fixedClock{batchNow})

	items := []cartdom.Item{
		{ID: "a", Quantity: 1, OriginalImage: "data:image/png;base64,aGVsbG8="},
		{ID: "b", Quantity: 1}, // no tiers, no inline data
	}

	results, err := uc.UploadBatch(context.Background(), items, "FRM-1")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 0, results[0].ItemIndex)
	require.NotNil(t, results[0].URLs)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, 1, results[1].ItemIndex)
	assert.Nil(t, results[1].URLs)
	assert.Equal(t, NoImageDataMessage, results[1].Error)

	// only the item with data reached the uploader
	require.Len(t, up.calls, 1)
}

func TestUploadBatch_UploadFailureIsReified(t *testing.T) {
	// item "7" has a record only in the compressed session tier, and
	// the upload attempt times out
	session := newFakeSessionStore()
	payload, err := json.Marshal(assetdom.Record{PrintImage: "data:image/png;base64,aGVsbG8="})
	require.NoError(t, err)
	session.data["cartimg_7"] = string(payload)

	up := &fakeUploader{failAll: errors.New("timeout")}
	uc := NewUploadBatchUsecaseWithClock(newBatchResolver(session), up, fixedClock{batchNow})

	results, err := uc.UploadBatch(context.Background(), []cartdom.Item{{ID: "7", Quantity: 1}}, "FRM-1")
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, 0, results[0].ItemIndex)
	assert.Nil(t, results[0].URLs)
	assert.Equal(t, "timeout", results[0].Error)
}

func TestUploadBatch_TierRecordBeatsInline(t *testing.T) {
	session := newFakeSessionStore()
	payload, err := json.Marshal(assetdom.Record{PrintImage: "tier-print"})
	require.NoError(t, err)
	session.data["cartimg_full_a"] = string(payload)

	up := &fakeUploader{}
	uc := NewUploadBatchUsecaseWithClock(newBatchResolver(session), up, fixedClock{batchNow})

	items := []cartdom.Item{{ID: "a", Quantity: 1, OriginalImage: "inline-orig"}}
	_, err = uc.UploadBatch(context.Background(), items, "FRM-1")
	require.NoError(t, err)

	require.Len(t, up.calls, 1)
	assert.Equal(t, "tier-print", up.calls[0].ImageData)
}

func TestUploadBatch_DestinationID(t *testing.T) {
	up := &fakeUploader{}
	uc := NewUploadBatchUsecaseWithClock(newBatchResolver(nil), up, fixedClock{batchNow})

	items := []cartdom.Item{
		{ID: "a", Quantity: 1, DisplayImage: "d1"},
		{ID: "b", Quantity: 1, DisplayImage: "d2"},
	}

	_, err := uc.UploadBatch(context.Background(), items, "FRM-20260828100000-0001")
	require.NoError(t, err)
	require.Len(t, up.calls, 2)

	ms := batchNow.UnixMilli()
	assert.Equal(t, fmt.Sprintf("FRM-20260828100000-0001_item_1_%d", ms), up.calls[0].DestinationID)
	assert.Equal(t, fmt.Sprintf("FRM-20260828100000-0001_item_2_%d", ms), up.calls[1].DestinationID)
}

func TestUploadBatch_StructuralErrors(t *testing.T) {
	up := &fakeUploader{}

	var nilUC *UploadBatchUsecase
	_, err := nilUC.UploadBatch(context.Background(), nil, "FRM-1")
	assert.ErrorIs(t, err, ErrBatchNotConfigured)

	_, err = NewUploadBatchUsecase(nil, up).UploadBatch(context.Background(), nil, "FRM-1")
	assert.ErrorIs(t, err, ErrBatchNotConfigured)

	_, err = NewUploadBatchUsecase(newBatchResolver(nil), nil).UploadBatch(context.Background(), nil, "FRM-1")
	assert.ErrorIs(t, err, ErrBatchNotConfigured)

	_, err = NewUploadBatchUsecase(newBatchResolver(nil), up).UploadBatch(context.Background(), nil, "  ")
	assert.ErrorIs(t, err, ErrBatchInvalidArgument)
}

func TestUploadBatch_EmptyItems(t *testing.T) {
	uc := NewUploadBatchUsecase(newBatchResolver(nil), &fakeUploader{})

	results, err := uc.UploadBatch(context.Background(), nil, "FRM-1")
	require.NoError(t, err)
	assert.Empty(t, results)
}
