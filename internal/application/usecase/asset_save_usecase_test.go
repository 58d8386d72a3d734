// internal/application/usecase/asset_save_usecase_test.go
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assetdom "framecraft/internal/domain/asset"
)

func TestAssetSave_WritesAllTiers(t *testing.T) {
	durable := newFakeTierStore()
	session := newFakeSessionStore()
	mem := newFakeTierStore()

	uc := NewAssetSaveUsecase(durable, session, mem, "cartimg", 0)

	rec := assetdom.Record{PrintImage: "print", DisplayImage: "disp", OriginalImage: "orig"}
	require.NoError(t, uc.Save(context.Background(), "7", rec))

	assert.Contains(t, durable.puts, "7")
	assert.Contains(t, mem.puts, "7")

	var full assetdom.Record
	require.NoError(t, json.Unmarshal([]byte(session.data["cartimg_full_7"]), &full))
	assert.Equal(t, "orig", full.OriginalImage)

	// compressed entry holds the reduced copy
	var compressed assetdom.Record
	require.NoError(t, json.Unmarshal([]byte(session.data["cartimg_7"]), &compressed))
	assert.Equal(t, "print", compressed.PrintImage)
	assert.Equal(t, "disp", compressed.DisplayImage)
	assert.Empty(t, compressed.OriginalImage)
}

func TestAssetSave_CompressedSkippedOverCap(t *testing.T) {
	session := newFakeSessionStore()
	uc := NewAssetSaveUsecase(nil, session, nil, "cartimg", 10)

	rec := assetdom.Record{PrintImage: "a-print-variant-well-over-ten-bytes"}
	require.NoError(t, uc.Save(context.Background(), "7", rec))

	assert.Contains(t, session.data, "cartimg_full_7")
	assert.NotContains(t, session.data, "cartimg_7")
}

func TestAssetSave_PartialTierFailureIsTolerated(t *testing.T) {
	durable := newFakeTierStore()
	durable.putErr = errors.New("db down")
	mem := newFakeTierStore()

	uc := NewAssetSaveUsecase(durable, nil, mem, "cartimg", 0)

	require.NoError(t, uc.Save(context.Background(), "7", assetdom.Record{PrintImage: "p"}))
	assert.Contains(t, mem.puts, "7")
}

func TestAssetSave_AllTiersFailed(t *testing.T) {
	durable := newFakeTierStore()
	durable.putErr = errors.New("db down")
	session := newFakeSessionStore()
	session.putErr = errors.New("fs down")
	mem := newFakeTierStore()
	mem.putErr = errors.New("oom")

	uc := NewAssetSaveUsecase(durable, session, mem, "cartimg", 0)

	err := uc.Save(context.Background(), "7", assetdom.Record{PrintImage: "p"})
	assert.ErrorIs(t, err, ErrAssetSaveFailed)
}

func TestAssetSave_InvalidArgument(t *testing.T) {
	uc := NewAssetSaveUsecase(nil, newFakeSessionStore(), nil, "cartimg", 0)

	assert.ErrorIs(t, uc.Save(context.Background(), "", assetdom.Record{PrintImage: "p"}), ErrAssetInvalidArgument)
	assert.ErrorIs(t, uc.Save(context.Background(), "7", assetdom.Record{}), ErrAssetInvalidArgument)
}

func TestAssetSave_DeleteClearsAllTiers(t *testing.T) {
	durable := newFakeTierStore()
	session := newFakeSessionStore()
	session.data["cartimg_full_7"] = "x"
	session.data["cartimg_7"] = "y"
	mem := newFakeTierStore()

	uc := NewAssetSaveUsecase(durable, session, mem, "cartimg", 0)

	require.NoError(t, uc.Delete(context.Background(), "7"))
	assert.Equal(t, []string{"7"}, durable.deletes)
	assert.Equal(t, []string{"7"}, mem.deletes)
	assert.Empty(t, session.data)
}
