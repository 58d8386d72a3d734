// internal/adapters/out/memory/asset_store_mem_test.go
package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assetdom "framecraft/internal/domain/asset"
)

func TestAssetStoreMem_RoundTrip(t *testing.T) {
	s := NewAssetStoreMem()
	ctx := context.Background()

	// miss returns (nil, nil)
	rec, err := s.Get(ctx, "7")
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, s.Put(ctx, "7", assetdom.Record{PrintImage: " print "}))
	assert.Equal(t, 1, s.Len())

	rec, err = s.Get(ctx, "7")
	require.NoError(t, err)
	require.NotNil(t, rec)
	// Put normalizes variant values
	assert.Equal(t, "print", rec.PrintImage)

	// the returned record is a copy
	rec.PrintImage = "mutated"
	again, err := s.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "print", again.PrintImage)

	require.NoError(t, s.Delete(ctx, "7"))
	assert.Equal(t, 0, s.Len())
}

func TestAssetStoreMem_EmptyID(t *testing.T) {
	s := NewAssetStoreMem()
	ctx := context.Background()

	_, err := s.Get(ctx, "  ")
	assert.Error(t, err)
	assert.Error(t, s.Put(ctx, "", assetdom.Record{}))
	assert.Error(t, s.Delete(ctx, ""))
}
