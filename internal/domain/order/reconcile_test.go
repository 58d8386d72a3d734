// internal/domain/order/reconcile_test.go
package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "framecraft/internal/domain/cart"
)

func TestReconcileItems(t *testing.T) {
	items := []cartdom.Item{
		{ID: "a", Quantity: 1},
		{ID: "b", Quantity: 2},
	}
	results := []UploadResult{
		{ItemIndex: 0, URLs: SingleUploadBundle("https://cdn/img1", "pub1")},
		{ItemIndex: 1, Error: "No image data found"},
	}

	out, err := ReconcileItems(items, results)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, UploadStatusSuccess, out[0].UploadStatus)
	assert.Equal(t, "https://cdn/img1", out[0].OriginalURL)
	assert.Equal(t, "https://cdn/img1", out[0].PrintURL)
	assert.Equal(t, "https://cdn/img1", out[0].DisplayURL)
	assert.Equal(t, "pub1", out[0].AssetPublicID)
	assert.Empty(t, out[0].UploadError)

	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, UploadStatusFailed, out[1].UploadStatus)
	assert.Equal(t, "No image data found", out[1].UploadError)
	assert.Empty(t, out[1].OriginalURL)
}

func TestReconcileItems_LengthMismatch(t *testing.T) {
	items := []cartdom.Item{{ID: "a", Quantity: 1}}

	_, err := ReconcileItems(items, nil)
	assert.ErrorIs(t, err, ErrResultsMismatch)

	_, err = ReconcileItems(items, []UploadResult{{}, {}})
	assert.ErrorIs(t, err, ErrResultsMismatch)
}

func TestReconcileItems_PureAndIdempotent(t *testing.T) {
	items := []cartdom.Item{{ID: "a", Quantity: 1}}
	results := []UploadResult{{ItemIndex: 0, Error: "timeout"}}

	first, err := ReconcileItems(items, results)
	require.NoError(t, err)
	second, err := ReconcileItems(items, results)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// inputs stay untouched
	assert.Empty(t, items[0].FrameSize)
	assert.Equal(t, "timeout", results[0].Error)
	assert.Nil(t, results[0].URLs)
}

func TestSingleUploadBundle(t *testing.T) {
	b := SingleUploadBundle(" https://cdn/x ", " pub ")
	assert.Equal(t, "https://cdn/x", b.Original)
	assert.Equal(t, b.Original, b.Print)
	assert.Equal(t, b.Original, b.Display)
	assert.Equal(t, "pub", b.PublicID)
}

func TestNewOrder_Validation(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	items := []Item{{Item: cartdom.Item{ID: "a", Quantity: 1}, UploadStatus: UploadStatusSuccess}}
	customer := Customer{Name: "Ann", Email: "ann@example.com"}

	o, err := NewOrder("FRM-1", "sess1", customer, items, now)
	require.NoError(t, err)
	assert.Equal(t, 1, o.UploadedCount())

	_, err = NewOrder("", "sess1", customer, items, now)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = NewOrder("FRM-1", "sess1", customer, nil, now)
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = NewOrder("FRM-1", "sess1", Customer{Name: "Ann"}, items, now)
	assert.ErrorIs(t, err, ErrInvalidCustomer)
}

func TestNewNumber(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "FRM-20260828153000-4821", NewNumber(now, 4821))
	assert.Equal(t, "FRM-20260828153000-0007", NewNumber(now, 7))
	// random component is reduced into range, never negative
	assert.Equal(t, "FRM-20260828153000-2345", NewNumber(now, 12345))
	assert.Equal(t, "FRM-20260828153000-0042", NewNumber(now, -42))
}
