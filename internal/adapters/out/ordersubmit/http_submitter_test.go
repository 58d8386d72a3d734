// internal/adapters/out/ordersubmit/http_submitter_test.go
package ordersubmit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "framecraft/internal/domain/cart"
	orderdom "framecraft/internal/domain/order"
)

func testOrder(t *testing.T) *orderdom.Order {
	t.Helper()

	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	items := []orderdom.Item{
		{
			Item:          cartdom.Item{ID: "a", FrameSize: "A4", FrameColor: "black", Quantity: 1, Price: 4500},
			OriginalURL:   "https://cdn/x",
			PrintURL:      "https://cdn/x",
			DisplayURL:    "https://cdn/x",
			AssetPublicID: "x",
			UploadStatus:  orderdom.UploadStatusSuccess,
		},
		{
			Item:         cartdom.Item{ID: "b", Quantity: 2},
			UploadStatus: orderdom.UploadStatusFailed,
			UploadError:  "No image data found",
		},
	}

	o, err := orderdom.NewOrder("FRM-20260828153000-0001", "sess1",
		orderdom.Customer{Name: "Ann", Email: "ann@example.com"}, items, now)
	require.NoError(t, err)
	return o
}

func TestHTTPSubmitter_Submit(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody orderPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orderId":"ord-42"}`))
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL+"/", "api-key")

	remoteID, err := s.Submit(context.Background(), testOrder(t))
	require.NoError(t, err)
	assert.Equal(t, "ord-42", remoteID)

	assert.Equal(t, "/orders", gotPath)
	assert.Equal(t, "Bearer api-key", gotAuth)

	assert.Equal(t, "FRM-20260828153000-0001", gotBody.OrderNumber)
	assert.Equal(t, "sess1", gotBody.SessionID)
	assert.Equal(t, "ann@example.com", gotBody.Customer.Email)
	require.Len(t, gotBody.Items, 2)
	assert.Equal(t, "success", gotBody.Items[0].UploadStatus)
	assert.Equal(t, "https://cdn/x", gotBody.Items[0].PrintURL)
	assert.Equal(t, "failed", gotBody.Items[1].UploadStatus)
	assert.Equal(t, "No image data found", gotBody.Items[1].UploadError)
}

func TestHTTPSubmitter_IDFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"ord-7"}`))
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, "")
	remoteID, err := s.Submit(context.Background(), testOrder(t))
	require.NoError(t, err)
	assert.Equal(t, "ord-7", remoteID)
}

func TestHTTPSubmitter_ErrorStatusCapturesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"customer rejected"}`))
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, "")
	_, err := s.Submit(context.Background(), testOrder(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=422")
	assert.Contains(t, err.Error(), "customer rejected")
}

func TestHTTPSubmitter_EmptyOrderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, "")
	_, err := s.Submit(context.Background(), testOrder(t))
	assert.Error(t, err)
}

func TestHTTPSubmitter_NotConfigured(t *testing.T) {
	s := NewHTTPSubmitter("", "")
	_, err := s.Submit(context.Background(), testOrder(t))
	assert.Error(t, err)

	s = NewHTTPSubmitter("https://example.com", "")
	_, err = s.Submit(context.Background(), nil)
	assert.Error(t, err)
}
