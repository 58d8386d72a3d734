// internal/adapters/in/http/checkout/handler/cart_handler_test.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framecraft/internal/adapters/in/http/middleware"
	usecase "framecraft/internal/application/usecase"
	cartdom "framecraft/internal/domain/cart"
	sessdom "framecraft/internal/domain/session"
)

type memCartRepo struct {
	carts map[string]*cartdom.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]*cartdom.Cart{}}
}

func (r *memCartRepo) GetBySessionID(_ context.Context, sessionID string) (*cartdom.Cart, error) {
	return r.carts[sessionID], nil
}

func (r *memCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	r.carts[c.ID] = c
	return nil
}

func (r *memCartRepo) DeleteBySessionID(_ context.Context, sessionID string) error {
	delete(r.carts, sessionID)
	return nil
}

func sessionRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	sess := sessdom.Context{SessionID: "sess1", Verified: false}
	return r.WithContext(middleware.WithSession(r.Context(), sess))
}

func TestCartHandler_GetCreatesCart(t *testing.T) {
	h := NewCartHandler(usecase.NewCartUsecase(newMemCartRepo()))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, sessionRequest(http.MethodGet, "/cart", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sess1", resp.SessionID)
	assert.Empty(t, resp.Items)
	assert.NotEmpty(t, resp.ExpiresAt)
}

func TestCartHandler_AddAndRemoveItem(t *testing.T) {
	repo := newMemCartRepo()
	h := NewCartHandler(usecase.NewCartUsecase(repo))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, sessionRequest(http.MethodPost, "/cart/items",
		`{"id":"a","frameSize":"A4","frameColor":"black","quantity":2,"price":4500}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "a", resp.Items[0].ID)
	assert.Equal(t, 2, resp.Items[0].Quantity)

	// qty 0 removes via PUT
	w = httptest.NewRecorder()
	h.ServeHTTP(w, sessionRequest(http.MethodPut, "/cart/items", `{"id":"a","quantity":0}`))
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestCartHandler_BadRequests(t *testing.T) {
	h := NewCartHandler(usecase.NewCartUsecase(newMemCartRepo()))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, sessionRequest(http.MethodPost, "/cart/items", `{"id":"","quantity":1}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, sessionRequest(http.MethodPost, "/cart/items", `not json`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_MissingSession(t *testing.T) {
	h := NewCartHandler(usecase.NewCartUsecase(newMemCartRepo()))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
