// internal/adapters/in/http/checkout/handler/cart_handler.go
package handler

import (
	"errors"
	"net/http"
	"strings"

	"framecraft/internal/adapters/in/http/middleware"
	usecase "framecraft/internal/application/usecase"
	cartdom "framecraft/internal/domain/cart"
)

// CartHandler serves the session cart endpoints.
// Intended mount examples (router side):
// - GET    /cart
// - DELETE /cart
// - POST   /cart/items
// - PUT    /cart/items
// - DELETE /cart/items
//
// The session id comes from the session middleware, never from the
// request body.
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "missing session")
		return
	}

	// StripPrefix("/cart") turns "/cart/items" into "/items" and
	// "/cart" into "" or "/"; absorb both shapes.
	path := strings.TrimRight(r.URL.Path, "/")
	if path == "" {
		path = "/"
	}

	isItems := strings.HasSuffix(path, "/items")
	isRoot := path == "/" || strings.HasSuffix(path, "/cart")

	switch {
	case r.Method == http.MethodGet && isRoot:
		h.handleGet(w, r, sess.SessionID)
	case r.Method == http.MethodDelete && isRoot:
		h.handleClear(w, r, sess.SessionID)
	case r.Method == http.MethodPost && isItems:
		h.handleAddItem(w, r, sess.SessionID)
	case r.Method == http.MethodPut && isItems:
		h.handleSetItemQty(w, r, sess.SessionID)
	case r.Method == http.MethodDelete && isItems:
		h.handleRemoveItem(w, r, sess.SessionID)
	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, sessionID string) {
	c, err := h.uc.GetOrCreate(r.Context(), sessionID)
	if err != nil {
		h.writeCartErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(sessionID, c))
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req cartItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	it := req.toDomain()
	if it.ID == "" || it.Quantity <= 0 {
		writeErr(w, http.StatusBadRequest, "id and quantity(>=1) are required")
		return
	}

	c, err := h.uc.AddItem(r.Context(), sessionID, it)
	if err != nil {
		h.writeCartErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(sessionID, c))
}

func (h *CartHandler) handleSetItemQty(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req cartItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		writeErr(w, http.StatusBadRequest, "id is required")
		return
	}

	// quantity <= 0 is treated as remove
	c, err := h.uc.SetItemQty(r.Context(), sessionID, id, req.Quantity)
	if err != nil {
		h.writeCartErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(sessionID, c))
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req cartItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		writeErr(w, http.StatusBadRequest, "id is required")
		return
	}

	c, err := h.uc.RemoveItem(r.Context(), sessionID, id)
	if err != nil {
		h.writeCartErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(sessionID, c))
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := h.uc.Clear(r.Context(), sessionID); err != nil {
		h.writeCartErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) writeCartErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrCartNotFound):
		writeErr(w, http.StatusNotFound, "cart not found")
	case errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, cartdom.ErrInvalidCart),
		errors.Is(err, cartdom.ErrInvalidItem):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// -------------------------
// request/response DTO
// -------------------------

type cartItemReq struct {
	ID         string `json:"id"`
	FrameSize  string `json:"frameSize"`
	FrameColor string `json:"frameColor"`
	Quantity   int    `json:"quantity"`
	Price      int64  `json:"price"`

	HighQualityPrintImage string `json:"highQualityPrintImage,omitempty"`
	AdminCroppedImage     string `json:"adminCroppedImage,omitempty"`
	PrintImage            string `json:"printImage,omitempty"`
	OriginalImage         string `json:"originalImage,omitempty"`
	DisplayImage          string `json:"displayImage,omitempty"`
}

func (r cartItemReq) toDomain() cartdom.Item {
	return cartdom.Item{
		ID:         strings.TrimSpace(r.ID),
		FrameSize:  strings.TrimSpace(r.FrameSize),
		FrameColor: strings.TrimSpace(r.FrameColor),
		Quantity:   r.Quantity,
		Price:      r.Price,

		HighQualityPrintImage: r.HighQualityPrintImage,
		AdminCroppedImage:     r.AdminCroppedImage,
		PrintImage:            r.PrintImage,
		OriginalImage:         r.OriginalImage,
		DisplayImage:          r.DisplayImage,
	}
}

type cartResponse struct {
	SessionID string        `json:"sessionId"`
	Items     []cartItemReq `json:"items"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
	ExpiresAt string        `json:"expiresAt"`
}

func toCartResponse(sessionID string, c *cartdom.Cart) cartResponse {
	items := []cartItemReq{}
	if c != nil {
		for _, it := range c.Items {
			items = append(items, cartItemReq{
				ID:         it.ID,
				FrameSize:  it.FrameSize,
				FrameColor: it.FrameColor,
				Quantity:   it.Quantity,
				Price:      it.Price,

				HighQualityPrintImage: it.HighQualityPrintImage,
				AdminCroppedImage:     it.AdminCroppedImage,
				PrintImage:            it.PrintImage,
				OriginalImage:         it.OriginalImage,
				DisplayImage:          it.DisplayImage,
			})
		}
	}

	if c == nil {
		return cartResponse{SessionID: strings.TrimSpace(sessionID), Items: items}
	}

	return cartResponse{
		SessionID: strings.TrimSpace(sessionID),
		Items:     items,
		CreatedAt: toRFC3339(c.CreatedAt),
		UpdatedAt: toRFC3339(c.UpdatedAt),
		ExpiresAt: toRFC3339(c.ExpiresAt),
	}
}
