// internal/adapters/in/http/checkout/handler/checkout_handler.go
package handler

import (
	"errors"
	"net/http"
	"strings"

	"framecraft/internal/adapters/in/http/middleware"
	usecase "framecraft/internal/application/usecase"
	cartdom "framecraft/internal/domain/cart"
	orderdom "framecraft/internal/domain/order"
	sessdom "framecraft/internal/domain/session"
)

// CheckoutHandler drives order placement.
// Intended mount examples (router side):
// - POST /checkout          full flow: upload batch + submit + notify
// - POST /checkout/uploads  upload batch only (returns per-item results)
//
// /checkout/uploads exists for the support retry path: it re-runs the
// uploads for explicit items without placing a new order.
type CheckoutHandler struct {
	checkout *usecase.CheckoutUsecase
	batch    *usecase.UploadBatchUsecase
}

func NewCheckoutHandler(checkout *usecase.CheckoutUsecase, batch *usecase.UploadBatchUsecase) http.Handler {
	return &CheckoutHandler{checkout: checkout, batch: batch}
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.checkout == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "missing session")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	if strings.HasSuffix(path, "/uploads") {
		h.handleUploads(w, r)
		return
	}

	h.handleCheckout(w, r, sess)
}

// -------------------------
// POST /checkout
// -------------------------

type checkoutReq struct {
	Items    []cartItemReq `json:"items"`
	Customer customerReq   `json:"customer"`
}

type customerReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *CheckoutHandler) handleCheckout(w http.ResponseWriter, r *http.Request, sess sessdom.Context) {
	var req checkoutReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	customer := orderdom.Customer{
		Name:    strings.TrimSpace(req.Customer.Name),
		Email:   strings.TrimSpace(req.Customer.Email),
		Phone:   strings.TrimSpace(req.Customer.Phone),
		Address: strings.TrimSpace(req.Customer.Address),
	}
	// Verified sessions can omit contact info; fall back to the token.
	if customer.Email == "" {
		customer.Email = sess.CustomerEmail
	}
	if customer.Name == "" {
		customer.Name = sess.CustomerName
	}

	in := usecase.CheckoutInput{
		Items:    toDomainItems(req.Items),
		Customer: customer,
	}

	summary, err := h.checkout.Checkout(r.Context(), sess, in)
	if err != nil {
		h.writeCheckoutErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *CheckoutHandler) writeCheckoutErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrCheckoutInvalidArgument),
		errors.Is(err, usecase.ErrCheckoutEmptyCart),
		errors.Is(err, usecase.ErrBatchInvalidArgument),
		errors.Is(err, orderdom.ErrInvalidOrder),
		errors.Is(err, orderdom.ErrInvalidCustomer):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrCheckoutSubmitFailed):
		writeErr(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, usecase.ErrCheckoutNotConfigured),
		errors.Is(err, usecase.ErrBatchNotConfigured):
		writeErr(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// -------------------------
// POST /checkout/uploads
// -------------------------

type uploadsReq struct {
	Items      []cartItemReq `json:"items"`
	BatchLabel string        `json:"batchLabel"`
}

type uploadsResponse struct {
	BatchLabel string                  `json:"batchLabel"`
	Results    []orderdom.UploadResult `json:"results"`
}

func (h *CheckoutHandler) handleUploads(w http.ResponseWriter, r *http.Request) {
	if h.batch == nil {
		writeErr(w, http.StatusServiceUnavailable, "upload batch is not configured")
		return
	}

	var req uploadsReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	label := strings.TrimSpace(req.BatchLabel)
	if label == "" {
		writeErr(w, http.StatusBadRequest, "batchLabel is required")
		return
	}
	if len(req.Items) == 0 {
		writeErr(w, http.StatusBadRequest, "items are required")
		return
	}

	results, err := h.batch.UploadBatch(r.Context(), toDomainItems(req.Items), label)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBatchInvalidArgument):
			writeErr(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrBatchNotConfigured):
			writeErr(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeErr(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, uploadsResponse{
		BatchLabel: label,
		Results:    results,
	})
}

func toDomainItems(reqs []cartItemReq) []cartdom.Item {
	if len(reqs) == 0 {
		return nil
	}
	items := make([]cartdom.Item, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, r.toDomain())
	}
	return items
}
