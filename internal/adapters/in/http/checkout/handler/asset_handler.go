// internal/adapters/in/http/checkout/handler/asset_handler.go
package handler

import (
	"errors"
	"net/http"
	"strings"

	"framecraft/internal/adapters/in/http/middleware"
	usecase "framecraft/internal/application/usecase"
	assetdom "framecraft/internal/domain/asset"
)

// AssetHandler captures and serves per-item image records.
// Intended mount examples (router side):
// - PUT    /assets/{itemId}   store/replace the record (all tiers)
// - GET    /assets/{itemId}   resolve through the tier chain
// - DELETE /assets/{itemId}   clear the record from all tiers
//
// The record body holds image variants as data URIs; bodies are large,
// hence the generous read cap in readJSON.
type AssetHandler struct {
	save    *usecase.AssetSaveUsecase
	resolve *usecase.AssetResolveUsecase
}

func NewAssetHandler(save *usecase.AssetSaveUsecase, resolve *usecase.AssetResolveUsecase) http.Handler {
	return &AssetHandler{save: save, resolve: resolve}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.save == nil || h.resolve == nil {
		writeErr(w, http.StatusInternalServerError, "asset handler is not configured")
		return
	}

	if _, ok := middleware.SessionFrom(r.Context()); !ok {
		writeErr(w, http.StatusUnauthorized, "missing session")
		return
	}

	itemID := lastPathSegment(r.URL.Path)
	if itemID == "" || itemID == "assets" {
		writeErr(w, http.StatusBadRequest, "itemId is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.handlePut(w, r, itemID)
	case http.MethodGet:
		h.handleGet(w, r, itemID)
	case http.MethodDelete:
		h.handleDelete(w, r, itemID)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *AssetHandler) handlePut(w http.ResponseWriter, r *http.Request, itemID string) {
	var rec assetdom.Record
	if err := readJSON(r, &rec); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.save.Save(r.Context(), itemID, rec); err != nil {
		switch {
		case errors.Is(err, usecase.ErrAssetInvalidArgument):
			writeErr(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrAssetSaveFailed):
			writeErr(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeErr(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"itemId": itemID,
		"stored": true,
	})
}

func (h *AssetHandler) handleGet(w http.ResponseWriter, r *http.Request, itemID string) {
	rec, err := h.resolve.Resolve(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, usecase.ErrResolveInvalidArgument) {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		writeErr(w, http.StatusNotFound, "no image data found")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *AssetHandler) handleDelete(w http.ResponseWriter, r *http.Request, itemID string) {
	if err := h.save.Delete(r.Context(), strings.TrimSpace(itemID)); err != nil {
		if errors.Is(err, usecase.ErrAssetInvalidArgument) {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
