// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	checkoutrt "framecraft/internal/adapters/in/http/checkout"
	handler "framecraft/internal/adapters/in/http/checkout/handler"
	"framecraft/internal/adapters/in/http/middleware"
	usecase "framecraft/internal/application/usecase"
)

// RouterDeps collects the usecases (and other dependencies) injected
// from main.go. Nil usecases leave their routes unmounted.
type RouterDeps struct {
	CartUC         *usecase.CartUsecase
	AssetSaveUC    *usecase.AssetSaveUsecase
	AssetResolveUC *usecase.AssetResolveUsecase
	CheckoutUC     *usecase.CheckoutUsecase
	UploadBatchUC  *usecase.UploadBatchUsecase

	SessionAuth *middleware.SessionAuthMiddleware
}

// NewRouter sets up HTTP routing for all checkout endpoints.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health check (always on, no session required)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	secure := func(h http.Handler) http.Handler {
		if deps.SessionAuth == nil {
			return h
		}
		return deps.SessionAuth.Handler(h)
	}

	rt := checkoutrt.Deps{}

	if deps.CartUC != nil {
		rt.Cart = secure(handler.NewCartHandler(deps.CartUC))
	}
	if deps.AssetSaveUC != nil && deps.AssetResolveUC != nil {
		rt.Asset = secure(handler.NewAssetHandler(deps.AssetSaveUC, deps.AssetResolveUC))
	}
	if deps.CheckoutUC != nil {
		rt.Checkout = secure(handler.NewCheckoutHandler(deps.CheckoutUC, deps.UploadBatchUC))
	}

	checkoutrt.Register(mux, rt)

	return mux
}
