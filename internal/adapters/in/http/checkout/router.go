// internal/adapters/in/http/checkout/router.go
package checkout

import "net/http"

// Deps is the storefront checkout handler set.
type Deps struct {
	Cart     http.Handler
	Asset    http.Handler
	Checkout http.Handler
}

// Register registers checkout-facing routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// session cart
	if deps.Cart != nil {
		mux.Handle("/cart", deps.Cart)
		mux.Handle("/cart/", deps.Cart)
	}

	// per-item image records
	if deps.Asset != nil {
		mux.Handle("/assets", deps.Asset)
		mux.Handle("/assets/", deps.Asset)
	}

	// order placement + upload retries
	if deps.Checkout != nil {
		mux.Handle("/checkout", deps.Checkout)
		mux.Handle("/checkout/", deps.Checkout)
	}
}
