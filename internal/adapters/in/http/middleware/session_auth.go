// internal/adapters/in/http/middleware/session_auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	sessdom "framecraft/internal/domain/session"
)

// FirebaseAuthClient is an alias for the firebase auth client so
// RouterDeps can carry it as *middleware.FirebaseAuthClient.
type FirebaseAuthClient = fbauth.Client

// context key avoids collisions with plain strings (SA1029)
type ctxKey struct{ name string }

var ctxKeySession = ctxKey{name: "checkoutSession"}

// SessionAuthMiddleware attaches a session.Context to every request.
//
//   - Authorization: Bearer <ID_TOKEN> -> verified session: Firebase uid
//     becomes the session id, email/name come from the token claims.
//   - X-Session-Id: <id>               -> anonymous guest session.
//
// Requests carrying neither are rejected; every cart and asset
// operation needs a session to key its storage on.
type SessionAuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *SessionAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if m == nil || m.FirebaseAuth == nil {
				http.Error(w, "session auth middleware not initialized", http.StatusServiceUnavailable)
				return
			}

			idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if idToken == "" {
				http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
				return
			}

			token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			uid := strings.TrimSpace(token.UID)
			if uid == "" {
				http.Error(w, "invalid uid in token", http.StatusUnauthorized)
				return
			}

			sess := sessdom.Context{
				SessionID: uid,
				Verified:  true,
			}
			if v, ok := token.Claims["email"]; ok {
				if e, ok2 := v.(string); ok2 {
					sess.CustomerEmail = strings.TrimSpace(e)
				}
			}
			if v, ok := token.Claims["name"]; ok {
				if s, ok2 := v.(string); ok2 {
					sess.CustomerName = strings.TrimSpace(s)
				}
			}

			log.Printf("[session_auth] verified session uid=%s", uid)
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
			return
		}

		// Guest path: an opaque id minted by the frontend.
		sid := strings.TrimSpace(r.Header.Get("X-Session-Id"))
		if sid == "" {
			http.Error(w, "unauthorized: missing session", http.StatusUnauthorized)
			return
		}

		sess := sessdom.Context{SessionID: sid, Verified: false}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// WithSession stores the session context on ctx.
func WithSession(ctx context.Context, sess sessdom.Context) context.Context {
	return context.WithValue(ctx, ctxKeySession, sess)
}

// SessionFrom returns the session context attached by the middleware.
func SessionFrom(ctx context.Context) (sessdom.Context, bool) {
	v := ctx.Value(ctxKeySession)
	sess, ok := v.(sessdom.Context)
	if !ok || !sess.Valid() {
		return sessdom.Context{}, false
	}
	return sess, true
}
