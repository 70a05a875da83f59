package middleware

import (
	"net/http"

	"github.com/rnvv/igreja/internal/auth"
	"github.com/rnvv/igreja/internal/store"
)

const sessionCookieName = "igreja_session"

// RequireAuth validates the session cookie and populates AuthContext. The
// session is re-checked against the store on every request; there is no
// caching across navigations. Any failure along the way is treated the same
// as no session: redirect to /login.
// HTMX-aware: returns an HX-Redirect header instead of a 303 for HTMX requests.
func RequireAuth(sessionStore *store.SessionStore, churchStore *store.ChurchStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				redirectToLogin(w, r)
				return
			}

			sess, err := sessionStore.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				redirectToLogin(w, r)
				return
			}

			church, err := churchStore.GetByID(sess.ChurchID)
			if err != nil || church == nil {
				redirectToLogin(w, r)
				return
			}

			ac := auth.AuthContext{
				ChurchID:  sess.ChurchID,
				SessionID: sess.ID,
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
