package shop

import (
	"context"
	"net/http"

	"MiniCart/internal/cart"
)

const (
	SessionCookie = "cart_session"
	SessionHeader = "X-Cart-Session"

	sessionMaxAge = 7 * 24 * 60 * 60
)

type sessionKey struct{}

type session struct {
	id    string
	store *cart.Store
}

func sessionFromContext(ctx context.Context) (session, bool) {
	s, ok := ctx.Value(sessionKey{}).(session)
	return s, ok
}

// withSession resolves the caller's cart from the header or cookie and echoes
// the id back. With mint set, a request naming no live session gets a new
// one; otherwise the request continues without a session in its context.
func withSession(sessions *cart.Sessions, mint bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestSessionID(r)

			var (
				st *cart.Store
				ok bool
			)
			if mint {
				id, st = sessions.Open(id)
				ok = true
			} else {
				st, ok = sessions.Lookup(id)
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(SessionHeader, id)
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   sessionMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), sessionKey{}, session{id: id, store: st})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestSessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
