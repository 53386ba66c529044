package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/session"
)

// SessionCookieName is the cookie carrying the shopping session id
const SessionCookieName = "storefront_session"

type sessionKey struct{}

// Sessions attaches the shopper's session to the request context, starting a
// new one (and setting the cookie) when the request carries none or a stale id.
func Sessions(store *session.Store, secure bool, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookieName); err == nil {
				id = c.Value
			}

			sess, created, err := store.GetOrCreate(r.Context(), id)
			if err != nil {
				logger.Error("failed to start session", "error", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if created {
				logger.Debug("session started", "session_id", sess.ID)
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// SessionFromContext returns the session attached by Sessions
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*session.Session)
	return sess, ok
}

// WithSession returns a copy of ctx carrying sess
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}
