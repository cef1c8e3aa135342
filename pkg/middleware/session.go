package middleware

import (
	"net/http"
	"time"

	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionCookie = "rb_session"

// DraftSession identifies the browsing session that owns the draft. There is
// no account behind it: a fresh UUID cookie is issued on first contact and
// every draft operation is keyed by it.
func DraftSession(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID uuid.UUID

			cookie, err := r.Cookie(sessionCookie)
			if err == nil {
				if parsed, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					sessionID = parsed
				}
			}

			if sessionID == uuid.Nil {
				sessionID = uuid.New()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    sessionID.String(),
					Path:     "/",
					Expires:  time.Now().Add(30 * 24 * time.Hour),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				logger.Debug("New draft session issued", zap.String("session_id", sessionID.String()))
			}

			ctx := utils.SetSessionContext(r.Context(), sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
