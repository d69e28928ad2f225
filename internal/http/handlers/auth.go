package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/trivia-admin-service/internal/http/requestutil"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
)

// RequireBearer rejects requests whose Authorization header does not carry
// token. Websocket handshakes may pass the token as ?token= since browsers
// cannot set headers on them. An empty token rejects everything.
func RequireBearer(token string, logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, token) {
			logging.Warn(loggerFromContext(r, logger), "unauthorized request",
				slog.String(logging.FieldPath, r.URL.Path),
				slog.String(logging.FieldClientIP, requestutil.ClientIP(r)),
			)
			writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func authorized(r *http.Request, token string) bool {
	if token == "" {
		return false
	}
	got, ok := requestutil.BearerToken(r)
	if !ok && websocket.IsWebSocketUpgrade(r) {
		got, ok = r.URL.Query().Get("token"), true
	}
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}
