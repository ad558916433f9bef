package app

import (
	"net/http"

	"github.com/avisobot/avisobot/internal/session"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	// Resolve the session cookie into context for downstream handlers.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			if sess, ok := deps.Sessions.FromRequest(req); ok {
				log.Tracef("request authenticated as %s", sess.UserID)
				ctx = session.WithSession(ctx, sess)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
