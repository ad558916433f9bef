package google

import (
	"net/http"
	"sync"
	"time"

	"github.com/avisobot/avisobot/internal/session"
	"github.com/avisobot/avisobot/pkg/scheduler"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// stateNonceTTL bounds how long a sign-in attempt may take before its state
// nonce is discarded.
const stateNonceTTL = 10 * time.Minute

// AuthHandler drives the OAuth sign-in flow. A successful callback creates a
// session and registers the user with the reminder scheduler; logout removes
// both.
type AuthHandler struct {
	auth      *Auth
	sessions  *session.Store
	scheduler *scheduler.Scheduler

	mu      sync.Mutex
	pending map[string]time.Time
}

func NewAuthHandler(auth *Auth, sessions *session.Store, sched *scheduler.Scheduler) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		sessions:  sessions,
		scheduler: sched,
		pending:   make(map[string]time.Time),
	}
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	nonce := uuid.NewString()

	h.mu.Lock()
	for state, issuedAt := range h.pending {
		if time.Since(issuedAt) > stateNonceTTL {
			delete(h.pending, state)
		}
	}
	h.pending[nonce] = time.Now()
	h.mu.Unlock()

	log.Tracef("redirecting to Google auth URL with nonce: %s", nonce)
	http.Redirect(w, r, h.auth.AuthCodeURL(nonce), http.StatusFound)
}

func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	if code == "" {
		http.Error(w, "authorization code missing", http.StatusBadRequest)
		return
	}

	state := r.FormValue("state")
	h.mu.Lock()
	_, known := h.pending[state]
	delete(h.pending, state)
	h.mu.Unlock()
	if !known {
		http.Error(w, "unknown authorization state", http.StatusBadRequest)
		return
	}

	token, err := h.auth.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "failed to complete authentication", http.StatusInternalServerError)
		return
	}

	info, err := h.auth.UserInfo(r.Context(), token)
	if err != nil {
		http.Error(w, "failed to retrieve account information", http.StatusInternalServerError)
		return
	}

	sess := h.sessions.Create(info.Email, info.Email, token)
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
	})

	h.scheduler.Register(info.Email, token, info.Email)
	log.Infof("user authenticated: %s", info.Name)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.sessions.FromRequest(r); ok {
		h.scheduler.Unregister(sess.UserID)
		h.sessions.Delete(sess.ID)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
