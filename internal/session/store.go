package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/avisobot/avisobot/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const CookieName = "avisobot_session"

var ErrNoSession = errors.New("no active session")

type contextKey string

const sessionKey contextKey = "session"

// Session is an authenticated browser session. The token is kept only for the
// lifetime of the session; nothing is persisted across restarts.
type Session struct {
	ID        string
	UserID    string
	Email     string
	Token     *oauth2.Token
	ExpiresAt time.Time
}

// Store is an in-memory session store with a fixed TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	clock    utils.Clock
}

func NewStore(ttl time.Duration, clock utils.Clock) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		clock:    clock,
	}
}

func (s *Store) Create(userID, email string, token *oauth2.Token) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     email,
		Token:     token,
		ExpiresAt: s.clock.Now().Add(s.ttl),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	log.Debugf("session created for %s", userID)
	return sess
}

// Get returns a copy of the session so callers cannot race on shared state.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	if ok {
		copied := *sess
		sess = &copied
	}
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.clock.Now().After(sess.ExpiresAt) {
		s.Delete(id)
		return nil, false
	}
	return sess, true
}

// UpdateToken replaces the token of an existing session, e.g. after a
// refresh. Unknown session ids are ignored.
func (s *Store) UpdateToken(id string, token *oauth2.Token) {
	s.mu.Lock()
	if sess, ok := s.sessions[id]; ok {
		sess.Token = token
	}
	s.mu.Unlock()
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// FromRequest resolves the session referenced by the request cookie, if any.
func (s *Store) FromRequest(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	return s.Get(cookie.Value)
}

func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// Current retrieves the session from the context. Returns ErrNoSession when
// the request was not authenticated.
func Current(ctx context.Context) (*Session, error) {
	sess, ok := ctx.Value(sessionKey).(*Session)
	if !ok {
		return nil, ErrNoSession
	}
	return sess, nil
}
