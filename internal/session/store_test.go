package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avisobot/avisobot/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testStore() (*Store, *utils.MockClock) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)}
	return NewStore(24*time.Hour, clock), clock
}

func TestStoreCreateAndGet(t *testing.T) {
	store, _ := testStore()
	token := &oauth2.Token{AccessToken: "token-a"}

	created := store.Create("ana@example.com", "ana@example.com", token)
	require.NotEmpty(t, created.ID)

	sess, ok := store.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", sess.UserID)
	assert.Equal(t, "ana@example.com", sess.Email)
	assert.Equal(t, "token-a", sess.Token.AccessToken)

	t.Run("unknown id", func(t *testing.T) {
		_, ok := store.Get("missing")
		assert.False(t, ok)
	})

	t.Run("returned session is a copy", func(t *testing.T) {
		sess.Email = "mutated@example.com"
		again, ok := store.Get(created.ID)
		require.True(t, ok)
		assert.Equal(t, "ana@example.com", again.Email)
	})
}

func TestStoreExpiry(t *testing.T) {
	store, clock := testStore()
	created := store.Create("ana@example.com", "ana@example.com", &oauth2.Token{AccessToken: "token-a"})

	clock.Advance(24*time.Hour + time.Minute)

	_, ok := store.Get(created.ID)
	assert.False(t, ok, "expired session must not resolve")

	// The expired entry is removed, not just hidden.
	clock.Advance(-2 * time.Hour)
	_, ok = store.Get(created.ID)
	assert.False(t, ok)
}

func TestStoreUpdateToken(t *testing.T) {
	store, _ := testStore()
	created := store.Create("ana@example.com", "ana@example.com", &oauth2.Token{AccessToken: "stale"})

	store.UpdateToken(created.ID, &oauth2.Token{AccessToken: "rotated"})

	sess, ok := store.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "rotated", sess.Token.AccessToken)

	// Unknown ids are ignored.
	store.UpdateToken("missing", &oauth2.Token{AccessToken: "whatever"})
}

func TestStoreDelete(t *testing.T) {
	store, _ := testStore()
	created := store.Create("ana@example.com", "ana@example.com", &oauth2.Token{AccessToken: "token-a"})

	store.Delete(created.ID)
	_, ok := store.Get(created.ID)
	assert.False(t, ok)

	store.Delete("missing")
}

func TestStoreFromRequest(t *testing.T) {
	store, _ := testStore()
	created := store.Create("ana@example.com", "ana@example.com", &oauth2.Token{AccessToken: "token-a"})

	t.Run("valid cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: created.ID})
		sess, ok := store.FromRequest(r)
		require.True(t, ok)
		assert.Equal(t, created.ID, sess.ID)
	})

	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := store.FromRequest(r)
		assert.False(t, ok)
	})
}

func TestCurrent(t *testing.T) {
	t.Run("with session", func(t *testing.T) {
		ctx := WithSession(context.Background(), &Session{ID: "s-1", UserID: "ana@example.com"})
		sess, err := Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", sess.UserID)
	})

	t.Run("without session", func(t *testing.T) {
		_, err := Current(context.Background())
		assert.ErrorIs(t, err, ErrNoSession)
	})
}
