package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avisobot/avisobot/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type serviceStub struct {
	response Response
	lastText string
}

func (s *serviceStub) ProcessMessage(_ context.Context, _ *oauth2.Token, text string) Response {
	s.lastText = text
	return s.response
}

func authenticatedRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	ctx := session.WithSession(r.Context(), &session.Session{
		ID:     "s-1",
		UserID: "ana@example.com",
		Token:  &oauth2.Token{AccessToken: "token-a"},
	})
	return r.WithContext(ctx)
}

func TestProcessMessageHandler(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		handler := NewHandler(&serviceStub{})
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hola"}`))

		handler.ProcessMessage(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authentication required")
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		handler := NewHandler(&serviceStub{})
		w := httptest.NewRecorder()

		handler.ProcessMessage(w, authenticatedRequest("{not json"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid request body format")
	})

	t.Run("rejects blank message", func(t *testing.T) {
		handler := NewHandler(&serviceStub{})
		w := httptest.NewRecorder()

		handler.ProcessMessage(w, authenticatedRequest(`{"message":"   "}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Message is required")
	})

	t.Run("delegates to the service", func(t *testing.T) {
		stub := &serviceStub{response: Response{Success: true, Message: "✅ Evento creado"}}
		handler := NewHandler(stub)
		w := httptest.NewRecorder()

		handler.ProcessMessage(w, authenticatedRequest(`{"message":"reunión con Juan mañana a las 3pm"}`))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "reunión con Juan mañana a las 3pm", stub.lastText)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), "✅ Evento creado")
	})
}
