package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/avisobot/avisobot/internal/rest"
	"github.com/avisobot/avisobot/internal/session"
	log "github.com/sirupsen/logrus"
)

type messageRequest struct {
	Message string `json:"message"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ProcessMessage handles POST /api/chat for the authenticated user.
func (h *Handler) ProcessMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sess, err := session.Current(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Authentication required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	var request messageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	if strings.TrimSpace(request.Message) == "" {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Message is required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	log.Debugf("processing chat message for %s", sess.UserID)
	response := h.service.ProcessMessage(r.Context(), sess.Token, request.Message)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
