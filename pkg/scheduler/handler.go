package scheduler

import (
	"encoding/json"
	"net/http"

	"github.com/avisobot/avisobot/internal/session"
)

type statusResponse struct {
	Authenticated   bool `json:"authenticated"`
	RegisteredUsers int  `json:"registeredUsers"`
}

type Handler struct {
	scheduler *Scheduler
}

func NewHandler(scheduler *Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

// Status reports whether the request carries an active session and how many
// users the scheduler currently tracks.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	_, err := session.Current(r.Context())
	response := statusResponse{
		Authenticated:   err == nil,
		RegisteredUsers: h.scheduler.RegisteredCount(),
	}
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
