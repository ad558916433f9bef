package google

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avisobot/avisobot/internal/rest"
	"github.com/avisobot/avisobot/internal/session"
	"github.com/avisobot/avisobot/pkg/scheduler"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Location  string    `json:"location,omitempty"`
	Attendees int       `json:"attendees,omitempty"`
}

type Handler struct {
	provider  *CalendarProvider
	auth      *Auth
	sessions  *session.Store
	scheduler *scheduler.Scheduler
}

func NewHandler(provider *CalendarProvider, auth *Auth, sessions *session.Store, sched *scheduler.Scheduler) *Handler {
	return &Handler{provider: provider, auth: auth, sessions: sessions, scheduler: sched}
}

// TodayEvents returns the authenticated user's events for the current day.
// The token is refreshed opportunistically; a rotated token is propagated to
// the session store and the scheduler registry.
func (h *Handler) TodayEvents(w http.ResponseWriter, r *http.Request) {
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

	token := sess.Token
	if fresh, refreshErr := h.auth.Refresh(r.Context(), token); refreshErr == nil {
		if fresh.AccessToken != token.AccessToken {
			log.Debugf("token rotated for %s", sess.UserID)
			h.sessions.UpdateToken(sess.ID, fresh)
			h.scheduler.RefreshCredential(sess.UserID, fresh)
		}
		token = fresh
	}

	events, err := h.provider.TodayEvents(r.Context(), token)
	if err != nil {
		log.Errorf("failed to fetch today's events for %s: %v", sess.UserID, err)
		w.WriteHeader(http.StatusInternalServerError)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Failed to retrieve calendar events",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, EventDTO{
			Title:     event.Title,
			Start:     event.StartTime,
			End:       event.EndTime,
			Location:  event.Location,
			Attendees: len(event.Attendees),
		})
	}
	if encodeErr := json.NewEncoder(w).Encode(dtos); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
