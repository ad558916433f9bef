package calendar

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Event is a calendar event as returned by the provider. Events are transient:
// they live only for the duration of the poll cycle that fetched them.
type Event struct {
	ID          string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	Attendees   []string
}

// Task is an undated to-do entry in the user's task list.
type Task struct {
	ID    string
	Title string
	Notes string
}

// Provider gives access to a user's calendar. The credential is the opaque
// token bundle issued at registration time and is forwarded unchanged.
type Provider interface {
	EventsInWindow(ctx context.Context, cred *oauth2.Token, from, to time.Time) ([]Event, error)
	TodayEvents(ctx context.Context, cred *oauth2.Token) ([]Event, error)
	CreateEvent(ctx context.Context, cred *oauth2.Token, event Event) (Event, error)
}

// TaskStore creates standalone tasks in the user's task list.
type TaskStore interface {
	CreateTask(ctx context.Context, cred *oauth2.Token, title, notes string) (Task, error)
}

// Notifier delivers a rendered message to a destination address. A non-nil
// error means the message was not delivered; callers decide whether to retry.
type Notifier interface {
	Send(ctx context.Context, cred *oauth2.Token, destination, message string) error
}
