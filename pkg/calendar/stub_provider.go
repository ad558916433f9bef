package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// StubProvider is an in-memory Provider for tests. Events and errors are
// looked up by the credential's access token, so each test user gets its own
// calendar by being given a distinct token.
type StubProvider struct {
	Upcoming map[string][]Event
	Today    map[string][]Event
	Errors   map[string]error
	Created  []Event
}

func NewStubProvider() *StubProvider {
	return &StubProvider{
		Upcoming: map[string][]Event{},
		Today:    map[string][]Event{},
		Errors:   map[string]error{},
	}
}

func (p *StubProvider) EventsInWindow(_ context.Context, cred *oauth2.Token, from, to time.Time) ([]Event, error) {
	if err := p.Errors[cred.AccessToken]; err != nil {
		return nil, err
	}
	var events []Event
	for _, event := range p.Upcoming[cred.AccessToken] {
		if event.StartTime.Before(to) && !event.StartTime.Before(from) {
			events = append(events, event)
		}
	}
	return events, nil
}

func (p *StubProvider) TodayEvents(_ context.Context, cred *oauth2.Token) ([]Event, error) {
	if err := p.Errors[cred.AccessToken]; err != nil {
		return nil, err
	}
	return p.Today[cred.AccessToken], nil
}

func (p *StubProvider) CreateEvent(_ context.Context, cred *oauth2.Token, event Event) (Event, error) {
	if err := p.Errors[cred.AccessToken]; err != nil {
		return Event{}, err
	}
	event.ID = uuid.NewString()
	p.Created = append(p.Created, event)
	return event, nil
}

// StubTaskStore is an in-memory TaskStore for tests.
type StubTaskStore struct {
	Tasks []Task
	Err   error
}

func (s *StubTaskStore) CreateTask(_ context.Context, _ *oauth2.Token, title, notes string) (Task, error) {
	if s.Err != nil {
		return Task{}, s.Err
	}
	task := Task{ID: uuid.NewString(), Title: title, Notes: notes}
	s.Tasks = append(s.Tasks, task)
	return task, nil
}

// SentMessage is a message recorded by StubNotifier.
type SentMessage struct {
	Destination string
	Message     string
}

// StubNotifier records sent messages. Failures maps a destination to the
// number of sends that should fail before delivery starts succeeding.
type StubNotifier struct {
	Sent     []SentMessage
	Failures map[string]int
	Err      error
}

var errStubDelivery = errors.New("stub delivery failure")

func NewStubNotifier() *StubNotifier {
	return &StubNotifier{Failures: map[string]int{}, Err: errStubDelivery}
}

func (n *StubNotifier) Send(_ context.Context, _ *oauth2.Token, destination, message string) error {
	if n.Failures[destination] > 0 {
		n.Failures[destination]--
		return n.Err
	}
	n.Sent = append(n.Sent, SentMessage{Destination: destination, Message: message})
	return nil
}
