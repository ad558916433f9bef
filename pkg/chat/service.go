package chat

import (
	"context"
	"unicode/utf8"

	"github.com/avisobot/avisobot/internal/utils"
	"github.com/avisobot/avisobot/pkg/calendar"
	"github.com/avisobot/avisobot/pkg/intent"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Response is the user-facing outcome of processing one chat message.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Service interface {
	ProcessMessage(ctx context.Context, cred *oauth2.Token, text string) Response
}

// ServiceImpl classifies a chat message and materializes it as a calendar
// event or a standalone task. Messages with both a date and a time cue become
// events, messages with neither become tasks, and ambiguous messages with
// exactly one cue default to events.
type ServiceImpl struct {
	extractor *intent.Extractor
	provider  calendar.Provider
	tasks     calendar.TaskStore
	clock     utils.Clock
}

func NewService(extractor *intent.Extractor, provider calendar.Provider, tasks calendar.TaskStore, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		extractor: extractor,
		provider:  provider,
		tasks:     tasks,
		clock:     clock,
	}
}

func (s *ServiceImpl) ProcessMessage(ctx context.Context, cred *oauth2.Token, text string) Response {
	signals := s.extractor.Signals(text)
	if signals.None() {
		return s.createTask(ctx, cred, text)
	}
	return s.createEvent(ctx, cred, text)
}

func (s *ServiceImpl) createEvent(ctx context.Context, cred *oauth2.Token, text string) Response {
	parsed := s.extractor.Extract(text, s.clock.Now())
	if utf8.RuneCountInString(parsed.Title) < intent.MinTitleLength {
		return Response{
			Error: "No pude entender el evento. Por favor incluye más detalles.",
		}
	}

	event, err := s.provider.CreateEvent(ctx, cred, calendar.Event{
		Title:       parsed.Title,
		Description: parsed.RawText,
		StartTime:   parsed.Start,
		EndTime:     parsed.End,
	})
	if err != nil {
		log.Errorf("failed to create event: %v", err)
		return Response{
			Error: "Hubo un error al crear el evento. Intenta de nuevo.",
		}
	}

	log.Infof("event created from chat: %s (%s)", event.Title, event.StartTime)
	return Response{
		Success: true,
		Message: "✅ Evento creado: \"" + event.Title + "\" - " + event.StartTime.Format("02/01/2006 15:04"),
	}
}

func (s *ServiceImpl) createTask(ctx context.Context, cred *oauth2.Token, text string) Response {
	parsed := s.extractor.ExtractTask(text)
	if utf8.RuneCountInString(parsed.Title) < intent.MinTitleLength {
		return Response{
			Error: "Por favor incluye más detalles sobre la tarea.",
		}
	}

	task, err := s.tasks.CreateTask(ctx, cred, parsed.Title, parsed.RawText)
	if err != nil {
		log.Errorf("failed to create task: %v", err)
		return Response{
			Error: "Hubo un error al crear el recordatorio. Intenta de nuevo.",
		}
	}

	log.Infof("task created from chat: %s", task.Title)
	return Response{
		Success: true,
		Message: "✅ Recordatorio creado: \"" + task.Title + "\"",
	}
}
