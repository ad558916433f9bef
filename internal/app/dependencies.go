package app

import (
	"fmt"
	"time"

	"github.com/avisobot/avisobot/internal/config"
	"github.com/avisobot/avisobot/internal/session"
	"github.com/avisobot/avisobot/internal/utils"
	"github.com/avisobot/avisobot/pkg/chat"
	"github.com/avisobot/avisobot/pkg/google"
	"github.com/avisobot/avisobot/pkg/intent"
	"github.com/avisobot/avisobot/pkg/scheduler"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Sessions *session.Store

	GoogleAuth       *google.Auth
	AuthHandler      *google.AuthHandler
	CalendarProvider *google.CalendarProvider
	TaskStore        *google.TaskStore
	Notifier         *google.GmailNotifier
	EventsHandler    *google.Handler

	Extractor   *intent.Extractor
	ChatService chat.Service
	ChatHandler *chat.Handler

	Scheduler        *scheduler.Scheduler
	SchedulerHandler *scheduler.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("could not load location for timezone %s: %w", cfg.Timezone, err)
	}

	deps.Clock = &utils.SystemClock{}
	deps.Sessions = session.NewStore(time.Duration(cfg.Server.SessionTTLHours)*time.Hour, deps.Clock)

	deps.GoogleAuth = google.NewAuth(cfg)
	deps.CalendarProvider = google.NewCalendarProvider(deps.GoogleAuth, loc, deps.Clock)
	deps.TaskStore = google.NewTaskStore(deps.GoogleAuth)
	deps.Notifier = google.NewGmailNotifier(deps.GoogleAuth)

	deps.Scheduler = scheduler.New(deps.CalendarProvider, deps.Notifier, deps.Clock, loc, scheduler.Config{
		LookAhead:    time.Duration(cfg.Reminders.LookAheadMinutes) * time.Minute,
		PollInterval: time.Duration(cfg.Reminders.CheckIntervalMinutes) * time.Minute,
		StartupDelay: time.Duration(cfg.Reminders.StartupDelaySeconds) * time.Second,
		DigestHour:   cfg.Reminders.DigestHour,
		MaxNotified:  cfg.Reminders.MaxNotified,
	})
	deps.SchedulerHandler = scheduler.NewHandler(deps.Scheduler)

	deps.AuthHandler = google.NewAuthHandler(deps.GoogleAuth, deps.Sessions, deps.Scheduler)
	deps.EventsHandler = google.NewHandler(deps.CalendarProvider, deps.GoogleAuth, deps.Sessions, deps.Scheduler)

	deps.Extractor = intent.NewExtractor(loc)
	deps.ChatService = chat.NewService(deps.Extractor, deps.CalendarProvider, deps.TaskStore, deps.Clock)
	deps.ChatHandler = chat.NewHandler(deps.ChatService)

	return deps, nil
}
