package google

import (
	"context"
	"fmt"
	"time"

	"github.com/avisobot/avisobot/internal/utils"
	"github.com/avisobot/avisobot/pkg/calendar"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarProvider implements calendar.Provider on the user's primary Google
// Calendar.
type CalendarProvider struct {
	auth  *Auth
	loc   *time.Location
	clock utils.Clock
}

func NewCalendarProvider(auth *Auth, loc *time.Location, clock utils.Clock) *CalendarProvider {
	return &CalendarProvider{auth: auth, loc: loc, clock: clock}
}

func (p *CalendarProvider) service(ctx context.Context, cred *oauth2.Token) (*gcal.Service, error) {
	service, err := gcal.NewService(ctx, option.WithHTTPClient(p.auth.client(ctx, cred)))
	if err != nil {
		err := fmt.Errorf("unable to create Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}

func (p *CalendarProvider) EventsInWindow(ctx context.Context, cred *oauth2.Token, from, to time.Time) ([]calendar.Event, error) {
	service, err := p.service(ctx, cred)
	if err != nil {
		return nil, err
	}

	result, err := service.Events.List("primary").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve events from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}

	return p.googleEventsToEvents(result.Items), nil
}

func (p *CalendarProvider) TodayEvents(ctx context.Context, cred *oauth2.Token) ([]calendar.Event, error) {
	day := p.clock.Now().In(p.loc)
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, p.loc)
	endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, p.loc)
	return p.EventsInWindow(ctx, cred, startOfDay, endOfDay)
}

func (p *CalendarProvider) CreateEvent(ctx context.Context, cred *oauth2.Token, event calendar.Event) (calendar.Event, error) {
	log.Debugf("creating event: %q at %s", event.Title, event.StartTime)
	service, err := p.service(ctx, cred)
	if err != nil {
		return calendar.Event{}, err
	}

	inserted, err := service.Events.Insert("primary", &gcal.Event{
		Summary:     event.Title,
		Description: event.Description,
		Location:    event.Location,
		Start: &gcal.EventDateTime{
			DateTime: event.StartTime.Format(time.RFC3339),
			TimeZone: p.loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: event.EndTime.Format(time.RFC3339),
			TimeZone: p.loc.String(),
		},
	}).Do()
	if err != nil {
		err := fmt.Errorf("unable to insert event in Google Calendar: %v", err)
		log.Error(err)
		return calendar.Event{}, err
	}

	event.ID = inserted.Id
	return event, nil
}

func (p *CalendarProvider) googleEventsToEvents(items []*gcal.Event) []calendar.Event {
	events := make([]calendar.Event, 0, len(items))
	for _, item := range items {
		if item.Start == nil || item.Start.DateTime == "" {
			// All-day events carry only a date; they never trigger reminders.
			log.Debugf("skipping all-day event: %s", item.Summary)
			continue
		}
		startTime, _ := time.Parse(time.RFC3339, item.Start.DateTime)
		var endTime time.Time
		if item.End != nil {
			endTime, _ = time.Parse(time.RFC3339, item.End.DateTime)
		}

		attendees := make([]string, 0, len(item.Attendees))
		for _, attendee := range item.Attendees {
			if attendee.DisplayName != "" {
				attendees = append(attendees, attendee.DisplayName)
			} else {
				attendees = append(attendees, attendee.Email)
			}
		}

		events = append(events, calendar.Event{
			ID:          item.Id,
			Title:       item.Summary,
			Description: item.Description,
			StartTime:   startTime,
			EndTime:     endTime,
			Location:    item.Location,
			Attendees:   attendees,
		})
	}
	return events
}
