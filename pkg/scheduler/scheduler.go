package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avisobot/avisobot/internal/utils"
	"github.com/avisobot/avisobot/pkg/calendar"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// notifiedRetentionMargin is added to the look-ahead window when sweeping
// dedup entries, so an event still inside its window cannot be re-notified.
const notifiedRetentionMargin = 5 * time.Minute

// RegisteredUser is one authenticated user tracked by the scheduler. The
// credential is opaque: it is forwarded to the provider and notifier
// unchanged and never inspected.
type RegisteredUser struct {
	UserID         string
	Credential     *oauth2.Token
	ContactAddress string
	LastUpdate     time.Time
}

type Config struct {
	LookAhead    time.Duration
	PollInterval time.Duration
	StartupDelay time.Duration
	DigestHour   int
	MaxNotified  int
}

// Scheduler polls registered users' calendars and sends at-most-once
// reminders for upcoming events, plus a daily digest. It owns the user
// registry and the dedup set exclusively.
type Scheduler struct {
	mu       sync.RWMutex
	users    map[string]RegisteredUser
	notified *notifiedSet

	provider calendar.Provider
	notifier calendar.Notifier
	clock    utils.Clock
	loc      *time.Location
	cfg      Config
}

func New(provider calendar.Provider, notifier calendar.Notifier, clock utils.Clock, loc *time.Location, cfg Config) *Scheduler {
	return &Scheduler{
		users:    make(map[string]RegisteredUser),
		notified: newNotifiedSet(cfg.MaxNotified),
		provider: provider,
		notifier: notifier,
		clock:    clock,
		loc:      loc,
		cfg:      cfg,
	}
}

// Register inserts or replaces a user. Idempotent.
func (s *Scheduler) Register(userID string, cred *oauth2.Token, contactAddress string) {
	s.mu.Lock()
	s.users[userID] = RegisteredUser{
		UserID:         userID,
		Credential:     cred,
		ContactAddress: contactAddress,
		LastUpdate:     s.clock.Now(),
	}
	s.mu.Unlock()
	log.Infof("user registered: %s", userID)
}

// Unregister removes a user. Removing an unknown user is a no-op.
func (s *Scheduler) Unregister(userID string) {
	s.mu.Lock()
	delete(s.users, userID)
	s.mu.Unlock()
	log.Infof("user unregistered: %s", userID)
}

// RefreshCredential updates a registered user's credential in place. If the
// user was removed in the meantime this is a silent no-op.
func (s *Scheduler) RefreshCredential(userID string, cred *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		log.Debugf("credential refresh for unknown user %s ignored", userID)
		return
	}
	user.Credential = cred
	user.LastUpdate = s.clock.Now()
	s.users[userID] = user
}

func (s *Scheduler) RegisteredCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *Scheduler) snapshotUsers() []RegisteredUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]RegisteredUser, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users
}

// PollOnce checks every registered user's upcoming events and sends a
// reminder for each event not yet notified. A failure for one user is logged
// and does not affect the others. After the pass, stale dedup entries are
// swept.
func (s *Scheduler) PollOnce(ctx context.Context) {
	log.Debug("checking upcoming events")
	now := s.clock.Now()

	for _, user := range s.snapshotUsers() {
		if err := s.remindUser(ctx, user, now); err != nil {
			log.Errorf("failed to process events for %s: %v", user.UserID, err)
		}
	}

	removed := s.notified.Sweep(now.Add(-(s.cfg.LookAhead + notifiedRetentionMargin)))
	if removed > 0 {
		log.Debugf("swept %d stale notification entries", removed)
	}
}

func (s *Scheduler) remindUser(ctx context.Context, user RegisteredUser, now time.Time) error {
	events, err := s.provider.EventsInWindow(ctx, user.Credential, now, now.Add(s.cfg.LookAhead))
	if err != nil {
		return fmt.Errorf("fetching upcoming events: %w", err)
	}

	for _, event := range events {
		if !s.notified.Claim(user.UserID, event.ID, now) {
			continue
		}
		message := renderReminder(event, now, s.loc)
		if err := s.notifier.Send(ctx, user.Credential, user.ContactAddress, message); err != nil {
			// Keep the pair pending so the next poll retries it.
			s.notified.Release(user.UserID, event.ID)
			log.Errorf("failed to send reminder for event %s to %s: %v", event.ID, user.UserID, err)
		}
	}

	log.Debugf("processed %d upcoming events for %s", len(events), user.UserID)
	return nil
}

// DailyDigest sends every registered user one consolidated message with the
// current day's events. Failures are isolated per user; a failed digest is
// not retried until the next day.
func (s *Scheduler) DailyDigest(ctx context.Context) {
	log.Debug("sending daily digests")

	for _, user := range s.snapshotUsers() {
		events, err := s.provider.TodayEvents(ctx, user.Credential)
		if err != nil {
			log.Errorf("failed to fetch today's events for %s: %v", user.UserID, err)
			continue
		}
		message := renderDigest(events, s.loc)
		if err := s.notifier.Send(ctx, user.Credential, user.ContactAddress, message); err != nil {
			log.Errorf("failed to send daily digest to %s: %v", user.UserID, err)
			continue
		}
		log.Debugf("daily digest sent to %s", user.UserID)
	}
}

// Run drives the scheduler until the context is cancelled: an immediate poll
// after a short startup delay, recurring polls on the configured interval,
// and a digest once the local wall clock reaches the digest hour.
func (s *Scheduler) Run(ctx context.Context) {
	log.Infof("scheduler started: polling every %s, look-ahead %s, digest at %02d:00",
		s.cfg.PollInterval, s.cfg.LookAhead, s.cfg.DigestHour)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	digest := time.NewTimer(s.untilNextDigest())
	defer digest.Stop()

	// First check runs shortly after startup instead of waiting a full cycle.
	select {
	case <-ctx.Done():
		return
	case <-time.After(s.cfg.StartupDelay):
	}
	s.PollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.PollOnce(ctx)
		case <-digest.C:
			s.DailyDigest(ctx)
			digest.Reset(s.untilNextDigest())
		}
	}
}

func (s *Scheduler) untilNextDigest() time.Duration {
	now := s.clock.Now().In(s.loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.DigestHour, 0, 0, 0, s.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
