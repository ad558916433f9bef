package intent

import (
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// EventDuration is the fixed length of every extracted event.
	EventDuration = time.Hour
	// MinTitleLength is the minimum number of characters a title needs for
	// the intent to be usable; shorter titles are rejected by the caller.
	MinTitleLength = 2
	// defaultEventHour is the local hour used when no time token is present.
	defaultEventHour = 9
)

// Extractor turns free-text chat messages into structured event or task
// intents. It is stateless and safe for concurrent use; all timestamps are
// resolved in the configured location.
type Extractor struct {
	loc *time.Location
}

func NewExtractor(loc *time.Location) *Extractor {
	return &Extractor{loc: loc}
}

// Signals reports which scheduling cues the message contains. It is a pure
// predicate; no normalization or resolution happens here.
func (e *Extractor) Signals(text string) Signals {
	lower := strings.ToLower(text)
	signals := Signals{HasTime: timeSignalRe.MatchString(text)}
	for _, rd := range relativeDays {
		if strings.Contains(lower, rd.name) {
			signals.HasDate = true
			break
		}
	}
	if !signals.HasDate {
		for _, wd := range weekdayNames {
			if strings.Contains(lower, wd.name) {
				signals.HasDate = true
				break
			}
		}
	}
	return signals
}

// Extract produces an event intent from the message. It never fails: every
// unresolved part falls back to a default (today, 09:00). Callers reject
// intents whose title is shorter than MinTitleLength.
func (e *Extractor) Extract(text string, now time.Time) ParsedIntent {
	title := matchTitle(text)
	if title == "" {
		title = fallbackTitle(text)
	}

	day := e.resolveDate(text, now)
	hour, minute := resolveTime(text)

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, e.loc)
	return ParsedIntent{
		Kind:    KindEvent,
		Title:   title,
		Start:   start,
		End:     start.Add(EventDuration),
		RawText: text,
	}
}

// ExtractTask produces a task intent: the leading action verb is stripped and
// the full remaining text becomes the title. Tasks are undated.
func (e *Extractor) ExtractTask(text string) ParsedIntent {
	title := strings.TrimSpace(taskPrefixRe.ReplaceAllString(text, ""))
	return ParsedIntent{
		Kind:    KindTask,
		Title:   title,
		RawText: text,
	}
}

func matchTitle(text string) string {
	for _, m := range titleMatchers {
		if match := m.re.FindStringSubmatch(text); match != nil {
			log.Tracef("title matcher %q matched", m.name)
			return strings.TrimSpace(match[1])
		}
	}
	return ""
}

// fallbackTitle takes the message up to the first time-like token, then up to
// the first date cue, and strips leftover action words. The time cut must run
// before the date cut.
func fallbackTitle(text string) string {
	beforeTime := timeCutRe.Split(text, 2)[0]
	beforeDate := dateCutRe.Split(beforeTime, 2)[0]
	return strings.TrimSpace(actionWordRe.ReplaceAllString(beforeDate, ""))
}

// resolveDate starts from today and applies, in priority order: explicit
// tomorrow, explicit today, next occurrence of a named weekday. A message
// with no date cue silently stays on today.
func (e *Extractor) resolveDate(text string, now time.Time) time.Time {
	day := now.In(e.loc)
	lower := strings.ToLower(text)

	for _, rd := range relativeDays {
		if strings.Contains(lower, rd.name) {
			return day.AddDate(0, 0, rd.offset)
		}
	}

	for _, wd := range weekdayNames {
		if strings.Contains(lower, wd.name) {
			daysUntil := int(wd.day) - int(day.Weekday())
			if daysUntil <= 0 {
				daysUntil += 7
			}
			return day.AddDate(0, 0, daysUntil)
		}
	}

	return day
}

// resolveTime converts the first numeric time token to 24-hour form. A pm
// marker adds 12 below noon, an am marker maps 12 to 0, and an hour-unit
// marker or no marker leaves the hour unchanged. Without any token the time
// defaults to 09:00.
func resolveTime(text string) (hour, minute int) {
	match := timeTokenRe.FindStringSubmatch(text)
	if match == nil {
		return defaultEventHour, 0
	}

	hour, _ = strconv.Atoi(match[1])
	if match[2] != "" {
		minute, _ = strconv.Atoi(match[2])
	}

	marker := strings.ToLower(match[3])
	switch {
	case strings.Contains(marker, "pm") && hour < 12:
		hour += 12
	case strings.Contains(marker, "am") && hour == 12:
		hour = 0
	}
	return hour, minute
}
