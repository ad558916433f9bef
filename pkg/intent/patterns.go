package intent

import (
	"regexp"
	"time"
)

type language string

const (
	spanish language = "es"
	english language = "en"
)

// weekdayName is one row of the weekday lookup table. One row per name and
// language so that adding a language only adds rows. Order matters: the first
// name contained in the message decides the weekday.
type weekdayName struct {
	name string
	lang language
	day  time.Weekday
}

var weekdayNames = []weekdayName{
	{"lunes", spanish, time.Monday},
	{"monday", english, time.Monday},
	{"martes", spanish, time.Tuesday},
	{"tuesday", english, time.Tuesday},
	{"miércoles", spanish, time.Wednesday},
	{"miercoles", spanish, time.Wednesday},
	{"wednesday", english, time.Wednesday},
	{"jueves", spanish, time.Thursday},
	{"thursday", english, time.Thursday},
	{"viernes", spanish, time.Friday},
	{"friday", english, time.Friday},
	{"sábado", spanish, time.Saturday},
	{"sabado", spanish, time.Saturday},
	{"saturday", english, time.Saturday},
	{"domingo", spanish, time.Sunday},
	{"sunday", english, time.Sunday},
}

// relativeDays are checked before the weekday table; "tomorrow" wins over
// "today", which wins over weekday names.
var relativeDays = []struct {
	name   string
	lang   language
	offset int
}{
	{"mañana", spanish, 1},
	{"tomorrow", english, 1},
	{"hoy", spanish, 0},
	{"today", english, 0},
}

// timeSignalRe detects a time cue: digits followed by an am/pm or hour-unit
// marker. Bare digits do not count as a time signal.
var timeSignalRe = regexp.MustCompile(`(?i)\d{1,2}:?\d{0,2}\s*(am|pm|hrs|h)`)

// timeTokenRe extracts the numeric time token during resolution. Here the
// marker is optional: a bare number still resolves to an hour.
var timeTokenRe = regexp.MustCompile(`(?i)(\d{1,2}):?(\d{2})?\s*(am|pm|hrs|h)?`)

// titleMatcher is one step of the ordered title extraction chain.
type titleMatcher struct {
	name string
	re   *regexp.Regexp
}

// titleMatchers are tried in order; the first match wins and its captured
// group becomes the title.
var titleMatchers = []titleMatcher{
	{
		name: "action-verb",
		re:   regexp.MustCompile(`(?i)(?:recordar|recordatorio|agregar|crear|evento|remind|reminder|add|create|event)[\s:]+(.*?)\s+(?:mañana|hoy|el|a las|para|en|tomorrow|today|at|on|for)`),
	},
	{
		name: "meeting",
		re:   regexp.MustCompile(`(?i)(?:reunión|reunion|junta|cita|llamada|meeting|appointment|call)\s+(?:con\s+|with\s+)?([^0-9]+?)\s+(?:mañana|hoy|el|a las|tomorrow|today|at)`),
	},
}

// timeCutRe truncates fallback titles at the first time-like token. The time
// cut is applied before the date cut.
var timeCutRe = regexp.MustCompile(`(?i)\d{1,2}:?\d{0,2}\s*(am|pm|hrs)?`)

// dateCutRe truncates fallback titles at the first date cue word.
var dateCutRe = regexp.MustCompile(`(?i)mañana|hoy|tomorrow|today|lunes|martes|miércoles|miercoles|jueves|viernes|sábado|sabado|domingo|monday|tuesday|wednesday|thursday|friday|saturday|sunday`)

// actionWordRe strips leftover action verbs and colons from fallback titles.
var actionWordRe = regexp.MustCompile(`(?i)recordar|recordatorio|agregar|crear|evento|remind|reminder|add|create|event|:`)

// taskPrefixRe strips the leading action verb from task titles. Tasks keep
// the full remaining text; no date or time truncation is applied.
var taskPrefixRe = regexp.MustCompile(`(?i)^(?:recordar|recordatorio|agregar|crear|tarea|remind|reminder|add|create|task)[:\s]*`)
