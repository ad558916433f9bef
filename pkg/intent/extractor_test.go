package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	return loc
}

func TestSignals(t *testing.T) {
	extractor := NewExtractor(testLocation(t))

	tests := []struct {
		name    string
		message string
		hasDate bool
		hasTime bool
	}{
		{"date and time in Spanish", "reunión con Juan mañana a las 3pm", true, true},
		{"date and time in English", "meeting with Anna tomorrow at 3pm", true, true},
		{"weekday only", "almuerzo con papá el lunes", true, false},
		{"English weekday only", "call with the team on friday", true, false},
		{"time only", "gym 6pm", false, true},
		{"hour-unit marker counts as time", "revisar el horno en 20 h", false, true},
		{"no cues", "comprar leche", false, false},
		{"bare number is not a time cue", "comprar 2 boletos", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signals := extractor.Signals(tt.message)
			assert.Equal(t, tt.hasDate, signals.HasDate, "HasDate")
			assert.Equal(t, tt.hasTime, signals.HasTime, "HasTime")
		})
	}
}

func TestExtractTitle(t *testing.T) {
	loc := testLocation(t)
	extractor := NewExtractor(loc)
	now := time.Date(2025, time.January, 6, 10, 0, 0, 0, loc) // a Monday

	t.Run("action verb pattern captures text before date cue", func(t *testing.T) {
		parsed := extractor.Extract("recordar comprar flores mañana", now)
		assert.Equal(t, "comprar flores", parsed.Title)
	})

	t.Run("meeting pattern captures the counterpart", func(t *testing.T) {
		parsed := extractor.Extract("reunión con Juan mañana a las 3pm", now)
		assert.Equal(t, "Juan", parsed.Title)
	})

	t.Run("fallback truncates at time then date", func(t *testing.T) {
		parsed := extractor.Extract("cena familiar mañana 8pm", now)
		assert.Equal(t, "cena familiar", parsed.Title)
	})

	t.Run("action verb pattern captures text before today cue", func(t *testing.T) {
		parsed := extractor.Extract("crear: pagar la renta hoy", now)
		assert.Equal(t, "pagar la renta", parsed.Title)
	})

	t.Run("fallback strips leftover action words", func(t *testing.T) {
		parsed := extractor.Extract("agregar pagar la renta 6pm", now)
		assert.Equal(t, "pagar la renta", parsed.Title)
	})

	t.Run("message with nothing but a time yields an empty title", func(t *testing.T) {
		parsed := extractor.Extract("3pm", now)
		assert.Empty(t, parsed.Title)
	})
}

func TestExtractDateResolution(t *testing.T) {
	loc := testLocation(t)
	extractor := NewExtractor(loc)

	t.Run("tomorrow advances one day", func(t *testing.T) {
		now := time.Date(2025, time.January, 6, 10, 0, 0, 0, loc)
		parsed := extractor.Extract("cita con el dentista mañana", now)
		assert.Equal(t, 7, parsed.Start.Day())
	})

	t.Run("today keeps the current day", func(t *testing.T) {
		now := time.Date(2025, time.January, 6, 10, 0, 0, 0, loc)
		parsed := extractor.Extract("llamada con soporte hoy a las 4pm", now)
		assert.Equal(t, 6, parsed.Start.Day())
	})

	t.Run("weekday resolves to its next occurrence", func(t *testing.T) {
		// Wednesday; "lunes" is 1 - 3 = -2, so +7 = 5 days ahead.
		now := time.Date(2025, time.January, 1, 10, 0, 0, 0, loc)
		parsed := extractor.Extract("almuerzo con papá el lunes", now)
		assert.Equal(t, time.Monday, parsed.Start.Weekday())
		assert.Equal(t, 6, parsed.Start.Day())
	})

	t.Run("same weekday as today lands a full week ahead", func(t *testing.T) {
		now := time.Date(2025, time.January, 6, 10, 0, 0, 0, loc) // Monday
		parsed := extractor.Extract("retro del equipo el lunes", now)
		assert.Equal(t, 13, parsed.Start.Day())
	})

	t.Run("no date cue silently stays on today", func(t *testing.T) {
		now := time.Date(2025, time.January, 6, 10, 0, 0, 0, loc)
		parsed := extractor.Extract("revisar contrato 5pm", now)
		assert.Equal(t, 6, parsed.Start.Day())
	})
}

func TestExtractTimeResolution(t *testing.T) {
	loc := testLocation(t)
	extractor := NewExtractor(loc)
	now := time.Date(2025, time.January, 6, 10, 0, 0, 0, loc)

	tests := []struct {
		name    string
		message string
		hour    int
		minute  int
	}{
		{"pm marker converts to 24h", "revisar informes hoy 3pm", 15, 0},
		{"12am maps to midnight", "cierre de sistema hoy 12am", 0, 0},
		{"12pm stays noon", "comida con clientes hoy 12pm", 12, 0},
		{"bare number is taken as the hour", "comprar boletos hoy 9", 9, 0},
		{"already 24h with minutes", "junta de equipo hoy 15:30", 15, 30},
		{"hour-unit marker leaves hour unchanged", "tomar medicina hoy 18 hrs", 18, 0},
		{"no time token defaults to nine", "ir al gimnasio mañana", 9, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := extractor.Extract(tt.message, now)
			assert.Equal(t, tt.hour, parsed.Start.Hour())
			assert.Equal(t, tt.minute, parsed.Start.Minute())
		})
	}
}

func TestExtractEndToEnd(t *testing.T) {
	loc := testLocation(t)
	extractor := NewExtractor(loc)

	t.Run("full Spanish event message", func(t *testing.T) {
		now := time.Date(2025, time.January, 6, 10, 0, 0, 0, loc) // Monday
		parsed := extractor.Extract("reunión con Juan mañana a las 3pm", now)

		assert.Equal(t, KindEvent, parsed.Kind)
		assert.Equal(t, "Juan", parsed.Title)
		assert.Equal(t, time.Date(2025, time.January, 7, 15, 0, 0, 0, loc), parsed.Start)
		assert.Equal(t, time.Date(2025, time.January, 7, 16, 0, 0, 0, loc), parsed.End)
		assert.Equal(t, "reunión con Juan mañana a las 3pm", parsed.RawText)
	})

	t.Run("event duration is always one hour", func(t *testing.T) {
		now := time.Date(2025, time.January, 6, 10, 0, 0, 0, loc)
		for _, message := range []string{
			"reunión con Juan mañana a las 3pm",
			"meeting with Anna on friday at 11am",
			"cena familiar hoy 21:15",
		} {
			parsed := extractor.Extract(message, now)
			assert.Equal(t, EventDuration, parsed.End.Sub(parsed.Start), message)
		}
	})
}

func TestExtractTask(t *testing.T) {
	extractor := NewExtractor(testLocation(t))

	t.Run("plain message is kept as the title", func(t *testing.T) {
		parsed := extractor.ExtractTask("comprar leche")
		assert.Equal(t, KindTask, parsed.Kind)
		assert.Equal(t, "comprar leche", parsed.Title)
		assert.True(t, parsed.Start.IsZero())
		assert.True(t, parsed.End.IsZero())
	})

	t.Run("leading action verb is stripped", func(t *testing.T) {
		parsed := extractor.ExtractTask("recordar: comprar leche")
		assert.Equal(t, "comprar leche", parsed.Title)
	})

	t.Run("raw text is retained", func(t *testing.T) {
		parsed := extractor.ExtractTask("tarea pagar el agua")
		assert.Equal(t, "pagar el agua", parsed.Title)
		assert.Equal(t, "tarea pagar el agua", parsed.RawText)
	})
}
