package scheduler

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/avisobot/avisobot/pkg/calendar"
)

const maxAttendeesShown = 5

// renderReminder builds the human-readable reminder for one upcoming event.
func renderReminder(event calendar.Event, now time.Time, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("🔔 **Recordatorio de Evento**\n\n")
	fmt.Fprintf(&b, "📌 **%s**\n", event.Title)
	fmt.Fprintf(&b, "🕒 **Hora:** %s - %s\n",
		event.StartTime.In(loc).Format("15:04"),
		event.EndTime.In(loc).Format("15:04"))

	if event.Location != "" {
		fmt.Fprintf(&b, "📍 **Ubicación:** %s\n", event.Location)
	}

	if len(event.Attendees) > 0 {
		shown := event.Attendees
		if len(shown) > maxAttendeesShown {
			shown = shown[:maxAttendeesShown]
		}
		fmt.Fprintf(&b, "👥 **Asistentes:** %s", strings.Join(shown, ", "))
		if len(event.Attendees) > maxAttendeesShown {
			fmt.Fprintf(&b, " y %d más", len(event.Attendees)-maxAttendeesShown)
		}
		b.WriteString("\n")
	}

	minutesUntil := int(math.Round(event.StartTime.Sub(now).Minutes()))
	fmt.Fprintf(&b, "\n⏰ El evento comienza en %d minutos.", minutesUntil)
	return b.String()
}

// renderDigest builds the once-daily summary of today's events.
func renderDigest(events []calendar.Event, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("📅 **Resumen de Eventos del Día**\n\n")

	if len(events) == 0 {
		b.WriteString("No tienes eventos programados para hoy. ¡Disfruta tu día! 🎉")
		return b.String()
	}

	fmt.Fprintf(&b, "Tienes %d evento(s) programado(s):\n\n", len(events))
	for i, event := range events {
		fmt.Fprintf(&b, "%d. **%s** - %s\n", i+1, event.Title, event.StartTime.In(loc).Format("15:04"))
	}
	return b.String()
}
