// Package calendar turns a booking's chosen slot into a downloadable
// iCalendar event.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is a one-hour calendar entry for a signing appointment.
type Event struct {
	Title string
	Start time.Time
	End   time.Time
}

// Build derives the event window from a selection's date and time. The
// end is fixed at one hour after the start. Unparsable input reports
// ok=false so callers can render a disabled link instead of failing.
func Build(title, date, clock string) (*Event, bool) {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return nil, false
	}
	return &Event{
		Title: title,
		Start: start,
		End:   start.Add(time.Hour),
	}, true
}

const icsTimeLayout = "20060102T150405Z"

// ICS renders the event as a minimal VCALENDAR document.
func (e *Event) ICS() string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//Lancer Lens//Booking//EN\r\n")
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:%s\r\n", uuid.NewString())
	fmt.Fprintf(&b, "DTSTAMP:%s\r\n", time.Now().UTC().Format(icsTimeLayout))
	fmt.Fprintf(&b, "DTSTART:%s\r\n", e.Start.UTC().Format(icsTimeLayout))
	fmt.Fprintf(&b, "DTEND:%s\r\n", e.End.UTC().Format(icsTimeLayout))
	fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeText(e.Title))
	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

// escapeText applies RFC 5545 text escaping.
func escapeText(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
