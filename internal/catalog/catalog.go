// Package catalog holds the preset event list baked into the deployed
// binary. The booking form offers these as one-tap choices with a fixed
// date and time; any other event name is treated as a custom entry whose
// date and time the registrant types in themselves.
package catalog

// Preset is one known (event, date, time) tuple.
type Preset struct {
	Event string `json:"event"`
	Date  string `json:"date"` // YYYY-MM-DD
	Time  string `json:"time"` // HH:MM, 24h
}

// presets is ordered the way the form displays them.
var presets = []Preset{
	{Event: "Varsity Soccer", Date: "2026-01-16", Time: "18:00"},
	{Event: "Varsity Basketball", Date: "2026-01-23", Time: "19:00"},
	{Event: "Winter Play: Our Town", Date: "2026-02-06", Time: "19:30"},
	{Event: "Jazz Band Showcase", Date: "2026-02-20", Time: "18:30"},
	{Event: "Spring Assembly", Date: "2026-03-13", Time: "10:00"},
	{Event: "Track & Field Invitational", Date: "2026-04-11", Time: "09:00"},
	{Event: "Senior Art Show", Date: "2026-04-24", Time: "17:00"},
	{Event: "Graduation Rehearsal", Date: "2026-05-29", Time: "08:30"},
}

// Presets returns the full ordered preset list.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Lookup classifies an event name. A match (exact, full-name equality)
// returns the preset so callers can pin its date and time; no match means
// the entry is custom.
func Lookup(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Event == name {
			return p, true
		}
	}
	return Preset{}, false
}
