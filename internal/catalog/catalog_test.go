package catalog

import "testing"

func TestLookup(t *testing.T) {
	t.Run("KnownPreset", func(t *testing.T) {
		p, ok := Lookup("Varsity Soccer")
		if !ok {
			t.Fatal("expected Varsity Soccer to be a preset")
		}
		if p.Date != "2026-01-16" {
			t.Errorf("expected date 2026-01-16, got %s", p.Date)
		}
		if p.Time != "18:00" {
			t.Errorf("expected time 18:00, got %s", p.Time)
		}
	})

	t.Run("CustomEntry", func(t *testing.T) {
		if _, ok := Lookup("Lunch Meetup"); ok {
			t.Error("expected Lunch Meetup to be classified as custom")
		}
	})

	t.Run("ExactMatchOnly", func(t *testing.T) {
		// Partial or case-variant names are custom entries.
		if _, ok := Lookup("varsity soccer"); ok {
			t.Error("lookup must be exact full-name equality")
		}
		if _, ok := Lookup("Varsity"); ok {
			t.Error("lookup must not match prefixes")
		}
	})
}

func TestPresetsOrderStable(t *testing.T) {
	a := Presets()
	b := Presets()
	if len(a) == 0 {
		t.Fatal("expected a non-empty preset list")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("preset order changed between calls at index %d", i)
		}
	}
	// Callers must not be able to mutate the catalog.
	a[0].Event = "mutated"
	if p, _ := Lookup(b[0].Event); p.Event == "mutated" {
		t.Error("Presets returned a slice aliasing the internal catalog")
	}
}
