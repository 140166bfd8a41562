package daylight

import (
	"testing"
	"time"
)

func TestEvents(t *testing.T) {
	start := time.Date(2020, time.October, 25, 0, 0, 0, 0, SantaCruz.Location)
	dur := 5 * 24 * time.Hour
	events := Events(start, dur, SantaCruz)

	if len(events) != 10 {
		t.Fatalf("got %d events, want 10", len(events))
	}
	if events[0].Event != Sunrise {
		t.Fatalf("first event is %s, want Sunrise", events[0].Event)
	}

	for i, e := range events {
		wantEvent := Sunrise
		if i%2 == 1 {
			wantEvent = Sunset
		}
		if e.Event != wantEvent {
			t.Errorf("event %d is %s, want %s", i, e.Event, wantEvent)
		}
		if i > 0 && !events[i-1].Time.Before(e.Time) {
			t.Errorf("event %d at %v does not follow %v", i, e.Time, events[i-1].Time)
		}

		// Late October at this latitude has sunrises a little after 7 AM
		// and sunsets a little after 6 PM.
		hour := e.Time.In(SantaCruz.Location).Hour()
		if e.Event == Sunrise && (hour < 6 || hour > 8) {
			t.Errorf("sunrise %d at odd hour %v", i, e.Time)
		}
		if e.Event == Sunset && (hour < 17 || hour > 19) {
			t.Errorf("sunset %d at odd hour %v", i, e.Time)
		}
	}

	first := events[0].Time.In(SantaCruz.Location)
	if first.Year() != 2020 || first.Month() != time.October || first.Day() != 25 {
		t.Errorf("first event on %v, want Oct 25 2020", first)
	}
}

func TestEventsShortWindow(t *testing.T) {
	start := time.Date(2020, time.October, 25, 0, 0, 0, 0, SantaCruz.Location)
	events := Events(start, 6*time.Hour, SantaCruz)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 for a partial day", len(events))
	}
}

func TestEventString(t *testing.T) {
	if got := Sunrise.String(); got != "Sunrise" {
		t.Errorf("Sunrise.String() = %q", got)
	}
	if got := Sunset.String(); got != "Sunset" {
		t.Errorf("Sunset.String() = %q", got)
	}
}
