// Package daylight produces ordered sunrise and sunset series for a
// coordinate, the scaffolding for anything that cares whether an event
// happens in daylight.
package daylight

import (
	"math"
	"time"

	"github.com/keep94/sunrise"

	"github.com/spencer-p/tideline/pkg/timetricks"
)

// Events returns ordered sun events covering duration d from start at
// place. The first result is always a sunrise. The events carry start's
// time zone.
func Events(start time.Time, d time.Duration, place Place) SunEvents {
	var s sunrise.Sunrise
	s.Around(place.Lat, place.Lon, start)

	// Around centers on start loosely and can land on the previous
	// calendar day. Walk forward until the day lines up.
	dayStart := timetricks.TrimClock(start)
	for s.Sunrise().Before(dayStart) {
		s.AddDays(1)
	}

	numDays := int(math.Ceil(d.Hours() / 24))
	events := make(SunEvents, 0, numDays*2)
	for i := 0; i < numDays; i++ {
		events = append(events,
			SunEvent{s.Sunrise(), Sunrise},
			SunEvent{s.Sunset(), Sunset})
		s.AddDays(1)
	}
	return events
}
