package daylight

import (
	"fmt"
	"time"
)

// Place is a lat/long coordinate on the Earth matched with its time zone.
type Place struct {
	Lat, Lon float64
	Location *time.Location
}

var (
	SantaCruz = Place{
		36.9741, -122.0308,
		locationOrPanic("America/Los_Angeles"),
	}
)

// SunEvents is a time series of SunEvent.
type SunEvents []SunEvent

// SunEvent is a single sunrise or sunset.
type SunEvent struct {
	Time  time.Time
	Event Event
}

func (s SunEvent) String() string {
	return fmt.Sprintf("%s %s", s.Time.Format(time.RFC822), s.Event)
}

// Event encodes whether the sun is coming up or going down.
type Event bool

const (
	Sunrise Event = true
	Sunset  Event = false
)

func (e Event) String() string {
	if e == Sunrise {
		return "Sunrise"
	}
	return "Sunset"
}

func locationOrPanic(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
