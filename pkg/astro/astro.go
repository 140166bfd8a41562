// Package astro adapts the suncalc ephemeris library to the small surface
// the station facade consumes: lunar illumination, moon rise and set, and
// the named solar instants of a day.
package astro

import (
	"time"

	"github.com/sixdouglas/suncalc"
)

// Illumination describes the moon at an instant. Fraction is the share of
// the visible disk that is lit. Phase is the position in the lunar cycle,
// 0 at new moon, 0.5 at full, climbing back toward 1 at the next new moon.
// Fraction alone cannot tell a waxing moon from a waning one; Phase can.
type Illumination struct {
	Fraction float64
	Phase    float64
	Angle    float64
}

// MoonTimes reports moon rise and set for one day at a coordinate. At polar
// latitudes the moon can stay up or down for the whole day; the flags
// record that and the corresponding times are the zero time. A zero Rise or
// Set without a flag means the event skips that calendar day.
type MoonTimes struct {
	Rise       time.Time
	Set        time.Time
	AlwaysUp   bool
	AlwaysDown bool
}

// SunTimes holds the named solar instants of one day, from the nadir of the
// preceding night through dusk and into the next.
type SunTimes struct {
	Dawn          time.Time
	Sunrise       time.Time
	SunriseEnd    time.Time
	GoldenHourEnd time.Time
	SolarNoon     time.Time
	SunsetStart   time.Time
	Sunset        time.Time
	GoldenHour    time.Time
	Dusk          time.Time
	NauticalDusk  time.Time
	Night         time.Time
	Nadir         time.Time
	NightEnd      time.Time
	NauticalDawn  time.Time
}

// Calculator computes ephemeris values with suncalc. The zero value is
// ready to use and needs no network.
type Calculator struct{}

// Illumination returns the lunar illumination at t. It does not depend on
// the observer's position.
func (Calculator) Illumination(t time.Time) Illumination {
	ill := suncalc.GetMoonIllumination(t)
	return Illumination{
		Fraction: ill.Fraction,
		Phase:    ill.Phase,
		Angle:    ill.Angle,
	}
}

// MoonTimes returns moon rise and set on the day of t at lat and lon.
func (Calculator) MoonTimes(t time.Time, lat, lon float64) MoonTimes {
	mt := suncalc.GetMoonTimes(t, lat, lon, false)
	return MoonTimes{
		Rise:       mt.Rise,
		Set:        mt.Set,
		AlwaysUp:   mt.AlwaysUp,
		AlwaysDown: mt.AlwaysDown,
	}
}

// SunTimes returns the named solar instants on the day of t at lat and lon.
func (Calculator) SunTimes(t time.Time, lat, lon float64) SunTimes {
	times := suncalc.GetTimes(t, lat, lon)
	return SunTimes{
		Dawn:          times[suncalc.Dawn].Value,
		Sunrise:       times[suncalc.Sunrise].Value,
		SunriseEnd:    times[suncalc.SunriseEnd].Value,
		GoldenHourEnd: times[suncalc.GoldenHourEnd].Value,
		SolarNoon:     times[suncalc.SolarNoon].Value,
		SunsetStart:   times[suncalc.SunsetStart].Value,
		Sunset:        times[suncalc.Sunset].Value,
		GoldenHour:    times[suncalc.GoldenHour].Value,
		Dusk:          times[suncalc.Dusk].Value,
		NauticalDusk:  times[suncalc.NauticalDusk].Value,
		Night:         times[suncalc.Night].Value,
		Nadir:         times[suncalc.Nadir].Value,
		NightEnd:      times[suncalc.NightEnd].Value,
		NauticalDawn:  times[suncalc.NauticalDawn].Value,
	}
}
