package astro

import (
	"testing"
	"time"
)

const (
	santaCruzLat = 36.9741
	santaCruzLon = -122.0308
)

func TestIlluminationInRange(t *testing.T) {
	var calc Calculator
	day := time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		ill := calc.Illumination(day.AddDate(0, 0, i))
		if ill.Fraction < 0 || ill.Fraction > 1 {
			t.Errorf("day %d: fraction %v outside [0, 1]", i, ill.Fraction)
		}
		if ill.Phase < 0 || ill.Phase >= 1 {
			t.Errorf("day %d: phase %v outside [0, 1)", i, ill.Phase)
		}
	}
}

func TestIlluminationCycles(t *testing.T) {
	// Over a synodic month the phase has to leave the first quarter of the
	// cycle and come back around.
	var calc Calculator
	day := time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC)
	var high, low bool
	for i := 0; i < 30; i++ {
		phase := calc.Illumination(day.AddDate(0, 0, i)).Phase
		if phase > 0.5 {
			high = true
		}
		if phase < 0.25 {
			low = true
		}
	}
	if !high || !low {
		t.Errorf("phase never cycled: high=%t low=%t", high, low)
	}
}

func TestSunTimesOrdering(t *testing.T) {
	var calc Calculator
	day := time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC)
	st := calc.SunTimes(day, santaCruzLat, santaCruzLon)

	ordered := []struct {
		name string
		at   time.Time
	}{
		{"dawn", st.Dawn},
		{"sunrise", st.Sunrise},
		{"sunrise end", st.SunriseEnd},
		{"golden hour end", st.GoldenHourEnd},
		{"solar noon", st.SolarNoon},
		{"golden hour", st.GoldenHour},
		{"sunset start", st.SunsetStart},
		{"sunset", st.Sunset},
		{"dusk", st.Dusk},
	}
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if cur.at.Before(prev.at) {
			t.Errorf("%s %v before %s %v", cur.name, cur.at, prev.name, prev.at)
		}
	}
}

func TestMoonTimesMidLatitude(t *testing.T) {
	// The always up/down flags only trip near the poles.
	var calc Calculator
	day := time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		mt := calc.MoonTimes(day.AddDate(0, 0, i), santaCruzLat, santaCruzLon)
		if mt.AlwaysUp || mt.AlwaysDown {
			t.Errorf("day %d: unexpected polar flags up=%t down=%t", i, mt.AlwaysUp, mt.AlwaysDown)
		}
	}
}
