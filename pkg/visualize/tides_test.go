package visualize

import (
	"strings"
	"testing"
	"time"

	"github.com/spencer-p/tideline/pkg/coops"
	"github.com/spencer-p/tideline/pkg/daylight"
)

func TestEncode(t *testing.T) {
	day := time.Date(2021, time.April, 3, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	preds := coops.Predictions{
		{Time: coops.Timestamp(at(-2)), Height: 4.2, Type: coops.HighTide},
		{Time: coops.Timestamp(at(5)), Height: -0.4, Type: coops.LowTide},
		{Time: coops.Timestamp(at(11)), Height: 3.8, Type: coops.HighTide},
		{Time: coops.Timestamp(at(17)), Height: 0.2, Type: coops.LowTide},
		{Time: coops.Timestamp(at(23)), Height: 4.0, Type: coops.HighTide},
	}
	events := daylight.SunEvents{
		{Time: at(6), Event: daylight.Sunrise},
		{Time: at(19), Event: daylight.Sunset},
	}

	img := NewTidal(preds, events)
	img.SetDate(day.Add(10 * time.Hour))

	var buf strings.Builder
	if _, err := img.Encode(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<svg viewBox="0 0 1200 300"`,
		`class="daytime"`,
		`class="tide"`,
		`class="night"`,
		`class="spline"`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %s", want)
		}
	}
}

func TestEncodeNoSunData(t *testing.T) {
	day := time.Date(2021, time.April, 3, 0, 0, 0, 0, time.UTC)
	preds := coops.Predictions{
		{Time: coops.Timestamp(day), Height: 4.2},
		{Time: coops.Timestamp(day.Add(6 * time.Hour)), Height: -0.4},
	}
	img := NewTidal(preds, nil)
	img.SetDate(day)

	var buf strings.Builder
	if _, err := img.Encode(&buf); err == nil {
		t.Error("expected an error with no sun events")
	}
}
