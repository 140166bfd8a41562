package station

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/spencer-p/tideline/pkg/coops"
	"github.com/spencer-p/tideline/pkg/daylight"
	"github.com/spencer-p/tideline/pkg/timetricks"
	"github.com/spencer-p/tideline/pkg/units"
)

// LowTide is a low water extreme that falls between sunrise and sunset.
type LowTide struct {
	Time   time.Time `json:"time"`
	Height float64   `json:"height"`
	Value  string    `json:"value"`
	Day    string    `json:"day"`
	Clock  string    `json:"clock"`
}

// LowTideOptions tunes the daylight low tide report.
type LowTideOptions struct {
	// MaxHeight keeps only lows at or below it, in the unit system of the
	// request. Nil applies no height cut.
	MaxHeight *float64
}

var errNoEventBefore = errors.New("no sun event precedes this time")

// DaylightLowTides reports the low tides that happen in daylight over d
// from start. It costs two upstream requests: the prediction series and
// the station coordinates.
func (s *Station) DaylightLowTides(ctx context.Context, start time.Time, d time.Duration, sys units.System, opts LowTideOptions) ([]LowTide, error) {
	preds, err := s.RawPredictions(ctx, start, d, sys)
	if err != nil {
		return nil, err
	}
	events, err := s.SunEvents(ctx, start, d)
	if err != nil {
		return nil, err
	}
	return daylightLows(preds, events, units.Symbols(sys).Height, opts), nil
}

// daylightLows filters preds down to lows whose preceding sun event is a
// sunrise, meaning the sun is still up.
func daylightLows(preds coops.Predictions, events daylight.SunEvents, symbol string, opts LowTideOptions) []LowTide {
	lows := []LowTide{}
	for _, p := range preds {
		if p.Type != coops.LowTide {
			continue
		}
		h := float64(p.Height)
		if opts.MaxHeight != nil && h > *opts.MaxHeight {
			continue
		}
		t := p.Time.T()
		i, err := lastEventBefore(events, t)
		if err != nil {
			continue
		}
		if events[i].Event != daylight.Sunrise {
			continue
		}
		v := units.Round(h)
		lows = append(lows, LowTide{
			Time:   t,
			Height: v,
			Value:  units.Format(v) + symbol,
			Day:    timetricks.Day(t),
			Clock:  timetricks.Clock(t),
		})
	}
	return lows
}

// lastEventBefore finds the index of the latest event before t.
func lastEventBefore(events daylight.SunEvents, t time.Time) (int, error) {
	n := len(events)
	// Search the reversed series for the first event before t.
	revi := sort.Search(n, func(ri int) bool {
		return events[n-1-ri].Time.Before(t)
	})
	i := n - 1 - revi
	if i < 0 || i >= n {
		return 0, errNoEventBefore
	}
	return i, nil
}
