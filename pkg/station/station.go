// Package station composes the CO-OPS client, the display shaping rules,
// and the astronomy adapters into operations against one monitoring
// station.
package station

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spencer-p/tideline/pkg/astro"
	"github.com/spencer-p/tideline/pkg/coops"
	"github.com/spencer-p/tideline/pkg/daylight"
	"github.com/spencer-p/tideline/pkg/moon"
	"github.com/spencer-p/tideline/pkg/units"
)

// Astronomy is the ephemeris surface the facade consumes. astro.Calculator
// implements it.
type Astronomy interface {
	Illumination(t time.Time) astro.Illumination
	MoonTimes(t time.Time, lat, lon float64) astro.MoonTimes
	SunTimes(t time.Time, lat, lon float64) astro.SunTimes
}

// Metadata describes a station.
type Metadata struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Station is a facade over one station. Every network operation takes a
// context and performs at most two upstream requests.
type Station struct {
	client *coops.Client
	astro  Astronomy
	id     string
	log    *zap.Logger
}

// Option configures a Station.
type Option func(*Station)

// WithAstronomy substitutes the ephemeris implementation.
func WithAstronomy(a Astronomy) Option {
	return func(s *Station) { s.astro = a }
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Station) { s.log = l }
}

// New builds a facade for the station with the given id.
func New(client *coops.Client, id string, opts ...Option) *Station {
	s := &Station{
		client: client,
		astro:  astro.Calculator{},
		id:     id,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the station id.
func (s *Station) ID() string {
	return s.id
}

// Metadata looks the station up in the metadata API.
func (s *Station) Metadata(ctx context.Context) (Metadata, error) {
	rec, err := s.client.Station(ctx, s.id)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{
		ID:        rec.ID,
		Name:      rec.Name,
		State:     rec.State,
		Latitude:  rec.Lat,
		Longitude: rec.Lng,
	}, nil
}

// RawPredictions fetches the parsed tide extremes covering d from start.
// The spline and chart layers build on these unshaped records.
func (s *Station) RawPredictions(ctx context.Context, start time.Time, d time.Duration, sys units.System) (coops.Predictions, error) {
	q := coops.Query{
		Station:  s.id,
		Datum:    coops.DatumMLLW,
		Interval: coops.IntervalHilo,
		Units:    sys,
	}.Window(start, d)
	return s.client.Predictions(ctx, q)
}

// TidePredictions returns shaped tide extremes covering d from start.
func (s *Station) TidePredictions(ctx context.Context, start time.Time, d time.Duration, sys units.System) ([]TidePrediction, error) {
	recs, err := s.RawPredictions(ctx, start, d, sys)
	if err != nil {
		return nil, err
	}
	return FormatPredictions(recs, units.Symbols(sys).Height), nil
}

// WaterLevel returns the latest observed water level relative to MLLW.
func (s *Station) WaterLevel(ctx context.Context, sys units.System) (Measurement, error) {
	return s.latest(ctx, coops.ProductWaterLevel, sys, units.Symbols(sys).Height)
}

// AirTemperature returns the latest observed air temperature.
func (s *Station) AirTemperature(ctx context.Context, sys units.System) (Measurement, error) {
	return s.latest(ctx, coops.ProductAirTemperature, sys, units.Symbols(sys).Degree)
}

// WaterTemperature returns the latest observed water temperature.
func (s *Station) WaterTemperature(ctx context.Context, sys units.System) (Measurement, error) {
	return s.latest(ctx, coops.ProductWaterTemperature, sys, units.Symbols(sys).Degree)
}

// AirPressure returns the latest observed barometric pressure.
func (s *Station) AirPressure(ctx context.Context, sys units.System) (Measurement, error) {
	return s.latest(ctx, coops.ProductAirPressure, sys, units.Symbols(sys).Pressure)
}

func (s *Station) latest(ctx context.Context, p coops.Product, sys units.System, symbol string) (Measurement, error) {
	q := coops.Query{
		Station: s.id,
		Product: p,
		Units:   sys,
		Date:    coops.DateLatest,
	}
	if p == coops.ProductWaterLevel {
		q.Datum = coops.DatumMLLW
	}
	obs, err := s.client.Observations(ctx, q)
	if err != nil {
		return Measurement{}, err
	}
	return FormatMeasurement(obs[len(obs)-1], symbol), nil
}

// Wind returns the latest observed wind.
func (s *Station) Wind(ctx context.Context, sys units.System) (WindObservation, error) {
	q := coops.Query{
		Station: s.id,
		Units:   sys,
		Date:    coops.DateLatest,
	}
	recs, err := s.client.Wind(ctx, q)
	if err != nil {
		return WindObservation{}, err
	}
	return FormatWind(recs[len(recs)-1], units.Symbols(sys).Speed), nil
}

// MoonPhase classifies the lunar phase at t. No network is involved.
func (s *Station) MoonPhase(t time.Time) (moon.Phase, error) {
	ill := s.astro.Illumination(t)
	return moon.Classify(ill.Phase)
}

// MoonIllumination reports how the moon is lit at t. No network is
// involved.
func (s *Station) MoonIllumination(t time.Time) astro.Illumination {
	return s.astro.Illumination(t)
}

// MoonTimes resolves the station coordinates and reports moon rise and set
// on the day of t.
func (s *Station) MoonTimes(ctx context.Context, t time.Time) (astro.MoonTimes, error) {
	md, err := s.Metadata(ctx)
	if err != nil {
		return astro.MoonTimes{}, err
	}
	return s.astro.MoonTimes(t, md.Latitude, md.Longitude), nil
}

// SunTimes resolves the station coordinates and reports the named solar
// instants on the day of t.
func (s *Station) SunTimes(ctx context.Context, t time.Time) (astro.SunTimes, error) {
	md, err := s.Metadata(ctx)
	if err != nil {
		return astro.SunTimes{}, err
	}
	return s.astro.SunTimes(t, md.Latitude, md.Longitude), nil
}

// SunEvents returns the sunrise and sunset series covering d from start.
func (s *Station) SunEvents(ctx context.Context, start time.Time, d time.Duration) (daylight.SunEvents, error) {
	md, err := s.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	place := daylight.Place{
		Lat:      md.Latitude,
		Lon:      md.Longitude,
		Location: start.Location(),
	}
	return daylight.Events(start, d, place), nil
}
