// Package handlers serves the station dashboard API.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/spencer-p/tideline/pkg/cache"
	"github.com/spencer-p/tideline/pkg/coops"
	"github.com/spencer-p/tideline/pkg/coops/splines"
	"github.com/spencer-p/tideline/pkg/metrics"
	"github.com/spencer-p/tideline/pkg/station"
	"github.com/spencer-p/tideline/pkg/timetricks"
	"github.com/spencer-p/tideline/pkg/units"
	"github.com/spencer-p/tideline/pkg/visualize"
)

const (
	day             = 24 * time.Hour
	forecastDays    = 7
	maxForecastDays = 31
	maxCurvePoints  = 1000

	// Cache for slightly less than one day so daily clients don't see
	// stale data.
	cacheTTL = 23 * time.Hour

	dateParamFormat = "2006-01-02"
)

// Deps carries everything the handlers need. DB may be nil, in which case
// preferences live only in the session cookie. NewStation may be nil to pin
// the server to its default station.
type Deps struct {
	Station       *station.Station
	NewStation    func(id string) *station.Station
	DB            *gorm.DB
	Logger        *zap.Logger
	SessionKey    string
	EncryptionKey string
}

// Handlers owns the HTTP surface of the dashboard.
type Handlers struct {
	st         *station.Station
	newStation func(id string) *station.Station
	db         *gorm.DB
	log        *zap.Logger
	store      *sessions.CookieStore
	cache      *cache.Timed
}

// New assembles the handlers.
func New(deps Deps) *Handlers {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{
		st:         deps.Station,
		newStation: deps.NewStation,
		db:         deps.DB,
		log:        log,
		store:      newStore(deps.SessionKey, deps.EncryptionKey),
		cache:      cache.NewTimed(cacheTTL),
	}
}

// Register installs every route on r.
func (h *Handlers) Register(r *mux.Router) {
	r.Handle("/api/v1/tides", h.makeTides()).Methods(http.MethodGet)
	r.Handle("/api/v1/tides/curve", h.makeTidesCurve()).Methods(http.MethodGet)
	r.Handle("/api/v1/tides/chart", h.makeTidesChart()).Methods(http.MethodGet)
	r.Handle("/api/v1/conditions", h.makeConditions()).Methods(http.MethodGet)
	r.Handle("/api/v1/astronomy", h.makeAstronomy()).Methods(http.MethodGet)
	r.Handle("/api/v1/lowtides", h.makeLowTides()).Methods(http.MethodGet)
	r.Handle("/api/v1/station", h.makeStationInfo()).Methods(http.MethodGet)
	r.Handle("/config", h.makeConfig()).Methods(http.MethodGet, http.MethodPost)
}

// Conditions bundles the latest observations. It is all or nothing; a
// station missing a sensor fails the whole report.
type Conditions struct {
	WaterLevel       station.Measurement     `json:"waterLevel"`
	AirTemperature   station.Measurement     `json:"airTemperature"`
	WaterTemperature station.Measurement     `json:"waterTemperature"`
	AirPressure      station.Measurement     `json:"airPressure"`
	Wind             station.WindObservation `json:"wind"`
}

// Curve is the sampled tide curve between the first and last prediction of
// the window, with start and end as unix seconds.
type Curve struct {
	Start  int64     `json:"start"`
	End    int64     `json:"end"`
	Points []float64 `json:"points"`
}

// MoonReport describes the moon on one day.
type MoonReport struct {
	Phase      string  `json:"phase"`
	Glyph      string  `json:"glyph"`
	Fraction   float64 `json:"fraction"`
	Rise       string  `json:"rise,omitempty"`
	Set        string  `json:"set,omitempty"`
	AlwaysUp   bool    `json:"alwaysUp,omitempty"`
	AlwaysDown bool    `json:"alwaysDown,omitempty"`
}

// SunReport lists the named solar instants of one day.
type SunReport struct {
	Dawn          string `json:"dawn"`
	Sunrise       string `json:"sunrise"`
	SunriseEnd    string `json:"sunriseEnd"`
	GoldenHourEnd string `json:"goldenHourEnd"`
	SolarNoon     string `json:"solarNoon"`
	SunsetStart   string `json:"sunsetStart"`
	Sunset        string `json:"sunset"`
	GoldenHour    string `json:"goldenHour"`
	Dusk          string `json:"dusk"`
	NauticalDusk  string `json:"nauticalDusk"`
	Night         string `json:"night"`
	Nadir         string `json:"nadir"`
	NightEnd      string `json:"nightEnd"`
	NauticalDawn  string `json:"nauticalDawn"`
}

// Astronomy bundles the moon and sun for one day.
type Astronomy struct {
	Date string     `json:"date"`
	Moon MoonReport `json:"moon"`
	Sun  SunReport  `json:"sun"`
}

func (h *Handlers) makeTides() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := h.forStation(r)
		sys := h.resolveUnits(r)
		days, err := intParam(r, "days", forecastDays, 1, maxForecastDays)
		if err != nil {
			badRequest(w, err)
			return
		}

		key := fmt.Sprintf("tides %s %dd %s", st.ID(), days, sys)
		if cached, ok := h.cache.Get(key); ok {
			metrics.CountCacheHit(r.URL.Path)
			writeJSONBytes(w, cached)
			return
		}
		metrics.CountCacheMiss(r.URL.Path)

		payload, err := h.tidesPayload(r.Context(), st, days, sys)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSONBytes(w, payload)
		// Save the result asynchronously as the cache may block.
		go h.cache.Set(key, payload)
	})
}

func (h *Handlers) tidesPayload(ctx context.Context, st *station.Station, days int, sys units.System) ([]byte, error) {
	preds, err := st.TidePredictions(ctx, time.Now(), time.Duration(days)*day, sys)
	if err != nil {
		return nil, err
	}
	return json.Marshal(preds)
}

func (h *Handlers) makeTidesCurve() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := h.forStation(r)
		sys := h.resolveUnits(r)
		days, err := intParam(r, "days", forecastDays, 1, maxForecastDays)
		if err != nil {
			badRequest(w, err)
			return
		}
		points, err := intParam(r, "points", 100, 2, maxCurvePoints)
		if err != nil {
			badRequest(w, err)
			return
		}

		key := fmt.Sprintf("curve %s %dd %dp %s", st.ID(), days, points, sys)
		if cached, ok := h.cache.Get(key); ok {
			metrics.CountCacheHit(r.URL.Path)
			writeJSONBytes(w, cached)
			return
		}
		metrics.CountCacheMiss(r.URL.Path)

		payload, err := h.curvePayload(r.Context(), st, days, points, sys)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSONBytes(w, payload)
		go h.cache.Set(key, payload)
	})
}

func (h *Handlers) curvePayload(ctx context.Context, st *station.Station, days, points int, sys units.System) ([]byte, error) {
	preds, err := st.RawPredictions(ctx, time.Now(), time.Duration(days)*day, sys)
	if err != nil {
		return nil, err
	}
	spline := splines.CurvesBetween(preds)
	if len(spline) == 0 {
		return nil, &coops.NoDataError{Station: st.ID(), Product: "predictions"}
	}
	return json.Marshal(Curve{
		Start:  spline[0].Start.Unix(),
		End:    spline[len(spline)-1].End.Unix(),
		Points: splines.Discrete(spline, points),
	})
}

func (h *Handlers) makeTidesChart() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := h.forStation(r)
		date, err := dateParam(r, "date", time.Now())
		if err != nil {
			badRequest(w, err)
			return
		}

		key := fmt.Sprintf("chart %s %s", st.ID(), timetricks.UniqueDay(date))
		if cached, ok := h.cache.Get(key); ok {
			metrics.CountCacheHit(r.URL.Path)
			writeSVGBytes(w, cached)
			return
		}
		metrics.CountCacheMiss(r.URL.Path)

		// Pad the window by a day on both sides so the curve enters and
		// leaves the frame.
		start := date.Add(-1 * day)
		preds, err := st.RawPredictions(r.Context(), start, 3*day, units.Imperial)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		events, err := st.SunEvents(r.Context(), start, 3*day)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		img := visualize.NewTidal(preds, events)
		img.SetDate(date)

		// Duplicate the response onto a buffer for the cache.
		var toCache bytes.Buffer
		mw := io.MultiWriter(w, &toCache)
		w.Header().Add("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		if _, err := img.Encode(mw); err != nil {
			h.log.Error("Failed to encode chart", zap.Error(err))
			return
		}
		go h.cache.Set(key, toCache.Bytes())
	})
}

func (h *Handlers) makeConditions() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := h.forStation(r)
		sys := h.resolveUnits(r)

		var (
			cond Conditions
			err  error
			ctx  = r.Context()
		)
		if cond.WaterLevel, err = st.WaterLevel(ctx, sys); err != nil {
			h.fail(w, r, err)
			return
		}
		if cond.AirTemperature, err = st.AirTemperature(ctx, sys); err != nil {
			h.fail(w, r, err)
			return
		}
		if cond.WaterTemperature, err = st.WaterTemperature(ctx, sys); err != nil {
			h.fail(w, r, err)
			return
		}
		if cond.AirPressure, err = st.AirPressure(ctx, sys); err != nil {
			h.fail(w, r, err)
			return
		}
		if cond.Wind, err = st.Wind(ctx, sys); err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, cond)
	})
}

func (h *Handlers) makeAstronomy() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := h.forStation(r)
		date, err := dateParam(r, "date", time.Now())
		if err != nil {
			badRequest(w, err)
			return
		}

		key := fmt.Sprintf("astronomy %s %s", st.ID(), timetricks.UniqueDay(date))
		if cached, ok := h.cache.Get(key); ok {
			metrics.CountCacheHit(r.URL.Path)
			writeJSONBytes(w, cached)
			return
		}
		metrics.CountCacheMiss(r.URL.Path)

		payload, err := h.astronomyPayload(r.Context(), st, date)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSONBytes(w, payload)
		go h.cache.Set(key, payload)
	})
}

func (h *Handlers) astronomyPayload(ctx context.Context, st *station.Station, date time.Time) ([]byte, error) {
	// Classify the moon at midday so the answer represents the calendar
	// day rather than its first midnight.
	midday := timetricks.SetClock(date, 12, 0)
	phase, err := st.MoonPhase(midday)
	if err != nil {
		return nil, err
	}
	ill := st.MoonIllumination(midday)
	moonTimes, err := st.MoonTimes(ctx, date)
	if err != nil {
		return nil, err
	}
	sunTimes, err := st.SunTimes(ctx, date)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Astronomy{
		Date: date.Format(dateParamFormat),
		Moon: MoonReport{
			Phase:      phase.String(),
			Glyph:      phase.Glyph(),
			Fraction:   units.Round(ill.Fraction),
			Rise:       fmtInstant(moonTimes.Rise),
			Set:        fmtInstant(moonTimes.Set),
			AlwaysUp:   moonTimes.AlwaysUp,
			AlwaysDown: moonTimes.AlwaysDown,
		},
		Sun: SunReport{
			Dawn:          fmtInstant(sunTimes.Dawn),
			Sunrise:       fmtInstant(sunTimes.Sunrise),
			SunriseEnd:    fmtInstant(sunTimes.SunriseEnd),
			GoldenHourEnd: fmtInstant(sunTimes.GoldenHourEnd),
			SolarNoon:     fmtInstant(sunTimes.SolarNoon),
			SunsetStart:   fmtInstant(sunTimes.SunsetStart),
			Sunset:        fmtInstant(sunTimes.Sunset),
			GoldenHour:    fmtInstant(sunTimes.GoldenHour),
			Dusk:          fmtInstant(sunTimes.Dusk),
			NauticalDusk:  fmtInstant(sunTimes.NauticalDusk),
			Night:         fmtInstant(sunTimes.Night),
			Nadir:         fmtInstant(sunTimes.Nadir),
			NightEnd:      fmtInstant(sunTimes.NightEnd),
			NauticalDawn:  fmtInstant(sunTimes.NauticalDawn),
		},
	})
}

func (h *Handlers) makeLowTides() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := h.forStation(r)
		sys := h.resolveUnits(r)
		days, err := intParam(r, "days", forecastDays, 1, maxForecastDays)
		if err != nil {
			badRequest(w, err)
			return
		}

		opts := h.lowTideOptions(r)
		if v := r.URL.Query().Get("max"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				badRequest(w, fmt.Errorf("bad max %q", v))
				return
			}
			opts.MaxHeight = &f
		}

		lows, err := st.DaylightLowTides(r.Context(), time.Now(), time.Duration(days)*day, sys, opts)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, lows)
	})
}

func (h *Handlers) makeStationInfo() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		md, err := h.forStation(r).Metadata(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, md)
	})
}

// WarmCache prefetches the default station's most requested payloads so the
// first visitor of the day does not pay for them.
func (h *Handlers) WarmCache() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()
	warms := []struct {
		key   string
		fetch func() ([]byte, error)
	}{{
		key:   fmt.Sprintf("tides %s %dd %s", h.st.ID(), forecastDays, units.Imperial),
		fetch: func() ([]byte, error) { return h.tidesPayload(ctx, h.st, forecastDays, units.Imperial) },
	}, {
		key:   fmt.Sprintf("astronomy %s %s", h.st.ID(), timetricks.UniqueDay(now)),
		fetch: func() ([]byte, error) { return h.astronomyPayload(ctx, h.st, now) },
	}}

	for _, warm := range warms {
		payload, err := warm.fetch()
		if err != nil {
			h.log.Warn("Cache warm failed", zap.String("key", warm.key), zap.Error(err))
			continue
		}
		h.cache.Set(warm.key, payload)
		h.log.Info("Cache warmed", zap.String("key", warm.key), zap.Int("bytes", len(payload)))
	}
}

// forStation picks the station for this request: an explicit station
// parameter wins, then the session preference, then the server default.
func (h *Handlers) forStation(r *http.Request) *station.Station {
	id := r.URL.Query().Get("station")
	if id == "" {
		id = h.sessionString(r, sessionStation)
	}
	if id == "" || h.newStation == nil || id == h.st.ID() {
		return h.st
	}
	return h.newStation(id)
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	metrics.CountUpstreamError(r.URL.Path)
	h.log.Error("Failed to get data",
		zap.String("path", r.URL.Path),
		zap.Error(err))

	status := http.StatusInternalServerError
	var noData *coops.NoDataError
	if errors.As(err, &noData) {
		status = http.StatusNotFound
	}
	w.WriteHeader(status)
	fmt.Fprintf(w, "Failed to get data: %+v", err)
}

func badRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Bad request: %v", err)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func writeJSONBytes(w http.ResponseWriter, buf []byte) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buf)
}

func writeSVGBytes(w http.ResponseWriter, buf []byte) {
	w.Header().Add("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(buf)
}

func intParam(r *http.Request, name string, def, min, max int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", name, v)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("%s %d outside [%d, %d]", name, n, min, max)
	}
	return n, nil
}

func dateParam(r *http.Request, name string, def time.Time) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	t, err := time.ParseInLocation(dateParamFormat, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad %s %q", name, v)
	}
	return t, nil
}

func fmtInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
