package coops

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// obsTimeFormat is the timestamp layout of the data API. Timestamps carry no
// zone of their own; the zone is whatever the query's time_zone parameter
// selected.
const obsTimeFormat = "2006-01-02 15:04"

// Timestamp is a timestamp as the data API spells it.
type Timestamp time.Time

var _ json.Unmarshaler = &Timestamp{}

func (t *Timestamp) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("time %q is not a string: %w", buf, err)
	}
	parsed, err := time.ParseInLocation(obsTimeFormat, s, time.Local)
	if err != nil {
		return fmt.Errorf("time %q is not in format %q: %w", s, obsTimeFormat, err)
	}
	*t = Timestamp(parsed)
	return nil
}

// T converts to a time.Time.
func (t Timestamp) T() time.Time {
	return time.Time(t)
}

// String formats the timestamp the way the API does.
func (t Timestamp) String() string {
	return time.Time(t).Format(obsTimeFormat)
}

// Magnitude is a numeric reading. The API encodes magnitudes as quoted
// strings in JSON, though bare numbers also decode.
type Magnitude float64

var _ json.Unmarshaler = new(Magnitude)

func (m *Magnitude) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err == nil {
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("magnitude %q is not a float: %w", s, err)
		}
		*m = Magnitude(parsed)
		return nil
	}
	var f float64
	if err := json.Unmarshal(buf, &f); err != nil {
		return fmt.Errorf("magnitude %q is not a string or number: %w", buf, err)
	}
	*m = Magnitude(f)
	return nil
}

// TideType marks a predicted extreme as high or low water.
type TideType uint

const (
	HighTide TideType = iota
	LowTide
)

var _ json.Unmarshaler = new(TideType)

func (tt *TideType) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("tide type %q is not a string: %w", buf, err)
	}
	switch s {
	case "H":
		*tt = HighTide
	case "L":
		*tt = LowTide
	default:
		return fmt.Errorf("tide type %q is not \"H\" or \"L\"", s)
	}
	return nil
}

func (tt TideType) String() string {
	switch tt {
	case HighTide:
		return "H"
	case LowTide:
		return "L"
	default:
		return "invalid"
	}
}

// Prediction is a single predicted tide extreme.
type Prediction struct {
	Time   Timestamp `json:"t"`
	Height Magnitude `json:"v"`
	Type   TideType  `json:"type"`
}

func (p Prediction) String() string {
	return fmt.Sprintf("{t: %s, v: %f, type: %s}", time.Time(p.Time).Format(time.RFC822), p.Height, p.Type)
}

// Predictions is a time series of predicted tide extremes.
type Predictions []Prediction

func (p Predictions) String() string {
	result := "["
	for i, pred := range p {
		result += pred.String()
		if i < len(p)-1 {
			result += ", "
		}
	}
	result += "]"
	return result
}

// Observation is a single record of an observational product such as
// water_level or air_temperature.
type Observation struct {
	Time  Timestamp `json:"t"`
	Value Magnitude `json:"v"`
}

func (o Observation) String() string {
	return fmt.Sprintf("{t: %s, v: %f}", time.Time(o.Time).Format(time.RFC822), o.Value)
}

// WindRecord is a single wind observation. Direction is the cardinal label
// the API provides, for example "NNW".
type WindRecord struct {
	Time      Timestamp `json:"t"`
	Speed     Magnitude `json:"s"`
	Gust      Magnitude `json:"g"`
	Direction string    `json:"dr"`
}

// StationRecord is one entry of the metadata API's stations collection.
type StationRecord struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	State string  `json:"state"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// apiError is the error envelope the data API returns in place of results.
type apiError struct {
	Message string `json:"message"`
}

type predictionsEnvelope struct {
	Predictions Predictions `json:"predictions"`
	Err         *apiError   `json:"error"`
}

type observationsEnvelope struct {
	Data []Observation `json:"data"`
	Err  *apiError     `json:"error"`
}

type windEnvelope struct {
	Data []WindRecord `json:"data"`
	Err  *apiError    `json:"error"`
}

type stationsEnvelope struct {
	Stations []StationRecord `json:"stations"`
}
