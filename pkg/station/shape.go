package station

import (
	"github.com/spencer-p/tideline/pkg/coops"
	"github.com/spencer-p/tideline/pkg/units"
)

// Measurement is a display ready reading. RawValue carries the rounded
// magnitude for arithmetic; Value renders it with the unit symbol attached.
type Measurement struct {
	Time     string  `json:"time"`
	RawValue float64 `json:"rawValue"`
	Value    string  `json:"value"`
}

// TidePrediction is a display ready tide extreme. Type is "H" or "L".
type TidePrediction struct {
	Time     string  `json:"time"`
	RawValue float64 `json:"rawValue"`
	Value    string  `json:"value"`
	Type     string  `json:"type"`
}

// WindObservation is a display ready wind reading. Speed and gust round
// independently; Direction passes through as the API's cardinal label.
type WindObservation struct {
	Time      string  `json:"time"`
	RawSpeed  float64 `json:"rawSpeed"`
	Speed     string  `json:"speed"`
	RawGust   float64 `json:"rawGust"`
	Gust      string  `json:"gust"`
	Direction string  `json:"direction"`
}

// FormatMeasurement shapes one observation with a symbol such as "ft".
// A single reading puts a space between the magnitude and the symbol.
func FormatMeasurement(rec coops.Observation, symbol string) Measurement {
	v := units.Round(float64(rec.Value))
	return Measurement{
		Time:     rec.Time.String(),
		RawValue: v,
		Value:    units.Format(v) + " " + symbol,
	}
}

// FormatPredictions shapes a prediction series, preserving input order.
// List entries append the symbol directly with no separator.
func FormatPredictions(recs coops.Predictions, symbol string) []TidePrediction {
	out := make([]TidePrediction, len(recs))
	for i, rec := range recs {
		v := units.Round(float64(rec.Height))
		out[i] = TidePrediction{
			Time:     rec.Time.String(),
			RawValue: v,
			Value:    units.Format(v) + symbol,
			Type:     rec.Type.String(),
		}
	}
	return out
}

// FormatWind shapes one wind record.
func FormatWind(rec coops.WindRecord, symbol string) WindObservation {
	speed := units.Round(float64(rec.Speed))
	gust := units.Round(float64(rec.Gust))
	return WindObservation{
		Time:      rec.Time.String(),
		RawSpeed:  speed,
		Speed:     units.Format(speed) + " " + symbol,
		RawGust:   gust,
		Gust:      units.Format(gust) + " " + symbol,
		Direction: rec.Direction,
	}
}
