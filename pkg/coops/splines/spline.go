// Package splines interpolates a continuous tide curve between predicted
// extremes.
package splines

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/spencer-p/tideline/pkg/coops"
)

// Curve is a cubic segment linking one tide extreme smoothly to the next.
// Its derivative at Start and End is zero and it is undefined outside them.
type Curve struct {
	Start, End time.Time
	A, B, C, D float64
}

// A Spline is a slice of curves linked end to end to form a full picture.
type Spline []Curve

// CurvesBetween fits curves linking consecutive tide predictions.
func CurvesBetween(preds coops.Predictions) Spline {
	if len(preds) < 2 {
		return nil
	}

	curves := make(Spline, len(preds)-1)
	for i := 0; i < len(preds)-1; i++ {
		curves[i] = curveBetween(
			preds[i].Time.T(),
			float64(preds[i].Height),
			preds[i+1].Time.T(),
			float64(preds[i+1].Height))
	}
	return curves
}

// Discrete samples n evenly spaced heights over the span of a Spline.
func Discrete(spline Spline, n int) []float64 {
	if len(spline) < 1 || n < 1 {
		return nil
	}
	start := spline[0].Start
	end := spline[len(spline)-1].End
	if n == 1 {
		return []float64{spline.Eval(start)}
	}
	dur := end.Sub(start)
	step := time.Duration(float64(dur) / float64(n-1))

	result := make([]float64, n)
	for i := range result {
		result[i] = spline.Eval(start.Add(step * time.Duration(i)))
	}
	return result
}

// curveBetween solves the cubic through (time1, h1) and (time2, h2) whose
// slope vanishes at both ends. With x measured from time1 the linear and
// constant coefficients fall out directly.
func curveBetween(time1 time.Time, h1 float64, time2 time.Time, h2 float64) Curve {
	t2 := xrel(time1, time2)
	diff := h1 - h2
	return Curve{
		Start: time1,
		End:   time2,
		A:     2 * diff / (t2 * t2 * t2),
		B:     -3 * diff / (t2 * t2),
		C:     0,
		D:     h1,
	}
}

// Eval evaluates the spline at t, or NaN where it is not defined.
func (s Spline) Eval(t time.Time) float64 {
	left, right := 0, len(s)
	for right > left {
		mid := left + (right-left)/2
		if t.Before(s[mid].Start) {
			right = mid
		} else if t.After(s[mid].End) {
			left = mid + 1
		} else {
			return s[mid].Eval(t)
		}
	}
	return math.NaN()
}

// Eval evaluates the curve at t, or NaN outside [Start, End].
func (c Curve) Eval(t time.Time) float64 {
	if t.Before(c.Start) || t.After(c.End) {
		return math.NaN()
	}
	x := xrel(c.Start, t)
	return c.A*x*x*x + c.B*x*x + c.C*x + c.D
}

// xrel computes an x coordinate for t relative to origin. Keeping x small
// avoids the floating point error of cubing a unix timestamp.
func xrel(origin, t time.Time) float64 {
	return float64(t.Unix() - origin.Unix())
}

func (c Curve) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	_, err := fmt.Fprintf(&buf, `{"start":%d,"end":%d,"a":%g,"b":%g,"c":%g,"d":%g}`,
		c.Start.Unix(), c.End.Unix(),
		c.A, c.B, c.C, c.D)
	return buf.Bytes(), err
}
