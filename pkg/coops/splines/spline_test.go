package splines

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/spencer-p/tideline/pkg/coops"
)

func ExampleDiscrete() {
	tstart := time.Date(2021, time.April, 3, 10, 30, 0, 0, time.Local)
	preds := coops.Predictions{{
		Time:   coops.Timestamp(tstart),
		Height: 10,
	}, {
		Time:   coops.Timestamp(tstart.Add(1000 * time.Hour)),
		Height: 1,
	}}
	discrete := Discrete(CurvesBetween(preds), 10)
	for i := range discrete {
		fmt.Println(math.Round(discrete[i]))
	}
	// Output:
	// 10
	// 10
	// 9
	// 8
	// 6
	// 5
	// 3
	// 2
	// 1
	// 1
}

func ExampleCurvesBetween() {
	tstart := time.Time{}
	tend := tstart.Add(10 * time.Second)
	preds := coops.Predictions{{
		Time:   coops.Timestamp(tstart),
		Height: 0,
	}, {
		Time:   coops.Timestamp(tend),
		Height: 10,
	}}
	curve := CurvesBetween(preds)[0]
	fmt.Printf("A = %.2f\n", curve.A)
	fmt.Printf("B = %.2f\n", curve.B)
	fmt.Printf("C = %.2f\n", curve.C)
	fmt.Printf("D = %.2f\n", curve.D)
	// Output:
	// A = -0.02
	// B = 0.30
	// C = 0.00
	// D = 0.00
}

func TestEvalEndpoints(t *testing.T) {
	tstart := time.Date(2021, time.April, 3, 10, 30, 0, 0, time.UTC)
	preds := coops.Predictions{
		{Time: coops.Timestamp(tstart), Height: 2.5, Type: coops.HighTide},
		{Time: coops.Timestamp(tstart.Add(6 * time.Hour)), Height: -0.5, Type: coops.LowTide},
		{Time: coops.Timestamp(tstart.Add(12 * time.Hour)), Height: 3, Type: coops.HighTide},
	}
	s := CurvesBetween(preds)
	if len(s) != 2 {
		t.Fatalf("got %d curves, want 2", len(s))
	}

	// The spline passes through every prediction.
	for _, p := range preds {
		got := s.Eval(p.Time.T())
		if math.Abs(got-float64(p.Height)) > 1e-9 {
			t.Errorf("Eval(%v) = %v, want %v", p.Time, got, p.Height)
		}
	}
}

func TestEvalOutOfRange(t *testing.T) {
	tstart := time.Date(2021, time.April, 3, 10, 30, 0, 0, time.UTC)
	preds := coops.Predictions{
		{Time: coops.Timestamp(tstart), Height: 2.5},
		{Time: coops.Timestamp(tstart.Add(6 * time.Hour)), Height: -0.5},
	}
	s := CurvesBetween(preds)
	if v := s.Eval(tstart.Add(-time.Minute)); !math.IsNaN(v) {
		t.Errorf("Eval before start = %v, want NaN", v)
	}
	if v := s.Eval(tstart.Add(7 * time.Hour)); !math.IsNaN(v) {
		t.Errorf("Eval after end = %v, want NaN", v)
	}
}

func TestCurvesBetweenDegenerate(t *testing.T) {
	if s := CurvesBetween(nil); s != nil {
		t.Errorf("CurvesBetween(nil) = %v, want nil", s)
	}
	one := coops.Predictions{{Height: 1}}
	if s := CurvesBetween(one); s != nil {
		t.Errorf("CurvesBetween(one) = %v, want nil", s)
	}
}
