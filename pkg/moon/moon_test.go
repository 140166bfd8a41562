package moon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	table := []struct {
		name string
		in   float64
		want Phase
	}{
		{name: "cycle start", in: 0, want: NewMoon},
		{name: "inside first bucket", in: 0.06, want: NewMoon},
		{name: "just below first boundary", in: 0.1249, want: NewMoon},
		{name: "first boundary", in: 0.125, want: WaxingCrescent},
		{name: "first quarter", in: 0.25, want: FirstQuarter},
		{name: "waxing gibbous", in: 0.375, want: WaxingGibbous},
		{name: "just below full", in: 0.4999, want: WaxingGibbous},
		{name: "full", in: 0.5, want: FullMoon},
		{name: "waning gibbous", in: 0.625, want: WaningGibbous},
		{name: "last quarter", in: 0.75, want: LastQuarter},
		{name: "waning crescent", in: 0.875, want: WaningCrescent},
		{name: "nearly wrapped", in: 0.999, want: WaningCrescent},
		{name: "cycle end", in: 1, want: WaningCrescent},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyOutOfRange(t *testing.T) {
	for _, in := range []float64{-0.1, -1, 1.0001, 29.5, math.NaN()} {
		_, err := Classify(in)
		require.Error(t, err, "fraction %v", in)

		var rerr *RangeError
		require.ErrorAs(t, err, &rerr)
		if !math.IsNaN(in) {
			require.Equal(t, in, rerr.Fraction)
		}
	}
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "New Moon", NewMoon.String())
	require.Equal(t, "Full Moon", FullMoon.String())
	require.Equal(t, "Waning Crescent", WaningCrescent.String())
	require.Equal(t, "invalid", Phase(42).String())
}

func TestPhaseGlyph(t *testing.T) {
	seen := make(map[string]bool)
	for p := NewMoon; p <= WaningCrescent; p++ {
		g := p.Glyph()
		require.NotEmpty(t, g)
		require.False(t, seen[g], "glyph %s repeated", g)
		seen[g] = true
	}
	require.Equal(t, "🌑", NewMoon.Glyph())
	require.Equal(t, "🌕", FullMoon.Glyph())
	require.Empty(t, Phase(42).Glyph())
}
