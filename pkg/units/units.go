// Package units resolves display symbols for the two measurement systems
// the NOAA CO-OPS API speaks and applies the display rounding policy that
// the rest of the module shares.
package units

import "fmt"

// System selects a measurement system. Its wire form is the value of the
// CO-OPS "units" query parameter.
type System uint

const (
	// Imperial reports temperatures in Fahrenheit, heights in feet, and
	// speeds in knots. It is the zero value and the library default.
	Imperial System = iota
	// Metric reports temperatures in Celsius, heights in meters, and
	// speeds in meters per second.
	Metric
)

// ParseSystem maps a spelling of a measurement system to its System. It
// accepts the wire forms "english" and "metric" as well as "imperial".
func ParseSystem(s string) (System, error) {
	switch s {
	case "english", "imperial":
		return Imperial, nil
	case "metric":
		return Metric, nil
	default:
		return Imperial, fmt.Errorf("unknown measurement system %q", s)
	}
}

// String returns the wire form of the system.
func (s System) String() string {
	if s == Metric {
		return "metric"
	}
	return "english"
}

// SymbolSet holds the display symbols for the quantities the API reports.
// Atmospheric pressure is millibars in both systems.
type SymbolSet struct {
	Degree   string
	Height   string
	Speed    string
	Pressure string
}

// Symbols returns the symbols for sys. Values outside the enumeration get
// the imperial set, matching the library default.
func Symbols(sys System) SymbolSet {
	if sys == Metric {
		return SymbolSet{
			Degree:   "°C",
			Height:   "m",
			Speed:    "m/s",
			Pressure: "mb",
		}
	}
	return SymbolSet{
		Degree:   "°F",
		Height:   "ft",
		Speed:    "kts",
		Pressure: "mb",
	}
}
