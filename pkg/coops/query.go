package coops

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spencer-p/tideline/pkg/units"
)

// DateFormat is the layout of the begin_date and end_date parameters.
const DateFormat = "20060102"

// Product selects the data set the data API serves. The zero value is
// ProductPredictions.
type Product uint

const (
	ProductPredictions Product = iota
	ProductWaterLevel
	ProductAirTemperature
	ProductWaterTemperature
	ProductWind
	ProductAirPressure
	ProductCurrents
)

var productNames = [...]string{
	"predictions",
	"water_level",
	"air_temperature",
	"water_temperature",
	"wind",
	"air_pressure",
	"currents",
}

func (p Product) String() string {
	if int(p) < len(productNames) {
		return productNames[p]
	}
	return "invalid"
}

// ParseProduct maps a wire name to its Product.
func ParseProduct(s string) (Product, error) {
	for i, name := range productNames {
		if s == name {
			return Product(i), nil
		}
	}
	return 0, fmt.Errorf("unknown product %q", s)
}

// Format selects the response encoding. The zero value is FormatJSON, the
// library default; only JSON responses ever get decoded here, the others
// are for callers that fetch raw bodies.
type Format uint

const (
	FormatJSON Format = iota
	FormatCSV
	FormatXML
)

var formatNames = [...]string{"json", "csv", "xml"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "invalid"
}

// ParseFormat maps a wire name to its Format.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames {
		if s == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// TimeZone selects the zone of response timestamps. The zero value is
// TimeZoneLocalDST, station local time honoring daylight saving, the
// library default.
type TimeZone uint

const (
	TimeZoneLocalDST TimeZone = iota
	TimeZoneLocal
	TimeZoneGMT
)

var timeZoneNames = [...]string{"lst_ldt", "lst", "gmt"}

func (z TimeZone) String() string {
	if int(z) < len(timeZoneNames) {
		return timeZoneNames[z]
	}
	return "invalid"
}

// ParseTimeZone maps a wire name to its TimeZone.
func ParseTimeZone(s string) (TimeZone, error) {
	for i, name := range timeZoneNames {
		if s == name {
			return TimeZone(i), nil
		}
	}
	return 0, fmt.Errorf("unknown time zone %q", s)
}

// Datum selects the vertical reference for water level products. The zero
// value omits the parameter; operations that need one default to DatumMLLW.
type Datum uint

const (
	DatumNone Datum = iota
	DatumMLLW
	DatumMSL
	DatumMHHW
	DatumMHW
	DatumMTL
	DatumMLW
	DatumDTL
	DatumNAVD
	DatumSTND
	DatumIGLD
	DatumCRD
)

var datumNames = [...]string{
	"",
	"MLLW",
	"MSL",
	"MHHW",
	"MHW",
	"MTL",
	"MLW",
	"DTL",
	"NAVD",
	"STND",
	"IGLD",
	"CRD",
}

func (d Datum) String() string {
	if int(d) < len(datumNames) {
		return datumNames[d]
	}
	return "invalid"
}

// ParseDatum maps a wire name to its Datum.
func ParseDatum(s string) (Datum, error) {
	for i, name := range datumNames[1:] {
		if s == name {
			return Datum(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown datum %q", s)
}

// Interval values the API understands. Minute intervals such as "6" or "60"
// are also accepted.
const (
	IntervalHilo   = "hilo"
	IntervalHourly = "h"
)

// Date values for relative queries.
const (
	DateLatest = "latest"
	DateToday  = "today"
	DateRecent = "recent"
)

// VelType values for the currents product.
const (
	VelTypeSpeedDir = "speed_dir"
	VelTypeDefault  = "default"
)

// Query holds the parameters of one data API request. Station is required.
// Zero values resolve to the library defaults when the request is built, so
// a caller that sets a field always wins over the defaults.
type Query struct {
	Station string
	Product Product
	Format  Format
	Zone    TimeZone
	Units   units.System
	Datum   Datum

	// Exactly one time window style should be used: a relative Date, a
	// begin and end date pair, or a begin date with a Range of hours.
	Date      string
	BeginDate string
	EndDate   string
	Range     int

	Interval string
	Bin      int
	VelType  string
}

// build resolves the query against the library defaults and renders it as
// URL parameters.
func (q Query) build() url.Values {
	vals := make(url.Values)
	vals.Set("station", q.Station)
	vals.Set("product", q.Product.String())
	vals.Set("format", q.Format.String())
	vals.Set("time_zone", q.Zone.String())
	vals.Set("units", q.Units.String())
	if q.Datum != DatumNone {
		vals.Set("datum", q.Datum.String())
	}
	if q.Date != "" {
		vals.Set("date", q.Date)
	}
	if q.BeginDate != "" {
		vals.Set("begin_date", q.BeginDate)
	}
	if q.EndDate != "" {
		vals.Set("end_date", q.EndDate)
	}
	if q.Range > 0 {
		vals.Set("range", strconv.Itoa(q.Range))
	}
	if q.Interval != "" {
		vals.Set("interval", q.Interval)
	}
	if q.Bin > 0 {
		vals.Set("bin", strconv.Itoa(q.Bin))
	}
	if q.VelType != "" {
		vals.Set("vel_type", q.VelType)
	}
	return vals
}

// Window sets the begin and end dates from a start time and duration.
func (q Query) Window(start time.Time, d time.Duration) Query {
	q.BeginDate = start.Format(DateFormat)
	q.EndDate = start.Add(d).Format(DateFormat)
	return q
}
