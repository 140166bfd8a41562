// Package coops speaks to the NOAA CO-OPS APIs: tide predictions and
// observed conditions from the data API, and station records from the
// metadata API.
// https://api.tidesandcurrents.noaa.gov/api/prod/
package coops

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL    = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"
	defaultStationURL = "https://api.tidesandcurrents.noaa.gov/mdapi/prod/webapi/stations"

	defaultTimeout = 10 * time.Second
)

// Doer issues HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the CO-OPS APIs. Construct with New; the zero value has
// no transport. A Client is safe for concurrent use.
type Client struct {
	http       Doer
	baseURL    string
	stationURL string
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the HTTP client used for requests.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithBaseURL points the client at a different data API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithStationURL points the client at a different metadata API endpoint.
func WithStationURL(u string) Option {
	return func(c *Client) { c.stationURL = u }
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New constructs a Client. The default transport times out after ten
// seconds.
func New(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		stationURL: defaultStationURL,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs one GET against the data API and returns the raw body.
// Every typed helper goes through it; callers that want csv or xml can use
// it directly with the matching Format.
func (c *Client) Fetch(ctx context.Context, q Query) ([]byte, error) {
	if q.Station == "" {
		return nil, fmt.Errorf("coops: query has no station id")
	}
	addr, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("coops: bad base url %q: %w", c.baseURL, err)
	}
	addr.RawQuery = q.build().Encode()
	return c.get(ctx, addr.String())
}

func (c *Client) get(ctx context.Context, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, &RequestError{URL: addr, Err: err}
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{URL: addr, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{URL: addr, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{URL: addr, Err: err}
	}
	c.log.Debug("coops request",
		zap.String("url", addr),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return body, nil
}

// Predictions fetches tide predictions. It forces the product and a JSON
// response; everything else on q is the caller's.
func (c *Client) Predictions(ctx context.Context, q Query) (Predictions, error) {
	q.Product = ProductPredictions
	q.Format = FormatJSON
	body, err := c.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	var env predictionsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("coops: decode predictions for station %s: %w", q.Station, err)
	}
	if env.Err != nil {
		return nil, &APIError{Station: q.Station, Product: q.Product.String(), Message: env.Err.Message}
	}
	if len(env.Predictions) == 0 {
		return nil, &NoDataError{Station: q.Station, Product: q.Product.String()}
	}
	return env.Predictions, nil
}

// Observations fetches records for an observational product. The caller
// chooses the product on q; water_level, air_temperature,
// water_temperature, and air_pressure all share this envelope.
func (c *Client) Observations(ctx context.Context, q Query) ([]Observation, error) {
	q.Format = FormatJSON
	body, err := c.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	var env observationsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("coops: decode %s for station %s: %w", q.Product, q.Station, err)
	}
	if env.Err != nil {
		return nil, &APIError{Station: q.Station, Product: q.Product.String(), Message: env.Err.Message}
	}
	if len(env.Data) == 0 {
		return nil, &NoDataError{Station: q.Station, Product: q.Product.String()}
	}
	return env.Data, nil
}

// Wind fetches wind observations.
func (c *Client) Wind(ctx context.Context, q Query) ([]WindRecord, error) {
	q.Product = ProductWind
	q.Format = FormatJSON
	body, err := c.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	var env windEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("coops: decode wind for station %s: %w", q.Station, err)
	}
	if env.Err != nil {
		return nil, &APIError{Station: q.Station, Product: q.Product.String(), Message: env.Err.Message}
	}
	if len(env.Data) == 0 {
		return nil, &NoDataError{Station: q.Station, Product: q.Product.String()}
	}
	return env.Data, nil
}

// Station looks up a station record in the metadata API.
func (c *Client) Station(ctx context.Context, id string) (StationRecord, error) {
	if id == "" {
		return StationRecord{}, fmt.Errorf("coops: empty station id")
	}
	addr := fmt.Sprintf("%s/%s.json", c.stationURL, url.PathEscape(id))
	body, err := c.get(ctx, addr)
	if err != nil {
		return StationRecord{}, err
	}
	var env stationsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return StationRecord{}, fmt.Errorf("coops: decode metadata for station %s: %w", id, err)
	}
	if len(env.Stations) == 0 {
		return StationRecord{}, &NoDataError{Station: id, Product: "metadata"}
	}
	rec := env.Stations[0]
	if rec.ID == "" {
		rec.ID = id
	}
	return rec, nil
}
