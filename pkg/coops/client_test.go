package coops

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	predictionsBody = `{"predictions":[
		{"t":"2020-08-05 00:26","v":"19.640","type":"H"},
		{"t":"2020-08-05 06:53","v":"-0.412","type":"L"}]}`
	waterLevelBody = `{"metadata":{"id":"9413745","name":"Santa Cruz","lat":"36.9588","lon":"-122.0171"},
		"data":[{"t":"2022-03-01 15:06","v":"1.204","s":"0.003","f":"1,0,0,0","q":"p"}]}`
	windBody    = `{"data":[{"t":"2022-03-01 15:06","s":"9.12","g":"11.86","dr":"NNW","dir":"338.00","f":"0,0"}]}`
	stationBody = `{"count":1,"units":null,"stations":[{"id":"9413745","name":"Santa Cruz","state":"CA","lat":36.9588,"lng":-122.0171}]}`
	errorBody   = `{"error":{"message":"No data was found. This product may not be offered at this station at the requested time."}}`
	emptyBody   = `{"predictions":[]}`
	missingBody = `{}`
)

func newTestServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/stations/") {
			switch r.URL.Path {
			case "/stations/9413745.json":
				w.Write([]byte(stationBody))
			default:
				w.Write([]byte(`{"count":0,"stations":[]}`))
			}
			return
		}
		switch r.URL.Query().Get("product") {
		case "predictions":
			w.Write([]byte(predictionsBody))
		case "water_level":
			w.Write([]byte(waterLevelBody))
		case "wind":
			w.Write([]byte(windBody))
		case "air_temperature":
			w.Write([]byte(errorBody))
		case "water_temperature":
			w.Write([]byte(emptyBody))
		default:
			w.Write([]byte(missingBody))
		}
	}))
	t.Cleanup(srv.Close)
	client := New(
		WithBaseURL(srv.URL),
		WithStationURL(srv.URL+"/stations"),
		WithHTTPClient(srv.Client()),
	)
	return srv, client
}

func TestClientPredictions(t *testing.T) {
	_, client := newTestServer(t)
	got, err := client.Predictions(context.Background(), Query{Station: "9413745", Interval: IntervalHilo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Predictions{{
		Time:   mustTime(t, "2020-08-05 00:26"),
		Height: 19.64,
		Type:   HighTide,
	}, {
		Time:   mustTime(t, "2020-08-05 06:53"),
		Height: -0.412,
		Type:   LowTide,
	}}
	if diff := cmp.Diff(want.String(), got.String()); diff != "" {
		t.Errorf("unexpected result (-want, +got): %s", diff)
	}
}

func TestClientObservations(t *testing.T) {
	_, client := newTestServer(t)
	got, err := client.Observations(context.Background(), Query{
		Station: "9413745",
		Product: ProductWaterLevel,
		Date:    DateLatest,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Value != 1.204 {
		t.Errorf("unexpected observations %v", got)
	}
}

func TestClientWind(t *testing.T) {
	_, client := newTestServer(t)
	got, err := client.Wind(context.Background(), Query{Station: "9413745", Date: DateLatest})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Speed != 9.12 || got[0].Gust != 11.86 || got[0].Direction != "NNW" {
		t.Errorf("unexpected record %+v", got[0])
	}
}

func TestClientStation(t *testing.T) {
	_, client := newTestServer(t)
	got, err := client.Station(context.Background(), "9413745")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := StationRecord{ID: "9413745", Name: "Santa Cruz", State: "CA", Lat: 36.9588, Lng: -122.0171}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected record (-want, +got): %s", diff)
	}
}

func TestClientStationUnknown(t *testing.T) {
	_, client := newTestServer(t)
	_, err := client.Station(context.Background(), "0000000")
	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("error = %v, want NoDataError", err)
	}
	if !strings.Contains(err.Error(), "0000000") {
		t.Errorf("error %q does not name the station", err)
	}
}

func TestClientAPIError(t *testing.T) {
	_, client := newTestServer(t)
	_, err := client.Observations(context.Background(), Query{
		Station: "9413745",
		Product: ProductAirTemperature,
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if !strings.Contains(apiErr.Message, "No data was found") {
		t.Errorf("message %q lost the API text", apiErr.Message)
	}
	if !strings.Contains(err.Error(), "9413745") {
		t.Errorf("error %q does not name the station", err)
	}
}

func TestClientNoData(t *testing.T) {
	_, client := newTestServer(t)

	// An empty collection and a missing collection both count as no data.
	for _, q := range []Query{
		{Station: "9413745", Product: ProductWaterTemperature},
		{Station: "9413745", Product: ProductAirPressure},
	} {
		_, err := client.Observations(context.Background(), q)
		var noData *NoDataError
		if !errors.As(err, &noData) {
			t.Fatalf("product %s: error = %v, want NoDataError", q.Product, err)
		}
		if !strings.Contains(err.Error(), "9413745") {
			t.Errorf("product %s: error %q does not name the station", q.Product, err)
		}
	}
}

func TestClientBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "out to lunch", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	_, err := client.Predictions(context.Background(), Query{Station: "9413745"})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want RequestError", err)
	}
	if reqErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", reqErr.Status)
	}
}

func TestClientMissingStation(t *testing.T) {
	client := New()
	if _, err := client.Fetch(context.Background(), Query{}); err == nil {
		t.Error("Fetch accepted a query with no station")
	}
	if _, err := client.Station(context.Background(), ""); err == nil {
		t.Error("Station accepted an empty id")
	}
}
