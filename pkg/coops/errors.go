package coops

import "fmt"

// RequestError reports a transport failure: the request could not be built
// or sent, or came back with a non-2xx status.
type RequestError struct {
	URL    string
	Status int   // zero when no response arrived
	Err    error // underlying cause, nil for bad statuses
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("coops: request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("coops: request %s: status %d", e.URL, e.Status)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// APIError carries the error envelope the API returns in place of data,
// typically for an unknown station or a bad parameter combination.
type APIError struct {
	Station string
	Product string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("coops: %s for station %s: %s", e.Product, e.Station, e.Message)
}

// NoDataError reports a well formed response whose expected collection is
// missing or empty, usually a station and date window with no records.
type NoDataError struct {
	Station string
	Product string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("coops: no %s data for station %s", e.Product, e.Station)
}
