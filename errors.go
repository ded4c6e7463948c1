package etfup

import "errors"

// Acquisition errors. They are wrapped with context by the tiers and never
// escape the fetch controller.
var (
	// ErrSourceUnavailable reports a network failure or an unexpected HTTP status.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrMalformedResponse reports a payload of unexpected shape or with missing fields.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNoData reports a well-formed but empty result.
	ErrNoData = errors.New("no data found")
	// ErrInvalidNumeric reports a value that cannot be parsed as a number.
	ErrInvalidNumeric = errors.New("invalid numeric value")
)

// ErrDocumentNotFound is the only fatal condition of a run: the target document does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// Kind names the acquisition error class of err, for logs and reports.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSourceUnavailable):
		return "SourceUnavailable"
	case errors.Is(err, ErrMalformedResponse):
		return "MalformedResponse"
	case errors.Is(err, ErrNoData):
		return "NoDataFound"
	case errors.Is(err, ErrInvalidNumeric):
		return "InvalidNumeric"
	default:
		return "Unknown"
	}
}
