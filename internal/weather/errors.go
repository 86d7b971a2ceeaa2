package weather

import "errors"

var (
	// Client input errors.
	ErrMissingParameter = errors.New("latitude and longitude are required parameters")
	ErrInvalidNumber    = errors.New("given longitude or latitude is not a valid number")
	ErrOutOfRange       = errors.New("coordinate out of range")

	ErrLatitudeOutOfRange  error = &rangeError{msg: "latitude must be between -90 and 90"}
	ErrLongitudeOutOfRange error = &rangeError{msg: "longitude must be between -180 and 180"}

	// Upstream errors. Callers wrap these with detail; only the sentinel
	// message is meant for API clients.
	ErrUpstreamUnavailable = errors.New("weather service is unavailable")
	ErrUpstreamError       = errors.New("weather service returned an error")
	ErrUpstreamMalformed   = errors.New("weather service returned an unexpected response")
	ErrInsufficientData    = errors.New("not enough weather data to build a summary")
)

// rangeError carries a field-specific message and matches ErrOutOfRange.
type rangeError struct {
	msg string
}

func (e *rangeError) Error() string { return e.msg }

func (e *rangeError) Is(target error) bool { return target == ErrOutOfRange }

// IsClientError reports whether err was caused by invalid request input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrOutOfRange)
}

// PublicError returns the sentinel from this package that err wraps, so the
// message can be shown to API clients without leaking wrapped detail.
// It returns nil for errors that are not part of the taxonomy.
func PublicError(err error) error {
	for _, target := range []error{
		ErrLatitudeOutOfRange,
		ErrLongitudeOutOfRange,
		ErrOutOfRange,
		ErrMissingParameter,
		ErrInvalidNumber,
		ErrUpstreamUnavailable,
		ErrUpstreamError,
		ErrUpstreamMalformed,
		ErrInsufficientData,
	} {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}
