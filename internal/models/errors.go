package models

import "fmt"

// ValidationError is raised before any network call and is never retried.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrSegmentCount       ValidationError = "segment count does not match trip type"
	ErrUnknownTripType    ValidationError = "unknown trip type"
	ErrNoPassengers       ValidationError = "at least one passenger is required"
	ErrNegativePassengers ValidationError = "passenger counts must not be negative"
	ErrMissingDeparture   ValidationError = "segment has no departure airports"
	ErrMissingArrival     ValidationError = "segment has no arrival airports"
	ErrBadTravelDate      ValidationError = "travel date must be YYYY-MM-DD"
	ErrBadTimeRestriction ValidationError = "time restrictions must be 0-24 with from <= to"
	ErrBadDateSpan        ValidationError = "date span must be two valid dates with from <= to"
	ErrMissingTripDays    ValidationError = "round-trip date search requires trip days"
)

// UnknownCodeError reports an airport or airline code that does not
// resolve in the static registry. On encode it is a hard input error; on
// decode the offending leg is dropped instead.
type UnknownCodeError struct {
	Kind string // "airport" or "airline"
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown %s code %q", e.Kind, e.Code)
}

// DecodeError means the upstream response was structurally unusable:
// missing anti-hijacking prefix or unparseable envelope. A parsed but
// empty payload is not a DecodeError.
type DecodeError struct {
	Reason   string
	Fragment string
}

func (e *DecodeError) Error() string {
	if e.Fragment == "" {
		return "decode: " + e.Reason
	}
	return fmt.Sprintf("decode: %s: %.80q", e.Reason, e.Fragment)
}
