package catalog

import "errors"

var (
	// ErrMalformedTimestamp is returned when a compact timestamp field has the
	// wrong length or does not parse as a valid calendar/clock value.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrInvalidRange is returned when a range-expanding function is given a
	// start instant after its stop instant.
	ErrInvalidRange = errors.New("invalid time range")

	// ErrUnrecognizedConvention is returned when a filename does not match any
	// known sensor/level naming rule.
	ErrUnrecognizedConvention = errors.New("unrecognized filename convention")

	// ErrAmbiguousProduct is returned when more than one level-2 netcdf file is
	// found inside a single product directory.
	ErrAmbiguousProduct = errors.New("ambiguous product directory")
)
