package weather

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ParseCoordinate builds a Coordinate from raw query values.
// A nil value means the parameter was not supplied at all.
func ParseCoordinate(latitude, longitude *string) (Coordinate, error) {
	if latitude == nil || longitude == nil {
		return Coordinate{}, ErrMissingParameter
	}

	lat, err := parseFloat(*latitude)
	if err != nil {
		return Coordinate{}, ErrInvalidNumber
	}
	lon, err := parseFloat(*longitude)
	if err != nil {
		return Coordinate{}, ErrInvalidNumber
	}

	c := Coordinate{Latitude: lat, Longitude: lon}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// Validate checks the coordinate ranges. Latitude is reported first.
func (c Coordinate) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.Field() == "Latitude" {
			return ErrLatitudeOutOfRange
		}
	}
	return ErrLongitudeOutOfRange
}

// parseFloat accepts values that overflow float64; ParseFloat returns ±Inf
// for them, which then fails the range check.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && errors.Is(err, strconv.ErrRange) {
		return v, nil
	}
	return v, err
}
