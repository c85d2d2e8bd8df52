package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// earthRadiusMeters is the mean Earth radius used by the Haversine formula.
	earthRadiusMeters = 6371000

	// metersPerDegree converts a tolerance expressed in decimal degrees of
	// latitude into meters. This is the single canonical factor for the whole
	// codebase; tolerance values must never be compared in mixed units.
	metersPerDegree = 111320
)

var (
	ErrInvalidGPSString = errors.New("gps string must be in \"lat,lng\" format")
	ErrLatitudeRange    = errors.New("latitude must be between -90 and 90")
	ErrLongitudeRange   = errors.New("longitude must be between -180 and 180")
	ErrInvalidTolerance = errors.New("tolerance must be a non-negative number or \"no_limit\"")
)

// ToleranceUnit identifies how a company's geofence tolerance is expressed.
type ToleranceUnit string

const (
	UnitDecimalDegrees ToleranceUnit = "decimal_degrees"
	UnitNoLimit        ToleranceUnit = "no_limit"
)

// Tolerance is a company's geofence radius configuration.
type Tolerance struct {
	Value float64
	Unit  ToleranceUnit
}

// ParseTolerance parses the tolerance field as delivered by company settings:
// either the literal "no_limit" or a decimal-degree value.
func ParseTolerance(raw string) (Tolerance, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, string(UnitNoLimit)) {
		return Tolerance{Unit: UnitNoLimit}, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return Tolerance{}, ErrInvalidTolerance
	}
	return Tolerance{Value: value, Unit: UnitDecimalDegrees}, nil
}

// Meters returns the tolerance radius in meters. The second return value is
// false when the tolerance is unlimited and no radius applies.
func (t Tolerance) Meters() (float64, bool) {
	if t.Unit == UnitNoLimit {
		return 0, false
	}
	return t.Value * metersPerDegree, true
}

// HaversineDistance returns the great-circle distance between two coordinates
// in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinTolerance reports whether a distance in meters falls inside the
// configured geofence radius. An unlimited tolerance always passes.
func WithinTolerance(distanceMeters float64, tolerance Tolerance) bool {
	radius, limited := tolerance.Meters()
	if !limited {
		return true
	}
	return distanceMeters <= radius
}

// FormatDistance renders a distance for user-facing rejection messages:
// whole meters below one kilometer, two-decimal kilometers above.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d meters", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.2f km", meters/1000)
}

// ParseGPS parses a "lat,lng" pair as stored in company settings and carried
// on tracker submissions, validating coordinate ranges.
func ParseGPS(gps string) (lat, lng float64, err error) {
	parts := strings.Split(gps, ",")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidGPSString
	}

	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, ErrInvalidGPSString
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, ErrInvalidGPSString
	}

	if lat < -90 || lat > 90 {
		return 0, 0, ErrLatitudeRange
	}
	if lng < -180 || lng > 180 {
		return 0, 0, ErrLongitudeRange
	}

	return lat, lng, nil
}

// FormatGPS renders a coordinate pair in the "lat,lng" wire format.
func FormatGPS(lat, lng float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lng)
}
