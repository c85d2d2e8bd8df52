package geo

import (
	"math"
	"testing"
)

func TestHaversineDistanceZeroForIdenticalPoints(t *testing.T) {
	d := HaversineDistance(-7.9425, 112.6261, -7.9425, 112.6261)
	if d != 0 {
		t.Errorf("HaversineDistance(same point) = %v, want 0", d)
	}
}

func TestHaversineDistanceSymmetry(t *testing.T) {
	a := HaversineDistance(-7.9425, 112.6261, 51.5007, -0.1246)
	b := HaversineDistance(51.5007, -0.1246, -7.9425, 112.6261)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("distance not symmetric: %v vs %v", a, b)
	}
}

func TestHaversineDistanceSmallLatitudeOffset(t *testing.T) {
	// 0.001 degrees of latitude is roughly 111 meters.
	d := HaversineDistance(-7.9425, 112.6261, -7.9415, 112.6261)
	if d < 110 || d > 112.5 {
		t.Errorf("HaversineDistance(0.001 deg lat) = %v, want ~111m", d)
	}
}

func TestParseTolerance(t *testing.T) {
	cases := []struct {
		input   string
		want    Tolerance
		wantErr bool
	}{
		{"no_limit", Tolerance{Unit: UnitNoLimit}, false},
		{"NO_LIMIT", Tolerance{Unit: UnitNoLimit}, false},
		{"0.001", Tolerance{Value: 0.001, Unit: UnitDecimalDegrees}, false},
		{" 0.5 ", Tolerance{Value: 0.5, Unit: UnitDecimalDegrees}, false},
		{"-1", Tolerance{}, true},
		{"abc", Tolerance{}, true},
		{"", Tolerance{}, true},
	}
	for _, c := range cases {
		got, err := ParseTolerance(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseTolerance(%q) expected error, got %+v", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTolerance(%q) unexpected error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseTolerance(%q) = %+v, want %+v", c.input, got, c.want)
		}
	}
}

func TestWithinToleranceNoLimit(t *testing.T) {
	tol := Tolerance{Unit: UnitNoLimit}
	for _, distance := range []float64{0, 50, 1e7} {
		if !WithinTolerance(distance, tol) {
			t.Errorf("WithinTolerance(%v, no_limit) = false, want true", distance)
		}
	}
}

func TestWithinToleranceDecimalDegrees(t *testing.T) {
	// 0.001 degrees converts to 111.32 meters.
	tol := Tolerance{Value: 0.001, Unit: UnitDecimalDegrees}

	if WithinTolerance(200, tol) {
		t.Error("200m should be outside a 0.001 degree tolerance")
	}
	if !WithinTolerance(111, tol) {
		t.Error("111m should be inside a 0.001 degree tolerance")
	}
	if !WithinTolerance(0, tol) {
		t.Error("0m should always be inside a finite tolerance")
	}
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		meters float64
		want   string
	}{
		{0, "0 meters"},
		{850, "850 meters"},
		{850.4, "850 meters"},
		{999.4, "999 meters"},
		{1000, "1.00 km"},
		{1500, "1.50 km"},
		{12345, "12.35 km"},
	}
	for _, c := range cases {
		if got := FormatDistance(c.meters); got != c.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", c.meters, got, c.want)
		}
	}
}

func TestParseGPS(t *testing.T) {
	lat, lng, err := ParseGPS("-7.942500, 112.626100")
	if err != nil {
		t.Fatalf("ParseGPS valid input returned error: %v", err)
	}
	if lat != -7.9425 || lng != 112.6261 {
		t.Errorf("ParseGPS = (%v, %v), want (-7.9425, 112.6261)", lat, lng)
	}

	invalid := []string{"", "1.0", "1.0,2.0,3.0", "abc,def", "91,0", "-91,0", "0,181", "0,-181"}
	for _, input := range invalid {
		if _, _, err := ParseGPS(input); err == nil {
			t.Errorf("ParseGPS(%q) expected error", input)
		}
	}
}

func TestFormatGPSRoundTrip(t *testing.T) {
	gps := FormatGPS(-7.9425, 112.6261)
	lat, lng, err := ParseGPS(gps)
	if err != nil {
		t.Fatalf("ParseGPS(FormatGPS(...)) returned error: %v", err)
	}
	if math.Abs(lat+7.9425) > 1e-6 || math.Abs(lng-112.6261) > 1e-6 {
		t.Errorf("round trip = (%v, %v)", lat, lng)
	}
}
