package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-01-31"); !ok {
		t.Error("IsValidDate(2025-01-31) = false, want true")
	}
	for _, input := range []string{"2025-13-01", "31-01-2025", "not-a-date", ""} {
		if _, ok := IsValidDate(input); ok {
			t.Errorf("IsValidDate(%q) = true, want false", input)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"open", "complete", "incomplete"}
	if !IsInSlice("open", slice) {
		t.Error("IsInSlice(open) = false, want true")
	}
	if IsInSlice("closed", slice) {
		t.Error("IsInSlice(closed) = true, want false")
	}
}

func TestIsValidCompanyUsername(t *testing.T) {
	valid := []string{"acme", "acme-corp", "a.b_c-1", "abc"}
	invalid := []string{"ab", "has space", "has/slash", ""}
	for _, u := range valid {
		if !IsValidCompanyUsername(u) {
			t.Errorf("IsValidCompanyUsername(%q) = false, want true", u)
		}
	}
	for _, u := range invalid {
		if IsValidCompanyUsername(u) {
			t.Errorf("IsValidCompanyUsername(%q) = true, want false", u)
		}
	}
}

func TestCoordinateRanges(t *testing.T) {
	if !IsValidLatitude(90) || !IsValidLatitude(-90) || !IsValidLatitude(0) {
		t.Error("boundary latitudes should be valid")
	}
	if IsValidLatitude(90.0001) || IsValidLatitude(-91) {
		t.Error("out-of-range latitudes should be invalid")
	}
	if !IsValidLongitude(180) || !IsValidLongitude(-180) {
		t.Error("boundary longitudes should be valid")
	}
	if IsValidLongitude(180.1) || IsValidLongitude(-181) {
		t.Error("out-of-range longitudes should be invalid")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "gps", Message: "gps is required"},
		{Field: "captured_at", Message: "captured_at must be positive"},
	}
	m := errs.ToMap()
	if len(m) != 2 || m["gps"] != "gps is required" {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.Error() != "gps: gps is required; captured_at: captured_at must be positive" {
		t.Errorf("Error() = %q", errs.Error())
	}
}
