package whatsapp

import (
	"errors"
	"testing"
	"time"
)

func TestResolveTimestampHourBoundaries(t *testing.T) {
	tests := []struct {
		time string
		hour int
	}{
		{"12:00:00 AM", 0},
		{"12:00:00 PM", 12},
		{"1:05:30 PM", 13},
		{"11:59:59 PM", 23},
		{"1:00:00 AM", 1},
	}

	for _, tt := range tests {
		ts, err := resolveTimestamp("01/02/2024", tt.time)
		if err != nil {
			t.Fatalf("resolveTimestamp(%q) failed: %v", tt.time, err)
		}
		if ts.Hour() != tt.hour {
			t.Errorf("Time %q: expected hour %d, got %d", tt.time, tt.hour, ts.Hour())
		}
	}
}

func TestResolveTimestampDayFirst(t *testing.T) {
	ts, err := resolveTimestamp("01/02/2024", "8:00:16 AM")
	if err != nil {
		t.Fatalf("resolveTimestamp failed: %v", err)
	}

	want := time.Date(2024, 2, 1, 8, 0, 16, 0, time.Local)
	if !ts.Equal(want) {
		t.Errorf("Expected %v, got %v", want, ts)
	}
}

func TestResolveTimestampYearFirst(t *testing.T) {
	ts, err := resolveTimestamp("2022/7/21", "05:11:12")
	if err != nil {
		t.Fatalf("resolveTimestamp failed: %v", err)
	}

	want := time.Date(2022, 7, 21, 5, 11, 12, 0, time.Local)
	if !ts.Equal(want) {
		t.Errorf("Expected %v, got %v", want, ts)
	}
}

func TestResolveTimestampCaseInsensitiveMeridiem(t *testing.T) {
	for _, clock := range []string{"8:00:16 AM", "8:00:16 am", "8:00:16 Am"} {
		ts, err := resolveTimestamp("01/02/2024", clock)
		if err != nil {
			t.Fatalf("resolveTimestamp(%q) failed: %v", clock, err)
		}
		if ts.Hour() != 8 {
			t.Errorf("Time %q: expected hour 8, got %d", clock, ts.Hour())
		}
	}
}

func TestResolveTimestampControlCharsStripped(t *testing.T) {
	// Directional mark in the date must not break resolution
	ts, err := resolveTimestamp("‎01/02/2024", "8:00:16 AM")
	if err != nil {
		t.Fatalf("resolveTimestamp with directional mark failed: %v", err)
	}
	if ts.Day() != 1 || ts.Month() != time.February {
		t.Errorf("Unexpected date: %v", ts)
	}
}

func TestResolveTimestampNarrowSpaceMeridiem(t *testing.T) {
	ts, err := resolveTimestamp("01/02/2024", "8:00:16 AM")
	if err != nil {
		t.Fatalf("resolveTimestamp failed: %v", err)
	}
	if ts.Hour() != 8 {
		t.Errorf("Expected hour 8, got %d", ts.Hour())
	}
}

func TestResolveTimestampInvalid(t *testing.T) {
	tests := []struct {
		date string
		time string
	}{
		{"31/31/2024", "8:00:00 AM"},
		{"not-a-date", "8:00:00 AM"},
		{"01/02/2024", "99:99:99"},
		{"", ""},
	}

	for _, tt := range tests {
		_, err := resolveTimestamp(tt.date, tt.time)
		if err == nil {
			t.Errorf("resolveTimestamp(%q, %q): expected error, got nil", tt.date, tt.time)
			continue
		}
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("resolveTimestamp(%q, %q): expected ErrInvalidDateFormat, got %v", tt.date, tt.time, err)
		}
	}
}

func TestResolveTimestampTwoDigitYear(t *testing.T) {
	ts, err := resolveTimestamp("01/02/24", "8:00 AM")
	if err != nil {
		t.Fatalf("resolveTimestamp failed: %v", err)
	}
	if ts.Year() != 2024 {
		t.Errorf("Expected year 2024, got %d", ts.Year())
	}
}
