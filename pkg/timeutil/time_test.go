package timeutil

import (
	"testing"
	"time"
)

func TestDaysBetween_SameDay(t *testing.T) {
	d := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	if got := DaysBetween(d, d); got != 1 {
		t.Errorf("DaysBetween(same day) = %d, want 1", got)
	}
}

func TestDaysBetween_OneWeek(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 23, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 7 {
		t.Errorf("DaysBetween(week) = %d, want 7", got)
	}
}

func TestDaysBetween_EndBeforeStart(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, start.AddDate(0, 0, -1)); got != 0 {
		t.Errorf("DaysBetween(reversed) = %d, want 0", got)
	}
}

func TestDateKey_RoundTrip(t *testing.T) {
	key := "2024-02-29"
	parsed, err := ParseDateKey(key)
	if err != nil {
		t.Fatalf("ParseDateKey: %v", err)
	}
	if DateKey(parsed) != key {
		t.Errorf("round trip = %q, want %q", DateKey(parsed), key)
	}
}

func TestParseDateKey_Invalid(t *testing.T) {
	if _, err := ParseDateKey("29-02-2024"); err == nil {
		t.Error("expected error for malformed date key")
	}
}

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"16:00", 960},
		{"23:59", 1439},
	}
	for _, tt := range tests {
		got, err := ClockMinutes(tt.clock)
		if err != nil {
			t.Fatalf("ClockMinutes(%q): %v", tt.clock, err)
		}
		if got != tt.want {
			t.Errorf("ClockMinutes(%q) = %d, want %d", tt.clock, got, tt.want)
		}
	}
}

func TestMinutesClock_Clamped(t *testing.T) {
	if got := MinutesClock(25 * 60); got != "23:59" {
		t.Errorf("MinutesClock(overflow) = %q, want 23:59", got)
	}
	if got := MinutesClock(-10); got != "00:00" {
		t.Errorf("MinutesClock(negative) = %q, want 00:00", got)
	}
}

func TestDatesEqual(t *testing.T) {
	a := time.Date(2024, 5, 1, 2, 0, 0, 0, time.UTC)
	b := time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC)
	if !DatesEqual(a, b) {
		t.Error("expected same calendar day")
	}
	if DatesEqual(a, b.AddDate(0, 0, 1)) {
		t.Error("expected different calendar days")
	}
}
