package models

import (
	"testing"
	"time"
)

func TestAvailabilitySlot_Minutes(t *testing.T) {
	tests := []struct {
		name string
		slot AvailabilitySlot
		want int
	}{
		{"two hours", AvailabilitySlot{Enabled: true, StartTime: "16:00", EndTime: "18:00"}, 120},
		{"disabled", AvailabilitySlot{Enabled: false, StartTime: "16:00", EndTime: "18:00"}, 0},
		{"inverted", AvailabilitySlot{Enabled: true, StartTime: "18:00", EndTime: "16:00"}, 0},
		{"malformed", AvailabilitySlot{Enabled: true, StartTime: "4pm", EndTime: "18:00"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.slot.Minutes(); got != tt.want {
				t.Errorf("Minutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeeklyMinutes_DailyCountsSevenTimes(t *testing.T) {
	slots := []AvailabilitySlot{
		{Enabled: true, Daily: true, StartTime: "17:00", EndTime: "18:00"},          // 7h
		{Enabled: true, Weekday: time.Saturday, StartTime: "10:00", EndTime: "13:00"}, // 3h
		{Enabled: false, Weekday: time.Sunday, StartTime: "10:00", EndTime: "13:00"},  // ignored
	}
	if got := WeeklyMinutes(slots); got != 10*60 {
		t.Errorf("WeeklyMinutes = %d, want %d", got, 10*60)
	}
}

func TestAppliesOn(t *testing.T) {
	daily := AvailabilitySlot{Enabled: true, Daily: true}
	if !daily.AppliesOn(time.Wednesday) {
		t.Error("daily slot should apply on any weekday")
	}
	sat := AvailabilitySlot{Enabled: true, Weekday: time.Saturday}
	if sat.AppliesOn(time.Friday) {
		t.Error("saturday slot should not apply on friday")
	}
	disabled := AvailabilitySlot{Enabled: false, Daily: true}
	if disabled.AppliesOn(time.Monday) {
		t.Error("disabled slot should never apply")
	}
}
