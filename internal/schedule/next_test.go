package schedule

import (
	"testing"
	"time"

	"Rotar/internal/config"
)

func TestNextRun_NilSchedule(t *testing.T) {
	next, desc := NextRun(nil, time.Now())
	if !next.IsZero() || desc != "no schedule" {
		t.Errorf("NextRun(nil) = %v, %q", next, desc)
	}
}

func TestNextRun_DailyBeforeFirstSlot(t *testing.T) {
	// 01:00 on a daily 2× schedule: next slot is 02:00 the same day.
	now := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	next, desc := NextRun(&config.ScheduleConfig{Period: "day", Times: 2}, now)
	want := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
	if desc != "daily 2×" {
		t.Errorf("desc = %q", desc)
	}
}

func TestNextRun_DailyBetweenSlots(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	next, _ := NextRun(&config.ScheduleConfig{Period: "day", Times: 2}, now)
	want := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

func TestNextRun_DailyWrapsToTomorrow(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	next, _ := NextRun(&config.ScheduleConfig{Period: "day", Times: 1}, now)
	want := time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

func TestNextRun_WeeklyFindsNextWeekday(t *testing.T) {
	// Wednesday on a weekly 2× (Mon/Thu) schedule: next is Thursday 02:00.
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC) // Wed
	next, _ := NextRun(&config.ScheduleConfig{Period: "week", Times: 2}, now)
	want := time.Date(2025, 3, 13, 2, 0, 0, 0, time.UTC) // Thu
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

func TestNextRun_WeeklyPicksEarliestSlot(t *testing.T) {
	// Tuesday on a weekly 2× (Mon/Thu) schedule: Thursday is closer than
	// the following Monday.
	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC) // Tue
	next, _ := NextRun(&config.ScheduleConfig{Period: "week", Times: 2}, now)
	want := time.Date(2025, 3, 13, 2, 0, 0, 0, time.UTC) // Thu
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

func TestNextRun_MonthlyRollsOver(t *testing.T) {
	// Past the only slot of the month: next is the 1st of next month.
	now := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	next, _ := NextRun(&config.ScheduleConfig{Period: "month", Times: 1}, now)
	want := time.Date(2025, 4, 1, 2, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

func TestNextRun_Jitter(t *testing.T) {
	now := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	next, _ := NextRun(&config.ScheduleConfig{Period: "day", Times: 1, JitterMinutes: 10}, now)
	want := time.Date(2025, 3, 10, 2, 10, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}
