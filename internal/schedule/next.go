package schedule

import (
	"fmt"
	"time"

	"Rotar/internal/config"
)

// Slots per period for 1..5 runs, mirroring the OnCalendar expressions the
// systemd generator emits. Day slots are hours, week slots are weekdays
// (Mon=1..Fri=5), month slots are days of month.
var (
	daySlots   = [][]int{{2}, {2, 14}, {2, 10, 18}, {2, 8, 14, 20}, {2, 6, 12, 18, 22}}
	weekSlots  = [][]int{{1}, {1, 4}, {1, 3, 5}, {1, 2, 4, 5}, {1, 2, 3, 4, 5}}
	monthSlots = [][]int{{1}, {1, 15}, {1, 10, 20}, {1, 8, 15, 22}, {1, 7, 14, 21, 28}}
)

// NextRun returns the next scheduled run after now and a short description,
// using the same calendar logic as the generated systemd timers (runs at
// 02:00 local, spread across the period).
func NextRun(s *config.ScheduleConfig, now time.Time) (next time.Time, desc string) {
	if s == nil || s.Times < 1 {
		return time.Time{}, "no schedule"
	}
	times := s.Times
	if times > 5 {
		times = 5
	}
	jitter := time.Duration(s.JitterMinutes) * time.Minute
	if jitter < 0 {
		jitter = 0
	}

	const hour = 2

	switch s.Period {
	case "week":
		desc = fmt.Sprintf("weekly %d×", times)
		wd := int(now.Weekday()) // Sun=0
		if wd == 0 {
			wd = 7
		}
		var best time.Time
		for _, d := range weekSlots[times-1] {
			ahead := d - wd
			cand := now.AddDate(0, 0, ahead)
			cand = time.Date(cand.Year(), cand.Month(), cand.Day(), hour, 0, 0, 0, now.Location())
			if !cand.After(now) {
				cand = cand.AddDate(0, 0, 7)
			}
			if best.IsZero() || cand.Before(best) {
				best = cand
			}
		}
		return best.Add(jitter), desc

	case "month":
		desc = fmt.Sprintf("monthly %d×", times)
		y, m, _ := now.Date()
		days := monthSlots[times-1]
		for _, day := range days {
			cand := time.Date(y, m, day, hour, 0, 0, 0, now.Location())
			if cand.After(now) {
				return cand.Add(jitter), desc
			}
		}
		return time.Date(y, m+1, days[0], hour, 0, 0, 0, now.Location()).Add(jitter), desc

	default:
		desc = fmt.Sprintf("daily %d×", times)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		hours := daySlots[times-1]
		for _, h := range hours {
			cand := today.Add(time.Duration(h) * time.Hour)
			if cand.After(now) {
				return cand.Add(jitter), desc
			}
		}
		return today.AddDate(0, 0, 1).Add(time.Duration(hours[0]) * time.Hour).Add(jitter), desc
	}
}
