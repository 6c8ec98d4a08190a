package attendance

import "time"

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Sunday midnight on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ComputeMyStats derives today's hours, the hours since the start of the
// week and the clocked-in flag from records of a single user.
func ComputeMyStats(records []Attendance, now time.Time) MyStats {
	var stats MyStats
	weekStart := StartOfWeek(now)

	for _, r := range records {
		recordDay := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, now.Location())
		if sameDay(recordDay, now) {
			stats.TodayHours += r.RawHours()
			if r.IsOpen() {
				stats.IsClockedIn = true
			}
		}
		if !recordDay.Before(weekStart) && !recordDay.After(now) {
			stats.WeeklyHours += r.RawHours()
		}
	}

	stats.TodayHours = RoundHours(stats.TodayHours)
	stats.WeeklyHours = RoundHours(stats.WeeklyHours)
	return stats
}

// ComputeAdminStats derives the present count, late arrivals and average
// hours over the completed records of one day.
func ComputeAdminStats(today []Attendance, loc *time.Location) AdminStats {
	var stats AdminStats
	present := make(map[string]struct{})
	var total float64
	var completed int

	for _, r := range today {
		present[r.UserID] = struct{}{}
		if r.IsLate(loc) {
			stats.LateArrivals++
		}
		if !r.IsOpen() {
			total += r.RawHours()
			completed++
		}
	}

	stats.PresentToday = len(present)
	if completed > 0 {
		stats.AvgWorkHours = RoundHours(total / float64(completed))
	}
	return stats
}
