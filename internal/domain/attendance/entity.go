package attendance

import (
	"math"
	"time"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"

	// LateHour is the local hour after which a check-in counts as late.
	LateHour = 9
)

type Attendance struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	EmployeeID   *string    `json:"employee_id,omitempty"`
	EmployeeName *string    `json:"employee_name,omitempty"`
	Date         time.Time  `json:"date"`
	CheckIn      time.Time  `json:"check_in"`
	CheckOut     *time.Time `json:"check_out,omitempty"`
	Status       string     `json:"status"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Hours is the worked time rounded to one decimal. An open record counts 0.
func (a Attendance) Hours() float64 {
	if a.CheckOut == nil {
		return 0
	}
	return RoundHours(float64(a.CheckOut.Sub(a.CheckIn).Milliseconds()) / 3600000)
}

// RawHours is the unrounded worked time.
func (a Attendance) RawHours() float64 {
	if a.CheckOut == nil {
		return 0
	}
	return float64(a.CheckOut.Sub(a.CheckIn).Milliseconds()) / 3600000
}

// IsOpen reports whether the record has not been clocked out.
func (a Attendance) IsOpen() bool {
	return a.CheckOut == nil
}

// IsLate reports whether the check-in happened after LateHour:00 on the
// record's date in loc.
func (a Attendance) IsLate(loc *time.Location) bool {
	in := a.CheckIn.In(loc)
	threshold := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), LateHour, 0, 0, 0, loc)
	return in.After(threshold)
}

// RoundHours rounds to one decimal place.
func RoundHours(h float64) float64 {
	return math.Round(h*10) / 10
}

// MyStats summarizes the current user's attendance.
type MyStats struct {
	TodayHours  float64 `json:"todayHours"`
	WeeklyHours float64 `json:"weeklyHours"`
	IsClockedIn bool    `json:"isClockedIn"`
}

// AdminStats summarizes today's attendance across all employees.
type AdminStats struct {
	PresentToday int     `json:"presentToday"`
	LateArrivals int     `json:"lateArrivals"`
	AvgWorkHours float64 `json:"avgWorkHours"`
}
