package domain

import "time"

// AttendanceStatus enumerates day-level attendance outcomes.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusOnLeave AttendanceStatus = "on_leave"
)

// AttendanceRecord captures one identity's attendance for one date. Clock and
// break timestamps are optional; TotalHours is derived from them when present.
type AttendanceRecord struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Date       time.Time        `json:"date"`
	ClockIn    *time.Time       `json:"clock_in,omitempty"`
	ClockOut   *time.Time       `json:"clock_out,omitempty"`
	BreakStart *time.Time       `json:"break_start,omitempty"`
	BreakEnd   *time.Time       `json:"break_end,omitempty"`
	TotalHours float64          `json:"total_hours"`
	Status     AttendanceStatus `json:"status"`
}
