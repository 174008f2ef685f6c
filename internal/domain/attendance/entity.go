package attendance

import "time"

// AttendanceRecord is external input to the engine: one work day's
// overtime minutes for one employee. The record carries no day-type
// marker, so holiday overtime cannot be distinguished here.
type AttendanceRecord struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	Date            time.Time
	OvertimeMinutes int
}
