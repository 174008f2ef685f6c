package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is read-only: attendance capture belongs to the
// surrounding system.
type AttendanceRepository interface {
	ListByEmployeeRange(ctx context.Context, employeeID, companyID string, from, to time.Time) ([]AttendanceRecord, error)
}
