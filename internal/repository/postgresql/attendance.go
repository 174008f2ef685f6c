package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/attendance"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// ListByEmployeeRange implements attendance.AttendanceRepository. The
// range is half-open: from inclusive, to exclusive.
func (r *attendanceRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID, companyID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, date, COALESCE(overtime_minutes, 0)
		FROM attendances
		WHERE employee_id = $1 AND company_id = $2 AND date >= $3 AND date < $4
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date, &rec.OvertimeMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
