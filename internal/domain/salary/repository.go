package salary

import (
	"context"
	"time"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile EmployeeSalaryProfile) (EmployeeSalaryProfile, error)
	GetActive(ctx context.Context, employeeID, companyID string) (EmployeeSalaryProfile, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]EmployeeSalaryProfile, error)
	ListByEmployee(ctx context.Context, employeeID, companyID string) ([]EmployeeSalaryProfile, error)
	// Deactivate marks the employee's active profile inactive and stamps
	// its end date. A no-op when no active profile exists.
	Deactivate(ctx context.Context, employeeID, companyID string, endDate time.Time) error
}
