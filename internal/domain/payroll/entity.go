package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollSetting - per-company statutory configuration. Read-only during
// a settlement run.
type PayrollSetting struct {
	ID                      string
	CompanyID               string
	LaborInsuranceRate      decimal.Decimal
	LaborInsuranceEmpShare  decimal.Decimal
	HealthInsuranceRate     decimal.Decimal
	HealthInsuranceEmpShare decimal.Decimal
	// Employer-side mandatory pension contribution. Informational only:
	// it is never part of an employee's deductions.
	PensionEmployerRate  decimal.Decimal
	OvertimeRate1        decimal.Decimal
	OvertimeRate2        decimal.Decimal
	OvertimeRateHoliday  decimal.Decimal
	MinimumWage          decimal.Decimal
	WithholdingThreshold decimal.Decimal
	MaxInsuredDependents *int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusDraft      PeriodStatus = "draft"
	PeriodStatusCalculated PeriodStatus = "calculated"
	PeriodStatusApproved   PeriodStatus = "approved"
	PeriodStatusPaid       PeriodStatus = "paid"
)

var statusOrder = map[PeriodStatus]int{
	PeriodStatusDraft:      0,
	PeriodStatusCalculated: 1,
	PeriodStatusApproved:   2,
	PeriodStatusPaid:       3,
}

func (s PeriodStatus) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// CanAdvanceTo reports whether target is the immediate next lifecycle
// state. The machine is strictly forward: draft -> calculated ->
// approved -> paid, one step at a time, never backward.
func (s PeriodStatus) CanAdvanceTo(target PeriodStatus) bool {
	from, ok := statusOrder[s]
	if !ok {
		return false
	}
	to, ok := statusOrder[target]
	if !ok {
		return false
	}
	return to == from+1
}

// PayrollPeriod is one calendar month's settlement unit for one company,
// unique per (company, year, month).
type PayrollPeriod struct {
	ID           string
	CompanyID    string
	Year         int
	Month        int
	Status       PeriodStatus
	CalculatedAt *time.Time
	CalculatedBy *string
	ApprovedAt   *time.Time
	ApprovedBy   *string
	PaidAt       *time.Time
	PaidBy       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OvertimeBuckets holds categorized overtime hours for one employee in
// one period.
type OvertimeBuckets struct {
	Tier1Hours   decimal.Decimal `json:"tier1_hours"`
	Tier2Hours   decimal.Decimal `json:"tier2_hours"`
	HolidayHours decimal.Decimal `json:"holiday_hours"`
}

// SlipBreakdown is the monetary result of one employee's calculation.
// Every field is rounded to whole currency units, once, when computed.
type SlipBreakdown struct {
	BaseSalary      decimal.Decimal
	TotalAllowances decimal.Decimal
	OvertimePay     decimal.Decimal
	Bonus           decimal.Decimal
	OtherIncome     decimal.Decimal
	GrossPay        decimal.Decimal
	LaborInsurance  decimal.Decimal
	HealthInsurance decimal.Decimal
	LaborPension    decimal.Decimal
	IncomeTax       decimal.Decimal
	OtherDeduction  decimal.Decimal
	TotalDeduction  decimal.Decimal
	// NetPay may be negative when deductions exceed gross pay; it is
	// reported as computed, never clamped.
	NetPay         decimal.Decimal
	OvertimeDetail OvertimeBuckets
}

// PayrollSlip - the persisted, per-employee breakdown for one period.
// Replaced wholesale while the period is draft, immutable afterwards.
type PayrollSlip struct {
	ID         string
	PeriodID   string
	EmployeeID string
	CompanyID  string
	SlipBreakdown
	CreatedAt time.Time
}
