package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allowance is a named recurring amount on top of base salary.
type Allowance struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// EmployeeSalaryProfile is an effective-dated pay record. At most one
// profile per (employee, company) is active at a time; superseding a
// profile deactivates the old one and stamps its end date with the new
// profile's effective date.
type EmployeeSalaryProfile struct {
	ID                  string
	EmployeeID          string
	CompanyID           string
	BaseSalary          decimal.Decimal
	Allowances          []Allowance
	LaborGrade          int
	HealthGrade         int
	PensionGrade        int
	EmployeePensionRate decimal.Decimal
	Dependents          int
	EffectiveDate       time.Time
	EndDate             *time.Time
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TotalAllowances sums the allowance amounts, unrounded.
func (p EmployeeSalaryProfile) TotalAllowances() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allowances {
		total = total.Add(a.Amount)
	}
	return total
}
