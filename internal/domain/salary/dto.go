package salary

import (
	"github.com/shopspring/decimal"

	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/validator"
)

// maxEmployeePensionRate is the statutory ceiling on the voluntary
// employee-side pension contribution.
var maxEmployeePensionRate = decimal.NewFromFloat(0.06)

type CreateProfileRequest struct {
	EmployeeID          string          `json:"employee_id"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	Allowances          []Allowance     `json:"allowances"`
	LaborGrade          int             `json:"labor_grade"`
	HealthGrade         int             `json:"health_grade"`
	PensionGrade        int             `json:"pension_grade"`
	EmployeePensionRate decimal.Decimal `json:"employee_pension_rate"`
	Dependents          int             `json:"dependents"`
	EffectiveDate       string          `json:"effective_date"`
}

func (r *CreateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}
	for _, a := range r.Allowances {
		if validator.IsEmpty(a.Name) || a.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "allowances",
				Message: "allowances require a name and a non-negative amount",
			})
			break
		}
	}
	if r.EmployeePensionRate.IsNegative() || r.EmployeePensionRate.GreaterThan(maxEmployeePensionRate) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_pension_rate",
			Message: "employee_pension_rate must be between 0 and 0.06",
		})
	}
	if r.Dependents < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "dependents",
			Message: "dependents must not be negative",
		})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_date",
			Message: "effective_date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProfileResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	CompanyID           string          `json:"company_id"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	Allowances          []Allowance     `json:"allowances"`
	LaborGrade          int             `json:"labor_grade"`
	HealthGrade         int             `json:"health_grade"`
	PensionGrade        int             `json:"pension_grade"`
	EmployeePensionRate decimal.Decimal `json:"employee_pension_rate"`
	Dependents          int             `json:"dependents"`
	EffectiveDate       string          `json:"effective_date"`
	EndDate             *string         `json:"end_date"`
	IsActive            bool            `json:"is_active"`
}

func NewProfileResponse(p EmployeeSalaryProfile) ProfileResponse {
	var endDate *string
	if p.EndDate != nil {
		s := p.EndDate.Format("2006-01-02")
		endDate = &s
	}
	return ProfileResponse{
		ID:                  p.ID,
		EmployeeID:          p.EmployeeID,
		CompanyID:           p.CompanyID,
		BaseSalary:          p.BaseSalary,
		Allowances:          p.Allowances,
		LaborGrade:          p.LaborGrade,
		HealthGrade:         p.HealthGrade,
		PensionGrade:        p.PensionGrade,
		EmployeePensionRate: p.EmployeePensionRate,
		Dependents:          p.Dependents,
		EffectiveDate:       p.EffectiveDate.Format("2006-01-02"),
		EndDate:             endDate,
		IsActive:            p.IsActive,
	}
}
