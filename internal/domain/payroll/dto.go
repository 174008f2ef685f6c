package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/validator"
)

type UpdateSettingRequest struct {
	LaborInsuranceRate      *decimal.Decimal `json:"labor_insurance_rate"`
	LaborInsuranceEmpShare  *decimal.Decimal `json:"labor_insurance_emp_share"`
	HealthInsuranceRate     *decimal.Decimal `json:"health_insurance_rate"`
	HealthInsuranceEmpShare *decimal.Decimal `json:"health_insurance_emp_share"`
	PensionEmployerRate     *decimal.Decimal `json:"pension_employer_rate"`
	OvertimeRate1           *decimal.Decimal `json:"overtime_rate_1"`
	OvertimeRate2           *decimal.Decimal `json:"overtime_rate_2"`
	OvertimeRateHoliday     *decimal.Decimal `json:"overtime_rate_holiday"`
	MinimumWage             *decimal.Decimal `json:"minimum_wage"`
	WithholdingThreshold    *decimal.Decimal `json:"withholding_threshold"`
	MaxInsuredDependents    *int             `json:"max_insured_dependents"`
}

func validateFraction(errs validator.ValidationErrors, field string, v *decimal.Decimal) validator.ValidationErrors {
	if v != nil && (v.IsNegative() || v.GreaterThan(decimal.NewFromInt(1))) {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be between 0 and 1",
		})
	}
	return errs
}

func validateNonNegative(errs validator.ValidationErrors, field string, v *decimal.Decimal) validator.ValidationErrors {
	if v != nil && v.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must not be negative",
		})
	}
	return errs
}

func (r *UpdateSettingRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = validateFraction(errs, "labor_insurance_rate", r.LaborInsuranceRate)
	errs = validateFraction(errs, "labor_insurance_emp_share", r.LaborInsuranceEmpShare)
	errs = validateFraction(errs, "health_insurance_rate", r.HealthInsuranceRate)
	errs = validateFraction(errs, "health_insurance_emp_share", r.HealthInsuranceEmpShare)
	errs = validateFraction(errs, "pension_employer_rate", r.PensionEmployerRate)
	errs = validateNonNegative(errs, "overtime_rate_1", r.OvertimeRate1)
	errs = validateNonNegative(errs, "overtime_rate_2", r.OvertimeRate2)
	errs = validateNonNegative(errs, "overtime_rate_holiday", r.OvertimeRateHoliday)
	errs = validateNonNegative(errs, "minimum_wage", r.MinimumWage)
	errs = validateNonNegative(errs, "withholding_threshold", r.WithholdingThreshold)
	if r.MaxInsuredDependents != nil && *r.MaxInsuredDependents < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_insured_dependents",
			Message: "max_insured_dependents must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreatePeriodRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WithholdingBracketInput struct {
	Dependents int              `json:"dependents"`
	MinGross   decimal.Decimal  `json:"min_gross"`
	MaxGross   *decimal.Decimal `json:"max_gross"`
	Amount     decimal.Decimal  `json:"amount"`
}

type ReplaceWithholdingRequest struct {
	Year     int                       `json:"year"`
	Brackets []WithholdingBracketInput `json:"brackets"`
}

func (r *ReplaceWithholdingRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	for _, b := range r.Brackets {
		if b.Dependents < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "brackets",
				Message: "dependents must not be negative",
			})
			break
		}
		if b.MinGross.IsNegative() || b.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "brackets",
				Message: "bracket amounts must not be negative",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingResponse struct {
	ID                      string          `json:"id"`
	CompanyID               string          `json:"company_id"`
	LaborInsuranceRate      decimal.Decimal `json:"labor_insurance_rate"`
	LaborInsuranceEmpShare  decimal.Decimal `json:"labor_insurance_emp_share"`
	HealthInsuranceRate     decimal.Decimal `json:"health_insurance_rate"`
	HealthInsuranceEmpShare decimal.Decimal `json:"health_insurance_emp_share"`
	PensionEmployerRate     decimal.Decimal `json:"pension_employer_rate"`
	OvertimeRate1           decimal.Decimal `json:"overtime_rate_1"`
	OvertimeRate2           decimal.Decimal `json:"overtime_rate_2"`
	OvertimeRateHoliday     decimal.Decimal `json:"overtime_rate_holiday"`
	MinimumWage             decimal.Decimal `json:"minimum_wage"`
	WithholdingThreshold    decimal.Decimal `json:"withholding_threshold"`
	MaxInsuredDependents    *int            `json:"max_insured_dependents"`
}

type PeriodResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	Status       string  `json:"status"`
	CalculatedAt *string `json:"calculated_at"`
	CalculatedBy *string `json:"calculated_by"`
	ApprovedAt   *string `json:"approved_at"`
	ApprovedBy   *string `json:"approved_by"`
	PaidAt       *string `json:"paid_at"`
	PaidBy       *string `json:"paid_by"`
}

func NewPeriodResponse(p PayrollPeriod) PeriodResponse {
	fmtTime := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format(time.RFC3339)
		return &s
	}
	return PeriodResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		Year:         p.Year,
		Month:        p.Month,
		Status:       string(p.Status),
		CalculatedAt: fmtTime(p.CalculatedAt),
		CalculatedBy: p.CalculatedBy,
		ApprovedAt:   fmtTime(p.ApprovedAt),
		ApprovedBy:   p.ApprovedBy,
		PaidAt:       fmtTime(p.PaidAt),
		PaidBy:       p.PaidBy,
	}
}

type SlipResponse struct {
	ID              string          `json:"id"`
	PeriodID        string          `json:"period_id"`
	EmployeeID      string          `json:"employee_id"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	Bonus           decimal.Decimal `json:"bonus"`
	OtherIncome     decimal.Decimal `json:"other_income"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	LaborInsurance  decimal.Decimal `json:"labor_insurance"`
	HealthInsurance decimal.Decimal `json:"health_insurance"`
	LaborPension    decimal.Decimal `json:"labor_pension"`
	IncomeTax       decimal.Decimal `json:"income_tax"`
	OtherDeduction  decimal.Decimal `json:"other_deduction"`
	TotalDeduction  decimal.Decimal `json:"total_deduction"`
	NetPay          decimal.Decimal `json:"net_pay"`
	OvertimeDetail  OvertimeBuckets `json:"overtime_detail"`
}

func NewSlipResponse(s PayrollSlip) SlipResponse {
	return SlipResponse{
		ID:              s.ID,
		PeriodID:        s.PeriodID,
		EmployeeID:      s.EmployeeID,
		BaseSalary:      s.BaseSalary,
		TotalAllowances: s.TotalAllowances,
		OvertimePay:     s.OvertimePay,
		Bonus:           s.Bonus,
		OtherIncome:     s.OtherIncome,
		GrossPay:        s.GrossPay,
		LaborInsurance:  s.LaborInsurance,
		HealthInsurance: s.HealthInsurance,
		LaborPension:    s.LaborPension,
		IncomeTax:       s.IncomeTax,
		OtherDeduction:  s.OtherDeduction,
		TotalDeduction:  s.TotalDeduction,
		NetPay:          s.NetPay,
		OvertimeDetail:  s.OvertimeDetail,
	}
}

type CalculatePeriodResponse struct {
	PeriodID  string `json:"period_id"`
	SlipCount int    `json:"slip_count"`
}
