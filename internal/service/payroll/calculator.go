package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/grade"
	"github.com/lianhui-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/lianhui-erp/payroll-engine-go/internal/domain/salary"
)

// DefaultStandardMonthlyHours is the statutory divisor for deriving an
// hourly rate from monthly base salary.
const DefaultStandardMonthlyHours = 240

// ResolvedGrades carries the bracket resolved for each insurance scheme
// ahead of the calculation.
type ResolvedGrades struct {
	Labor   grade.InsuranceGrade
	Health  grade.InsuranceGrade
	Pension grade.InsuranceGrade
}

// SlipExtras are the per-employee one-off amounts for a period.
type SlipExtras struct {
	Bonus          decimal.Decimal
	OtherIncome    decimal.Decimal
	OtherDeduction decimal.Decimal
}

// Calculator turns configuration, a salary profile, resolved grades and
// aggregated overtime into a slip breakdown. It is pure: no I/O, no
// clock, deterministic for equal inputs.
type Calculator struct {
	standardMonthlyHours decimal.Decimal
}

func NewCalculator(standardMonthlyHours int) *Calculator {
	if standardMonthlyHours <= 0 {
		standardMonthlyHours = DefaultStandardMonthlyHours
	}
	return &Calculator{standardMonthlyHours: decimal.NewFromInt(int64(standardMonthlyHours))}
}

// round applies the engine's single rounding policy: nearest whole
// currency unit, half up.
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

func (c *Calculator) Calculate(
	setting payroll.PayrollSetting,
	profile salary.EmployeeSalaryProfile,
	grades ResolvedGrades,
	overtime payroll.OvertimeBuckets,
	extras SlipExtras,
	tax payroll.WithholdingTable,
) payroll.SlipBreakdown {
	baseSalary := round(profile.BaseSalary)
	totalAllowances := round(profile.TotalAllowances())

	// Hourly rate stays unrounded; it is an intermediate, not a slip field.
	hourlyRate := profile.BaseSalary.Div(c.standardMonthlyHours)
	overtimePay := round(
		overtime.Tier1Hours.Mul(hourlyRate).Mul(setting.OvertimeRate1).
			Add(overtime.Tier2Hours.Mul(hourlyRate).Mul(setting.OvertimeRate2)).
			Add(overtime.HolidayHours.Mul(hourlyRate).Mul(setting.OvertimeRateHoliday)))

	bonus := round(extras.Bonus)
	otherIncome := round(extras.OtherIncome)
	grossPay := baseSalary.Add(totalAllowances).Add(overtimePay).Add(bonus).Add(otherIncome)

	laborInsurance := round(grades.Labor.InsuredAmount.
		Mul(setting.LaborInsuranceRate).
		Mul(setting.LaborInsuranceEmpShare))

	insuredHeads := insuredDependents(profile.Dependents, setting.MaxInsuredDependents) + 1
	healthInsurance := round(grades.Health.InsuredAmount.
		Mul(setting.HealthInsuranceRate).
		Mul(setting.HealthInsuranceEmpShare).
		Mul(decimal.NewFromInt(int64(insuredHeads))))

	// Voluntary employee-side contribution only. The employer's mandatory
	// share is not an employee deduction.
	laborPension := round(grades.Pension.InsuredAmount.Mul(profile.EmployeePensionRate))

	incomeTax := decimal.Zero
	if tax != nil && grossPay.GreaterThan(setting.WithholdingThreshold) {
		incomeTax = round(tax.Lookup(grossPay, profile.Dependents))
	}

	otherDeduction := round(extras.OtherDeduction)
	totalDeduction := laborInsurance.Add(healthInsurance).Add(laborPension).Add(incomeTax).Add(otherDeduction)

	return payroll.SlipBreakdown{
		BaseSalary:      baseSalary,
		TotalAllowances: totalAllowances,
		OvertimePay:     overtimePay,
		Bonus:           bonus,
		OtherIncome:     otherIncome,
		GrossPay:        grossPay,
		LaborInsurance:  laborInsurance,
		HealthInsurance: healthInsurance,
		LaborPension:    laborPension,
		IncomeTax:       incomeTax,
		OtherDeduction:  otherDeduction,
		TotalDeduction:  totalDeduction,
		NetPay:          grossPay.Sub(totalDeduction),
		OvertimeDetail:  overtime,
	}
}

func insuredDependents(dependents int, cap *int) int {
	if dependents < 0 {
		return 0
	}
	if cap != nil && dependents > *cap {
		return *cap
	}
	return dependents
}
