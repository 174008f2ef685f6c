package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// ========== SETTINGS ==========

const settingColumns = `id, company_id, labor_insurance_rate, labor_insurance_emp_share,
	health_insurance_rate, health_insurance_emp_share, pension_employer_rate,
	overtime_rate_1, overtime_rate_2, overtime_rate_holiday,
	minimum_wage, withholding_threshold, max_insured_dependents, created_at, updated_at`

func scanSetting(row pgx.Row) (payroll.PayrollSetting, error) {
	var s payroll.PayrollSetting
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.LaborInsuranceRate, &s.LaborInsuranceEmpShare,
		&s.HealthInsuranceRate, &s.HealthInsuranceEmpShare, &s.PensionEmployerRate,
		&s.OvertimeRate1, &s.OvertimeRate2, &s.OvertimeRateHoliday,
		&s.MinimumWage, &s.WithholdingThreshold, &s.MaxInsuredDependents,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// GetSetting implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetSetting(ctx context.Context, companyID string) (payroll.PayrollSetting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + settingColumns + `
		FROM payroll_settings
		WHERE company_id = $1
	`

	setting, err := scanSetting(q.QueryRow(ctx, query, companyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.PayrollSetting{}, payroll.ErrSettingNotFound
	}
	if err != nil {
		return payroll.PayrollSetting{}, fmt.Errorf("failed to get payroll setting: %w", err)
	}

	return setting, nil
}

// UpsertSetting implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) UpsertSetting(ctx context.Context, setting payroll.PayrollSetting) (payroll.PayrollSetting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (
			id, company_id, labor_insurance_rate, labor_insurance_emp_share,
			health_insurance_rate, health_insurance_emp_share, pension_employer_rate,
			overtime_rate_1, overtime_rate_2, overtime_rate_holiday,
			minimum_wage, withholding_threshold, max_insured_dependents
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id) DO UPDATE SET
			labor_insurance_rate = EXCLUDED.labor_insurance_rate,
			labor_insurance_emp_share = EXCLUDED.labor_insurance_emp_share,
			health_insurance_rate = EXCLUDED.health_insurance_rate,
			health_insurance_emp_share = EXCLUDED.health_insurance_emp_share,
			pension_employer_rate = EXCLUDED.pension_employer_rate,
			overtime_rate_1 = EXCLUDED.overtime_rate_1,
			overtime_rate_2 = EXCLUDED.overtime_rate_2,
			overtime_rate_holiday = EXCLUDED.overtime_rate_holiday,
			minimum_wage = EXCLUDED.minimum_wage,
			withholding_threshold = EXCLUDED.withholding_threshold,
			max_insured_dependents = EXCLUDED.max_insured_dependents,
			updated_at = NOW()
		RETURNING ` + settingColumns + `
	`

	updated, err := scanSetting(q.QueryRow(ctx, query,
		uuid.NewString(), setting.CompanyID, setting.LaborInsuranceRate, setting.LaborInsuranceEmpShare,
		setting.HealthInsuranceRate, setting.HealthInsuranceEmpShare, setting.PensionEmployerRate,
		setting.OvertimeRate1, setting.OvertimeRate2, setting.OvertimeRateHoliday,
		setting.MinimumWage, setting.WithholdingThreshold, setting.MaxInsuredDependents,
	))
	if err != nil {
		return payroll.PayrollSetting{}, fmt.Errorf("failed to upsert payroll setting: %w", err)
	}

	return updated, nil
}

// ========== PERIODS ==========

const periodColumns = `id, company_id, year, month, status,
	calculated_at, calculated_by, approved_at, approved_by, paid_at, paid_by, created_at, updated_at`

func scanPeriod(row pgx.Row) (payroll.PayrollPeriod, error) {
	var p payroll.PayrollPeriod
	var status string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Year, &p.Month, &status,
		&p.CalculatedAt, &p.CalculatedBy, &p.ApprovedAt, &p.ApprovedBy,
		&p.PaidAt, &p.PaidBy, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Status = payroll.PeriodStatus(status)
	return p, err
}

// CreatePeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (id, company_id, year, month, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, year, month) DO NOTHING
		RETURNING ` + periodColumns + `
	`

	created, err := scanPeriod(q.QueryRow(ctx, query,
		uuid.NewString(), period.CompanyID, period.Year, period.Month, string(period.Status),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodExists
	}
	if err != nil {
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return created, nil
}

// GetPeriodByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetPeriodByID(ctx context.Context, id string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE id = $1
	`

	period, err := scanPeriod(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	if err != nil {
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return period, nil
}

// GetPeriodByMonth implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetPeriodByMonth(ctx context.Context, companyID string, year, month int) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE company_id = $1 AND year = $2 AND month = $3
	`

	period, err := scanPeriod(q.QueryRow(ctx, query, companyID, year, month))
	if errors.Is(err, pgx.ErrNoRows) {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	if err != nil {
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return period, nil
}

// ListPeriods implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListPeriods(ctx context.Context, companyID string) ([]payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE company_id = $1
		ORDER BY year DESC, month DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.PayrollPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return periods, nil
}

// UpdatePeriodStatusIf implements payroll.PayrollRepository. The update
// is gated on the period still being in the expected source status, so
// of two racing callers exactly one advances the period.
func (r *payrollRepositoryImpl) UpdatePeriodStatusIf(ctx context.Context, periodID string, from, to payroll.PeriodStatus, operatorID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	var stampCols string
	switch to {
	case payroll.PeriodStatusCalculated:
		stampCols = "calculated_at = $4, calculated_by = $5"
	case payroll.PeriodStatusApproved:
		stampCols = "approved_at = $4, approved_by = $5"
	case payroll.PeriodStatusPaid:
		stampCols = "paid_at = $4, paid_by = $5"
	default:
		return fmt.Errorf("unsupported period status transition target %q", to)
	}

	query := `
		UPDATE payroll_periods
		SET status = $1, ` + stampCols + `, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	tag, err := q.Exec(ctx, query, string(to), periodID, string(from), at, operatorID)
	if err != nil {
		return fmt.Errorf("failed to update period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return transitionPreconditionError(to)
	}

	return nil
}

func transitionPreconditionError(to payroll.PeriodStatus) error {
	switch to {
	case payroll.PeriodStatusCalculated:
		return payroll.ErrPeriodNotDraft
	case payroll.PeriodStatusApproved:
		return payroll.ErrPeriodNotCalculated
	default:
		return payroll.ErrPeriodNotApproved
	}
}

// ========== SLIPS ==========

// ReplaceSlips implements payroll.PayrollRepository: the period's slip
// set is discarded and the new one installed in a single transaction.
func (r *payrollRepositoryImpl) ReplaceSlips(ctx context.Context, periodID string, slips []payroll.PayrollSlip) error {
	replace := func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		if _, err := q.Exec(txCtx, `DELETE FROM payroll_slips WHERE period_id = $1`, periodID); err != nil {
			return fmt.Errorf("failed to delete payroll slips: %w", err)
		}

		query := `
			INSERT INTO payroll_slips (
				id, period_id, employee_id, company_id,
				base_salary, total_allowances, overtime_pay, bonus, other_income, gross_pay,
				labor_insurance, health_insurance, labor_pension, income_tax, other_deduction,
				total_deduction, net_pay,
				overtime_tier1_hours, overtime_tier2_hours, overtime_holiday_hours
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		`

		for _, s := range slips {
			_, err := q.Exec(txCtx, query,
				uuid.NewString(), periodID, s.EmployeeID, s.CompanyID,
				s.BaseSalary, s.TotalAllowances, s.OvertimePay, s.Bonus, s.OtherIncome, s.GrossPay,
				s.LaborInsurance, s.HealthInsurance, s.LaborPension, s.IncomeTax, s.OtherDeduction,
				s.TotalDeduction, s.NetPay,
				s.OvertimeDetail.Tier1Hours, s.OvertimeDetail.Tier2Hours, s.OvertimeDetail.HolidayHours,
			)
			if err != nil {
				return fmt.Errorf("failed to insert payroll slip for employee %s: %w", s.EmployeeID, err)
			}
		}

		return nil
	}

	if _, inTx := database.TxFromContext(ctx); inTx {
		return replace(ctx)
	}
	return r.db.WithTx(ctx, replace)
}

// ListSlips implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListSlips(ctx context.Context, periodID string) ([]payroll.PayrollSlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, period_id, employee_id, company_id,
			base_salary, total_allowances, overtime_pay, bonus, other_income, gross_pay,
			labor_insurance, health_insurance, labor_pension, income_tax, other_deduction,
			total_deduction, net_pay,
			overtime_tier1_hours, overtime_tier2_hours, overtime_holiday_hours,
			created_at
		FROM payroll_slips
		WHERE period_id = $1
		ORDER BY employee_id ASC
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll slips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.PayrollSlip
	for rows.Next() {
		var s payroll.PayrollSlip
		err := rows.Scan(
			&s.ID, &s.PeriodID, &s.EmployeeID, &s.CompanyID,
			&s.BaseSalary, &s.TotalAllowances, &s.OvertimePay, &s.Bonus, &s.OtherIncome, &s.GrossPay,
			&s.LaborInsurance, &s.HealthInsurance, &s.LaborPension, &s.IncomeTax, &s.OtherDeduction,
			&s.TotalDeduction, &s.NetPay,
			&s.OvertimeDetail.Tier1Hours, &s.OvertimeDetail.Tier2Hours, &s.OvertimeDetail.HolidayHours,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll slip: %w", err)
		}
		slips = append(slips, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return slips, nil
}

// ========== WITHHOLDING ==========

// GetWithholdingBrackets implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetWithholdingBrackets(ctx context.Context, year int) ([]payroll.WithholdingBracket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, year, dependents, min_gross, max_gross, amount
		FROM withholding_brackets
		WHERE year = $1
		ORDER BY dependents ASC, min_gross ASC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get withholding brackets: %w", err)
	}
	defer rows.Close()

	var brackets []payroll.WithholdingBracket
	for rows.Next() {
		var b payroll.WithholdingBracket
		if err := rows.Scan(&b.ID, &b.Year, &b.Dependents, &b.MinGross, &b.MaxGross, &b.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan withholding bracket: %w", err)
		}
		brackets = append(brackets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return brackets, nil
}

// ReplaceWithholdingBrackets implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ReplaceWithholdingBrackets(ctx context.Context, year int, brackets []payroll.WithholdingBracket) error {
	replace := func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		if _, err := q.Exec(txCtx, `DELETE FROM withholding_brackets WHERE year = $1`, year); err != nil {
			return fmt.Errorf("failed to delete withholding brackets: %w", err)
		}

		query := `
			INSERT INTO withholding_brackets (id, year, dependents, min_gross, max_gross, amount)
			VALUES ($1, $2, $3, $4, $5, $6)
		`

		for _, b := range brackets {
			id := b.ID
			if id == "" {
				id = uuid.NewString()
			}
			if _, err := q.Exec(txCtx, query, id, year, b.Dependents, b.MinGross, b.MaxGross, b.Amount); err != nil {
				return fmt.Errorf("failed to insert withholding bracket: %w", err)
			}
		}

		return nil
	}

	if _, inTx := database.TxFromContext(ctx); inTx {
		return replace(ctx)
	}
	return r.db.WithTx(ctx, replace)
}
