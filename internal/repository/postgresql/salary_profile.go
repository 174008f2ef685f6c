package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/salary"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/database"
)

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) salary.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

const profileColumns = `id, employee_id, company_id, base_salary, allowances, labor_grade, health_grade, pension_grade,
	employee_pension_rate, dependents, effective_date, end_date, is_active, created_at, updated_at`

// Create implements salary.ProfileRepository.
func (r *profileRepositoryImpl) Create(ctx context.Context, profile salary.EmployeeSalaryProfile) (salary.EmployeeSalaryProfile, error) {
	q := GetQuerier(ctx, r.db)

	allowances, err := json.Marshal(profile.Allowances)
	if err != nil {
		return salary.EmployeeSalaryProfile{}, fmt.Errorf("failed to encode allowances: %w", err)
	}

	query := `
		INSERT INTO employee_salary_profiles (
			id, employee_id, company_id, base_salary, allowances,
			labor_grade, health_grade, pension_grade,
			employee_pension_rate, dependents, effective_date, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + profileColumns + `
	`

	row := q.QueryRow(ctx, query,
		uuid.NewString(), profile.EmployeeID, profile.CompanyID, profile.BaseSalary, allowances,
		profile.LaborGrade, profile.HealthGrade, profile.PensionGrade,
		profile.EmployeePensionRate, profile.Dependents, profile.EffectiveDate, profile.IsActive,
	)

	created, err := scanProfile(row)
	if err != nil {
		return salary.EmployeeSalaryProfile{}, fmt.Errorf("failed to create salary profile: %w", err)
	}

	return created, nil
}

// GetActive implements salary.ProfileRepository.
func (r *profileRepositoryImpl) GetActive(ctx context.Context, employeeID, companyID string) (salary.EmployeeSalaryProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + profileColumns + `
		FROM employee_salary_profiles
		WHERE employee_id = $1 AND company_id = $2 AND is_active = true
	`

	profile, err := scanProfile(q.QueryRow(ctx, query, employeeID, companyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return salary.EmployeeSalaryProfile{}, salary.ErrNoActiveProfile
	}
	if err != nil {
		return salary.EmployeeSalaryProfile{}, fmt.Errorf("failed to get active salary profile: %w", err)
	}

	return profile, nil
}

// ListActiveByCompany implements salary.ProfileRepository.
func (r *profileRepositoryImpl) ListActiveByCompany(ctx context.Context, companyID string) ([]salary.EmployeeSalaryProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + profileColumns + `
		FROM employee_salary_profiles
		WHERE company_id = $1 AND is_active = true
		ORDER BY employee_id ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active salary profiles: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// ListByEmployee implements salary.ProfileRepository.
func (r *profileRepositoryImpl) ListByEmployee(ctx context.Context, employeeID, companyID string) ([]salary.EmployeeSalaryProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + profileColumns + `
		FROM employee_salary_profiles
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY effective_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary profiles: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// Deactivate implements salary.ProfileRepository.
func (r *profileRepositoryImpl) Deactivate(ctx context.Context, employeeID, companyID string, endDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_salary_profiles
		SET is_active = false, end_date = $1, updated_at = NOW()
		WHERE employee_id = $2 AND company_id = $3 AND is_active = true
	`

	if _, err := q.Exec(ctx, query, endDate, employeeID, companyID); err != nil {
		return fmt.Errorf("failed to deactivate salary profile: %w", err)
	}

	return nil
}

func scanProfile(row pgx.Row) (salary.EmployeeSalaryProfile, error) {
	var p salary.EmployeeSalaryProfile
	var allowances []byte
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.CompanyID, &p.BaseSalary, &allowances,
		&p.LaborGrade, &p.HealthGrade, &p.PensionGrade,
		&p.EmployeePensionRate, &p.Dependents, &p.EffectiveDate, &p.EndDate,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return salary.EmployeeSalaryProfile{}, err
	}

	if len(allowances) > 0 {
		if err := json.Unmarshal(allowances, &p.Allowances); err != nil {
			return salary.EmployeeSalaryProfile{}, fmt.Errorf("failed to decode allowances: %w", err)
		}
	}

	return p, nil
}

func scanProfiles(rows pgx.Rows) ([]salary.EmployeeSalaryProfile, error) {
	var profiles []salary.EmployeeSalaryProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return profiles, nil
}
