package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/grade"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/database"
)

type gradeRepositoryImpl struct {
	db *database.DB
}

func NewGradeRepository(db *database.DB) grade.GradeRepository {
	return &gradeRepositoryImpl{db: db}
}

const gradeColumns = `id, year, scheme, grade_number, min_salary, max_salary, insured_amount, created_at, updated_at`

// GetByYearScheme implements grade.GradeRepository.
func (r *gradeRepositoryImpl) GetByYearScheme(ctx context.Context, year int, scheme grade.Scheme) ([]grade.InsuranceGrade, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + gradeColumns + `
		FROM insurance_grades
		WHERE year = $1 AND scheme = $2
		ORDER BY grade_number ASC
	`

	rows, err := q.Query(ctx, query, year, string(scheme))
	if err != nil {
		return nil, fmt.Errorf("failed to get insurance grades: %w", err)
	}
	defer rows.Close()

	return scanGrades(rows)
}

// GetByYear implements grade.GradeRepository.
func (r *gradeRepositoryImpl) GetByYear(ctx context.Context, year int) ([]grade.InsuranceGrade, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + gradeColumns + `
		FROM insurance_grades
		WHERE year = $1
		ORDER BY scheme ASC, grade_number ASC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get insurance grades: %w", err)
	}
	defer rows.Close()

	return scanGrades(rows)
}

// CreateBatch implements grade.GradeRepository. The whole batch lands in
// one transaction so a partial grade set can never be observed.
func (r *gradeRepositoryImpl) CreateBatch(ctx context.Context, grades []grade.InsuranceGrade) (int, error) {
	if _, inTx := database.TxFromContext(ctx); inTx {
		return r.insertAll(ctx, grades)
	}

	var count int
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		count, err = r.insertAll(txCtx, grades)
		return err
	})
	return count, err
}

func (r *gradeRepositoryImpl) insertAll(ctx context.Context, grades []grade.InsuranceGrade) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO insurance_grades (id, year, scheme, grade_number, min_salary, max_salary, insured_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, g := range grades {
		_, err := q.Exec(ctx, query,
			uuid.NewString(), g.Year, string(g.Scheme), g.GradeNumber,
			g.MinSalary, g.MaxSalary, g.InsuredAmount,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert insurance grade %d/%s/%d: %w", g.Year, g.Scheme, g.GradeNumber, err)
		}
	}

	return len(grades), nil
}

func scanGrades(rows pgx.Rows) ([]grade.InsuranceGrade, error) {
	var grades []grade.InsuranceGrade
	for rows.Next() {
		var g grade.InsuranceGrade
		var scheme string
		err := rows.Scan(
			&g.ID, &g.Year, &scheme, &g.GradeNumber,
			&g.MinSalary, &g.MaxSalary, &g.InsuredAmount,
			&g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan insurance grade: %w", err)
		}
		g.Scheme = grade.Scheme(scheme)
		grades = append(grades, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return grades, nil
}
