package grade

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/grade"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/apperror"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/validator"
)

type ResolverServiceImpl struct {
	gradeRepo grade.GradeRepository
}

func NewResolverService(gradeRepo grade.GradeRepository) grade.ResolverService {
	return &ResolverServiceImpl{gradeRepo: gradeRepo}
}

func (s *ResolverServiceImpl) Resolve(ctx context.Context, year int, scheme grade.Scheme, salary decimal.Decimal) (grade.InsuranceGrade, error) {
	if salary.IsNegative() {
		return grade.InsuranceGrade{}, apperror.New(apperror.KindValidation, "salary must not be negative")
	}
	if !scheme.Valid() {
		return grade.InsuranceGrade{}, apperror.New(apperror.KindValidation, "unknown insurance scheme")
	}

	rows, err := s.gradeRepo.GetByYearScheme(ctx, year, scheme)
	if err != nil {
		return grade.InsuranceGrade{}, err
	}
	if len(rows) == 0 {
		return grade.InsuranceGrade{}, grade.ErrGradeTableNotFound
	}

	return grade.NewTable(year, rows).Resolve(scheme, salary)
}

func (s *ResolverServiceImpl) LoadTable(ctx context.Context, year int) (*grade.Table, error) {
	rows, err := s.gradeRepo.GetByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load grade table for %d: %w", year, err)
	}
	return grade.NewTable(year, rows), nil
}

func (s *ResolverServiceImpl) CreateGradeSet(ctx context.Context, req grade.CreateGradeSetRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	scheme := grade.Scheme(req.Scheme)

	existing, err := s.gradeRepo.GetByYearScheme(ctx, req.Year, scheme)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, grade.ErrGradeYearExists
	}

	brackets := make([]grade.BracketInput, len(req.Brackets))
	copy(brackets, req.Brackets)
	sort.Slice(brackets, func(i, j int) bool { return brackets[i].GradeNumber < brackets[j].GradeNumber })

	if err := validateBracketSet(brackets); err != nil {
		return 0, err
	}

	rows := make([]grade.InsuranceGrade, 0, len(brackets))
	for _, b := range brackets {
		rows = append(rows, grade.InsuranceGrade{
			Year:          req.Year,
			Scheme:        scheme,
			GradeNumber:   b.GradeNumber,
			MinSalary:     b.MinSalary,
			MaxSalary:     b.MaxSalary,
			InsuredAmount: b.InsuredAmount,
		})
	}

	return s.gradeRepo.CreateBatch(ctx, rows)
}

func (s *ResolverServiceImpl) ListGrades(ctx context.Context, year int) ([]grade.GradeResponse, error) {
	rows, err := s.gradeRepo.GetByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	var result []grade.GradeResponse
	for _, g := range rows {
		result = append(result, grade.GradeResponse{
			ID:            g.ID,
			Year:          g.Year,
			Scheme:        string(g.Scheme),
			GradeNumber:   g.GradeNumber,
			MinSalary:     g.MinSalary,
			MaxSalary:     g.MaxSalary,
			InsuredAmount: g.InsuredAmount,
		})
	}

	return result, nil
}

var one = decimal.NewFromInt(1)

// validateBracketSet enforces the statutory table invariants on a
// grade-number-sorted bracket list: distinct grade numbers, the ranges
// non-overlapping and contiguous at whole-unit granularity, starting at
// zero, with exactly one open-ended bracket in last position.
func validateBracketSet(brackets []grade.BracketInput) error {
	var errs validator.ValidationErrors

	fail := func(msg string) error {
		errs = append(errs, validator.ValidationError{Field: "brackets", Message: msg})
		return errs
	}

	openTops := 0
	for i, b := range brackets {
		if i > 0 && b.GradeNumber == brackets[i-1].GradeNumber {
			return fail("grade numbers must be distinct")
		}
		if b.MinSalary.IsNegative() || b.InsuredAmount.IsNegative() {
			return fail("bracket amounts must not be negative")
		}
		if b.MaxSalary == nil {
			openTops++
			if i != len(brackets)-1 {
				return fail("only the top bracket may be open-ended")
			}
			continue
		}
		if b.MaxSalary.LessThan(b.MinSalary) {
			return fail("bracket max must not be below its min")
		}
	}

	if openTops != 1 {
		return fail("exactly one open-ended top bracket is required")
	}
	if !brackets[0].MinSalary.IsZero() {
		return fail("the first bracket must start at zero")
	}

	for i := 1; i < len(brackets); i++ {
		prevMax := brackets[i-1].MaxSalary
		gap := brackets[i].MinSalary.Sub(*prevMax)
		if gap.LessThanOrEqual(decimal.Zero) {
			return fail("brackets must not overlap")
		}
		if gap.GreaterThan(one) {
			return fail("brackets must be contiguous")
		}
	}

	return nil
}
