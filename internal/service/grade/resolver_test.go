package grade

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/grade"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/apperror"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/validator"
)

type fakeGradeRepo struct {
	rows []grade.InsuranceGrade
}

func (r *fakeGradeRepo) GetByYearScheme(_ context.Context, year int, scheme grade.Scheme) ([]grade.InsuranceGrade, error) {
	var out []grade.InsuranceGrade
	for _, g := range r.rows {
		if g.Year == year && g.Scheme == scheme {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGradeRepo) GetByYear(_ context.Context, year int) ([]grade.InsuranceGrade, error) {
	var out []grade.InsuranceGrade
	for _, g := range r.rows {
		if g.Year == year {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGradeRepo) CreateBatch(_ context.Context, grades []grade.InsuranceGrade) (int, error) {
	for i, g := range grades {
		g.ID = fmt.Sprintf("grade-%d", len(r.rows)+i)
		r.rows = append(r.rows, g)
	}
	return len(grades), nil
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func ptr[T any](v T) *T { return &v }

func seededRepo() *fakeGradeRepo {
	return &fakeGradeRepo{rows: []grade.InsuranceGrade{
		{ID: "l1", Year: 2026, Scheme: grade.SchemeLabor, GradeNumber: 1, MinSalary: d("0"), MaxSalary: ptr(d("27600")), InsuredAmount: d("27600")},
		{ID: "l2", Year: 2026, Scheme: grade.SchemeLabor, GradeNumber: 2, MinSalary: d("27601"), MaxSalary: nil, InsuredAmount: d("28800")},
		{ID: "h1", Year: 2026, Scheme: grade.SchemeHealth, GradeNumber: 1, MinSalary: d("0"), MaxSalary: nil, InsuredAmount: d("27600")},
	}}
}

func TestResolverService_Resolve(t *testing.T) {
	svc := NewResolverService(seededRepo())

	g, err := svc.Resolve(context.Background(), 2026, grade.SchemeLabor, d("20000"))

	require.NoError(t, err)
	assert.Equal(t, 1, g.GradeNumber)
	assert.True(t, g.InsuredAmount.Equal(d("27600")))
}

func TestResolverService_Resolve_NegativeSalary(t *testing.T) {
	svc := NewResolverService(seededRepo())

	_, err := svc.Resolve(context.Background(), 2026, grade.SchemeLabor, d("-5"))

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestResolverService_Resolve_UnknownScheme(t *testing.T) {
	svc := NewResolverService(seededRepo())

	_, err := svc.Resolve(context.Background(), 2026, grade.Scheme("dental"), d("20000"))

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestResolverService_Resolve_NoGradesForYear(t *testing.T) {
	svc := NewResolverService(seededRepo())

	_, err := svc.Resolve(context.Background(), 2020, grade.SchemeLabor, d("20000"))

	assert.ErrorIs(t, err, grade.ErrGradeTableNotFound)
}

func validBrackets() []grade.BracketInput {
	return []grade.BracketInput{
		{GradeNumber: 1, MinSalary: d("0"), MaxSalary: ptr(d("27600")), InsuredAmount: d("27600")},
		{GradeNumber: 2, MinSalary: d("27601"), MaxSalary: ptr(d("28800")), InsuredAmount: d("28800")},
		{GradeNumber: 3, MinSalary: d("28801"), MaxSalary: nil, InsuredAmount: d("30300")},
	}
}

func TestResolverService_CreateGradeSet(t *testing.T) {
	repo := &fakeGradeRepo{}
	svc := NewResolverService(repo)

	n, err := svc.CreateGradeSet(context.Background(), grade.CreateGradeSetRequest{
		Year:     2027,
		Scheme:   "labor",
		Brackets: validBrackets(),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, repo.rows, 3)
}

func TestResolverService_CreateGradeSet_YearSchemeConflict(t *testing.T) {
	svc := NewResolverService(seededRepo())

	_, err := svc.CreateGradeSet(context.Background(), grade.CreateGradeSetRequest{
		Year:     2026,
		Scheme:   "labor",
		Brackets: validBrackets(),
	})

	assert.ErrorIs(t, err, grade.ErrGradeYearExists)
}

func TestResolverService_CreateGradeSet_InvalidSets(t *testing.T) {
	cases := []struct {
		name     string
		brackets []grade.BracketInput
	}{
		{
			name: "overlapping ranges",
			brackets: []grade.BracketInput{
				{GradeNumber: 1, MinSalary: d("0"), MaxSalary: ptr(d("28000")), InsuredAmount: d("27600")},
				{GradeNumber: 2, MinSalary: d("27601"), MaxSalary: nil, InsuredAmount: d("28800")},
			},
		},
		{
			name: "gap between ranges",
			brackets: []grade.BracketInput{
				{GradeNumber: 1, MinSalary: d("0"), MaxSalary: ptr(d("27600")), InsuredAmount: d("27600")},
				{GradeNumber: 2, MinSalary: d("30000"), MaxSalary: nil, InsuredAmount: d("28800")},
			},
		},
		{
			name: "no open top",
			brackets: []grade.BracketInput{
				{GradeNumber: 1, MinSalary: d("0"), MaxSalary: ptr(d("27600")), InsuredAmount: d("27600")},
				{GradeNumber: 2, MinSalary: d("27601"), MaxSalary: ptr(d("28800")), InsuredAmount: d("28800")},
			},
		},
		{
			name: "open-ended bracket not last",
			brackets: []grade.BracketInput{
				{GradeNumber: 1, MinSalary: d("0"), MaxSalary: nil, InsuredAmount: d("27600")},
				{GradeNumber: 2, MinSalary: d("27601"), MaxSalary: nil, InsuredAmount: d("28800")},
			},
		},
		{
			name: "first bracket not at zero",
			brackets: []grade.BracketInput{
				{GradeNumber: 1, MinSalary: d("100"), MaxSalary: ptr(d("27600")), InsuredAmount: d("27600")},
				{GradeNumber: 2, MinSalary: d("27601"), MaxSalary: nil, InsuredAmount: d("28800")},
			},
		},
		{
			name: "duplicate grade numbers",
			brackets: []grade.BracketInput{
				{GradeNumber: 1, MinSalary: d("0"), MaxSalary: ptr(d("27600")), InsuredAmount: d("27600")},
				{GradeNumber: 1, MinSalary: d("27601"), MaxSalary: nil, InsuredAmount: d("28800")},
			},
		},
		{
			name: "negative insured amount",
			brackets: []grade.BracketInput{
				{GradeNumber: 1, MinSalary: d("0"), MaxSalary: ptr(d("27600")), InsuredAmount: d("-1")},
				{GradeNumber: 2, MinSalary: d("27601"), MaxSalary: nil, InsuredAmount: d("28800")},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeGradeRepo{}
			svc := NewResolverService(repo)

			_, err := svc.CreateGradeSet(context.Background(), grade.CreateGradeSetRequest{
				Year:     2027,
				Scheme:   "labor",
				Brackets: tc.brackets,
			})

			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
			assert.Empty(t, repo.rows, "invalid sets must write nothing")
		})
	}
}

func TestResolverService_CreateGradeSet_SortsBeforeValidation(t *testing.T) {
	repo := &fakeGradeRepo{}
	svc := NewResolverService(repo)

	// Brackets arrive out of order but form a valid set once sorted.
	n, err := svc.CreateGradeSet(context.Background(), grade.CreateGradeSetRequest{
		Year:   2027,
		Scheme: "health",
		Brackets: []grade.BracketInput{
			{GradeNumber: 2, MinSalary: d("27601"), MaxSalary: nil, InsuredAmount: d("28800")},
			{GradeNumber: 1, MinSalary: d("0"), MaxSalary: ptr(d("27600")), InsuredAmount: d("27600")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, repo.rows[0].GradeNumber)
}

func TestResolverService_ListGrades(t *testing.T) {
	svc := NewResolverService(seededRepo())

	result, err := svc.ListGrades(context.Background(), 2026)

	require.NoError(t, err)
	assert.Len(t, result, 3)
}
