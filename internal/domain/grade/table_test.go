package grade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/apperror"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func ptr[T any](v T) *T { return &v }

func laborRows() []InsuranceGrade {
	return []InsuranceGrade{
		{Year: 2026, Scheme: SchemeLabor, GradeNumber: 1, MinSalary: d("0"), MaxSalary: ptr(d("27600")), InsuredAmount: d("27600")},
		{Year: 2026, Scheme: SchemeLabor, GradeNumber: 2, MinSalary: d("27601"), MaxSalary: ptr(d("28800")), InsuredAmount: d("28800")},
		{Year: 2026, Scheme: SchemeLabor, GradeNumber: 3, MinSalary: d("28801"), MaxSalary: nil, InsuredAmount: d("30300")},
	}
}

func TestTable_Resolve_ContainingBracket(t *testing.T) {
	table := NewTable(2026, laborRows())

	g, err := table.Resolve(SchemeLabor, d("28000"))

	require.NoError(t, err)
	assert.Equal(t, 2, g.GradeNumber)
}

func TestTable_Resolve_BoundariesInclusive(t *testing.T) {
	table := NewTable(2026, laborRows())

	low, err := table.Resolve(SchemeLabor, d("27601"))
	require.NoError(t, err)
	assert.Equal(t, 2, low.GradeNumber)

	high, err := table.Resolve(SchemeLabor, d("28800"))
	require.NoError(t, err)
	assert.Equal(t, 2, high.GradeNumber)
}

func TestTable_Resolve_OpenTopBracket(t *testing.T) {
	table := NewTable(2026, laborRows())

	g, err := table.Resolve(SchemeLabor, d("1000000"))

	require.NoError(t, err)
	assert.Equal(t, 3, g.GradeNumber)
}

func TestTable_Resolve_FallsBackToHighestBracket(t *testing.T) {
	// All brackets bounded: a salary above every maximum resolves to the
	// top bracket rather than erroring.
	rows := []InsuranceGrade{
		{Year: 2026, Scheme: SchemeLabor, GradeNumber: 1, MinSalary: d("0"), MaxSalary: ptr(d("27600")), InsuredAmount: d("27600")},
		{Year: 2026, Scheme: SchemeLabor, GradeNumber: 2, MinSalary: d("27601"), MaxSalary: ptr(d("28800")), InsuredAmount: d("28800")},
	}
	table := NewTable(2026, rows)

	g, err := table.Resolve(SchemeLabor, d("50000"))

	require.NoError(t, err)
	assert.Equal(t, 2, g.GradeNumber)
}

func TestTable_Resolve_NegativeSalary(t *testing.T) {
	table := NewTable(2026, laborRows())

	_, err := table.Resolve(SchemeLabor, d("-1"))

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestTable_Resolve_EmptyScheme(t *testing.T) {
	table := NewTable(2026, laborRows())

	_, err := table.Resolve(SchemeHealth, d("30000"))

	assert.ErrorIs(t, err, ErrGradeTableNotFound)
}

func TestTable_ByNumber(t *testing.T) {
	table := NewTable(2026, laborRows())

	g, err := table.ByNumber(SchemeLabor, 2)
	require.NoError(t, err)
	assert.True(t, g.InsuredAmount.Equal(d("28800")))

	_, err = table.ByNumber(SchemeLabor, 99)
	assert.True(t, apperror.IsKind(err, apperror.KindComputation))
}

func TestTable_Empty(t *testing.T) {
	table := NewTable(2026, laborRows())

	assert.False(t, table.Empty(SchemeLabor))
	assert.True(t, table.Empty(SchemePension))
}
