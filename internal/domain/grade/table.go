package grade

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/apperror"
)

// Table is an in-memory snapshot of one year's grade rows, grouped by
// scheme. The settlement run loads a Table once so every employee in the
// batch resolves against the same configuration.
type Table struct {
	Year    int
	schemes map[Scheme][]InsuranceGrade
}

// NewTable groups rows by scheme and orders each group by grade number.
func NewTable(year int, rows []InsuranceGrade) *Table {
	t := &Table{Year: year, schemes: make(map[Scheme][]InsuranceGrade)}
	for _, r := range rows {
		t.schemes[r.Scheme] = append(t.schemes[r.Scheme], r)
	}
	for s := range t.schemes {
		rows := t.schemes[s]
		sort.Slice(rows, func(i, j int) bool { return rows[i].GradeNumber < rows[j].GradeNumber })
	}
	return t
}

// Resolve returns the bracket whose range contains salary. When salary
// exceeds every explicit maximum and no open-ended bracket exists, the
// highest-numbered bracket is returned instead of an error: statutory
// tables presume the top bracket is open.
func (t *Table) Resolve(scheme Scheme, salary decimal.Decimal) (InsuranceGrade, error) {
	if salary.IsNegative() {
		return InsuranceGrade{}, apperror.New(apperror.KindValidation, "salary must not be negative")
	}

	rows := t.schemes[scheme]
	if len(rows) == 0 {
		return InsuranceGrade{}, ErrGradeTableNotFound
	}

	for _, g := range rows {
		if g.MinSalary.LessThanOrEqual(salary) && (g.MaxSalary == nil || salary.LessThanOrEqual(*g.MaxSalary)) {
			return g, nil
		}
	}

	// Top-bracket fallback.
	return rows[len(rows)-1], nil
}

// ByNumber returns the bracket with the given grade number.
func (t *Table) ByNumber(scheme Scheme, gradeNumber int) (InsuranceGrade, error) {
	rows := t.schemes[scheme]
	if len(rows) == 0 {
		return InsuranceGrade{}, ErrGradeTableNotFound
	}
	for _, g := range rows {
		if g.GradeNumber == gradeNumber {
			return g, nil
		}
	}
	return InsuranceGrade{}, apperror.New(apperror.KindComputation,
		"assigned grade number has no bracket in the year's table")
}

// Empty reports whether the table has no rows for the scheme.
func (t *Table) Empty(scheme Scheme) bool {
	return len(t.schemes[scheme]) == 0
}
