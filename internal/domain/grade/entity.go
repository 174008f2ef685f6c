package grade

import (
	"time"

	"github.com/shopspring/decimal"
)

// Scheme enum
type Scheme string

const (
	SchemeLabor   Scheme = "labor"
	SchemeHealth  Scheme = "health"
	SchemePension Scheme = "pension"
)

func (s Scheme) Valid() bool {
	switch s {
	case SchemeLabor, SchemeHealth, SchemePension:
		return true
	}
	return false
}

// Schemes lists every insurance scheme in canonical order.
var Schemes = []Scheme{SchemeLabor, SchemeHealth, SchemePension}

// InsuranceGrade is one row of a statutory salary bracket table. For a
// given (year, scheme) the rows are contiguous, non-overlapping and
// ordered by grade number, with exactly one open-ended top bracket
// (MaxSalary nil).
type InsuranceGrade struct {
	ID            string
	Year          int
	Scheme        Scheme
	GradeNumber   int
	MinSalary     decimal.Decimal
	MaxSalary     *decimal.Decimal
	InsuredAmount decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InsuranceGradeTemplate is a named snapshot of a full year's grade set
// (all schemes), reusable to seed another year.
type InsuranceGradeTemplate struct {
	ID          string
	Name        string
	Description *string
	BaseYear    int
	Items       []TemplateItem
	CreatedAt   time.Time
}

// TemplateItem mirrors one snapshotted InsuranceGrade row.
type TemplateItem struct {
	ID            string
	TemplateID    string
	Scheme        Scheme
	GradeNumber   int
	MinSalary     decimal.Decimal
	MaxSalary     *decimal.Decimal
	InsuredAmount decimal.Decimal
}
