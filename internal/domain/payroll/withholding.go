package payroll

import (
	"sort"

	"github.com/shopspring/decimal"
)

// WithholdingBracket is one row of the statutory income-tax withholding
// table for a year: a gross-pay range tied to a dependents count and the
// amount withheld at source. Brackets follow the same contract as
// insurance grades: non-overlapping, monotonic, optionally open-topped.
type WithholdingBracket struct {
	ID         string
	Year       int
	Dependents int
	MinGross   decimal.Decimal
	MaxGross   *decimal.Decimal
	Amount     decimal.Decimal
}

// WithholdingTable is the pluggable income-tax lookup the calculator
// consumes. Implementations must be pure.
type WithholdingTable interface {
	Lookup(grossPay decimal.Decimal, dependents int) decimal.Decimal
}

// BracketWithholdingTable resolves withholding from configured bracket
// rows. An empty table withholds nothing: absence of configuration is
// not an error.
type BracketWithholdingTable struct {
	byDependents map[int][]WithholdingBracket
}

func NewBracketWithholdingTable(rows []WithholdingBracket) *BracketWithholdingTable {
	t := &BracketWithholdingTable{byDependents: make(map[int][]WithholdingBracket)}
	for _, r := range rows {
		t.byDependents[r.Dependents] = append(t.byDependents[r.Dependents], r)
	}
	for d := range t.byDependents {
		rows := t.byDependents[d]
		sort.Slice(rows, func(i, j int) bool { return rows[i].MinGross.LessThan(rows[j].MinGross) })
	}
	return t
}

// Lookup finds the bracket containing grossPay for the dependents tier.
// When the exact dependents count has no rows, the highest configured
// tier below it applies (tables cap out at a maximum tracked count).
func (t *BracketWithholdingTable) Lookup(grossPay decimal.Decimal, dependents int) decimal.Decimal {
	rows := t.rowsFor(dependents)
	if len(rows) == 0 {
		return decimal.Zero
	}
	for _, b := range rows {
		if b.MinGross.LessThanOrEqual(grossPay) && (b.MaxGross == nil || grossPay.LessThanOrEqual(*b.MaxGross)) {
			return b.Amount
		}
	}
	// Same open-top convention as grade resolution.
	return rows[len(rows)-1].Amount
}

func (t *BracketWithholdingTable) rowsFor(dependents int) []WithholdingBracket {
	if rows, ok := t.byDependents[dependents]; ok {
		return rows
	}
	best := -1
	for d := range t.byDependents {
		if d < dependents && d > best {
			best = d
		}
	}
	if best < 0 {
		return nil
	}
	return t.byDependents[best]
}
