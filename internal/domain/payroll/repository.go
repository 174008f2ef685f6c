package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access for settings, periods, slips and
// withholding tables. Status updates are conditional on the expected
// source status so racing settlement calls serialize at the store.
type PayrollRepository interface {
	// Settings
	GetSetting(ctx context.Context, companyID string) (PayrollSetting, error)
	UpsertSetting(ctx context.Context, setting PayrollSetting) (PayrollSetting, error)

	// Periods
	CreatePeriod(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	GetPeriodByID(ctx context.Context, id string) (PayrollPeriod, error)
	GetPeriodByMonth(ctx context.Context, companyID string, year, month int) (PayrollPeriod, error)
	ListPeriods(ctx context.Context, companyID string) ([]PayrollPeriod, error)
	// UpdatePeriodStatusIf advances the period from the expected status,
	// stamping operator and timestamp. It fails with the precondition
	// error for the transition when the period is no longer in `from`.
	UpdatePeriodStatusIf(ctx context.Context, periodID string, from, to PeriodStatus, operatorID string, at time.Time) error

	// Slips
	ReplaceSlips(ctx context.Context, periodID string, slips []PayrollSlip) error
	ListSlips(ctx context.Context, periodID string) ([]PayrollSlip, error)

	// Withholding
	GetWithholdingBrackets(ctx context.Context, year int) ([]WithholdingBracket, error)
	ReplaceWithholdingBrackets(ctx context.Context, year int, brackets []WithholdingBracket) error
}
