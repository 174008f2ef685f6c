package payroll

import "context"

type SettingService interface {
	GetSetting(ctx context.Context, companyID string) (SettingResponse, error)
	UpdateSetting(ctx context.Context, companyID string, req UpdateSettingRequest) (SettingResponse, error)
	ListWithholding(ctx context.Context, year int) ([]WithholdingBracket, error)
	ReplaceWithholding(ctx context.Context, req ReplaceWithholdingRequest) (int, error)
}

type SettlementService interface {
	CreatePeriod(ctx context.Context, companyID string, req CreatePeriodRequest) (PeriodResponse, error)
	GetPeriod(ctx context.Context, periodID string) (PeriodResponse, error)
	ListPeriods(ctx context.Context, companyID string) ([]PeriodResponse, error)
	// CalculatePeriod settles one draft period: it computes a slip for
	// every active salary profile and installs the whole set atomically,
	// advancing the period to calculated. All-or-nothing.
	CalculatePeriod(ctx context.Context, periodID, operatorID string) (CalculatePeriodResponse, error)
	ApprovePeriod(ctx context.Context, periodID, operatorID string) (PeriodResponse, error)
	MarkPeriodPaid(ctx context.Context, periodID, operatorID string) (PeriodResponse, error)
	ListSlips(ctx context.Context, periodID string) ([]SlipResponse, error)
}
