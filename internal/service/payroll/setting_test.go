package payroll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/validator"
)

func TestSettingService_GetSetting_NotConfigured(t *testing.T) {
	svc := NewSettingService(newFakePayrollRepo())

	_, err := svc.GetSetting(context.Background(), "c1")

	assert.ErrorIs(t, err, payroll.ErrSettingNotFound)
}

func TestSettingService_UpdateSetting_CreatesThenMerges(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := NewSettingService(repo)

	first, err := svc.UpdateSetting(context.Background(), "c1", payroll.UpdateSettingRequest{
		LaborInsuranceRate:     ptr(d("0.125")),
		LaborInsuranceEmpShare: ptr(d("0.2")),
		MinimumWage:            ptr(d("27470")),
	})
	require.NoError(t, err)
	assert.True(t, first.LaborInsuranceRate.Equal(d("0.125")))

	// A partial update leaves every unmentioned field alone.
	second, err := svc.UpdateSetting(context.Background(), "c1", payroll.UpdateSettingRequest{
		MinimumWage: ptr(d("28590")),
	})
	require.NoError(t, err)
	assert.True(t, second.MinimumWage.Equal(d("28590")))
	assert.True(t, second.LaborInsuranceRate.Equal(d("0.125")))
	assert.True(t, second.LaborInsuranceEmpShare.Equal(d("0.2")))
}

func TestSettingService_UpdateSetting_RejectsOutOfRangeRates(t *testing.T) {
	svc := NewSettingService(newFakePayrollRepo())

	_, err := svc.UpdateSetting(context.Background(), "c1", payroll.UpdateSettingRequest{
		LaborInsuranceRate: ptr(d("1.5")),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "labor_insurance_rate", verrs[0].Field)
}

func TestSettingService_ReplaceWithholding(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := NewSettingService(repo)

	n, err := svc.ReplaceWithholding(context.Background(), payroll.ReplaceWithholdingRequest{
		Year: 2026,
		Brackets: []payroll.WithholdingBracketInput{
			{Dependents: 0, MinGross: d("88501"), MaxGross: ptr(d("91000")), Amount: d("2110")},
			{Dependents: 0, MinGross: d("91001"), MaxGross: nil, Amount: d("2250")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := svc.ListWithholding(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.NotEmpty(t, row.ID)
		assert.Equal(t, 2026, row.Year)
	}
}

func TestSettingService_ReplaceWithholding_NegativeAmount(t *testing.T) {
	svc := NewSettingService(newFakePayrollRepo())

	_, err := svc.ReplaceWithholding(context.Background(), payroll.ReplaceWithholdingRequest{
		Year: 2026,
		Brackets: []payroll.WithholdingBracketInput{
			{Dependents: 0, MinGross: d("0"), MaxGross: nil, Amount: d("-1")},
		},
	})

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
