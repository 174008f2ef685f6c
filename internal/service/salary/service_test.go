package salary

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/lianhui-erp/payroll-engine-go/internal/domain/salary"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/validator"
)

type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeProfileRepo struct {
	profiles []salary.EmployeeSalaryProfile
}

func (r *fakeProfileRepo) Create(_ context.Context, p salary.EmployeeSalaryProfile) (salary.EmployeeSalaryProfile, error) {
	p.ID = fmt.Sprintf("profile-%d", len(r.profiles)+1)
	r.profiles = append(r.profiles, p)
	return p, nil
}

func (r *fakeProfileRepo) GetActive(_ context.Context, employeeID, companyID string) (salary.EmployeeSalaryProfile, error) {
	for _, p := range r.profiles {
		if p.EmployeeID == employeeID && p.CompanyID == companyID && p.IsActive {
			return p, nil
		}
	}
	return salary.EmployeeSalaryProfile{}, salary.ErrNoActiveProfile
}

func (r *fakeProfileRepo) ListActiveByCompany(_ context.Context, companyID string) ([]salary.EmployeeSalaryProfile, error) {
	var out []salary.EmployeeSalaryProfile
	for _, p := range r.profiles {
		if p.CompanyID == companyID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) ListByEmployee(_ context.Context, employeeID, companyID string) ([]salary.EmployeeSalaryProfile, error) {
	var out []salary.EmployeeSalaryProfile
	for _, p := range r.profiles {
		if p.EmployeeID == employeeID && p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) Deactivate(_ context.Context, employeeID, companyID string, endDate time.Time) error {
	for i, p := range r.profiles {
		if p.EmployeeID == employeeID && p.CompanyID == companyID && p.IsActive {
			r.profiles[i].IsActive = false
			r.profiles[i].EndDate = &endDate
		}
	}
	return nil
}

type fakeSettingRepo struct {
	payroll.PayrollRepository
	setting *payroll.PayrollSetting
}

func (r *fakeSettingRepo) GetSetting(_ context.Context, _ string) (payroll.PayrollSetting, error) {
	if r.setting == nil {
		return payroll.PayrollSetting{}, payroll.ErrSettingNotFound
	}
	return *r.setting, nil
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func validRequest() salary.CreateProfileRequest {
	return salary.CreateProfileRequest{
		EmployeeID:          "e1",
		BaseSalary:          d("33000"),
		Allowances:          []salary.Allowance{{Name: "meal", Amount: d("2400")}},
		EmployeePensionRate: d("0.06"),
		Dependents:          1,
		EffectiveDate:       "2026-03-01",
	}
}

func TestProfileService_CreateProfile(t *testing.T) {
	repo := &fakeProfileRepo{}
	svc := NewProfileService(fakeTx{}, repo, &fakeSettingRepo{})

	created, err := svc.CreateProfile(context.Background(), "c1", validRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, "2026-03-01", created.EffectiveDate)
}

func TestProfileService_CreateProfile_SupersedesActive(t *testing.T) {
	repo := &fakeProfileRepo{}
	svc := NewProfileService(fakeTx{}, repo, &fakeSettingRepo{})

	_, err := svc.CreateProfile(context.Background(), "c1", validRequest())
	require.NoError(t, err)

	next := validRequest()
	next.BaseSalary = d("36000")
	next.EffectiveDate = "2026-06-01"
	_, err = svc.CreateProfile(context.Background(), "c1", next)
	require.NoError(t, err)

	active, err := svc.GetActiveProfile(context.Background(), "e1", "c1")
	require.NoError(t, err)
	assert.True(t, active.BaseSalary.Equal(d("36000")))

	history, err := svc.ListProfileHistory(context.Background(), "e1", "c1")
	require.NoError(t, err)
	require.Len(t, history, 2)

	// The superseded profile closes at the new effective date.
	old := history[0]
	assert.False(t, old.IsActive)
	require.NotNil(t, old.EndDate)
	assert.Equal(t, "2026-06-01", *old.EndDate)
}

func TestProfileService_CreateProfile_BelowMinimumWage(t *testing.T) {
	setting := payroll.PayrollSetting{MinimumWage: d("27470")}
	svc := NewProfileService(fakeTx{}, &fakeProfileRepo{}, &fakeSettingRepo{setting: &setting})

	req := validRequest()
	req.BaseSalary = d("20000")
	_, err := svc.CreateProfile(context.Background(), "c1", req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "base_salary", verrs[0].Field)
}

func TestProfileService_CreateProfile_NoSettingSkipsWageCheck(t *testing.T) {
	svc := NewProfileService(fakeTx{}, &fakeProfileRepo{}, &fakeSettingRepo{})

	req := validRequest()
	req.BaseSalary = d("100")
	_, err := svc.CreateProfile(context.Background(), "c1", req)

	assert.NoError(t, err)
}

func TestProfileService_CreateProfile_InvalidRequest(t *testing.T) {
	svc := NewProfileService(fakeTx{}, &fakeProfileRepo{}, &fakeSettingRepo{})

	cases := []struct {
		name   string
		mutate func(*salary.CreateProfileRequest)
	}{
		{"missing employee", func(r *salary.CreateProfileRequest) { r.EmployeeID = " " }},
		{"negative base salary", func(r *salary.CreateProfileRequest) { r.BaseSalary = d("-1") }},
		{"pension rate above cap", func(r *salary.CreateProfileRequest) { r.EmployeePensionRate = d("0.07") }},
		{"negative dependents", func(r *salary.CreateProfileRequest) { r.Dependents = -1 }},
		{"bad effective date", func(r *salary.CreateProfileRequest) { r.EffectiveDate = "03/01/2026" }},
		{"unnamed allowance", func(r *salary.CreateProfileRequest) {
			r.Allowances = []salary.Allowance{{Name: "", Amount: d("100")}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			_, err := svc.CreateProfile(context.Background(), "c1", req)

			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}

func TestProfileService_GetActiveProfile_NotFound(t *testing.T) {
	svc := NewProfileService(fakeTx{}, &fakeProfileRepo{}, &fakeSettingRepo{})

	_, err := svc.GetActiveProfile(context.Background(), "nobody", "c1")

	assert.ErrorIs(t, err, salary.ErrNoActiveProfile)
}
