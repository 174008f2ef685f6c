package salary

import (
	"context"
	"errors"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/lianhui-erp/payroll-engine-go/internal/domain/salary"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/validator"
)

// TxRunner runs a function inside a single atomic store transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProfileServiceImpl struct {
	tx          TxRunner
	profileRepo salary.ProfileRepository
	payrollRepo payroll.PayrollRepository
}

func NewProfileService(tx TxRunner, profileRepo salary.ProfileRepository, payrollRepo payroll.PayrollRepository) salary.ProfileService {
	return &ProfileServiceImpl{tx: tx, profileRepo: profileRepo, payrollRepo: payrollRepo}
}

func (s *ProfileServiceImpl) CreateProfile(ctx context.Context, companyID string, req salary.CreateProfileRequest) (salary.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.ProfileResponse{}, err
	}
	effectiveDate, _ := validator.IsValidDate(req.EffectiveDate)

	// Base salary below the configured minimum wage is a data-entry
	// mistake, not a policy choice.
	setting, err := s.payrollRepo.GetSetting(ctx, companyID)
	if err != nil && !errors.Is(err, payroll.ErrSettingNotFound) {
		return salary.ProfileResponse{}, err
	}
	if err == nil && setting.MinimumWage.IsPositive() && req.BaseSalary.LessThan(setting.MinimumWage) {
		return salary.ProfileResponse{}, validator.ValidationErrors{{
			Field:   "base_salary",
			Message: "base_salary is below the configured minimum wage",
		}}
	}

	profile := salary.EmployeeSalaryProfile{
		EmployeeID:          req.EmployeeID,
		CompanyID:           companyID,
		BaseSalary:          req.BaseSalary,
		Allowances:          req.Allowances,
		LaborGrade:          req.LaborGrade,
		HealthGrade:         req.HealthGrade,
		PensionGrade:        req.PensionGrade,
		EmployeePensionRate: req.EmployeePensionRate,
		Dependents:          req.Dependents,
		EffectiveDate:       effectiveDate,
		IsActive:            true,
	}

	var created salary.EmployeeSalaryProfile
	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		// The superseded profile's end date is the new effective date.
		if err := s.profileRepo.Deactivate(txCtx, req.EmployeeID, companyID, effectiveDate); err != nil {
			return err
		}
		var err error
		created, err = s.profileRepo.Create(txCtx, profile)
		return err
	})
	if err != nil {
		return salary.ProfileResponse{}, err
	}

	return salary.NewProfileResponse(created), nil
}

func (s *ProfileServiceImpl) GetActiveProfile(ctx context.Context, employeeID, companyID string) (salary.ProfileResponse, error) {
	profile, err := s.profileRepo.GetActive(ctx, employeeID, companyID)
	if err != nil {
		return salary.ProfileResponse{}, err
	}
	return salary.NewProfileResponse(profile), nil
}

func (s *ProfileServiceImpl) ListActiveProfiles(ctx context.Context, companyID string) ([]salary.ProfileResponse, error) {
	profiles, err := s.profileRepo.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var result []salary.ProfileResponse
	for _, p := range profiles {
		result = append(result, salary.NewProfileResponse(p))
	}
	return result, nil
}

func (s *ProfileServiceImpl) ListProfileHistory(ctx context.Context, employeeID, companyID string) ([]salary.ProfileResponse, error) {
	profiles, err := s.profileRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	var result []salary.ProfileResponse
	for _, p := range profiles {
		result = append(result, salary.NewProfileResponse(p))
	}
	return result, nil
}
