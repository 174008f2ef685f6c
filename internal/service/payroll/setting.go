package payroll

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/payroll"
)

type SettingServiceImpl struct {
	payrollRepo payroll.PayrollRepository
}

func NewSettingService(payrollRepo payroll.PayrollRepository) payroll.SettingService {
	return &SettingServiceImpl{payrollRepo: payrollRepo}
}

func (s *SettingServiceImpl) GetSetting(ctx context.Context, companyID string) (payroll.SettingResponse, error) {
	setting, err := s.payrollRepo.GetSetting(ctx, companyID)
	if err != nil {
		return payroll.SettingResponse{}, err
	}
	return newSettingResponse(setting), nil
}

func (s *SettingServiceImpl) UpdateSetting(ctx context.Context, companyID string, req payroll.UpdateSettingRequest) (payroll.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SettingResponse{}, err
	}

	current, err := s.payrollRepo.GetSetting(ctx, companyID)
	if err != nil && !errors.Is(err, payroll.ErrSettingNotFound) {
		return payroll.SettingResponse{}, err
	}
	if errors.Is(err, payroll.ErrSettingNotFound) {
		current = payroll.PayrollSetting{CompanyID: companyID}
	}

	if req.LaborInsuranceRate != nil {
		current.LaborInsuranceRate = *req.LaborInsuranceRate
	}
	if req.LaborInsuranceEmpShare != nil {
		current.LaborInsuranceEmpShare = *req.LaborInsuranceEmpShare
	}
	if req.HealthInsuranceRate != nil {
		current.HealthInsuranceRate = *req.HealthInsuranceRate
	}
	if req.HealthInsuranceEmpShare != nil {
		current.HealthInsuranceEmpShare = *req.HealthInsuranceEmpShare
	}
	if req.PensionEmployerRate != nil {
		current.PensionEmployerRate = *req.PensionEmployerRate
	}
	if req.OvertimeRate1 != nil {
		current.OvertimeRate1 = *req.OvertimeRate1
	}
	if req.OvertimeRate2 != nil {
		current.OvertimeRate2 = *req.OvertimeRate2
	}
	if req.OvertimeRateHoliday != nil {
		current.OvertimeRateHoliday = *req.OvertimeRateHoliday
	}
	if req.MinimumWage != nil {
		current.MinimumWage = *req.MinimumWage
	}
	if req.WithholdingThreshold != nil {
		current.WithholdingThreshold = *req.WithholdingThreshold
	}
	if req.MaxInsuredDependents != nil {
		current.MaxInsuredDependents = req.MaxInsuredDependents
	}

	updated, err := s.payrollRepo.UpsertSetting(ctx, current)
	if err != nil {
		return payroll.SettingResponse{}, err
	}

	return newSettingResponse(updated), nil
}

func (s *SettingServiceImpl) ListWithholding(ctx context.Context, year int) ([]payroll.WithholdingBracket, error) {
	return s.payrollRepo.GetWithholdingBrackets(ctx, year)
}

func (s *SettingServiceImpl) ReplaceWithholding(ctx context.Context, req payroll.ReplaceWithholdingRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	brackets := make([]payroll.WithholdingBracket, 0, len(req.Brackets))
	for _, b := range req.Brackets {
		brackets = append(brackets, payroll.WithholdingBracket{
			ID:         uuid.NewString(),
			Year:       req.Year,
			Dependents: b.Dependents,
			MinGross:   b.MinGross,
			MaxGross:   b.MaxGross,
			Amount:     b.Amount,
		})
	}

	if err := s.payrollRepo.ReplaceWithholdingBrackets(ctx, req.Year, brackets); err != nil {
		return 0, err
	}

	return len(brackets), nil
}

func newSettingResponse(s payroll.PayrollSetting) payroll.SettingResponse {
	return payroll.SettingResponse{
		ID:                      s.ID,
		CompanyID:               s.CompanyID,
		LaborInsuranceRate:      s.LaborInsuranceRate,
		LaborInsuranceEmpShare:  s.LaborInsuranceEmpShare,
		HealthInsuranceRate:     s.HealthInsuranceRate,
		HealthInsuranceEmpShare: s.HealthInsuranceEmpShare,
		PensionEmployerRate:     s.PensionEmployerRate,
		OvertimeRate1:           s.OvertimeRate1,
		OvertimeRate2:           s.OvertimeRate2,
		OvertimeRateHoliday:     s.OvertimeRateHoliday,
		MinimumWage:             s.MinimumWage,
		WithholdingThreshold:    s.WithholdingThreshold,
		MaxInsuredDependents:    s.MaxInsuredDependents,
	}
}
