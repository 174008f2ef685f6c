package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/attendance"
	"github.com/lianhui-erp/payroll-engine-go/internal/domain/grade"
	"github.com/lianhui-erp/payroll-engine-go/internal/domain/payroll"
	"github.com/lianhui-erp/payroll-engine-go/internal/domain/salary"
)

// defaultWorkers bounds the per-employee computation fan-out.
const defaultWorkers = 8

// TxRunner runs a function inside a single atomic store transaction.
// *database.DB satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type SettlementServiceImpl struct {
	tx             TxRunner
	payrollRepo    payroll.PayrollRepository
	profileRepo    salary.ProfileRepository
	attendanceRepo attendance.AttendanceRepository
	resolver       grade.ResolverService
	calc           *Calculator
	agg            *Aggregator
	workers        int
}

func NewSettlementService(
	tx TxRunner,
	payrollRepo payroll.PayrollRepository,
	profileRepo salary.ProfileRepository,
	attendanceRepo attendance.AttendanceRepository,
	resolver grade.ResolverService,
	calc *Calculator,
	agg *Aggregator,
) payroll.SettlementService {
	return &SettlementServiceImpl{
		tx:             tx,
		payrollRepo:    payrollRepo,
		profileRepo:    profileRepo,
		attendanceRepo: attendanceRepo,
		resolver:       resolver,
		calc:           calc,
		agg:            agg,
		workers:        defaultWorkers,
	}
}

func (s *SettlementServiceImpl) CreatePeriod(ctx context.Context, companyID string, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	_, err := s.payrollRepo.GetPeriodByMonth(ctx, companyID, req.Year, req.Month)
	if err == nil {
		return payroll.PeriodResponse{}, payroll.ErrPeriodExists
	}
	if !errors.Is(err, payroll.ErrPeriodNotFound) {
		return payroll.PeriodResponse{}, err
	}

	created, err := s.payrollRepo.CreatePeriod(ctx, payroll.PayrollPeriod{
		CompanyID: companyID,
		Year:      req.Year,
		Month:     req.Month,
		Status:    payroll.PeriodStatusDraft,
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return payroll.NewPeriodResponse(created), nil
}

func (s *SettlementServiceImpl) GetPeriod(ctx context.Context, periodID string) (payroll.PeriodResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return payroll.NewPeriodResponse(period), nil
}

func (s *SettlementServiceImpl) ListPeriods(ctx context.Context, companyID string) ([]payroll.PeriodResponse, error) {
	periods, err := s.payrollRepo.ListPeriods(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var result []payroll.PeriodResponse
	for _, p := range periods {
		result = append(result, payroll.NewPeriodResponse(p))
	}
	return result, nil
}

func (s *SettlementServiceImpl) CalculatePeriod(ctx context.Context, periodID, operatorID string) (payroll.CalculatePeriodResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.CalculatePeriodResponse{}, err
	}
	if period.Status != payroll.PeriodStatusDraft {
		return payroll.CalculatePeriodResponse{}, payroll.ErrPeriodNotDraft
	}

	setting, err := s.payrollRepo.GetSetting(ctx, period.CompanyID)
	if err != nil {
		return payroll.CalculatePeriodResponse{}, err
	}

	// One consistent snapshot of configuration for the whole run: the
	// grade table and withholding brackets are read once, then every
	// employee resolves against the same in-memory copy.
	table, err := s.resolver.LoadTable(ctx, period.Year)
	if err != nil {
		return payroll.CalculatePeriodResponse{}, err
	}
	whRows, err := s.payrollRepo.GetWithholdingBrackets(ctx, period.Year)
	if err != nil {
		return payroll.CalculatePeriodResponse{}, err
	}
	taxTable := payroll.NewBracketWithholdingTable(whRows)

	profiles, err := s.profileRepo.ListActiveByCompany(ctx, period.CompanyID)
	if err != nil {
		return payroll.CalculatePeriodResponse{}, fmt.Errorf("failed to list active salary profiles: %w", err)
	}

	from := time.Date(period.Year, time.Month(period.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	// Per-employee computation is pure over the shared snapshot, so it
	// fans out safely. Any single failure aborts the whole batch.
	slips := make([]payroll.PayrollSlip, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, profile := range profiles {
		i, profile := i, profile
		g.Go(func() error {
			records, err := s.attendanceRepo.ListByEmployeeRange(gctx, profile.EmployeeID, period.CompanyID, from, to)
			if err != nil {
				return fmt.Errorf("failed to load attendance for employee %s: %w", profile.EmployeeID, err)
			}

			grades, err := s.resolveGrades(table, profile)
			if err != nil {
				return err
			}

			breakdown := s.calc.Calculate(setting, profile, grades, s.agg.Aggregate(records), SlipExtras{}, taxTable)
			slips[i] = payroll.PayrollSlip{
				PeriodID:      period.ID,
				EmployeeID:    profile.EmployeeID,
				CompanyID:     period.CompanyID,
				SlipBreakdown: breakdown,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.CalculatePeriodResponse{}, err
	}

	sort.Slice(slips, func(i, j int) bool { return slips[i].EmployeeID < slips[j].EmployeeID })

	// Claim the draft status and install the slip set in one atomic unit.
	// Of two racing calls, the one losing the conditional update fails
	// with the precondition error and writes nothing.
	now := time.Now().UTC()
	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.UpdatePeriodStatusIf(txCtx, period.ID, payroll.PeriodStatusDraft, payroll.PeriodStatusCalculated, operatorID, now); err != nil {
			return err
		}
		return s.payrollRepo.ReplaceSlips(txCtx, period.ID, slips)
	})
	if err != nil {
		return payroll.CalculatePeriodResponse{}, err
	}

	return payroll.CalculatePeriodResponse{PeriodID: period.ID, SlipCount: len(slips)}, nil
}

func (s *SettlementServiceImpl) ApprovePeriod(ctx context.Context, periodID, operatorID string) (payroll.PeriodResponse, error) {
	return s.advance(ctx, periodID, operatorID, payroll.PeriodStatusCalculated, payroll.PeriodStatusApproved, payroll.ErrPeriodNotCalculated)
}

func (s *SettlementServiceImpl) MarkPeriodPaid(ctx context.Context, periodID, operatorID string) (payroll.PeriodResponse, error) {
	return s.advance(ctx, periodID, operatorID, payroll.PeriodStatusApproved, payroll.PeriodStatusPaid, payroll.ErrPeriodNotApproved)
}

func (s *SettlementServiceImpl) advance(ctx context.Context, periodID, operatorID string, from, to payroll.PeriodStatus, precondition error) (payroll.PeriodResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if !period.Status.CanAdvanceTo(to) || period.Status != from {
		return payroll.PeriodResponse{}, precondition
	}

	if err := s.payrollRepo.UpdatePeriodStatusIf(ctx, periodID, from, to, operatorID, time.Now().UTC()); err != nil {
		return payroll.PeriodResponse{}, err
	}

	return s.GetPeriod(ctx, periodID)
}

func (s *SettlementServiceImpl) ListSlips(ctx context.Context, periodID string) ([]payroll.SlipResponse, error) {
	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID); err != nil {
		return nil, err
	}

	slips, err := s.payrollRepo.ListSlips(ctx, periodID)
	if err != nil {
		return nil, err
	}

	var result []payroll.SlipResponse
	for _, slip := range slips {
		result = append(result, payroll.NewSlipResponse(slip))
	}
	return result, nil
}

// resolveGrades picks each scheme's bracket: by the profile's assigned
// grade number when one is set, otherwise by resolving the base salary.
func (s *SettlementServiceImpl) resolveGrades(table *grade.Table, profile salary.EmployeeSalaryProfile) (ResolvedGrades, error) {
	pick := func(scheme grade.Scheme, number int) (grade.InsuranceGrade, error) {
		if number > 0 {
			return table.ByNumber(scheme, number)
		}
		return table.Resolve(scheme, profile.BaseSalary)
	}

	labor, err := pick(grade.SchemeLabor, profile.LaborGrade)
	if err != nil {
		return ResolvedGrades{}, err
	}
	health, err := pick(grade.SchemeHealth, profile.HealthGrade)
	if err != nil {
		return ResolvedGrades{}, err
	}
	pension, err := pick(grade.SchemePension, profile.PensionGrade)
	if err != nil {
		return ResolvedGrades{}, err
	}

	return ResolvedGrades{Labor: labor, Health: health, Pension: pension}, nil
}
