package payroll

import "github.com/lianhui-erp/payroll-engine-go/internal/pkg/apperror"

var (
	ErrSettingNotFound     = apperror.New(apperror.KindNotFound, "missing payroll configuration")
	ErrPeriodNotFound      = apperror.New(apperror.KindNotFound, "payroll period not found")
	ErrPeriodExists        = apperror.New(apperror.KindConflict, "payroll period already exists for this month")
	ErrPeriodNotDraft      = apperror.New(apperror.KindPrecondition, "only draft periods may be calculated")
	ErrPeriodNotCalculated = apperror.New(apperror.KindPrecondition, "only calculated periods may be approved")
	ErrPeriodNotApproved   = apperror.New(apperror.KindPrecondition, "only approved periods may be marked paid")
	ErrSlipNotFound        = apperror.New(apperror.KindNotFound, "payroll slip not found")
)
