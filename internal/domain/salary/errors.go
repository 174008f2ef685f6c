package salary

import "github.com/lianhui-erp/payroll-engine-go/internal/pkg/apperror"

var (
	ErrProfileNotFound = apperror.New(apperror.KindNotFound, "salary profile not found")
	ErrNoActiveProfile = apperror.New(apperror.KindNotFound, "employee has no active salary profile")
)
