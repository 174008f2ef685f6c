package grade

import "github.com/lianhui-erp/payroll-engine-go/internal/pkg/apperror"

var (
	ErrGradeTableNotFound = apperror.New(apperror.KindNotFound, "no insurance grades for year and scheme")
	ErrGradeYearExists    = apperror.New(apperror.KindConflict, "insurance grades already exist for this year and scheme")
	ErrTemplateNotFound   = apperror.New(apperror.KindNotFound, "grade template not found")
	ErrTargetYearExists   = apperror.New(apperror.KindConflict, "target year already has insurance grades")
)
