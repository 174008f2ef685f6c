package grade

import "context"

type GradeRepository interface {
	GetByYearScheme(ctx context.Context, year int, scheme Scheme) ([]InsuranceGrade, error)
	GetByYear(ctx context.Context, year int) ([]InsuranceGrade, error)
	CreateBatch(ctx context.Context, grades []InsuranceGrade) (int, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, template InsuranceGradeTemplate) (InsuranceGradeTemplate, error)
	GetByID(ctx context.Context, id string) (InsuranceGradeTemplate, error)
	List(ctx context.Context) ([]InsuranceGradeTemplate, error)
	Delete(ctx context.Context, id string) error
}
