package grade

import (
	"context"

	"github.com/shopspring/decimal"
)

type ResolverService interface {
	// Resolve maps a salary to its statutory bracket for a year/scheme.
	Resolve(ctx context.Context, year int, scheme Scheme, salary decimal.Decimal) (InsuranceGrade, error)
	// LoadTable reads one consistent snapshot of a year's grade rows.
	LoadTable(ctx context.Context, year int) (*Table, error)
	CreateGradeSet(ctx context.Context, req CreateGradeSetRequest) (int, error)
	ListGrades(ctx context.Context, year int) ([]GradeResponse, error)
}

type TemplateService interface {
	SaveAsTemplate(ctx context.Context, req SaveTemplateRequest) (TemplateResponse, error)
	Instantiate(ctx context.Context, req InstantiateTemplateRequest) (int, error)
	GetTemplate(ctx context.Context, id string) (InsuranceGradeTemplate, error)
	ListTemplates(ctx context.Context) ([]TemplateResponse, error)
	DeleteTemplate(ctx context.Context, id string) error
}
