package grade

import (
	"context"
	"fmt"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/grade"
)

type TemplateServiceImpl struct {
	gradeRepo    grade.GradeRepository
	templateRepo grade.TemplateRepository
}

func NewTemplateService(gradeRepo grade.GradeRepository, templateRepo grade.TemplateRepository) grade.TemplateService {
	return &TemplateServiceImpl{gradeRepo: gradeRepo, templateRepo: templateRepo}
}

func (s *TemplateServiceImpl) SaveAsTemplate(ctx context.Context, req grade.SaveTemplateRequest) (grade.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return grade.TemplateResponse{}, err
	}

	rows, err := s.gradeRepo.GetByYear(ctx, req.Year)
	if err != nil {
		return grade.TemplateResponse{}, err
	}
	if len(rows) == 0 {
		return grade.TemplateResponse{}, grade.ErrGradeTableNotFound
	}

	template := grade.InsuranceGradeTemplate{
		Name:        req.Name,
		Description: req.Description,
		BaseYear:    req.Year,
	}
	for _, g := range rows {
		template.Items = append(template.Items, grade.TemplateItem{
			Scheme:        g.Scheme,
			GradeNumber:   g.GradeNumber,
			MinSalary:     g.MinSalary,
			MaxSalary:     g.MaxSalary,
			InsuredAmount: g.InsuredAmount,
		})
	}

	created, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return grade.TemplateResponse{}, fmt.Errorf("failed to save grade template: %w", err)
	}

	return grade.TemplateResponse{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		BaseYear:    created.BaseYear,
		ItemCount:   len(created.Items),
	}, nil
}

func (s *TemplateServiceImpl) Instantiate(ctx context.Context, req grade.InstantiateTemplateRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	template, err := s.templateRepo.GetByID(ctx, req.TemplateID)
	if err != nil {
		return 0, err
	}

	existing, err := s.gradeRepo.GetByYear(ctx, req.TargetYear)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, grade.ErrTargetYearExists
	}

	rows := make([]grade.InsuranceGrade, 0, len(template.Items))
	for _, item := range template.Items {
		rows = append(rows, grade.InsuranceGrade{
			Year:          req.TargetYear,
			Scheme:        item.Scheme,
			GradeNumber:   item.GradeNumber,
			MinSalary:     item.MinSalary,
			MaxSalary:     item.MaxSalary,
			InsuredAmount: item.InsuredAmount,
		})
	}

	return s.gradeRepo.CreateBatch(ctx, rows)
}

func (s *TemplateServiceImpl) GetTemplate(ctx context.Context, id string) (grade.InsuranceGradeTemplate, error) {
	return s.templateRepo.GetByID(ctx, id)
}

func (s *TemplateServiceImpl) ListTemplates(ctx context.Context) ([]grade.TemplateResponse, error) {
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var result []grade.TemplateResponse
	for _, t := range templates {
		result = append(result, grade.TemplateResponse{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			BaseYear:    t.BaseYear,
			ItemCount:   len(t.Items),
		})
	}

	return result, nil
}

// DeleteTemplate is unconditional: years already instantiated from the
// template keep no back-reference to it.
func (s *TemplateServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	return s.templateRepo.Delete(ctx, id)
}
