package grade

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/grade"
)

type fakeTemplateRepo struct {
	templates map[string]grade.InsuranceGradeTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[string]grade.InsuranceGradeTemplate)}
}

func (r *fakeTemplateRepo) Create(_ context.Context, template grade.InsuranceGradeTemplate) (grade.InsuranceGradeTemplate, error) {
	template.ID = fmt.Sprintf("tpl-%d", len(r.templates)+1)
	r.templates[template.ID] = template
	return template, nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id string) (grade.InsuranceGradeTemplate, error) {
	t, ok := r.templates[id]
	if !ok {
		return grade.InsuranceGradeTemplate{}, grade.ErrTemplateNotFound
	}
	return t, nil
}

func (r *fakeTemplateRepo) List(_ context.Context) ([]grade.InsuranceGradeTemplate, error) {
	var out []grade.InsuranceGradeTemplate
	for _, t := range r.templates {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.templates[id]; !ok {
		return grade.ErrTemplateNotFound
	}
	delete(r.templates, id)
	return nil
}

func TestTemplateService_SaveAsTemplate(t *testing.T) {
	svc := NewTemplateService(seededRepo(), newFakeTemplateRepo())

	resp, err := svc.SaveAsTemplate(context.Background(), grade.SaveTemplateRequest{
		Year: 2026,
		Name: "statutory 2026",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 2026, resp.BaseYear)
	assert.Equal(t, 3, resp.ItemCount, "snapshot spans every scheme")
}

func TestTemplateService_SaveAsTemplate_EmptyYear(t *testing.T) {
	svc := NewTemplateService(seededRepo(), newFakeTemplateRepo())

	_, err := svc.SaveAsTemplate(context.Background(), grade.SaveTemplateRequest{
		Year: 2020,
		Name: "nothing here",
	})

	assert.ErrorIs(t, err, grade.ErrGradeTableNotFound)
}

func TestTemplateService_Instantiate_RoundTrip(t *testing.T) {
	gradeRepo := seededRepo()
	svc := NewTemplateService(gradeRepo, newFakeTemplateRepo())

	saved, err := svc.SaveAsTemplate(context.Background(), grade.SaveTemplateRequest{
		Year: 2026,
		Name: "statutory 2026",
	})
	require.NoError(t, err)

	n, err := svc.Instantiate(context.Background(), grade.InstantiateTemplateRequest{
		TemplateID: saved.ID,
		TargetYear: 2027,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, n)

	source, _ := gradeRepo.GetByYear(context.Background(), 2026)
	copied, _ := gradeRepo.GetByYear(context.Background(), 2027)
	require.Len(t, copied, len(source))
	for i := range copied {
		assert.Equal(t, 2027, copied[i].Year)
		assert.Equal(t, source[i].Scheme, copied[i].Scheme)
		assert.Equal(t, source[i].GradeNumber, copied[i].GradeNumber)
		assert.True(t, copied[i].MinSalary.Equal(source[i].MinSalary))
		assert.True(t, copied[i].InsuredAmount.Equal(source[i].InsuredAmount))
	}
}

func TestTemplateService_Instantiate_TargetYearOccupied(t *testing.T) {
	svc := NewTemplateService(seededRepo(), newFakeTemplateRepo())

	saved, err := svc.SaveAsTemplate(context.Background(), grade.SaveTemplateRequest{
		Year: 2026,
		Name: "statutory 2026",
	})
	require.NoError(t, err)

	_, err = svc.Instantiate(context.Background(), grade.InstantiateTemplateRequest{
		TemplateID: saved.ID,
		TargetYear: 2026,
	})

	assert.ErrorIs(t, err, grade.ErrTargetYearExists)
}

func TestTemplateService_Instantiate_TemplateNotFound(t *testing.T) {
	svc := NewTemplateService(seededRepo(), newFakeTemplateRepo())

	_, err := svc.Instantiate(context.Background(), grade.InstantiateTemplateRequest{
		TemplateID: "missing",
		TargetYear: 2027,
	})

	assert.ErrorIs(t, err, grade.ErrTemplateNotFound)
}

func TestTemplateService_DeleteTemplate(t *testing.T) {
	templateRepo := newFakeTemplateRepo()
	svc := NewTemplateService(seededRepo(), templateRepo)

	saved, err := svc.SaveAsTemplate(context.Background(), grade.SaveTemplateRequest{
		Year: 2026,
		Name: "statutory 2026",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTemplate(context.Background(), saved.ID))
	assert.ErrorIs(t, svc.DeleteTemplate(context.Background(), saved.ID), grade.ErrTemplateNotFound)
}
