package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/grade"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/database"
)

type templateRepositoryImpl struct {
	db *database.DB
}

func NewTemplateRepository(db *database.DB) grade.TemplateRepository {
	return &templateRepositoryImpl{db: db}
}

// Create implements grade.TemplateRepository. Header and items are
// inserted in one transaction.
func (r *templateRepositoryImpl) Create(ctx context.Context, template grade.InsuranceGradeTemplate) (grade.InsuranceGradeTemplate, error) {
	template.ID = uuid.NewString()

	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		_, err := q.Exec(txCtx, `
			INSERT INTO grade_templates (id, name, description, base_year)
			VALUES ($1, $2, $3, $4)
		`, template.ID, template.Name, template.Description, template.BaseYear)
		if err != nil {
			return fmt.Errorf("failed to create grade template: %w", err)
		}

		for i := range template.Items {
			item := &template.Items[i]
			item.ID = uuid.NewString()
			item.TemplateID = template.ID

			_, err := q.Exec(txCtx, `
				INSERT INTO grade_template_items (id, template_id, scheme, grade_number, min_salary, max_salary, insured_amount)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, item.ID, item.TemplateID, string(item.Scheme), item.GradeNumber, item.MinSalary, item.MaxSalary, item.InsuredAmount)
			if err != nil {
				return fmt.Errorf("failed to create grade template item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return grade.InsuranceGradeTemplate{}, err
	}

	return template, nil
}

// GetByID implements grade.TemplateRepository.
func (r *templateRepositoryImpl) GetByID(ctx context.Context, id string) (grade.InsuranceGradeTemplate, error) {
	q := GetQuerier(ctx, r.db)

	var t grade.InsuranceGradeTemplate
	err := q.QueryRow(ctx, `
		SELECT id, name, description, base_year, created_at
		FROM grade_templates
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Description, &t.BaseYear, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return grade.InsuranceGradeTemplate{}, grade.ErrTemplateNotFound
	}
	if err != nil {
		return grade.InsuranceGradeTemplate{}, fmt.Errorf("failed to get grade template: %w", err)
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return grade.InsuranceGradeTemplate{}, err
	}
	t.Items = items

	return t, nil
}

// List implements grade.TemplateRepository.
func (r *templateRepositoryImpl) List(ctx context.Context) ([]grade.InsuranceGradeTemplate, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, description, base_year, created_at
		FROM grade_templates
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list grade templates: %w", err)
	}
	defer rows.Close()

	var templates []grade.InsuranceGradeTemplate
	for rows.Next() {
		var t grade.InsuranceGradeTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.BaseYear, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan grade template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	for i := range templates {
		items, err := r.getItems(ctx, templates[i].ID)
		if err != nil {
			return nil, err
		}
		templates[i].Items = items
	}

	return templates, nil
}

// Delete implements grade.TemplateRepository. Items cascade; years
// instantiated from the template are untouched.
func (r *templateRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM grade_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete grade template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return grade.ErrTemplateNotFound
	}

	return nil
}

func (r *templateRepositoryImpl) getItems(ctx context.Context, templateID string) ([]grade.TemplateItem, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, template_id, scheme, grade_number, min_salary, max_salary, insured_amount
		FROM grade_template_items
		WHERE template_id = $1
		ORDER BY scheme ASC, grade_number ASC
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get grade template items: %w", err)
	}
	defer rows.Close()

	var items []grade.TemplateItem
	for rows.Next() {
		var item grade.TemplateItem
		var scheme string
		err := rows.Scan(&item.ID, &item.TemplateID, &scheme, &item.GradeNumber, &item.MinSalary, &item.MaxSalary, &item.InsuredAmount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grade template item: %w", err)
		}
		item.Scheme = grade.Scheme(scheme)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}
