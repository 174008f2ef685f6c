package grade

import (
	"github.com/shopspring/decimal"

	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/validator"
)

type BracketInput struct {
	GradeNumber   int              `json:"grade_number"`
	MinSalary     decimal.Decimal  `json:"min_salary"`
	MaxSalary     *decimal.Decimal `json:"max_salary"`
	InsuredAmount decimal.Decimal  `json:"insured_amount"`
}

type CreateGradeSetRequest struct {
	Year     int            `json:"year"`
	Scheme   string         `json:"scheme"`
	Brackets []BracketInput `json:"brackets"`
}

func (r *CreateGradeSetRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if !Scheme(r.Scheme).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "scheme",
			Message: "scheme must be labor, health or pension",
		})
	}
	if len(r.Brackets) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "brackets",
			Message: "at least one bracket is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SaveTemplateRequest struct {
	Year        int     `json:"year"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r *SaveTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type InstantiateTemplateRequest struct {
	TemplateID string `json:"template_id"`
	TargetYear int    `json:"target_year"`
}

func (r *InstantiateTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TemplateID) {
		errs = append(errs, validator.ValidationError{
			Field:   "template_id",
			Message: "template_id is required",
		})
	}
	if !validator.IsValidYear(r.TargetYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "target_year",
			Message: "target_year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GradeResponse struct {
	ID            string           `json:"id"`
	Year          int              `json:"year"`
	Scheme        string           `json:"scheme"`
	GradeNumber   int              `json:"grade_number"`
	MinSalary     decimal.Decimal  `json:"min_salary"`
	MaxSalary     *decimal.Decimal `json:"max_salary"`
	InsuredAmount decimal.Decimal  `json:"insured_amount"`
}

type TemplateResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	BaseYear    int     `json:"base_year"`
	ItemCount   int     `json:"item_count"`
}
