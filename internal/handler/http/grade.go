package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/grade"
	"github.com/lianhui-erp/payroll-engine-go/internal/handler/http/response"
)

type GradeHandler interface {
	CreateGradeSet(w http.ResponseWriter, r *http.Request)
	ListGrades(w http.ResponseWriter, r *http.Request)
	ResolveGrade(w http.ResponseWriter, r *http.Request)

	SaveTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	InstantiateTemplate(w http.ResponseWriter, r *http.Request)
	DeleteTemplate(w http.ResponseWriter, r *http.Request)
}

type gradeHandlerImpl struct {
	resolverService grade.ResolverService
	templateService grade.TemplateService
}

func NewGradeHandler(resolverService grade.ResolverService, templateService grade.TemplateService) GradeHandler {
	return &gradeHandlerImpl{
		resolverService: resolverService,
		templateService: templateService,
	}
}

func (h *gradeHandlerImpl) CreateGradeSet(w http.ResponseWriter, r *http.Request) {
	var req grade.CreateGradeSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	count, err := h.resolverService.CreateGradeSet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Insurance grades created", map[string]int{"count": count})
}

func (h *gradeHandlerImpl) ListGrades(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "Invalid year", nil)
		return
	}

	result, err := h.resolverService.ListGrades(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *gradeHandlerImpl) ResolveGrade(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Invalid year", nil)
		return
	}
	scheme := grade.Scheme(r.URL.Query().Get("scheme"))
	salary, err := decimal.NewFromString(r.URL.Query().Get("salary"))
	if err != nil {
		response.BadRequest(w, "Invalid salary", nil)
		return
	}

	resolved, err := h.resolverService.Resolve(r.Context(), year, scheme, salary)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, grade.GradeResponse{
		ID:            resolved.ID,
		Year:          resolved.Year,
		Scheme:        string(resolved.Scheme),
		GradeNumber:   resolved.GradeNumber,
		MinSalary:     resolved.MinSalary,
		MaxSalary:     resolved.MaxSalary,
		InsuredAmount: resolved.InsuredAmount,
	})
}

func (h *gradeHandlerImpl) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	var req grade.SaveTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.templateService.SaveAsTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Grade template saved", result)
}

func (h *gradeHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	result, err := h.templateService.ListTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *gradeHandlerImpl) InstantiateTemplate(w http.ResponseWriter, r *http.Request) {
	var req grade.InstantiateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.TemplateID = chi.URLParam(r, "id")

	count, err := h.templateService.Instantiate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Insurance grades instantiated", map[string]int{"count": count})
}

func (h *gradeHandlerImpl) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.templateService.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Grade template deleted", nil)
}
