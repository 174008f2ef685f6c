package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lianhui-erp/payroll-engine-go/internal/domain/salary"
	"github.com/lianhui-erp/payroll-engine-go/internal/handler/http/response"
)

type SalaryHandler interface {
	CreateProfile(w http.ResponseWriter, r *http.Request)
	GetActiveProfile(w http.ResponseWriter, r *http.Request)
	ListActiveProfiles(w http.ResponseWriter, r *http.Request)
	ListProfileHistory(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	profileService salary.ProfileService
}

func NewSalaryHandler(profileService salary.ProfileService) SalaryHandler {
	return &salaryHandlerImpl{profileService: profileService}
}

func (h *salaryHandlerImpl) CreateProfile(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req salary.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.profileService.CreateProfile(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary profile created", result)
}

func (h *salaryHandlerImpl) GetActiveProfile(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.profileService.GetActiveProfile(r.Context(), chi.URLParam(r, "employeeID"), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) ListActiveProfiles(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.profileService.ListActiveProfiles(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) ListProfileHistory(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := claimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.profileService.ListProfileHistory(r.Context(), chi.URLParam(r, "employeeID"), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
