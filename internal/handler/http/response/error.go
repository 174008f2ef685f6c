package response

import (
	"errors"
	"net/http"

	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/apperror"
	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps engine errors to HTTP responses by their kind.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		BadRequest(w, err.Error(), nil)
	case apperror.KindNotFound:
		NotFound(w, err.Error())
	case apperror.KindConflict:
		Conflict(w, err.Error())
	case apperror.KindPrecondition:
		PreconditionFailed(w, err.Error())
	case apperror.KindComputation:
		writeJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "COMPUTATION_ERROR",
				Message: err.Error(),
			},
		})
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
