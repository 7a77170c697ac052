package handler

import (
	"encoding/json"
	"net/http"

	"medical-record/internal/domain/entity"
	"medical-record/pkg/response"
	"medical-record/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// pathID parses the uuid path variable name, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

// authorize lets administrators and the given roles through, then falls back
// to the ownership check.
func authorize(w http.ResponseWriter, caller *entity.Caller, roles []entity.Role, owns func() (bool, error)) bool {
	if caller.IsAdmin() || caller.HasRole(roles...) {
		return true
	}
	if owns != nil {
		ok, err := owns()
		if err != nil {
			response.InternalServerError(w, "Failed to check access")
			return false
		}
		if ok {
			return true
		}
	}
	response.Forbidden(w, "You don't have permission to access this resource")
	return false
}
