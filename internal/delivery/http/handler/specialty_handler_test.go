package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medical-record/internal/delivery/dto"
	"medical-record/internal/domain/entity"
	"medical-record/internal/usecase"
	"medical-record/pkg/response"
	"medical-record/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSpecialtyUsecase struct {
	usecase.SpecialtyUsecase
	err error
}

func (s *stubSpecialtyUsecase) CreateSpecialty(_ context.Context, _ *entity.Caller, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SpecialtyResponse{ID: uuid.New(), Name: req.Name}, nil
}

func (s *stubSpecialtyUsecase) GetSpecialty(_ context.Context, id uuid.UUID) (*dto.SpecialtyResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SpecialtyResponse{ID: id, Name: "Cardiology"}, nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestCreateSpecialty(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"created", `{"name":"Cardiology"}`, nil, http.StatusCreated, "Specialty created successfully"},
		{"malformed body", `{"name":`, nil, http.StatusBadRequest, "Invalid request body"},
		{"validation", `{"name":"C"}`, nil, http.StatusBadRequest, "Validation failed"},
		{"duplicate", `{"name":"Cardiology"}`, usecase.ErrSpecialtyNameExists, http.StatusConflict, usecase.ErrSpecialtyNameExists.Error()},
		{"internal", `{"name":"Cardiology"}`, errors.New("connection reset"), http.StatusInternalServerError, "Failed to create specialty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSpecialtyHandler(&stubSpecialtyUsecase{err: tt.err}, validator.NewValidator())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/specialties", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.CreateSpecialty(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.wantStatus == http.StatusCreated, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestValidationErrorsUseJSONNames(t *testing.T) {
	h := NewSpecialtyHandler(&stubSpecialtyUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.CreateSpecialty(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, map[string]any{"name": "name is required"}, body.Error)
}

func TestGetSpecialty(t *testing.T) {
	route := func(h *SpecialtyHandler) *mux.Router {
		r := mux.NewRouter()
		r.HandleFunc("/specialties/{id}", h.GetSpecialty).Methods(http.MethodGet)
		return r
	}

	t.Run("bad id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		route(NewSpecialtyHandler(&stubSpecialtyUsecase{}, validator.NewValidator())).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/specialties/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid specialty ID", decodeBody(t, rec).Message)
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		route(NewSpecialtyHandler(&stubSpecialtyUsecase{err: usecase.ErrSpecialtyNotFound}, validator.NewValidator())).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/specialties/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		rec := httptest.NewRecorder()
		route(NewSpecialtyHandler(&stubSpecialtyUsecase{}, validator.NewValidator())).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/specialties/"+id.String(), nil))
		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeBody(t, rec).Data.(map[string]any)
		assert.Equal(t, id.String(), data["id"])
	})
}

func TestAuthorize(t *testing.T) {
	doctorID := uuid.New()
	admin := &entity.Caller{Role: entity.RoleAdmin}
	doctor := &entity.Caller{Role: entity.RoleDoctor, DoctorID: &doctorID}
	patient := &entity.Caller{Role: entity.RolePatient}

	owns := func(ok bool, err error) func() (bool, error) {
		return func() (bool, error) { return ok, err }
	}

	tests := []struct {
		name   string
		caller *entity.Caller
		roles  []entity.Role
		owns   func() (bool, error)
		want   bool
		status int
	}{
		{"admin always", admin, nil, nil, true, http.StatusOK},
		{"listed role", doctor, []entity.Role{entity.RoleDoctor}, nil, true, http.StatusOK},
		{"owner", patient, []entity.Role{entity.RoleDoctor}, owns(true, nil), true, http.StatusOK},
		{"not owner", patient, []entity.Role{entity.RoleDoctor}, owns(false, nil), false, http.StatusForbidden},
		{"no ownership rule", patient, nil, nil, false, http.StatusForbidden},
		{"anonymous", nil, []entity.Role{entity.RoleDoctor}, owns(false, nil), false, http.StatusForbidden},
		{"ownership lookup fails", patient, nil, owns(false, errors.New("db down")), false, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			got := authorize(rec, tt.caller, tt.roles, tt.owns)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
