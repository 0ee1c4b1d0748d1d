package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"paydesk/internal/domain/money"
	"paydesk/internal/domain/payroll"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
	"paydesk/internal/transport/http/shared"
)

type Handler struct {
	service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{code}", h.handleGet)
		r.Patch("/{code}", h.handleUpdate)
		r.Delete("/{code}", h.handleDelete)
	})
}

// Monetary fields travel as decimal strings on the wire; see the store for
// the same convention toward Postgres.
type employeeResponse struct {
	Code            string    `json:"empCode"`
	Name            string    `json:"name"`
	Designation     string    `json:"designation"`
	Basic           string    `json:"basic"`
	HRAPercent      string    `json:"hraPercent"`
	DAPercent       string    `json:"daPercent"`
	OtherAllowances string    `json:"otherAllowances"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toResponse(emp payroll.Employee) employeeResponse {
	return employeeResponse{
		Code:            emp.Code,
		Name:            emp.Name,
		Designation:     emp.Designation,
		Basic:           money.Format(emp.Basic),
		HRAPercent:      money.Format(emp.HRAPercent),
		DAPercent:       money.Format(emp.DAPercent),
		OtherAllowances: money.Format(emp.OtherAllowances),
		CreatedAt:       emp.CreatedAt,
		UpdatedAt:       emp.UpdatedAt,
	}
}

type createPayload struct {
	EmpCode         string `json:"empCode"`
	Name            string `json:"name"`
	Designation     string `json:"designation"`
	Basic           string `json:"basic"`
	HRAPercent      string `json:"hraPercent"`
	DAPercent       string `json:"daPercent"`
	OtherAllowances string `json:"otherAllowances"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	// Omitted percent and allowance fields fall back to the record keeper's
	// traditional defaults.
	if strings.TrimSpace(payload.HRAPercent) == "" {
		payload.HRAPercent = "20"
	}
	if strings.TrimSpace(payload.DAPercent) == "" {
		payload.DAPercent = "0"
	}
	if strings.TrimSpace(payload.OtherAllowances) == "" {
		payload.OtherAllowances = "0"
	}

	v := shared.NewValidator()
	v.Required("empCode", payload.EmpCode, "employee code is required")
	v.Required("name", payload.Name, "name is required")
	basic, _ := v.Amount("basic", payload.Basic)
	hra, _ := v.Percent("hraPercent", payload.HRAPercent)
	da, _ := v.Percent("daPercent", payload.DAPercent)
	other, _ := v.Amount("otherAllowances", payload.OtherAllowances)
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.service.AddEmployee(r.Context(), payroll.Employee{
		Code:            strings.TrimSpace(payload.EmpCode),
		Name:            strings.TrimSpace(payload.Name),
		Designation:     strings.TrimSpace(payload.Designation),
		Basic:           basic,
		HRAPercent:      hra,
		DAPercent:       da,
		OtherAllowances: other,
	})
	if err != nil {
		if errors.Is(err, payroll.ErrDuplicateEmployeeCode) {
			api.Fail(w, http.StatusConflict, "duplicate_emp_code", "employee code already exists", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}
	api.Created(w, toResponse(emp), reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
		return
	}

	out := make([]employeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, toResponse(emp))
	}
	api.Success(w, out, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	emp, err := h.service.GetEmployee(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, payroll.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "no employee with that code", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, toResponse(*emp), reqID)
}

type updatePayload struct {
	Name            *string `json:"name"`
	Designation     *string `json:"designation"`
	Basic           *string `json:"basic"`
	HRAPercent      *string `json:"hraPercent"`
	DAPercent       *string `json:"daPercent"`
	OtherAllowances *string `json:"otherAllowances"`
}

func (p updatePayload) toPatch(v *shared.Validator) payroll.EmployeePatch {
	var patch payroll.EmployeePatch
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			v.Add("name", "must not be blank")
		}
		patch.Name = &name
	}
	if p.Designation != nil {
		designation := strings.TrimSpace(*p.Designation)
		patch.Designation = &designation
	}
	setAmount := func(field string, raw *string, dst **decimal.Decimal) {
		if raw == nil {
			return
		}
		if d, ok := v.Amount(field, *raw); ok {
			*dst = &d
		}
	}
	setAmount("basic", p.Basic, &patch.Basic)
	setAmount("hraPercent", p.HRAPercent, &patch.HRAPercent)
	setAmount("daPercent", p.DAPercent, &patch.DAPercent)
	setAmount("otherAllowances", p.OtherAllowances, &patch.OtherAllowances)
	return patch
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	patch := payload.toPatch(v)
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.service.UpdateEmployee(r.Context(), chi.URLParam(r, "code"), patch)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrNothingToUpdate):
			api.Fail(w, http.StatusBadRequest, "nothing_to_update", "no fields provided to update", reqID)
		case errors.Is(err, payroll.ErrEmployeeNotFound):
			api.Fail(w, http.StatusNotFound, "employee_not_found", "no employee with that code", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
		}
		return
	}
	api.Success(w, toResponse(emp), reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	if err := h.service.DeleteEmployee(r.Context(), chi.URLParam(r, "code")); err != nil {
		if errors.Is(err, payroll.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "no employee with that code", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", reqID)
		return
	}
	api.Success(w, map[string]string{"deleted": chi.URLParam(r, "code")}, reqID)
}
