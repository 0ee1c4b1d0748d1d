package payslipshandler

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"paydesk/internal/domain/money"
	"paydesk/internal/domain/payroll"
	"paydesk/internal/platform/metrics"
	"paydesk/internal/transport/http/api"
	"paydesk/internal/transport/http/middleware"
	"paydesk/internal/transport/http/shared"
)

type Handler struct {
	service   *payroll.Service
	collector *metrics.Collector
}

func NewHandler(service *payroll.Service, collector *metrics.Collector) *Handler {
	return &Handler{service: service, collector: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payslips", func(r chi.Router) {
		r.Post("/", h.handleGenerate)
		r.Get("/", h.handleList)
		r.Get("/export", h.handleExportCSV)
		r.Get("/{payslipID}", h.handleGet)
		r.Get("/{payslipID}/text", h.handleText)
		r.Get("/{payslipID}/pdf", h.handlePDF)
	})
}

type payslipResponse struct {
	ID              string    `json:"id"`
	EmpCode         string    `json:"empCode"`
	Name            string    `json:"name"`
	Designation     string    `json:"designation"`
	Month           string    `json:"month"`
	Basic           string    `json:"basic"`
	HRA             string    `json:"hra"`
	DA              string    `json:"da"`
	OtherAllowances string    `json:"otherAllowances"`
	GrossSalary     string    `json:"grossSalary"`
	PF              string    `json:"pf"`
	Tax             string    `json:"tax"`
	TotalDeductions string    `json:"totalDeductions"`
	NetSalary       string    `json:"netSalary"`
	GeneratedOn     time.Time `json:"generatedOn"`
}

func toResponse(slip payroll.Payslip) payslipResponse {
	b := slip.Breakdown
	return payslipResponse{
		ID:              slip.ID,
		EmpCode:         slip.EmpCode,
		Name:            slip.Name,
		Designation:     slip.Designation,
		Month:           slip.Month,
		Basic:           money.Format(b.Basic),
		HRA:             money.Format(b.HRA),
		DA:              money.Format(b.DA),
		OtherAllowances: money.Format(b.OtherAllowances),
		GrossSalary:     money.Format(b.Gross),
		PF:              money.Format(b.PF),
		Tax:             money.Format(b.Tax),
		TotalDeductions: money.Format(b.TotalDeductions),
		NetSalary:       money.Format(b.Net),
		GeneratedOn:     slip.GeneratedOn,
	}
}

type generatePayload struct {
	EmpCode string `json:"empCode"`
	Month   string `json:"month"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload generatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("empCode", payload.EmpCode, "employee code is required")
	payload.Month = strings.TrimSpace(payload.Month)
	if payload.Month != "" {
		// The original keeper accepted any free-text month; the API is
		// strict so exports stay sortable.
		v.Month("month", payload.Month)
	}
	if v.Reject(w, reqID) {
		return
	}

	slip, err := h.service.ComputePay(r.Context(), strings.TrimSpace(payload.EmpCode), payload.Month)
	if err != nil {
		if errors.Is(err, payroll.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "employee_not_found", "no employee with that code", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payslip_generate_failed", "failed to generate payslip", reqID)
		return
	}
	if h.collector != nil {
		h.collector.PayslipGenerated()
	}
	api.Created(w, toResponse(*slip), reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	slips, err := h.service.ListPayslips(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_list_failed", "failed to list payslips", reqID)
		return
	}

	out := make([]payslipResponse, 0, len(slips))
	for _, slip := range slips {
		out = append(out, toResponse(slip))
	}
	api.Success(w, out, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	slip, err := h.service.GetPayslip(r.Context(), chi.URLParam(r, "payslipID"))
	if err != nil {
		if errors.Is(err, payroll.ErrPayslipNotFound) {
			api.Fail(w, http.StatusNotFound, "payslip_not_found", "no payslip with that id", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payslip_get_failed", "failed to load payslip", reqID)
		return
	}
	api.Success(w, toResponse(*slip), reqID)
}

func (h *Handler) handleText(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	slip, err := h.service.GetPayslip(r.Context(), chi.URLParam(r, "payslipID"))
	if err != nil {
		if errors.Is(err, payroll.ErrPayslipNotFound) {
			api.Fail(w, http.StatusNotFound, "payslip_not_found", "no payslip with that id", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payslip_get_failed", "failed to load payslip", reqID)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=payslip_"+slip.EmpCode+"_"+slip.Month+".txt")
	if _, err := w.Write([]byte(payroll.RenderText(*slip) + "\n")); err != nil {
		log.Printf("payslip text write failed: %v", err)
	}
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	slip, err := h.service.GetPayslip(r.Context(), chi.URLParam(r, "payslipID"))
	if err != nil {
		if errors.Is(err, payroll.ErrPayslipNotFound) {
			api.Fail(w, http.StatusNotFound, "payslip_not_found", "no payslip with that id", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payslip_get_failed", "failed to load payslip", reqID)
		return
	}

	pdfBytes, err := payroll.RenderPDF(*slip)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_pdf_failed", "failed to render payslip pdf", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=payslip_"+slip.EmpCode+"_"+slip.Month+".pdf")
	if _, err := w.Write(pdfBytes); err != nil {
		log.Printf("payslip pdf write failed: %v", err)
	}
}

// handleExportCSV streams the whole ledger in generation order. An empty
// ledger still yields the header row.
func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	slips, err := h.service.ListPayslips(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export payslips", reqID)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=payslips_export.csv")
	writer := csv.NewWriter(w)
	header := []string{"payslip_id", "emp_code", "name", "month", "gross_salary", "total_deductions", "net_salary", "generated_on"}
	if err := writer.Write(header); err != nil {
		log.Printf("export header write failed: %v", err)
	}
	for _, slip := range slips {
		record := []string{
			slip.ID,
			slip.EmpCode,
			slip.Name,
			slip.Month,
			money.Format(slip.Breakdown.Gross),
			money.Format(slip.Breakdown.TotalDeductions),
			money.Format(slip.Breakdown.Net),
			slip.GeneratedOn.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			log.Printf("export row write failed: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("export flush failed: %v", err)
	}
}
