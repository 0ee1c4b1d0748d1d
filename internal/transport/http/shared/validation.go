package shared

import (
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"paydesk/internal/domain/money"
	"paydesk/internal/transport/http/api"
)

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{issues: make([]ValidationIssue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{
		Field:  field,
		Reason: reason,
	})
}

func (v *Validator) Required(field, value, reason string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, reason)
	}
}

// Amount parses a monetary field that must be a non-negative decimal.
func (v *Validator) Amount(field, raw string) (decimal.Decimal, bool) {
	d, err := money.Parse(raw)
	if err != nil {
		v.Add(field, "must be a decimal number")
		return decimal.Zero, false
	}
	if d.IsNegative() {
		v.Add(field, "must not be negative")
		return decimal.Zero, false
	}
	return d, true
}

// Percent parses a percentage field. The model leaves percents unconstrained
// above zero, so only the sign and numeric form are checked.
func (v *Validator) Percent(field, raw string) (decimal.Decimal, bool) {
	return v.Amount(field, raw)
}

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Month enforces the YYYY-MM form for payslip months.
func (v *Validator) Month(field, raw string) bool {
	if !monthPattern.MatchString(raw) {
		v.Add(field, "must be a month in YYYY-MM format")
		return false
	}
	return true
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []ValidationIssue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]ValidationIssue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusUnprocessableEntity,
		"validation_failed",
		"one or more fields are invalid",
		requestID,
		issues,
	)
}
