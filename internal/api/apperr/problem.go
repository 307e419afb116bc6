package apperr

import (
	"encoding/json"
	"net/http"
)

const (
	ValidationType   = "https://courselibrary/modelvalidationproblem"
	ValidationTitle  = "One or more validation errors occured."
	ValidationDetail = "See the errors field for details."
)

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`    // e.g. "unique", "not_null", "fk", "invalid", "too_long"
	Message string `json:"message"` // human readable
}

type Problem struct {
	Type        string              `json:"type,omitempty"`   // RFC7807 type URI
	Title       string              `json:"title"`            // short summary
	Status      int                 `json:"status"`           // HTTP status code
	Detail      string              `json:"detail,omitempty"` // human details
	Instance    string              `json:"instance,omitempty"`
	RequestID   string              `json:"request_id,omitempty"`
	FieldErrors []FieldError        `json:"field_errors,omitempty"`
	Errors      map[string][]string `json:"errors,omitempty"` // validation messages by field
	Retryable   bool                `json:"retryable,omitempty"`
}

func Write(w http.ResponseWriter, r *http.Request, p Problem) {
	if p.Status == 0 {
		p.Status = http.StatusInternalServerError
	}
	if p.Instance == "" && r != nil {
		p.Instance = r.URL.Path
	}
	if p.RequestID == "" && r != nil {
		if rid := r.Header.Get("X-Request-ID"); rid != "" {
			p.RequestID = rid
		}
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// Convenience: fast write with just status+title+detail
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	Write(w, r, Problem{Status: status, Title: title, Detail: detail})
}

func BadRequest(w http.ResponseWriter, r *http.Request, detail string) {
	WriteStatus(w, r, http.StatusBadRequest, "Bad Request", detail)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteStatus(w, r, http.StatusNotFound, "Not Found", "")
}

func Internal(w http.ResponseWriter, r *http.Request) {
	WriteStatus(w, r, http.StatusInternalServerError, "Internal Server Error", "")
}

// Validation writes the 422 problem for a body that decoded but broke rules.
// FieldErrors keep their order; Errors groups the messages by field.
func Validation(w http.ResponseWriter, r *http.Request, fields []FieldError) {
	byField := make(map[string][]string, len(fields))
	for _, f := range fields {
		byField[f.Field] = append(byField[f.Field], f.Message)
	}
	Write(w, r, Problem{
		Type:        ValidationType,
		Title:       ValidationTitle,
		Status:      http.StatusUnprocessableEntity,
		Detail:      ValidationDetail,
		FieldErrors: fields,
		Errors:      byField,
	})
}
