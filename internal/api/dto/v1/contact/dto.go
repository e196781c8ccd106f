package contact

import (
	"encoding/json"
	"strings"

	"github.com/farouk/portfolio-relay/internal/api/sanitization"
	"github.com/farouk/portfolio-relay/internal/service"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required,notblank"`
	Email   string `json:"email" validate:"required,notblank,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required,notblank"`
}

// DecodeContactRequest fills a ContactRequest from a decoded JSON object. A
// field holding a non-string value is left empty and its json name returned
// in mistyped, so presence can still be judged for the other fields.
func DecodeContactRequest(raw map[string]json.RawMessage) (req ContactRequest, mistyped []string) {
	fields := []struct {
		name string
		dst  *string
	}{
		{"name", &req.Name},
		{"email", &req.Email},
		{"subject", &req.Subject},
		{"message", &req.Message},
	}

	for _, f := range fields {
		value, ok := raw[f.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, f.dst); err != nil {
			mistyped = append(mistyped, f.name)
		}
	}
	return req, mistyped
}

// Normalize trims the single-line fields and folds any line breaks in name
// and subject. The message body is left as submitted.
func (r *ContactRequest) Normalize() {
	r.Name = sanitization.SingleLine(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Subject = sanitization.SingleLine(r.Subject)
}

// ToSubmission converts a validated request into the service entity
func (r *ContactRequest) ToSubmission() service.ContactSubmission {
	return service.ContactSubmission{
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Message: r.Message,
	}
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
