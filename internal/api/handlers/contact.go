package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/farouk/portfolio-relay/internal/api/dto/v1/contact"
	"github.com/farouk/portfolio-relay/internal/api/validation"
	"github.com/farouk/portfolio-relay/internal/logging"
	"github.com/farouk/portfolio-relay/internal/service"
	"github.com/farouk/portfolio-relay/internal/utils"
)

// Contact endpoint messages
const (
	ContactSuccessMessage = "Message sent successfully! I'll get back to you soon."
	ContactFailureMessage = "Failed to send message. Please try again later."
	ContactInvalidEmail   = "Invalid email address"
	ContactInvalidBody    = "Invalid request body"
	ContactBodyTooLarge   = "Request body too large"
	missingFieldsMessage  = "Missing required fields: "
)

// ContactSender delivers a validated submission
type ContactSender interface {
	Send(ctx context.Context, sub service.ContactSubmission) error
}

type ContactHandler struct {
	sender   ContactSender
	validate *validator.Validate
	logger   *logging.Logger
}

func NewContactHandler(sender ContactSender, validate *validator.Validate, logger *logging.Logger) *ContactHandler {
	return &ContactHandler{
		sender:   sender,
		validate: validate,
		logger:   logger,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var raw map[string]json.RawMessage

	// An empty body is treated as an empty object so the caller still gets
	// the list of missing fields
	if err := c.ShouldBindJSON(&raw); err != nil && !errors.Is(err, io.EOF) {
		if utils.IsBodyTooLarge(err) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, contactFailure(ContactBodyTooLarge))
			return
		}
		utils.HandleBadRequest(c, contactFailure(ContactInvalidBody))
		return
	}

	req, mistyped := contact.DecodeContactRequest(raw)
	req.Normalize()

	if err := h.validate.Struct(&req); err != nil {
		// A mistyped field is present, just unusable
		if missing := without(validation.MissingFields(err), mistyped); len(missing) > 0 {
			utils.HandleBadRequest(c, contactFailure(missingFieldsMessage+strings.Join(missing, ", ")))
			return
		}
		if len(mistyped) == 0 && validation.HasTag(err, "email") {
			utils.HandleBadRequest(c, contactFailure(ContactInvalidEmail))
			return
		}
		utils.HandleBadRequest(c, contactFailure(ContactInvalidBody))
		return
	}
	if len(mistyped) > 0 {
		utils.HandleBadRequest(c, contactFailure(ContactInvalidBody))
		return
	}

	if err := h.sender.Send(c.Request.Context(), req.ToSubmission()); err != nil {
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError,
			"Failed to send contact message", contactFailure(providerMessage(err)))
		return
	}

	utils.HandleSuccess(c, contact.ContactResponse{
		Success: true,
		Message: ContactSuccessMessage,
	})
}

func without(names, exclude []string) []string {
	var out []string
	for _, name := range names {
		if !slices.Contains(exclude, name) {
			out = append(out, name)
		}
	}
	return out
}

func contactFailure(message string) contact.ContactResponse {
	return contact.ContactResponse{Success: false, Message: message}
}

// providerMessage returns the mail provider's own error text outside release
// mode and the generic failure message otherwise
func providerMessage(err error) string {
	if !utils.ExposeErrorDetails() {
		return ContactFailureMessage
	}

	var perr *service.ProviderError
	if errors.As(err, &perr) && perr.Detail() != "" {
		return perr.Detail()
	}
	return ContactFailureMessage
}
