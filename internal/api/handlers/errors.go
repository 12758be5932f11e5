package handlers

import (
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/pkg/flow"
	"github.com/tanmald/plate-check-mvp/pkg/session"
)

// statusFor picks the HTTP status a service error is reported with.
func statusFor(err error) int {
	var authErr *session.AuthError
	var validationErr validator.ValidationErrors

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &authErr) && authErr.Status >= 400:
		return authErr.Status
	case errors.Is(err, domain.ErrNoIdentity), errors.Is(err, domain.ErrPlanNotAuthenticated),
		errors.Is(err, domain.ErrSessionExpired), errors.Is(err, domain.ErrNoSession):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrAuthNotConfigured), errors.Is(err, domain.ErrAnalysisNotEnabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, domain.ErrPlanNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, flow.ErrInvalidTransition), errors.Is(err, flow.ErrFlowBusy):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrAnalysisFailed), errors.Is(err, domain.ErrPlanParsingFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusBadRequest
	}
}
