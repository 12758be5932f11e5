package handlers

import (
	"context"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/api/presenters"
	"github.com/tanmald/plate-check-mvp/pkg/session"
)

type (
	SessionProvider interface {
		Current() session.Snapshot
		SignUp(ctx context.Context, email, password string) (*domain.Session, error)
		SignIn(ctx context.Context, email, password string) (*domain.Session, error)
		SignOut(ctx context.Context) error
		ResetPassword(ctx context.Context, email string) error
	}

	AuthHandler interface {
		GetSession(c *fiber.Ctx) error
		SignUp(c *fiber.Ctx) error
		SignIn(c *fiber.Ctx) error
		SignOut(c *fiber.Ctx) error
		ResetPassword(c *fiber.Ctx) error
	}

	authHandler struct {
		provider  SessionProvider
		validator *validator.Validate
	}
)

func NewAuthHandler(provider SessionProvider, validator *validator.Validate) AuthHandler {
	return &authHandler{
		provider:  provider,
		validator: validator,
	}
}

func toSessionResponse(snap session.Snapshot) domain.SessionResponse {
	res := domain.SessionResponse{
		Authenticated: snap.Identity != nil,
		Loading:       snap.Loading,
		User:          snap.Identity,
	}
	if snap.Session != nil {
		res.ExpiresAt = snap.Session.ExpiresAt
	}
	return res
}

func (h *authHandler) GetSession(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, toSessionResponse(h.provider.Current()), fiber.StatusOK, domain.MessageSuccessGetSession)
}

func (h *authHandler) SignUp(c *fiber.Ctx) error {
	req := new(domain.SignUpRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSignUp, err)
	}

	if _, err := h.provider.SignUp(c.UserContext(), req.Email, req.Password); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSignUp, err)
	}

	return presenters.SuccessResponse(c, toSessionResponse(h.provider.Current()), fiber.StatusCreated, domain.MessageSuccessSignUp)
}

func (h *authHandler) SignIn(c *fiber.Ctx) error {
	req := new(domain.SignInRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSignIn, err)
	}

	if _, err := h.provider.SignIn(c.UserContext(), req.Email, req.Password); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSignIn, err)
	}

	return presenters.SuccessResponse(c, toSessionResponse(h.provider.Current()), fiber.StatusOK, domain.MessageSuccessSignIn)
}

func (h *authHandler) SignOut(c *fiber.Ctx) error {
	if err := h.provider.SignOut(c.UserContext()); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSignOut, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSignOut)
}

func (h *authHandler) ResetPassword(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResetPassword, err)
	}

	if err := h.provider.ResetPassword(c.UserContext(), req.Email); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedResetPassword, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetPassword)
}
