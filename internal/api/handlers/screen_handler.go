package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/api/presenters"
	"github.com/tanmald/plate-check-mvp/pkg/screen"
)

type (
	ScreenHandler interface {
		Home(c *fiber.Ctx) error
		Progress(c *fiber.Ctx) error
		Settings(c *fiber.Ctx) error
	}

	screenHandler struct {
		screenService screen.ScreenService
	}
)

func NewScreenHandler(screenService screen.ScreenService) ScreenHandler {
	return &screenHandler{
		screenService: screenService,
	}
}

func (h *screenHandler) Home(c *fiber.Ctx) error {
	res, err := h.screenService.Home(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetScreen, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScreen)
}

func (h *screenHandler) Progress(c *fiber.Ctx) error {
	res, err := h.screenService.Progress(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetScreen, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScreen)
}

func (h *screenHandler) Settings(c *fiber.Ctx) error {
	res, err := h.screenService.Settings(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetScreen, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScreen)
}
