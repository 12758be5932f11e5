package handlers

import (
	"context"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/api/presenters"
	"io"
)

type (
	// DataAccess is the session-aware data layer the handlers read and
	// mutate through.
	DataAccess interface {
		Today() string
		GetProfile(ctx context.Context) (*domain.Profile, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.Profile, error)
		GetMeals(ctx context.Context, date string) ([]domain.Meal, error)
		SaveMeal(ctx context.Context, req domain.SaveMealRequest) (*domain.SavedMeal, error)
		GetPlan(ctx context.Context) (domain.PlanResult, error)
		CreatePlan(ctx context.Context, req domain.CreatePlanRequest) (*domain.CreatedPlan, error)
		GetDailyProgress(ctx context.Context, date string) (*domain.DailyStats, error)
		GetWeeklyProgress(ctx context.Context) ([]domain.WeeklyDataPoint, error)
	}

	DataHandler interface {
		GetProfile(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
		GetMeals(c *fiber.Ctx) error
		SaveMeal(c *fiber.Ctx) error
		GetPlan(c *fiber.Ctx) error
		CreatePlan(c *fiber.Ctx) error
		GetDailyProgress(c *fiber.Ctx) error
		GetWeeklyProgress(c *fiber.Ctx) error
	}

	dataHandler struct {
		access    DataAccess
		validator *validator.Validate
	}
)

func NewDataHandler(access DataAccess, validator *validator.Validate) DataHandler {
	return &dataHandler{
		access:    access,
		validator: validator,
	}
}

func (h *dataHandler) GetProfile(c *fiber.Ctx) error {
	res, err := h.access.GetProfile(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *dataHandler) UpdateProfile(c *fiber.Ctx) error {
	req := new(domain.UpdateProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProfile, err)
	}

	res, err := h.access.UpdateProfile(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateProfile)
}

func (h *dataHandler) GetMeals(c *fiber.Ctx) error {
	date := c.Query("date", h.access.Today())

	res, err := h.access.GetMeals(c.UserContext(), date)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetMeals, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMeals)
}

func (h *dataHandler) SaveMeal(c *fiber.Ctx) error {
	req := new(domain.SaveMealRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveMeal, err)
	}

	res, err := h.access.SaveMeal(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSaveMeal, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveMeal)
}

func (h *dataHandler) GetPlan(c *fiber.Ctx) error {
	res, err := h.access.GetPlan(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPlan)
}

func (h *dataHandler) CreatePlan(c *fiber.Ctx) error {
	req := new(domain.CreatePlanRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.access.CreatePlan(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreatePlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePlan)
}

func (h *dataHandler) GetDailyProgress(c *fiber.Ctx) error {
	date := c.Query("date", h.access.Today())

	res, err := h.access.GetDailyProgress(c.UserContext(), date)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDailyProgress, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDailyProgress)
}

func (h *dataHandler) GetWeeklyProgress(c *fiber.Ctx) error {
	res, err := h.access.GetWeeklyProgress(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetWeeklyProgress, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWeeklyProgress)
}

// formFile reads a multipart upload fully. The content type falls back to
// the empty string so callers can sniff it.
func formFile(c *fiber.Ctx, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, fileHeader.Header.Get(fiber.HeaderContentType), nil
}
