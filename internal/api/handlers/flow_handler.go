package handlers

import (
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/api/presenters"
	"github.com/tanmald/plate-check-mvp/pkg/flow"
)

type (
	Flows struct {
		Logout      *flow.Logout
		Capture     *flow.Capture
		PlanImport  *flow.PlanImport
		Onboarding  *flow.Onboarding
		EditProfile *flow.EditProfile
	}

	FlowHandler interface {
		LogoutView(c *fiber.Ctx) error
		LogoutOpen(c *fiber.Ctx) error
		LogoutConfirm(c *fiber.Ctx) error
		LogoutRetry(c *fiber.Ctx) error
		LogoutCancel(c *fiber.Ctx) error
		LogoutSignIn(c *fiber.Ctx) error

		CaptureView(c *fiber.Ctx) error
		CaptureSelect(c *fiber.Ctx) error
		CaptureBack(c *fiber.Ctx) error
		CapturePhoto(c *fiber.Ctx) error
		CaptureSave(c *fiber.Ctx) error
		CaptureRetake(c *fiber.Ctx) error
		CaptureReset(c *fiber.Ctx) error

		PlanImportLoad(c *fiber.Ctx) error
		PlanImportUpload(c *fiber.Ctx) error
		PlanImportSelect(c *fiber.Ctx) error
		PlanImportConfirm(c *fiber.Ctx) error
		PlanImportDiscard(c *fiber.Ctx) error

		OnboardingView(c *fiber.Ctx) error
		OnboardingContinue(c *fiber.Ctx) error
		OnboardingSkip(c *fiber.Ctx) error
		OnboardingGoTo(c *fiber.Ctx) error
		OnboardingSignUp(c *fiber.Ctx) error
		OnboardingSignIn(c *fiber.Ctx) error
		OnboardingForgotPassword(c *fiber.Ctx) error
		OnboardingImportPlan(c *fiber.Ctx) error
		OnboardingCreateManually(c *fiber.Ctx) error
		OnboardingStartWithoutPlan(c *fiber.Ctx) error
		OnboardingRestart(c *fiber.Ctx) error

		EditProfileLoad(c *fiber.Ctx) error
		EditProfileChange(c *fiber.Ctx) error
		EditProfileSave(c *fiber.Ctx) error
		EditProfileBack(c *fiber.Ctx) error
		EditProfileDiscard(c *fiber.Ctx) error
		EditProfileKeepEditing(c *fiber.Ctx) error
	}

	flowHandler struct {
		flows     Flows
		validator *validator.Validate
	}
)

func NewFlowHandler(flows Flows, validator *validator.Validate) FlowHandler {
	return &flowHandler{
		flows:     flows,
		validator: validator,
	}
}

// flowResponse reports the view after a flow action. A rejected action still
// carries the view so the caller can render the current step.
func flowResponse(c *fiber.Ctx, view interface{}, err error) error {
	if err == nil {
		return presenters.SuccessResponse(c, view, fiber.StatusOK, domain.MessageSuccessFlowStep)
	}

	status := statusFor(err)
	if errors.Is(err, flow.ErrInvalidTransition) || errors.Is(err, flow.ErrFlowBusy) {
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(presenters.Response{
		Status:  false,
		Message: domain.MessageFailedFlowStep,
		Data:    view,
		Error:   err.Error(),
	})
}

func (h *flowHandler) LogoutView(c *fiber.Ctx) error {
	return flowResponse(c, h.flows.Logout.View(), nil)
}

func (h *flowHandler) LogoutOpen(c *fiber.Ctx) error {
	v, err := h.flows.Logout.Open()
	return flowResponse(c, v, err)
}

func (h *flowHandler) LogoutConfirm(c *fiber.Ctx) error {
	v, err := h.flows.Logout.Confirm(c.UserContext())
	return flowResponse(c, v, err)
}

func (h *flowHandler) LogoutRetry(c *fiber.Ctx) error {
	v, err := h.flows.Logout.Retry(c.UserContext())
	return flowResponse(c, v, err)
}

func (h *flowHandler) LogoutCancel(c *fiber.Ctx) error {
	v, err := h.flows.Logout.Cancel()
	return flowResponse(c, v, err)
}

func (h *flowHandler) LogoutSignIn(c *fiber.Ctx) error {
	v, err := h.flows.Logout.GoToSignIn()
	return flowResponse(c, v, err)
}

func (h *flowHandler) CaptureView(c *fiber.Ctx) error {
	return flowResponse(c, h.flows.Capture.View(), nil)
}

func (h *flowHandler) CaptureSelect(c *fiber.Ctx) error {
	req := new(domain.SelectMealRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFlowStep, err)
	}

	v, err := h.flows.Capture.Select(req.MealType)
	return flowResponse(c, v, err)
}

func (h *flowHandler) CaptureBack(c *fiber.Ctx) error {
	v, err := h.flows.Capture.Back()
	return flowResponse(c, v, err)
}

func (h *flowHandler) CapturePhoto(c *fiber.Ctx) error {
	photo, mimeType, err := formFile(c, "photo")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	v, err := h.flows.Capture.Capture(c.UserContext(), photo, mimeType)
	return flowResponse(c, v, err)
}

func (h *flowHandler) CaptureSave(c *fiber.Ctx) error {
	v, err := h.flows.Capture.Save(c.UserContext())
	return flowResponse(c, v, err)
}

func (h *flowHandler) CaptureRetake(c *fiber.Ctx) error {
	v, err := h.flows.Capture.Retake()
	return flowResponse(c, v, err)
}

func (h *flowHandler) CaptureReset(c *fiber.Ctx) error {
	return flowResponse(c, h.flows.Capture.Reset(), nil)
}

func (h *flowHandler) PlanImportLoad(c *fiber.Ctx) error {
	v, err := h.flows.PlanImport.Load(c.UserContext())
	return flowResponse(c, v, err)
}

func (h *flowHandler) PlanImportUpload(c *fiber.Ctx) error {
	document, mimeType, err := formFile(c, "document")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	v, err := h.flows.PlanImport.Import(c.UserContext(), document, mimeType)
	return flowResponse(c, v, err)
}

func (h *flowHandler) PlanImportSelect(c *fiber.Ctx) error {
	v, err := h.flows.PlanImport.SelectTemplate(c.Params("type"))
	return flowResponse(c, v, err)
}

func (h *flowHandler) PlanImportConfirm(c *fiber.Ctx) error {
	v, err := h.flows.PlanImport.Confirm(c.UserContext())
	return flowResponse(c, v, err)
}

func (h *flowHandler) PlanImportDiscard(c *fiber.Ctx) error {
	v, err := h.flows.PlanImport.Discard()
	return flowResponse(c, v, err)
}

func (h *flowHandler) OnboardingView(c *fiber.Ctx) error {
	return flowResponse(c, h.flows.Onboarding.View(), nil)
}

func (h *flowHandler) OnboardingContinue(c *fiber.Ctx) error {
	v, err := h.flows.Onboarding.Continue()
	return flowResponse(c, v, err)
}

func (h *flowHandler) OnboardingSkip(c *fiber.Ctx) error {
	v, err := h.flows.Onboarding.Skip()
	return flowResponse(c, v, err)
}

func (h *flowHandler) OnboardingGoTo(c *fiber.Ctx) error {
	req := new(domain.OnboardingStepRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFlowStep, err)
	}

	v, err := h.flows.Onboarding.GoTo(flow.OnboardingStep(req.Step))
	return flowResponse(c, v, err)
}

// The account forms are validated by the flow itself so field errors land
// in the view.
func (h *flowHandler) OnboardingSignUp(c *fiber.Ctx) error {
	req := new(domain.SignUpRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	v, err := h.flows.Onboarding.SignUp(c.UserContext(), *req)
	return flowResponse(c, v, err)
}

func (h *flowHandler) OnboardingSignIn(c *fiber.Ctx) error {
	req := new(domain.SignInRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	v, err := h.flows.Onboarding.SignIn(c.UserContext(), *req)
	return flowResponse(c, v, err)
}

func (h *flowHandler) OnboardingForgotPassword(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	v, err := h.flows.Onboarding.ForgotPassword(c.UserContext(), *req)
	return flowResponse(c, v, err)
}

func (h *flowHandler) OnboardingImportPlan(c *fiber.Ctx) error {
	v, err := h.flows.Onboarding.ImportPlan()
	return flowResponse(c, v, err)
}

func (h *flowHandler) OnboardingCreateManually(c *fiber.Ctx) error {
	v, err := h.flows.Onboarding.CreateManually()
	return flowResponse(c, v, err)
}

func (h *flowHandler) OnboardingStartWithoutPlan(c *fiber.Ctx) error {
	v, err := h.flows.Onboarding.StartWithoutPlan()
	return flowResponse(c, v, err)
}

func (h *flowHandler) OnboardingRestart(c *fiber.Ctx) error {
	return flowResponse(c, h.flows.Onboarding.Restart(), nil)
}

func (h *flowHandler) EditProfileLoad(c *fiber.Ctx) error {
	v, err := h.flows.EditProfile.Load(c.UserContext())
	return flowResponse(c, v, err)
}

func (h *flowHandler) EditProfileChange(c *fiber.Ctx) error {
	form := new(domain.EditProfileForm)
	if err := c.BodyParser(form); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	return flowResponse(c, h.flows.EditProfile.Change(*form), nil)
}

func (h *flowHandler) EditProfileSave(c *fiber.Ctx) error {
	v, err := h.flows.EditProfile.Save(c.UserContext())
	return flowResponse(c, v, err)
}

func (h *flowHandler) EditProfileBack(c *fiber.Ctx) error {
	return flowResponse(c, h.flows.EditProfile.Back(), nil)
}

func (h *flowHandler) EditProfileDiscard(c *fiber.Ctx) error {
	v, err := h.flows.EditProfile.Discard()
	return flowResponse(c, v, err)
}

func (h *flowHandler) EditProfileKeepEditing(c *fiber.Ctx) error {
	return flowResponse(c, h.flows.EditProfile.KeepEditing(), nil)
}
