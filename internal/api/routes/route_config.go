package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/api/handlers"
	"github.com/tanmald/plate-check-mvp/internal/api/presenters"
	"github.com/tanmald/plate-check-mvp/internal/middleware"
	"github.com/tanmald/plate-check-mvp/pkg/access"
)

type Config struct {
	App           *fiber.App
	AuthHandler   handlers.AuthHandler
	DataHandler   handlers.DataHandler
	ScreenHandler handlers.ScreenHandler
	FlowHandler   handlers.FlowHandler
	Middleware    middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.IdentityMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Data()
	c.Screens()
	c.Flows()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessPing)
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	// auth routes
	{
		auth.Get("/session", c.AuthHandler.GetSession)
		auth.Post("/sign-up", c.AuthHandler.SignUp)
		auth.Post("/sign-in", c.AuthHandler.SignIn)
		auth.Post("/sign-out", c.AuthHandler.SignOut)
		auth.Post("/reset-password", c.AuthHandler.ResetPassword)
	}
}

// Data routes answer for anonymous visitors too; the data source decides
// what an anonymous read returns.
func (c *Config) Data() {
	data := c.App.Group("/api/v1")

	data.Get("/profile", c.Middleware.CacheMiddleware(access.KeyProfile), c.DataHandler.GetProfile)
	data.Patch("/profile", c.Middleware.RequireIdentity(), c.DataHandler.UpdateProfile)

	data.Get("/meals", c.Middleware.CacheMiddleware(access.KeyMeals), c.DataHandler.GetMeals)
	data.Post("/meals", c.Middleware.RequireIdentity(), c.DataHandler.SaveMeal)

	data.Get("/plan", c.Middleware.CacheMiddleware(access.KeyNutritionPlan), c.DataHandler.GetPlan)
	data.Post("/plan", c.DataHandler.CreatePlan)

	data.Get("/progress/daily", c.Middleware.CacheMiddleware(access.KeyDailyProgress), c.DataHandler.GetDailyProgress)
	data.Get("/progress/weekly", c.Middleware.CacheMiddleware(access.KeyWeeklyProgress), c.DataHandler.GetWeeklyProgress)
}

func (c *Config) Screens() {
	screens := c.App.Group("/api/v1/screens")
	screens.Get("/home", c.ScreenHandler.Home)
	screens.Get("/progress", c.ScreenHandler.Progress)
	screens.Get("/settings", c.ScreenHandler.Settings)
}

func (c *Config) Flows() {
	flows := c.App.Group("/api/v1/flows")

	logout := flows.Group("/logout")
	logout.Get("", c.FlowHandler.LogoutView)
	logout.Post("/open", c.FlowHandler.LogoutOpen)
	logout.Post("/confirm", c.FlowHandler.LogoutConfirm)
	logout.Post("/retry", c.FlowHandler.LogoutRetry)
	logout.Post("/cancel", c.FlowHandler.LogoutCancel)
	logout.Post("/sign-in", c.FlowHandler.LogoutSignIn)

	capture := flows.Group("/capture")
	capture.Get("", c.FlowHandler.CaptureView)
	capture.Post("/select", c.FlowHandler.CaptureSelect)
	capture.Post("/back", c.FlowHandler.CaptureBack)
	capture.Post("/photo", c.FlowHandler.CapturePhoto)
	capture.Post("/save", c.Middleware.RequireIdentity(), c.FlowHandler.CaptureSave)
	capture.Post("/retake", c.FlowHandler.CaptureRetake)
	capture.Post("/reset", c.FlowHandler.CaptureReset)

	planImport := flows.Group("/plan-import")
	planImport.Get("", c.FlowHandler.PlanImportLoad)
	planImport.Post("/document", c.FlowHandler.PlanImportUpload)
	planImport.Post("/templates/:type", c.FlowHandler.PlanImportSelect)
	planImport.Post("/confirm", c.FlowHandler.PlanImportConfirm)
	planImport.Post("/discard", c.FlowHandler.PlanImportDiscard)

	onboarding := flows.Group("/onboarding")
	onboarding.Get("", c.FlowHandler.OnboardingView)
	onboarding.Post("/continue", c.FlowHandler.OnboardingContinue)
	onboarding.Post("/skip", c.FlowHandler.OnboardingSkip)
	onboarding.Post("/goto", c.FlowHandler.OnboardingGoTo)
	onboarding.Post("/sign-up", c.FlowHandler.OnboardingSignUp)
	onboarding.Post("/sign-in", c.FlowHandler.OnboardingSignIn)
	onboarding.Post("/forgot-password", c.FlowHandler.OnboardingForgotPassword)
	onboarding.Post("/import-plan", c.FlowHandler.OnboardingImportPlan)
	onboarding.Post("/create-manually", c.FlowHandler.OnboardingCreateManually)
	onboarding.Post("/start-without-plan", c.FlowHandler.OnboardingStartWithoutPlan)
	onboarding.Post("/restart", c.FlowHandler.OnboardingRestart)

	editProfile := flows.Group("/edit-profile", c.Middleware.RequireIdentity())
	editProfile.Get("", c.FlowHandler.EditProfileLoad)
	editProfile.Patch("/form", c.FlowHandler.EditProfileChange)
	editProfile.Post("/save", c.FlowHandler.EditProfileSave)
	editProfile.Post("/back", c.FlowHandler.EditProfileBack)
	editProfile.Post("/discard", c.FlowHandler.EditProfileDiscard)
	editProfile.Post("/keep-editing", c.FlowHandler.EditProfileKeepEditing)
}
