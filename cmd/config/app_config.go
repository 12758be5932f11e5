package config

import (
	"context"
	"errors"
	"github.com/tanmald/plate-check-mvp/internal/api/handlers"
	"github.com/tanmald/plate-check-mvp/internal/api/routes"
	"github.com/tanmald/plate-check-mvp/internal/middleware"
	"github.com/tanmald/plate-check-mvp/internal/utils"
	"github.com/tanmald/plate-check-mvp/internal/utils/localstore"
	"github.com/tanmald/plate-check-mvp/internal/utils/storage"
	"github.com/tanmald/plate-check-mvp/pkg/access"
	"github.com/tanmald/plate-check-mvp/pkg/analysis"
	"github.com/tanmald/plate-check-mvp/pkg/flow"
	"github.com/tanmald/plate-check-mvp/pkg/jwt"
	"github.com/tanmald/plate-check-mvp/pkg/meal"
	"github.com/tanmald/plate-check-mvp/pkg/plan"
	"github.com/tanmald/plate-check-mvp/pkg/profile"
	"github.com/tanmald/plate-check-mvp/pkg/progress"
	"github.com/tanmald/plate-check-mvp/pkg/screen"
	"github.com/tanmald/plate-check-mvp/pkg/session"
	"github.com/tanmald/plate-check-mvp/pkg/source"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	bodyLimit   = 10 * 1024 * 1024
	authTimeout = 15 * time.Second
	jwtIssuer   = "supabase"
)

func NewApp(db *gorm.DB, zlog *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         bodyLimit,
	})
	validator := utils.Validate
	loc := time.Local

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	storePath := utils.GetConfig("LOCAL_STORE_PATH")
	if err := os.MkdirAll(filepath.Dir(storePath), os.ModePerm); err != nil {
		return nil, err
	}
	local, err := localstore.Open(storePath, utils.GetConfig("LOCAL_STORE_KEY"))
	if err != nil {
		return nil, err
	}
	sessionScope := localstore.NewMemory()

	var uploader flow.PhotoUploader
	s3, err := storage.NewAwsS3(context.Background())
	switch {
	case errors.Is(err, storage.ErrStorageDisabled):
		zlog.Warn("photo storage not configured, meals are saved without photos")
	case err != nil:
		return nil, err
	default:
		uploader = s3
	}

	geminiConfig := analysis.GeminiConfig{
		APIKey: utils.GetConfig("GEMINI_API_KEY"),
		Model:  utils.GetConfig("GEMINI_MODEL"),
	}

	// Session
	jwtService := jwt.NewJWTService(utils.GetConfig("SUPABASE_JWT_SECRET"), jwtIssuer)
	backend := session.NewGoTrueClient(session.GoTrueConfig{
		URL:     utils.GetConfig("SUPABASE_URL"),
		AnonKey: utils.GetConfig("SUPABASE_ANON_KEY"),
		Timeout: authTimeout,
	}, local, jwtService, zlog)
	provider := session.NewProvider(backend, local, utils.GetConfig("APP_ORIGIN"), zlog)
	if err := provider.Initialize(context.Background()); err != nil {
		zlog.Warn("starting without a restored session", zap.Error(err))
	}

	// Repository
	profileRepository := profile.NewProfileRepository(db)
	mealRepository := meal.NewMealRepository(db)
	planRepository := plan.NewPlanRepository(db)
	progressRepository := progress.NewProgressRepository(db)

	// Service
	profileService := profile.NewProfileService(profileRepository, zlog)
	mealService := meal.NewMealService(mealRepository, zlog, loc)
	planService := plan.NewPlanService(planRepository, zlog, loc)
	progressService := progress.NewProgressService(progressRepository, zlog, loc)
	resolver := source.NewResolver(profileService, mealService, planService, progressService, zlog)
	dataAccess := access.NewAccess(provider, resolver, zlog, loc)
	screenService := screen.NewScreenService(dataAccess, provider, zlog, loc)
	analyzer := analysis.NewAnalyzer(geminiConfig, zlog)
	planParser := analysis.NewPlanParser(geminiConfig, zlog)

	flows := handlers.Flows{
		Logout:      flow.NewLogout(provider, local, sessionScope, zlog),
		Capture:     flow.NewCapture(dataAccess, uploader, analyzer, zlog),
		PlanImport:  flow.NewPlanImport(dataAccess, planParser, zlog),
		Onboarding:  flow.NewOnboarding(provider, zlog),
		EditProfile: flow.NewEditProfile(dataAccess, provider, zlog),
	}

	// Handler
	authHandler := handlers.NewAuthHandler(provider, validator)
	dataHandler := handlers.NewDataHandler(dataAccess, validator)
	screenHandler := handlers.NewScreenHandler(screenService)
	flowHandler := handlers.NewFlowHandler(flows, validator)

	app.Hooks().OnShutdown(func() error {
		dataAccess.Close()
		provider.Close()
		return file.Close()
	})

	// routes
	routesConfig := routes.Config{
		App:           app,
		AuthHandler:   authHandler,
		DataHandler:   dataHandler,
		ScreenHandler: screenHandler,
		FlowHandler:   flowHandler,
		Middleware:    middleware.NewMiddleware(provider, dataAccess, utils.GetConfig("APP_ORIGIN")),
	}
	routesConfig.Setup()
	return app, nil
}
