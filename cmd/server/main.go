package main

import (
	"github.com/tanmald/plate-check-mvp/cmd/config"
	migration "github.com/tanmald/plate-check-mvp/cmd/database/migrate"
	"github.com/tanmald/plate-check-mvp/internal/utils"
	"log"

	"go.uber.org/zap"
)

func main() {
	utils.LoadConfig()
	zlog := utils.NewLogger(utils.GetConfig("APP_ENV"))
	defer zlog.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db, zlog)
	if err != nil {
		zlog.Fatal("failed to build app", zap.Error(err))
	}

	port := utils.GetConfig("APP_PORT")
	zlog.Info("listening", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
