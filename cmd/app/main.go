package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres/driverarchive"
	"dispatch/internal/adapters/out/postgres/orderarchive"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	gormDB := openDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	ctx := context.Background()
	if err := app.SeedDrivers(ctx); err != nil {
		log.Fatalf("Error seeding drivers: %v", err)
	}

	if err := app.JobManager().StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer app.JobManager().StopAll()

	if configs.SimAutoStart == "true" {
		app.Simulator().Start()
	}
	defer app.Simulator().Stop()

	startWebServer(&app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:       goDotEnvVariable("HTTP_PORT"),
		DBHost:         goDotEnvVariable("DB_HOST"),
		DBPort:         goDotEnvVariable("DB_PORT"),
		DBUser:         goDotEnvVariable("DB_USER"),
		DBPassword:     goDotEnvVariable("DB_PASSWORD"),
		DBName:         goDotEnvVariable("DB_NAME"),
		DBSslMode:      goDotEnvVariable("DB_SSLMODE"),
		SimMinDelayMs:  goDotEnvVariable("SIM_MIN_DELAY_MS"),
		SimMaxDelayMs:  goDotEnvVariable("SIM_MAX_DELAY_MS"),
		SimAutoStart:   goDotEnvVariable("SIM_AUTO_START"),
		RenderToStdout: goDotEnvVariable("RENDER_TO_STDOUT"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// openDB connects to the archive database and migrates the archive tables.
// An empty DB_HOST disables the archive entirely; the dispatch core runs
// purely in memory.
func openDB(configs cmd.Config) *gorm.DB {
	if configs.DBHost == "" {
		return nil
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderarchive.OrderDTO{}, &driverarchive.DriverDTO{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()

	server := app.CreateHTTPServer()
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			logger.Info("web server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}
}
