package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"colis/cmd"
	httpadapter "colis/internal/adapters/in/http"
	"colis/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(postgres.Open(postgresDSN(configs)), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(
		app.CrossUoWFactory(),
		app.CreateRecomputeInvoiceTotalsCommandHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		BulkWorkers:        goDotEnvInt("BULK_WORKERS", 8),
		BulkRetries:        goDotEnvInt("BULK_RETRIES", 2),
		DefaultCourierRate: goDotEnvVariable("DEFAULT_COURIER_RATE"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvInt(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %s", key, raw)
	}
	return value
}

func postgresDSN(configs cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateCreateParcelCommandHandler(),
		app.CreateChangeStatusCommandHandler(),
		app.CreateUpdateStatusBulkCommandHandler(),
		app.CreateAssignCourierBulkCommandHandler(),
		app.CreateSetExtraFeeCommandHandler(),
		app.CreateBuildInvoiceCommandHandler(),
		app.CreateMergeInvoicesCommandHandler(),
		app.CreateMarkInvoicePaidCommandHandler(),
		app.CreateGetTariffQueryHandler(),
		app.CreateGetAllowedTransitionsQueryHandler(),
		app.CreateGetParcelTimelineQueryHandler(),
		app.CreateGetInvoiceQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
