package main

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/robfig/cron/v3"

	"dentalia/cmd/internal/domain/sqlite"
	"dentalia/cmd/internal/domain/sqlite/repository"
	cognitoclient "dentalia/cmd/internal/integration/aws/cognito"
	"dentalia/cmd/internal/integration/sendgrid"
	"dentalia/cmd/internal/routes"
	"dentalia/cmd/internal/service"
	"dentalia/cmd/internal/storage"
	"dentalia/cmd/internal/utils/validators"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("failed to load .env file", err)
	}

	validate := validator.New()
	if err := validators.Register(validate); err != nil {
		log.Fatal("failed to register validators", err)
	}

	// All slot and calendar math happens in the clinic's local time.
	location, err := time.LoadLocation(envOr("CLINIC_TZ", "Europe/Madrid"))
	if err != nil {
		log.Fatal("failed to load clinic timezone", err)
	}

	// Init SQLite
	db, err := sqlite.Init()
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Cognito cliente
	cogClient, err := cognitoclient.InitCognitoClient()
	if err != nil {
		log.Fatal("failed to initialize cognito client", err)
	}

	imageStore, err := storage.NewLocalStore(envOr("FILES_DIR", "./files"), "/files")
	if err != nil {
		log.Fatal("failed to initialize image store", err)
	}

	mailer := sendgrid.NewClient()

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Getting services
	notifier := service.NewEmailNotifier(mailer, location)
	userService := service.NewUserService(userRepo, validate, cogClient)
	apptService := service.NewAppointmentService(apptRepo, userRepo, validate, notifier, location)
	historyService := service.NewHistoryService(historyRepo, userRepo, validate, imageStore)
	reminderService := service.NewReminderService(apptRepo, mailer, location)

	// Morning reminder run for tomorrow's appointments.
	scheduler := cron.New(cron.WithLocation(location))
	if _, err := scheduler.AddFunc("0 8 * * *", reminderService.SendDailyReminders); err != nil {
		log.Fatal("failed to schedule daily reminders", err)
	}
	scheduler.Start()

	// Getting routes
	userRoutes := routes.NewUserDefault(userService)
	apptRoutes := routes.NewAppointmentDefault(apptService)
	historyRoutes := routes.NewHistoryDefault(historyService)

	e := echo.New()
	e.Use(middleware.CORS())

	// Appointments
	e.GET("/api/appointments", apptRoutes.GetAppointments)
	e.POST("/api/appointments", apptRoutes.SaveAppointment)
	e.DELETE("/api/appointments/:id", apptRoutes.DeleteAppointment)

	// Availability and calendar views
	e.GET("/api/appointments/slots", apptRoutes.GetAvailableSlots)
	e.GET("/api/appointments/stats", apptRoutes.GetSpecialtyStats)
	e.GET("/api/calendar", apptRoutes.GetCalendar)

	// Users
	e.GET("/api/users", userRoutes.GetUsers)
	e.GET("/api/users/:id", userRoutes.GetUser)
	e.POST("/api/users", userRoutes.CreateUser)
	e.POST("/api/users/login", userRoutes.CreateLogin)
	e.POST("/api/users/verify", userRoutes.VerifySignup)

	// Clinical history
	e.GET("/api/users/:id/history", historyRoutes.GetHistory)
	e.POST("/api/users/:id/history", historyRoutes.AddEntry)
	e.Static("/files", imageStore.Dir())

	err = e.Start(":" + envOr("PORT", "6060"))
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
