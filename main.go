// File: mindhaven/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindhaven/config"
	"mindhaven/cron"
	"mindhaven/database"
	sessionRepoPkg "mindhaven/database/repository/session"
	therapistRepoPkg "mindhaven/database/repository/therapist"
	userRepoPkg "mindhaven/database/repository/user"
	"mindhaven/handlers"
	"mindhaven/middleware"
	"mindhaven/routes"
	"mindhaven/services/notification"
	session "mindhaven/services/session"
	"mindhaven/services/tasks"
	"mindhaven/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// repositories.
	sessRepo := sessionRepoPkg.NewMongoSessionRepo()
	therRepo := therapistRepoPkg.NewMongoTherapistRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(userRepo, therRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	clock := utils.RealClock{}
	sessionService := &session.DefaultSessionService{
		Repo:            sessRepo,
		TherapistRepo:   therRepo,
		PaymentHandler:  session.NewStripePaymentHandler(logger),
		NotificationSvc: notificationService,
		Reminders:       tasks.NewAsynqReminderScheduler(),
		CacheClient:     utils.GetCalendarCacheClient(),
		Clock:           clock,
	}

	// Reminder worker consumes the queue the session service feeds.
	cron.InitReminderWorker(notificationService)

	sessionHandler := handlers.NewSessionHandler(sessionService, clock)
	availabilityHandler := handlers.NewAvailabilityHandler(sessionService, therRepo, clock)
	routes.RegisterSessionRoutes(router, sessionHandler, availabilityHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
