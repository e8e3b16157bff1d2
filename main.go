package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"bridalstudio/config"
	"bridalstudio/database"
	bookingRepoPkg "bridalstudio/database/repository/booking"
	userRepoPkg "bridalstudio/database/repository/user"
	"bridalstudio/handlers"
	"bridalstudio/mailqueue"
	"bridalstudio/middleware"
	"bridalstudio/routes"
	"bridalstudio/services/booking"
	"bridalstudio/services/notification"
	"bridalstudio/services/user"
	"bridalstudio/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// Mail pipeline: SMTP mailer behind a Redis-backed queue so booking
	// responses never wait on the email transport.
	mailer := notification.NewSMTPMailer()
	mailClient := mailqueue.NewClient()
	defer mailClient.Close()
	mailqueue.InitMailWorker(mailer)

	// Services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:     bookingRepo,
		Users:    userRepo,
		Notifier: mailClient,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	authHandler := handlers.NewAuthHandler(userService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		RegisterHandler: authHandler.RegisterHandler,
		LoginHandler:    authHandler.LoginHandler,
		MeHandler:       authHandler.MeHandler,

		CreateBookingHandler:      bookingHandler.CreateBookingHandler,
		CreateGuestBookingHandler: bookingHandler.CreateGuestBookingHandler,
		GetBookingsHandler:        bookingHandler.GetBookingsHandler,
		GetBookingHandler:         bookingHandler.GetBookingHandler,
		UpdateBookingHandler:      bookingHandler.UpdateBookingHandler,
		DeleteBookingHandler:      bookingHandler.DeleteBookingHandler,

		GetAvailableServicesHandler: bookingHandler.GetAvailableServicesHandler,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		database.MongoClient,
		utils.GetAuthCacheClient(),
		utils.GetMailQueueClient(),
	)

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
