package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solestride/app/echo-server/router"
	"solestride/business/admin"
	"solestride/business/dashboard"
	"solestride/business/orders"
	"solestride/business/product"
	"solestride/business/recommendation"
	userService "solestride/business/user"
	"solestride/internal/middleware"
	"solestride/internal/repository/notification"
	psqlRepo "solestride/internal/repository/postgres"
	redisRepo "solestride/internal/repository/redis"
	"solestride/internal/rest"
	"solestride/pkg/config"
	"solestride/pkg/database"
	redisClient "solestride/pkg/database/redis"
	"solestride/pkg/logger"
	"solestride/pkg/metrics"
	"solestride/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting SoleStride", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	rdb, err := redisClient.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisClient.CloseRedisClient(rdb)

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	adminRepo := psqlRepo.NewAdminRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	productsRepo := psqlRepo.NewProductRepository(db)
	resetPinRepo := psqlRepo.NewResetPinRepository(db)
	dashboardRepo := psqlRepo.NewDashboardRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(rdb)

	// Init service
	userSvc := userService.NewUserService(userRepo, tokenRepo, resetPinRepo, mailjetEmail, validate)
	adminSvc := admin.NewAdminService(adminRepo, validate)
	ordersSvc := orders.NewOrdersService(ordersRepo, productsRepo, mailjetEmail)
	productSvc := product.NewProductService(productsRepo)
	recoSvc := recommendation.NewService(ordersRepo, productsRepo)
	dashboardSvc := dashboard.NewDashboardService(dashboardRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	adminHandler := rest.NewAdminHandler(adminSvc)
	ordersHandler := rest.NewOrdersHandler(ordersSvc)
	productHandler := rest.NewProductHandler(productSvc)
	recoHandler := rest.NewRecommendationHandler(recoSvc)
	dashboardHandler := rest.NewDashboardHandler(dashboardSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware. Customer sessions live in Redis so logout revokes
	// them; admin sessions are plain JWT.
	authRequired := middleware.AuthMiddlewareWithRedis(userSvc)
	adminAuth := middleware.AuthMiddleware()
	optionalAuth := middleware.OptionalAuth()
	adminOnly := middleware.AdminOnly()
	ownerOnly := middleware.OwnerOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, adminAuth, adminOnly)
	router.SetupOrdersRoutes(api, ordersHandler, authRequired, adminAuth, adminOnly)
	router.SetupRecommendationRoutes(api, recoHandler, optionalAuth)
	router.SetupAdminRoutes(api, adminHandler, adminAuth, adminOnly, ownerOnly)
	router.SetupDashboardRoutes(api, dashboardHandler, adminAuth, ownerOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
