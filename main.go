package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "storefront-backend/common/errors"
	"storefront-backend/common/logger"
	common "storefront-backend/common/middleware"
	"storefront-backend/config"
	"storefront-backend/controllers"
	"storefront-backend/database"
	"storefront-backend/models"
	"storefront-backend/repository"
	"storefront-backend/routes"
	"storefront-backend/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	pg, err := database.ConnectPostgres(cfg.PostgresDSN())
	if err != nil {
		logger.Log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	if err := models.Migrate(pg); err != nil {
		logger.Log.Fatal("failed to run migrations", zap.Error(err))
	}

	mongoDB, err := database.ConnectMongo(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Log.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer database.DisconnectMongo(context.Background(), mongoDB)

	redisClient := database.NewRedisClient(cfg.RedisURL)
	cache := controllers.NewCacheManager(redisClient, cfg.CatalogCacheTTL)

	if cfg.SeedPath != "" {
		if err := database.SeedCatalog(context.Background(), mongoDB, cfg.SeedPath); err != nil {
			logger.Log.Fatal("failed to seed catalog", zap.Error(err), zap.String("path", cfg.SeedPath))
		}
		if err := cache.Invalidate(context.Background()); err != nil {
			logger.Log.Warn("failed to invalidate catalog cache after seeding", zap.Error(err))
		}
	}

	userRepo := repository.NewUserRepository(pg)
	cartRepo := repository.NewGormCartRepository(pg)
	orderRepo := repository.NewGormOrderRepository(pg)
	productRepo := repository.NewMongoProductRepository(mongoDB)
	categoryRepo := repository.NewMongoCategoryRepository(mongoDB)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenService)
	productService := services.NewProductService(productRepo)
	categoryService := services.NewCategoryService(categoryRepo, productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo)
	gateway := services.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	paymentService := services.NewPaymentService(gateway, orderService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(common.SecurityHeaders())
	router.Use(apperrors.ErrorMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(router, routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Product:  controllers.NewProductController(productService, cache),
		Category: controllers.NewCategoryController(categoryService),
		Cart:     controllers.NewCartController(cartService),
		Order:    controllers.NewOrderController(orderService),
		Payment:  controllers.NewPaymentController(paymentService),
	}, tokenService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("storefront backend listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("shutdown error", zap.Error(err))
	}
	logger.Log.Info("server shutdown complete")
}
