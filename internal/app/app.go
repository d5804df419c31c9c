package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	siteHTTP "velvetroom/internal/controller/http"
	"velvetroom/internal/gallery"
	"velvetroom/internal/mailer"
	"velvetroom/internal/model"
	"velvetroom/internal/payments"
	"velvetroom/internal/repo/persistent"
	"velvetroom/internal/storage"
	"velvetroom/internal/usecase"
	"velvetroom/pkg/cache"
	"velvetroom/pkg/config"
	"velvetroom/pkg/database"
	"velvetroom/pkg/logger"
	"velvetroom/pkg/middleware"
	"velvetroom/pkg/session"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.New(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}
	if cfg.DBDriver == "sqlite" {
		if err := model.AutoMigrate(db); err != nil {
			log.Error("Failed to migrate database: %v", err)
			return nil, err
		}
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
	}, nil
}

func (a *App) Run() error {
	sessions := session.NewRedisStore(a.redisClient)

	var files storage.Storage
	if a.cfg.MediaStorage == "s3" {
		s3Client, err := storage.NewS3(a.cfg)
		if err != nil {
			a.log.Error("Failed to create S3 client: %v", err)
			return err
		}
		files = s3Client
	} else {
		files = storage.NewLocal(a.cfg.MediaRoot)
	}

	galleryStore := gallery.NewStore(a.cfg.GalleryDataFile)
	stripeClient := payments.NewStripeClient(a.cfg.StripeSecretKey)
	emailClient := mailer.NewEmailJS(a.cfg)

	userRepo := persistent.NewUserRepository(a.db)
	paymentRepo := persistent.NewPaymentRepository(a.db)

	authUseCase := usecase.NewAuthUseCase(userRepo, paymentRepo, a.log)
	checkoutUseCase := usecase.NewCheckoutUseCase(paymentRepo, stripeClient, a.cfg, a.log)
	webhookUseCase := usecase.NewWebhookUseCase(paymentRepo, a.cfg.StripeWebhookSecret, a.log)
	accessUseCase := usecase.NewAccessUseCase(paymentRepo, a.cfg)
	tipsUseCase := usecase.NewTipsUseCase(paymentRepo)
	galleryAdminUseCase := usecase.NewGalleryAdminUseCase(galleryStore, files, a.cfg, a.log)
	bookingUseCase := usecase.NewBookingUseCase(emailClient, a.log)

	authHandler := siteHTTP.NewAuthHandler(authUseCase, sessions, a.cfg, a.log)
	paymentHandler := siteHTTP.NewPaymentHandler(checkoutUseCase, authUseCase, tipsUseCase, a.cfg, a.log)
	webhookHandler := siteHTTP.NewWebhookHandler(webhookUseCase, a.log)
	galleryHandler := siteHTTP.NewGalleryHandler(accessUseCase, galleryStore)
	adminHandler := siteHTTP.NewAdminHandler(galleryAdminUseCase, sessions, a.cfg, a.log)
	bookingHandler := siteHTTP.NewBookingHandler(bookingUseCase)

	userTTL := time.Duration(a.cfg.UserSessionTTLSeconds) * time.Second
	adminTTL := time.Duration(a.cfg.AdminSessionTTLSeconds) * time.Second

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/webhooks/stripe", webhookHandler.HandleStripe)

		authLimited := api.Group("")
		authLimited.Use(middleware.RateLimit(a.redisClient, 10, time.Minute))
		{
			authLimited.POST("/auth/register", authHandler.Register)
			authLimited.POST("/auth/login", authHandler.Login)
		}

		api.POST("/bookings", middleware.RateLimit(a.redisClient, 5, time.Minute), bookingHandler.Submit)
		api.GET("/tips/recent", paymentHandler.RecentTippers)
		api.GET("/tips/stats", paymentHandler.TipStats)

		optional := api.Group("")
		optional.Use(middleware.OptionalSessionAuth(sessions, userTTL))
		{
			optional.GET("/auth/check", authHandler.Check)
			optional.GET("/gallery/access", galleryHandler.CheckAccess)
		}

		protected := api.Group("")
		protected.Use(middleware.SessionAuth(sessions, userTTL))
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/profile", authHandler.Profile)
			protected.GET("/gallery", galleryHandler.List)

			checkoutLimited := protected.Group("")
			checkoutLimited.Use(middleware.RateLimit(a.redisClient, 10, time.Minute))
			{
				checkoutLimited.POST("/checkout/gallery", paymentHandler.CreateGalleryCheckout)
				checkoutLimited.POST("/checkout/tip", paymentHandler.CreateTipCheckout)
			}
		}
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/login", middleware.RateLimit(a.redisClient, 5, time.Minute), adminHandler.Login)
		admin.POST("/logout", adminHandler.Logout)

		adminProtected := admin.Group("")
		adminProtected.Use(middleware.AdminAuth(sessions, adminTTL))
		{
			adminProtected.GET("/check", adminHandler.Check)
			adminProtected.GET("/gallery", adminHandler.ListGallery)

			adminProtected.POST("/gallery/images", adminHandler.UploadImage)
			adminProtected.PUT("/gallery/images/reorder", adminHandler.ReorderImages)
			adminProtected.PUT("/gallery/images/:id", adminHandler.UpdateImageAlt)
			adminProtected.DELETE("/gallery/images/:id", adminHandler.DeleteImage)

			adminProtected.POST("/gallery/videos", adminHandler.UploadVideo)
			adminProtected.PUT("/gallery/videos/reorder", adminHandler.ReorderVideos)
			adminProtected.PUT("/gallery/videos/:id", adminHandler.UpdateVideoTitle)
			adminProtected.PUT("/gallery/videos/:id/thumbnail", adminHandler.ReplaceVideoThumbnail)
			adminProtected.DELETE("/gallery/videos/:id", adminHandler.DeleteVideo)
		}
	}

	if a.cfg.MediaStorage == "local" {
		r.Static("/uploads", a.cfg.MediaRoot+"/uploads")
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("velvetroom starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if err := a.redisClient.Close(); err != nil {
		a.log.Error("Error closing Redis: %v", err)
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Server exited")
	return nil
}
