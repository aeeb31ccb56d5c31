package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"cms-service/internal/handler"
	"cms-service/internal/middleware"
	"cms-service/internal/oauth"
	"cms-service/internal/repository"
	"cms-service/internal/service"
	"cms-service/internal/social"
	"cms-service/internal/storage"
	"cms-service/pkg/cache"
	"cms-service/pkg/config"
	"cms-service/pkg/database"
	"cms-service/pkg/jwtutil"
	"cms-service/pkg/logger"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting CMS service...", zap.String("environment", cfg.Server.Env))
	log.Info("Configuration loaded", cfg.LogConfig()...)

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized", zap.Duration("session_window", jwtutil.SessionWindow()))

	// Optional external clients
	redisClient, err := cache.NewClient(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		log.Info("Redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	objectStore, err := storage.NewS3Store(&cfg.S3)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	var store storage.ObjectStore
	if objectStore != nil {
		store = objectStore
		log.Info("Object storage enabled", zap.String("bucket", cfg.S3.Bucket))
	}

	var fetcher service.StatsFetcher
	if f := social.NewAPIFetcher(&cfg.Social); f != nil {
		fetcher = f
		log.Info("Social stats fetcher enabled", zap.String("base_url", cfg.Social.APIBaseURL))
	}

	// Wire layers
	repo := repository.NewRepository(database.GetDB())
	verifier := oauth.NewTokenInfoVerifier(&cfg.OAuth, log)
	svc := service.NewService(repo, verifier, fetcher, store, cfg, log)
	h := handler.NewHandler(svc, redisClient)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(middleware.MetricsMiddleware)

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	api.GET("/auth/me", h.Me)

	// Invite ledger
	invites := api.Group("/invites")
	invites.POST("", h.CreateInvite)
	invites.GET("", h.ListInvites)
	invites.PUT("/:id", h.UpdateInvite)
	invites.DELETE("/:id", h.DeleteInvite)

	// User directory
	users := api.Group("/users")
	users.GET("", h.ListUsers)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id/role", h.UpdateUserRole)
	users.PUT("/me/current-site", h.SelectSite)

	// Site directory and membership
	sites := api.Group("/sites")
	sites.POST("", h.CreateSite)
	sites.GET("", h.ListSites)
	sites.GET("/:site_id", h.GetSite)
	sites.PUT("/:site_id", h.UpdateSite)
	sites.DELETE("/:site_id", h.DeleteSite)
	sites.GET("/:site_id/members", h.ListSiteMembers)
	sites.POST("/:site_id/members", h.AddSiteMember)
	sites.DELETE("/:site_id/members/:user_id", h.RemoveSiteMember)

	// Feature configuration
	sites.GET("/:site_id/features", h.ListSiteFeatures)
	sites.POST("/:site_id/features", h.CreateSiteFeature)
	sites.PUT("/:site_id/features/:id", h.UpdateSiteFeature)
	sites.DELETE("/:site_id/features/:id", h.DeleteSiteFeature)

	// Pages
	sites.POST("/:site_id/pages", h.CreatePage)
	sites.GET("/:site_id/pages", h.ListPages)
	sites.GET("/:site_id/pages/:id", h.GetPage)
	sites.PUT("/:site_id/pages/:id", h.UpdatePage)
	sites.DELETE("/:site_id/pages/:id", h.DeletePage)

	// Blog posts
	sites.POST("/:site_id/posts", h.CreatePost)
	sites.GET("/:site_id/posts", h.ListPosts)
	sites.GET("/:site_id/posts/:id", h.GetPost)
	sites.PUT("/:site_id/posts/:id", h.UpdatePost)
	sites.DELETE("/:site_id/posts/:id", h.DeletePost)

	// Sponsors
	sites.POST("/:site_id/sponsors", h.CreateSponsor)
	sites.GET("/:site_id/sponsors", h.ListSponsors)
	sites.GET("/:site_id/sponsors/:id", h.GetSponsor)
	sites.PUT("/:site_id/sponsors/:id", h.UpdateSponsor)
	sites.DELETE("/:site_id/sponsors/:id", h.DeleteSponsor)

	// Job board
	sites.POST("/:site_id/companies", h.CreateCompany)
	sites.GET("/:site_id/companies", h.ListCompanies)
	sites.PUT("/:site_id/companies/:id", h.UpdateCompany)
	sites.DELETE("/:site_id/companies/:id", h.DeleteCompany)
	sites.POST("/:site_id/job-listings", h.CreateJobListing)
	sites.GET("/:site_id/job-listings", h.ListJobListings)
	sites.GET("/:site_id/job-listings/:id", h.GetJobListing)
	sites.PUT("/:site_id/job-listings/:id", h.UpdateJobListing)
	sites.DELETE("/:site_id/job-listings/:id", h.DeleteJobListing)

	// Contact management
	sites.GET("/:site_id/contact-form", h.GetContactForm)
	sites.PUT("/:site_id/contact-form", h.UpdateContactForm)
	sites.GET("/:site_id/submissions", h.ListSubmissions)
	sites.GET("/:site_id/submissions/:id", h.GetSubmission)
	sites.PUT("/:site_id/submissions/:id", h.UpdateSubmission)
	sites.DELETE("/:site_id/submissions/:id", h.DeleteSubmission)

	// Social media
	sites.POST("/:site_id/social-channels", h.CreateChannel)
	sites.GET("/:site_id/social-channels", h.ListChannels)
	sites.GET("/:site_id/social-channels/:id", h.GetChannel)
	sites.PUT("/:site_id/social-channels/:id", h.UpdateChannel)
	sites.DELETE("/:site_id/social-channels/:id", h.DeleteChannel)

	// Media library
	sites.POST("/:site_id/media", h.UploadMedia)
	sites.GET("/:site_id/media", h.ListMedia)
	sites.GET("/:site_id/media/:id", h.GetMedia)
	sites.DELETE("/:site_id/media/:id", h.DeleteMedia)

	// Public read API - CORS-open, no authentication
	public := e.Group("/api/public", middleware.PublicCORSMiddleware)
	public.GET("/sites/:site_id", h.PublicGetSite)
	public.GET("/sites/:site_id/sponsors", h.PublicListSponsors)
	public.GET("/sites/:site_id/jobs", h.PublicListJobs)
	public.GET("/sites/:site_id/social", h.PublicListSocial)
	public.POST("/sites/:site_id/contact", h.PublicSubmitContact)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
