package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"filmlog/database"
	"filmlog/internal/api/handler"
	"filmlog/internal/api/middleware"
	"filmlog/internal/api/repository"
	"filmlog/internal/api/service"
	"filmlog/internal/cache"
	"filmlog/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// safety net for the application-maintained invariants; violations mean
	// a bug, so they only get logged
	if err := database.CheckInvariants(db, logger); err != nil {
		logger.Error("invariant check failed", "error", err)
	}

	tokenStore, err := cache.NewTokenStore(cfg)
	if err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer tokenStore.Close()

	// repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	filmRepo := repository.NewFilmRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	listRepo := repository.NewListRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, tokenStore, cfg, logger)
	filmService := service.NewFilmService(filmRepo, ratingRepo)
	genreService := service.NewGenreService(genreRepo)
	listService := service.NewListService(listRepo, ratingRepo, filmRepo)
	ratingService := service.NewRatingService(ratingRepo, filmRepo, logger)
	commentService := service.NewCommentService(commentRepo, filmRepo)
	profileService := service.NewProfileService(userRepo)

	// handlers
	authHandler := handler.NewAuthHandler(authService)
	filmHandler := handler.NewFilmHandler(filmService)
	genreHandler := handler.NewGenreHandler(genreService)
	listHandler := handler.NewListHandler(listService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	commentHandler := handler.NewCommentHandler(commentService)
	profileHandler := handler.NewProfileHandler(profileService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	requireAuth := middleware.AuthMiddleware(authService)
	optionalAuth := middleware.OptionalAuthMiddleware(authService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth", middleware.RateLimit(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst))
		authHandler.RegisterRoutes(auth, requireAuth)

		films := api.Group("/films")
		filmHandler.RegisterRoutes(films, requireAuth)
		ratingHandler.RegisterRoutes(films, requireAuth)
		commentHandler.RegisterRoutes(films, optionalAuth)

		genres := api.Group("/genres")
		genreHandler.RegisterRoutes(genres, requireAuth)

		lists := api.Group("/lists")
		listHandler.RegisterRoutes(lists, requireAuth)

		users := api.Group("/users", optionalAuth)
		profileHandler.RegisterRoutes(users, requireAuth)
		listHandler.RegisterUserRoutes(users)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
