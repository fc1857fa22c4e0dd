package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"devfolio/internal/auth"
	"devfolio/internal/config"
	"devfolio/internal/handler"
	"devfolio/internal/middleware"
	"devfolio/internal/repository/postgres"
	"devfolio/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stdout, f)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Token service issues and verifies local HS256 sessions
	tokenService, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	// When a JWKS endpoint is configured, verify bearer tokens against it
	// instead of the local secret (externally issued sessions).
	ctx := context.Background()
	var verifier auth.TokenVerifier = tokenService
	if cfg.AuthJWKSURL != "" {
		jwksVerifier, err := auth.NewJWKSVerifier(ctx, cfg.AuthJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWKS verifier: %v", err)
		}
		verifier = jwksVerifier
	}

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	technologyRepo := postgres.NewTechnologyRepository(repoConfig)
	favoriteRepo := postgres.NewFavoriteRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create services
	authService := service.NewAuthService(userRepo, tokenService, logger)
	userService := service.NewUserService(userRepo, projectRepo, favoriteRepo, txManager, logger)
	projectService := service.NewProjectService(projectRepo, technologyRepo, favoriteRepo, txManager, logger)
	favoriteService := service.NewFavoriteService(userRepo, projectRepo, favoriteRepo, txManager, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Auth routes
	mux.HandleFunc("POST /api/auth/email", authHandler.EmailExists)
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// User routes
	mux.HandleFunc("GET /api/users", userHandler.ListUsers)
	mux.HandleFunc("GET /api/users/{id}", userHandler.GetUserInfo)
	mux.Handle("PATCH /api/users/{id}", protected(userHandler.UpdateUser))
	mux.Handle("DELETE /api/users/{id}", protected(userHandler.DeleteUser))

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("GET /api/users/{id}/projects", projectHandler.ListUserProjects)
	mux.HandleFunc("GET /api/technologies", projectHandler.ListTechnologies)
	mux.Handle("POST /api/projects", protected(projectHandler.CreateProject))
	mux.Handle("PATCH /api/projects/{id}", protected(projectHandler.UpdateProject))
	mux.Handle("DELETE /api/projects/{id}", protected(projectHandler.DeleteProject))

	// Favorite routes (edge source is always the authenticated user)
	mux.Handle("GET /api/favorites/users/{id}", protected(favoriteHandler.IsUserFavorite))
	mux.Handle("POST /api/favorites/users/{id}", protected(favoriteHandler.AddUserFavorite))
	mux.Handle("DELETE /api/favorites/users/{id}", protected(favoriteHandler.RemoveUserFavorite))
	mux.Handle("GET /api/favorites/projects", protected(favoriteHandler.ListFavoriteProjectIDs))
	mux.Handle("GET /api/favorites/projects/{id}", protected(favoriteHandler.IsProjectFavorite))
	mux.Handle("POST /api/favorites/projects/{id}", protected(favoriteHandler.AddProjectFavorite))
	mux.Handle("DELETE /api/favorites/projects/{id}", protected(favoriteHandler.RemoveProjectFavorite))
	mux.Handle("GET /api/users/{id}/favorites/users", protected(favoriteHandler.ListFavoriteUsers))
	mux.Handle("GET /api/users/{id}/favorites/projects", protected(favoriteHandler.ListFavoriteProjects))

	// Build middleware chain (applied in reverse order, they wrap each other)
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)
	root = middleware.RequestID(root)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
