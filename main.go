package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sweetspot260/sweetlife/internal/config"
	"github.com/sweetspot260/sweetlife/internal/handler"
	"github.com/sweetspot260/sweetlife/internal/middleware"
	"github.com/sweetspot260/sweetlife/internal/repository"
	"github.com/sweetspot260/sweetlife/internal/scheduler"
	"github.com/sweetspot260/sweetlife/internal/service"
	"github.com/sweetspot260/sweetlife/internal/web"
	"github.com/sweetspot260/sweetlife/pkg/database"
	"github.com/sweetspot260/sweetlife/pkg/logger"
	"github.com/sweetspot260/sweetlife/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db          *database.PostgresDB
	redisClient *redis.Client
	resets      *scheduler.ResetScheduler
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	// Stop the reset scheduler
	if r.resets != nil {
		r.resets.Stop()
	}

	// Close Redis connection
	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed")
		}
	}

	// Close database connection pool
	if r.db != nil {
		r.db.Close()
		r.log.Info("Database connection pool closed")
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errs), errs)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting sweetlife server")

	// Initialize database connection
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Initialize Redis connection if configured; the server runs without it
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to connect to Redis, proceeding without caching")
		} else {
			log.Info("Redis client initialized")
		}
	}

	// Initialize repositories
	visitRepo := repository.NewVisitRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize services
	trackerService := service.NewTrackerService(visitRepo, statsRepo, log)
	videoService := service.NewVideoService(statsRepo, commentRepo, redisClient, cfg.Video, log)
	commentService := service.NewCommentService(commentRepo, redisClient, log)
	adminService := service.NewAdminService(adminRepo, log, cfg.AdminSecret, cfg.SessionSecret)
	statsService := service.NewStatsService(statsRepo, redisClient, log)

	// Start the counter reset scheduler
	resets := scheduler.NewResetScheduler(statsRepo, log)
	resets.Start()

	// Parse admin views
	renderer, err := web.NewRenderer()
	if err != nil {
		log.WithError(err).Fatal("Failed to parse admin templates")
	}

	// Setup router
	router := setupRouter(cfg, log, db, redisClient, trackerService, videoService, commentService, adminService, statsService, renderer)

	// Create HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Create resources manager for cleanup
	resources := &Resources{
		db:          db,
		redisClient: redisClient,
		resets:      resets,
		server:      server,
		log:         log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	// Create context with timeout for shutdown operations
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(
	cfg *config.Config,
	log *logger.Logger,
	db *database.PostgresDB,
	redisClient *redis.Client,
	trackerService service.TrackerService,
	videoService service.VideoService,
	commentService service.CommentService,
	adminService service.AdminService,
	statsService service.StatsService,
	renderer *web.Renderer,
) *chi.Mux {
	r := chi.NewRouter()

	corsConfig := &middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "X-Requested-With"},
		MaxAge:         86400,
	}

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	// Create handlers
	healthHandler := handler.NewHealthHandler(db, redisClient, log)
	videoHandler := handler.NewVideoHandler(videoService, log)
	commentHandler := handler.NewCommentHandler(commentService, log)
	visitHandler := handler.NewVisitHandler(trackerService, log)
	adminHandler := handler.NewAdminHandler(adminService, commentService, statsService, renderer, log)

	// Liveness (not tracked)
	r.Get("/ping", healthHandler.Ping)
	r.Get("/health", healthHandler.Check)

	// Public API, every request tracked as a visit
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.VisitTracker(trackerService))

		videoHandler.RegisterRoutes(r)
		commentHandler.RegisterRoutes(r)
		visitHandler.RegisterRoutes(r)
	})

	// Admin surface, session gated where required
	r.Route("/admin", func(r chi.Router) {
		adminHandler.RegisterRoutes(r, middleware.AdminSession(adminService, log))
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
