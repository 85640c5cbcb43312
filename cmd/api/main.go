package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillsharehub/config"
	_ "skillsharehub/docs"
	"skillsharehub/internal/adapters/auth"
	deliveryhttp "skillsharehub/internal/delivery/http"
	"skillsharehub/internal/delivery/http/controllers"
	"skillsharehub/internal/delivery/http/middleware"
	"skillsharehub/internal/repository/postgres"
	"skillsharehub/internal/services"
)

// @title SkillShare Hub API
// @version 1.0
// @description Events, hosts, topics and bookmarks for a skill-sharing community.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}
		logger.Info("schema applied")
	}

	eventRepo := postgres.NewEventRepository(db)
	hostRepo := postgres.NewHostRepository(db)
	bookmarkRepo := postgres.NewBookmarkRepository(db)
	topicRepo := postgres.NewTopicRepository(db)

	annotator := services.NewAnnotator(hostRepo, bookmarkRepo)
	assembler := services.NewAssembler(hostRepo, topicRepo, bookmarkRepo, annotator, cfg.AnonymousAnnotations)
	eventService := services.NewEventService(eventRepo, hostRepo, bookmarkRepo, topicRepo, assembler, cfg.ContextTimeout)
	topicService := services.NewTopicService(topicRepo, cfg.ContextTimeout)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	router := deliveryhttp.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewTopicController(logger, topicService),
		controllers.NewHealthController(logger, db, cfg.ContextTimeout),
		verifier,
		logger,
	)

	var handler http.Handler = router
	handler = middleware.CORS(cfg.CORSOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	logger.Info("server exited")
}
