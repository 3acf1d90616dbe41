package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neetprep-backend/internal/config"
	"neetprep-backend/internal/database"
	"neetprep-backend/internal/handlers"
	"neetprep-backend/internal/kvstore"
	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/middleware"
	"neetprep-backend/internal/quiz"
	"neetprep-backend/internal/repository"
	"neetprep-backend/internal/router"
	"neetprep-backend/internal/seed"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting NEET prep backend", "env", cfg.Env)

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatal("PostgreSQL connection failed", "error", err)
	}
	defer pool.Close()
	log.Info("PostgreSQL connected", "max_conns", cfg.DBMaxConns)

	// ──── Step 3: Run Database Migrations ────
	if err := database.RunMigrations(pool, cfg.MigrationsDir, log); err != nil {
		log.Fatal("Database migration failed", "error", err)
	}
	log.Info("Database migrations applied", "dir", cfg.MigrationsDir)

	// ──── Step 4: Quiz Store ────
	var store kvstore.Store
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal("Redis connection failed", "error", err)
		}
		defer rdb.Close()
		store = kvstore.NewRedisStore(rdb)
		log.Info("Redis connected, quiz state is shared")
	} else {
		store = kvstore.NewMemoryStore()
		log.Warn("REDIS_URL not set, quiz state is kept in process memory")
	}

	// ──── Initialize Repositories ────
	subjectRepo := repository.NewSubjectRepo(pool)
	chapterRepo := repository.NewChapterRepo(pool)
	questionRepo := repository.NewQuestionRepo(pool)
	fileRepo := repository.NewFileRepo(pool)
	folderRepo := repository.NewFolderRepo(pool)
	messageRepo := repository.NewMessageRepo(pool)

	// ──── Step 5: Default Data ────
	initializer := seed.NewInitializer(subjectRepo, log)
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	err = initializer.Initialize(seedCtx)
	cancelSeed()
	if err != nil {
		log.Fatal("Default data initialization failed", "error", err)
	}

	// ──── Initialize Handlers ────
	healthHandler := handlers.NewHealthHandler(pool)
	subjectHandler := handlers.NewSubjectHandler(subjectRepo, chapterRepo, log)
	chapterHandler := handlers.NewChapterHandler(chapterRepo, log)
	questionHandler := handlers.NewQuestionHandler(questionRepo, log)
	storageHandler := handlers.NewStorageHandler(fileRepo, folderRepo, log)
	messageHandler := handlers.NewMessageHandler(messageRepo, log)
	quizHandler := handlers.NewQuizHandler(quiz.NewService(store), log)

	var writeLimiter *middleware.RateLimiter
	if cfg.WriteRateLimit > 0 {
		writeLimiter = middleware.NewRateLimiter(cfg.WriteRateLimit, time.Minute)
		defer writeLimiter.Stop()
	}

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		log,
		writeLimiter,
		healthHandler,
		subjectHandler,
		chapterHandler,
		questionHandler,
		storageHandler,
		messageHandler,
		quizHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", "error", err)
		}
		close(idle)
	}()

	log.Info("NEET prep backend ready", "addr", fmt.Sprintf("http://localhost:%s", cfg.Port), "api", "/api")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("Server error", "error", err)
	}
	<-idle
}
