package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"msgboard/internal/adapter/file"
	adapthttp "msgboard/internal/adapter/http"
	"msgboard/internal/adapter/postgres"
	"msgboard/internal/app"
	"msgboard/internal/config"
	"msgboard/internal/domain"
	"msgboard/internal/logger"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err)
	}
	log := logger.New(cfg.LogLevel)

	var (
		users    domain.UserRepository
		messages domain.MessageRepository
		searches domain.SearchLogRepository
		flush    func() error
	)

	switch cfg.StorageDriver {
	case "file":
		store, err := file.Open(cfg.UsersFile, cfg.MessagesFile, cfg.SearchLogFile, log)
		if err != nil {
			log.Fatal("failed to open file store", "error", err)
		}
		users, messages, searches = store, store, store
		flush = store.Flush
		log.Info("file store ready",
			"users", cfg.UsersFile, "messages", cfg.MessagesFile, "searchLog", cfg.SearchLogFile)
	case "postgres":
		if cfg.DatabaseURL == "" {
			log.Fatal("DATABASE_URL is required with STORAGE_DRIVER=postgres")
		}
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("failed to open database", "error", err)
		}
		defer func() { _ = db.Close() }()
		users, messages, searches = db, db, db
	default:
		log.Fatal("unknown storage driver", "driver", cfg.StorageDriver)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sso, err := adapthttp.NewSSO(ctx, cfg.OIDC)
	if err != nil {
		log.Fatal("failed to configure sso", "error", err)
	}

	authSvc := app.NewAuthService(users)
	boardSvc := app.NewBoardService(messages)
	searchSvc := app.NewSearchService(searches)

	h := adapthttp.New(authSvc, boardSvc, searchSvc, sso, cfg.WebDir, log).Handler()
	srv := &http.Server{Addr: cfg.Addr, Handler: h}

	go func() {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
	if flush != nil {
		if err := flush(); err != nil {
			log.Error("failed to persist users on shutdown", "error", err)
		}
	}
	log.Info("server stopped")
}
