package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyeon/vocaflash/internal/api"
	"github.com/hyeon/vocaflash/internal/auth"
	"github.com/hyeon/vocaflash/internal/catalog"
	"github.com/hyeon/vocaflash/internal/config"
	"github.com/hyeon/vocaflash/internal/db"
	"github.com/hyeon/vocaflash/internal/logger"
	"github.com/hyeon/vocaflash/internal/repository/sqlite"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("VocaFlash Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("token_ttl_hours=%d", cfg.TokenTTLHours)
	log.Debug("cors_origin=%s", cfg.CORSOrigin)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	words, err := catalog.Load()
	if err != nil {
		log.Error("failed to load word catalog: %v", err)
		os.Exit(1)
	}
	log.Info("word catalog loaded (%d words)", words.Len())

	users := sqlite.NewUserRepository(database)
	authService := auth.NewService(users, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	srv := &api.Server{
		DB:         database,
		Auth:       authService,
		Catalog:    words,
		CORSOrigin: cfg.CORSOrigin,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("VocaFlash Server Stopped")
	log.Info("===========================================")
}
