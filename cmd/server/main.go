package main

import (
	"context"
	"fmt"
	"menteazul/internal/app"
	"menteazul/internal/config"
	"menteazul/internal/platform/logger"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
)

const version = "1.0.0"

func main() {
	printStartUpBanner()
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Mode,
		logger.WithFile(logger.FileOptions{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		}),
		logger.WithRedaction(true, cfg.Auth.JWTSecret),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to start", "error", err)
	}
	defer a.Close(context.Background())

	for _, v := range a.Dataset.Variants() {
		log.Info("questionnaire loaded", "variant", v.ID, "age_groups", len(v.AgeGroups))
	}
	if cfg.Scoring.StrictAnswers {
		log.Info("strict answer validation enabled")
	}

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", "error", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("MenteAzul", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("MenteAzul Q-CHAT API (v%s)\n\n", version)
}
