package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dtan16/health-tracker/config"
	"github.com/dtan16/health-tracker/controllers"
	"github.com/dtan16/health-tracker/models"
	"github.com/dtan16/health-tracker/routes"
	"github.com/dtan16/health-tracker/services"
)

func main() {
	cfg := config.Load()

	db, err := config.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.DailyLog{}); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	hub := services.NewStreamHub()
	lc := controllers.NewLogController(services.NewLogService(db), hub)
	r := routes.SetupRouter(lc)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
