package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwalitptl/petcare-portal/config"
	"github.com/jwalitptl/petcare-portal/internal/mockapi"
	"github.com/jwalitptl/petcare-portal/internal/model"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	server := mockapi.NewServer(cfg.MockAPI, log)

	// A couple of blocked entries so the booking calendar has something
	// to render against out of the box.
	nextWeek := time.Now().AddDate(0, 0, 7)
	slotTime := "14:00:00"
	server.SeedBlockedSlots([]model.BlockedSlot{
		{ID: "seed-1", Date: nextWeek.Format("2006-01-02"), Reason: "clinic closed"},
		{ID: "seed-2", Date: nextWeek.AddDate(0, 0, 1).Format("2006-01-02"), Time: &slotTime, Reason: "staff meeting"},
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MockAPI.Port),
		Handler: server.Router(),
	}

	go func() {
		log.Info("mock API listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "shutdown failed")
	}
}
