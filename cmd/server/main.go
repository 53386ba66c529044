package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/session"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/view"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting pizza storefront",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Load the menu
	menuRepo, err := loadMenu(cfg.Store.MenuFile)
	if err != nil {
		log.Error("failed to load menu", "file", cfg.Store.MenuFile, "error", err)
		os.Exit(1)
	}
	menuService := service.NewMenuService(menuRepo)

	entries, _ := menuService.ListMenu(context.Background())
	log.Info("menu loaded", "pizzas", len(entries), "file", cfg.Store.MenuFile)

	renderer, err := view.NewRenderer(cfg.Store.CurrencySymbol)
	if err != nil {
		log.Error("failed to initialize renderer", "error", err)
		os.Exit(1)
	}

	// Shopping sessions, each with its own order
	sessions := session.NewStore(cfg.Session.TTL(), session.NewFactory(
		menuService,
		renderer,
		service.WithMaxQuantity(cfg.Store.MaxQuantity),
	))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sessions.Run(ctx, cfg.Session.SweepInterval(), func(removed int) {
		if removed > 0 {
			log.Debug("expired sessions evicted", "removed", removed, "remaining", sessions.Len())
		}
	})

	router := handlers.NewRouter(handlers.RouterDeps{
		Menu:           menuService,
		Renderer:       renderer,
		Sessions:       sessions,
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		SecureCookies:  cfg.Session.SecureCookies,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// loadMenu reads the menu file when one is configured and falls back to the house menu
func loadMenu(path string) (repository.MenuRepository, error) {
	if path == "" {
		return repository.NewInMemoryMenuRepository(), nil
	}
	repo, err := repository.LoadMenuFile(path)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
