// Package main is the entry point for the polyblog server.
// It loads configuration, initializes the taxonomy, translations, and
// content repositories, sets up routing, and starts the HTTP server with
// graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"polyblog/internal/cache"
	"polyblog/internal/config"
	"polyblog/internal/content"
	"polyblog/internal/handlers"
	"polyblog/internal/i18n"
	"polyblog/internal/render"
	"polyblog/internal/router"
	"polyblog/internal/taxonomy"
)

func main() {
	// Structured logger; outputs text with debug level; adjust per env
	// if needed.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"data_dir", cfg.DataDir,
	)

	// Load the category taxonomy once at startup. A broken file falls
	// back to the built-in tree so the site still serves.
	tax, err := taxonomy.Load(cfg.TaxonomyPath())
	if err != nil {
		slog.Warn("taxonomy load failed, using fallback", "error", err)
	}

	// Load translation dictionaries for all supported locales.
	translator := i18n.NewTranslator(cfg.LocalesDir)

	// Content repositories read files fresh per request; no warm-up needed.
	posts := content.NewPostRepository(cfg.PostsDir(), tax)
	portfolio := content.NewPortfolioRepository(cfg.PortfolioDir())

	// Optional Valkey page cache. The site is fully functional without it.
	var pageCache *cache.PageCache
	if cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		pageCache = cache.NewPageCache(client, cache.DefaultPageTTL)

		// Content may have changed since the last run; drop stale pages.
		pageCache.InvalidateAll(context.Background())
	} else {
		pageCache = cache.NewPageCache(nil, 0)
		slog.Info("page cache disabled, VALKEY_HOST not set")
	}

	// Initialize the HTML template renderer for the public site.
	renderer, err := render.New(cfg.SiteName, translator)
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Create handlers and wire up the router.
	public := handlers.NewPublic(renderer, posts, portfolio, tax, pageCache)
	secureCookies := !cfg.IsDev()
	r := router.New(public, cfg.ImagesDir(), secureCookies)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
