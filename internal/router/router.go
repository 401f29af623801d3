// Package router sets up all HTTP routes and middleware chains for the
// public site. Every content route lives under a /{locale} prefix; the
// locale-redirect middleware sends unprefixed requests to the negotiated
// locale.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"polyblog/internal/handlers"
	"polyblog/internal/i18n"
	"polyblog/internal/middleware"
	"polyblog/web"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up. imagesDir is served at /images/ for content images
// referenced by markdown bodies.
func New(public *handlers.Public, imagesDir string, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Generous for a content site; keeps a scraper from hammering the
	// per-request file scans.
	limiter := middleware.NewRateLimiter(300, time.Minute)
	r.Use(limiter.Middleware)

	r.Use(middleware.LocaleRedirect(secureCookies))

	// Health check; bypasses locale negotiation.
	r.Get("/health", healthHandler)

	// Static assets.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(imagesDir))))

	// Locale-scoped public site.
	r.Route("/{locale}", func(r chi.Router) {
		r.Use(requireLocale(public.NotFound))

		r.Get("/", public.Home)
		r.Get("/blog", public.BlogList)
		r.Get("/blog/{slug}", public.BlogPost)
		r.Get("/portfolio", public.PortfolioList)
		r.Get("/portfolio/{slug}", public.PortfolioDetail)
		r.Get("/career", public.Career)
		r.Get("/contact", public.Contact)
	})

	r.NotFound(public.NotFound)

	return r
}

// requireLocale rejects locale segments outside the supported set with
// the 404 page. Unprefixed paths never reach here; the redirect
// middleware rewrites them first.
func requireLocale(notFound http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !i18n.IsSupported(chi.URLParam(r, "locale")) {
				notFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
