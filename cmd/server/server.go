package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/rahul4469/recipe-browser/internal/config"
	"github.com/rahul4469/recipe-browser/internal/controllers"
	"github.com/rahul4469/recipe-browser/internal/middleware"
	"github.com/rahul4469/recipe-browser/internal/services"
	"github.com/rahul4469/recipe-browser/internal/views"
	"github.com/rahul4469/recipe-browser/templates"
)

func run(cfg *config.Config) error {
	// Setup Services ---------------
	recipeService := services.NewRecipeService(cfg.APIs.RecipesAPIBaseURL, nil, slog.Default())

	// Setup Controllers ---------------
	homeTpl, err := views.ParseFS(templates.FS, "pages/home.gohtml")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	pagesCtrl := controllers.NewPagesController(
		recipeService,
		controllers.PagesTemplates{Home: homeTpl},
		cfg.IsDevelopment(),
	)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newRouter(cfg, pagesCtrl),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server",
			"address", srv.Addr,
			"environment", cfg.Server.Environment,
			"baseURL", cfg.Server.BaseURL,
			"recipesAPI", cfg.APIs.RecipesAPIBaseURL,
			"version", version,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// newRouter sets up middleware and routes.
func newRouter(cfg *config.Config, pagesCtrl *controllers.PagesController) http.Handler {
	csrfMw := csrf.Protect(
		[]byte(cfg.Security.CSRFSecret),
		csrf.Secure(cfg.Security.SecureCookies),
		csrf.Path("/"),
		csrf.TrustedOrigins(cfg.TrustedOrigins()),
	)
	rateLimiter := middleware.NewRateLimiter(cfg.Limits.RateLimit, cfg.Limits.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	// ---- System Routes ----
	r.Get("/health", controllers.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	// ---- Pages ----
	r.Group(func(r chi.Router) {
		r.Use(rateLimiter.Limit)
		if !cfg.Security.SecureCookies {
			r.Use(plaintextHTTP)
		}
		r.Use(csrfMw)

		r.Get("/", pagesCtrl.GetHome)
		r.Post("/search", pagesCtrl.PostSearch)
	})

	return r
}

// plaintextHTTP tells the CSRF middleware the request arrived over plain
// HTTP, which skips its HTTPS-only Referer checks in development.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
