package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/crucial707/daily-habits/internal/config"
	"github.com/crucial707/daily-habits/internal/handlers"
	"github.com/crucial707/daily-habits/internal/middleware"
	"github.com/crucial707/daily-habits/internal/repo"
	"github.com/crucial707/daily-habits/internal/scheduler"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	// Load configuration
	cfg := config.Load()

	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		log.Fatal("JWT_SECRET must be set in prod")
	}

	setupLogger(cfg.LogFormat)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data dir: %v", err)
	}

	users := repo.NewUserRepo(filepath.Join(cfg.DataDir, "users.json"))
	habits := repo.NewHabitRepo(cfg.DataDir)

	// Periodic data backups
	if cfg.BackupCron != "" {
		if _, err := scheduler.Run(cfg.DataDir, cfg.BackupDir, cfg.BackupCron); err != nil {
			log.Fatalf("Failed to start backup scheduler: %v", err)
		}
	}

	r := newRouter(cfg, users, habits)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		log.Println("Starting server with TLS on " + addr)
		if err := http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r); err != nil {
			log.Fatal(err)
		}
		return
	}

	log.Println("Starting server on " + addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}

// newRouter builds the full API router. Tests call it directly against a
// temp data directory.
func newRouter(cfg config.Config, users *repo.UserRepo, habits *repo.HabitRepo) chi.Router {
	secret := []byte(cfg.JWTSecret)

	authHandler := &handlers.AuthHandler{Users: users, Secret: secret, ExpireHours: cfg.JWTExpireHours}
	habitHandler := &handlers.HabitHandler{Repo: habits}
	profileHandler := &handlers.ProfileHandler{Users: users}

	hsts := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders(hsts))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Prometheus)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public auth routes, rate limited per IP
	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
	})

	// Protected API
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.JWTMiddleware(secret))
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

		r.Get("/habits", habitHandler.ListHabits)
		r.Post("/habits", habitHandler.CreateHabit)
		r.Put("/habits/{id}", habitHandler.UpdateHabit)
		r.Post("/habits/{id}/toggle", habitHandler.ToggleDate)
		r.Delete("/habits/{id}", habitHandler.DeleteHabit)

		r.Get("/badges", habitHandler.GetBadges)

		r.Get("/profile", profileHandler.GetProfile)
		r.Post("/profile/theme", profileHandler.ToggleTheme)
	})

	return r
}

func setupLogger(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}
