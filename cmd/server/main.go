package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Simplici0/toolcost/internal/catalog"
	"github.com/Simplici0/toolcost/internal/config"
	"github.com/Simplici0/toolcost/internal/consumption"
	"github.com/Simplici0/toolcost/internal/db"
	"github.com/Simplici0/toolcost/internal/logging"
	"github.com/Simplici0/toolcost/internal/migrations"
	"github.com/Simplici0/toolcost/internal/seed"
	"github.com/Simplici0/toolcost/internal/session"
	"github.com/Simplici0/toolcost/internal/share"
	"github.com/Simplici0/toolcost/web"
)

const sweepInterval = time.Minute

// presetSource is the read side of the preset catalog.
type presetSource interface {
	List(ctx context.Context) ([]catalog.Preset, error)
	Get(ctx context.Context, slug string) (catalog.Preset, error)
}

type server struct {
	sessions *session.Store
	presets  presetSource
	cookies  *cookieSigner

	annual   consumption.AnnualParams
	defaults consumption.Basis

	publicHost string
	port       string
	addrs      share.AddrsFunc
}

func newServer(cfg config.Config, presets presetSource) *server {
	return &server{
		sessions:   session.NewStore(cfg.SessionTTL, cfg.DefaultBasis()),
		presets:    presets,
		cookies:    newCookieSigner(cfg.SessionSecret),
		annual:     cfg.AnnualParams(),
		defaults:   cfg.DefaultBasis(),
		publicHost: cfg.PublicHost,
		port:       cfg.Port,
		addrs:      net.InterfaceAddrs,
	}
}

func main() {
	cfg := config.Load()
	logger := logging.Setup(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	cfg.LogWarnings(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			os.Exit(1)
		}
	}
	if version, err := migrations.Version(database); err == nil {
		slog.Info("database ready", "path", cfg.DBPath, "schema_version", version)
	}

	stats, err := seed.Run(database, seed.Defaults)
	if err != nil {
		slog.Error("failed to seed tool presets", "error", err)
		os.Exit(1)
	}
	slog.Info("tool presets seeded", "inserted", stats.Inserts)

	srv := newServer(cfg, catalog.New(database))
	go srv.sessions.RunSweeper(ctx, sweepInterval)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("listening", "address", httpServer.Addr, "env", cfg.Env)
	if err := httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			slog.Info("server stopped gracefully")
			return
		}
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Handle("/static/*", http.FileServer(http.FS(web.FS)))
	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/evaluate", s.handleAPIEvaluate)
	r.Get("/share", s.handleShare)
	r.Get("/share/qr.png", s.handleShareQRCode)

	r.Group(func(r chi.Router) {
		r.Use(s.sessionMiddleware)
		r.Get("/", s.handleHome)
		r.Post("/basis", s.handleBasis)
		r.Post("/tools", s.handleToolCreate)
		r.Post("/tools/clear", s.handleToolsClear)
		r.Post("/tools/{id}/delete", s.handleToolDelete)
		r.Post("/presets/{slug}", s.handlePresetAdd)
		r.Post("/compare", s.handleCompare)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
