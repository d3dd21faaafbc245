package cmd

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jamesedwarddillard-zz/blogful/internal/config"
	"github.com/jamesedwarddillard-zz/blogful/internal/db"
	"github.com/jamesedwarddillard-zz/blogful/internal/logging"
	"github.com/jamesedwarddillard-zz/blogful/internal/middleware"
	"github.com/jamesedwarddillard-zz/blogful/internal/routes"
	"github.com/jamesedwarddillard-zz/blogful/internal/web"
)

func RunServer(assetsFS embed.FS) {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logging.Init()
	logger := logging.Get()

	pool, err := db.NewDualPool("sqlite3", hardenDSN(cfg.DatabaseURL))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		panic(err)
	}
	defer pool.Close()

	if err := db.RunMigrations(context.Background(), pool.Write); err != nil {
		logger.Error("failed to run migrations", "error", err)
		panic(err)
	}

	queries := pool.Queries()

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(pool.Write)
	sessionManager.Lifetime = 24 * time.Hour

	mux := http.NewServeMux()
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))
	mux.Handle("GET "+routes.Metrics, promhttp.Handler())

	mux.HandleFunc("GET "+routes.Health, func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Read.PingContext(r.Context()); err != nil {
			logger.Error("health check failed: db unreachable", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		var stat syscall.Statfs_t
		wd, _ := os.Getwd()
		if err := syscall.Statfs(wd, &stat); err == nil {
			freeSpace := stat.Bavail * uint64(stat.Bsize)
			if freeSpace < 100*1024*1024 {
				logger.Error("health check failed: low disk space", "free_bytes", freeSpace)
				w.WriteHeader(http.StatusServiceUnavailable)
				fmt.Fprintf(w, "Low disk space")
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	web.RegisterRoutes(mux, web.HandlerDeps{
		DB:             pool.Write,
		Queries:        queries,
		SessionManager: sessionManager,
		Config:         cfg,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	// Logger sits inside the session middleware so wide events carry the
	// authenticated principal.
	handler := middleware.Recovery(
		limiter.Middleware(
			middleware.SecurityHeaders(cfg.Env == "prod")(
				sessionManager.LoadAndSave(
					middleware.Logger(sessionManager)(
						middleware.CSRF(mux, cfg.Env == "prod"),
					),
				),
			),
		),
	)

	compressedHandler := gzhttp.GzipHandler(handler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: compressedHandler,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("server stopping")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited properly")
}

// hardenDSN appends the pragmas every connection needs regardless of
// what the configured DSN already carries.
func hardenDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_foreign_keys=on"
	}
	return dsn + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_foreign_keys=on"
}
