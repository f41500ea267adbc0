package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/joho/godotenv"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/blogicum/config"
	"github.com/daniilsolovey/blogicum/internal/app"
	"github.com/daniilsolovey/blogicum/internal/db"
)

var (
	flConfig  = flag.String("config", "config.toml", "path to TOML configuration file (CONFIG)")
	flDebug   = flag.Bool("debug", false, "enable debug mode (DEBUG)")
	flMigrate = flag.Bool("migrate", false, "apply pending migrations before start (MIGRATE)")
	lg        *slog.Logger
)

func main() {
	// .env is optional; real environment variables take precedence.
	envErr := godotenv.Load()

	flag.Parse()

	lg = newLogger(*flDebug)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		lg.Warn("failed to load .env", "error", envErr)
	}

	cfg, err := config.Load(*flConfig)
	exitOnError(err)

	ctx := context.Background()

	if *flMigrate {
		exitOnError(db.RunMigrations(ctx, cfg.DatabaseURL()))
		lg.Info("migrations applied")
	}

	dbc := pg.Connect(&cfg.Database)
	if cfg.App.LogQueries {
		dbc.AddQueryHook(db.NewQueryHook(lg))
	}
	if err := dbc.Ping(ctx); err != nil {
		dbc.Close()
		exitOnError(err)
	}

	storage, err := app.NewStorage(ctx, cfg)
	exitOnError(err)

	service, err := app.New(cfg, dbc, storage, lg)
	exitOnError(err)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
