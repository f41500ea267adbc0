package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/daniilsolovey/blogicum/config"
	"github.com/daniilsolovey/blogicum/internal/blogicum"
	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/daniilsolovey/blogicum/internal/media"
	"github.com/daniilsolovey/blogicum/internal/rest"
	"github.com/daniilsolovey/blogicum/internal/rpc"
	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"
)

type App struct {
	DB      *db.Repository
	Logger  *slog.Logger
	Echo    *echo.Echo
	Storage media.Storage
	Config  *config.Config
}

func New(cfg *config.Config, dbConnect *pg.DB, storage media.Storage, logger *slog.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	database := db.New(dbConnect)
	manager := blogicum.NewManager(database, storage, logger)

	handler := rest.NewBlogHandler(manager, logger, rest.Config{
		SessionSecret: cfg.Session.Secret,
		SessionMaxAge: cfg.Session.MaxAge,
		SecureCookie:  cfg.Session.Secure,
		Location:      loc,
		AuthRateLimit: cfg.AuthRateLimit,
	})

	e := handler.RegisterRoutes()
	e.Any("/rpc/", echo.WrapHandler(rpc.New(logger, manager)))

	if fs, ok := storage.(*media.FileStorage); ok {
		e.Static(strings.TrimSuffix(cfg.Media.URLPrefix, "/"), fs.Dir())
	}

	return &App{
		DB:      database,
		Logger:  logger,
		Echo:    e,
		Storage: storage,
		Config:  cfg,
	}, nil
}

// NewStorage creates the media storage selected by the config.
func NewStorage(ctx context.Context, cfg *config.Config) (media.Storage, error) {
	switch cfg.Media.Driver {
	case config.MediaDriverFile:
		return media.NewFileStorage(cfg.Media.Dir, cfg.Media.URLPrefix), nil
	case config.MediaDriverS3:
		return media.NewS3Storage(ctx, cfg.Media.S3)
	default:
		return nil, fmt.Errorf("unknown media driver %q", cfg.Media.Driver)
	}
}

func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort(a.Config.App.Host, strconv.Itoa(a.Config.App.Port))
	a.Logger.InfoContext(ctx, "starting server", "addr", addr)
	return a.Echo.Start(addr)
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	if err != nil {
		return err
	}

	return a.DB.Close()
}
