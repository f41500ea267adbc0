package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/daniilsolovey/blogicum/internal/views"
	"github.com/go-chi/httprate"
	gcontext "github.com/gorilla/context"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	healthPath = "/health"
	rpcPath    = "/rpc/"
	mediaPath  = "/media/"
)

// RegisterRoutes builds the echo instance with every page of the blog.
func (h *BlogHandler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = h.httpErrorHandler

	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper:      skipNonPages,
	}))
	// sessions keep a per-request registry in gorilla/context
	e.Use(echo.WrapMiddleware(gcontext.ClearHandler))
	e.Use(h.loggingMiddleware())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("8M"))
	e.Use(h.sessionMiddleware)
	if !h.cfg.DisableCSRF {
		e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "form:csrf",
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   h.cfg.SecureCookie,
			CookieSameSite: http.SameSiteLaxMode,
			Skipper:        skipNonPages,
			ErrorHandler: func(err error, c echo.Context) error {
				return echo.NewHTTPError(http.StatusForbidden, "CSRF verification failed. Request aborted.").SetInternal(err)
			},
		}))
	}

	e.GET(healthPath, h.handleHealth)

	e.GET("/", h.Index)
	e.GET("/category/:slug/", h.CategoryPosts)
	e.GET("/pages/about/", h.About)
	e.GET("/pages/rules/", h.Rules)

	posts := e.Group("/posts")
	posts.GET("/:id/", h.PostDetail)
	posts.Match(formMethods, "/create/", h.CreatePost, requireLogin)
	posts.Match(formMethods, "/:id/edit/", h.EditPost)
	posts.Match(formMethods, "/:id/delete/", h.DeletePost)
	posts.POST("/:id/comment/", h.AddComment, requireLogin)
	posts.Match(formMethods, "/:id/edit_comment/:commentId/", h.EditComment, requireLogin)
	posts.Match(formMethods, "/:id/delete_comment/:commentId/", h.DeleteComment, requireLogin)

	e.Match(formMethods, "/profile/edit/", h.EditProfile, requireLogin)
	e.Match(formMethods, "/profile/:username/", h.Profile)

	limit := h.authRateLimit()
	auth := e.Group("/auth")
	auth.GET("/login/", h.Login)
	auth.POST("/login/", h.Login, limit...)
	auth.Match(formMethods, "/logout/", h.Logout)
	auth.Match(formMethods, "/password_change/", h.PasswordChange, requireLogin)
	auth.GET("/password_change/done/", h.PasswordChangeDone, requireLogin)
	auth.GET("/registration/", h.Registration)
	auth.POST("/registration/", h.Registration, limit...)

	return e
}

var formMethods = []string{http.MethodGet, http.MethodPost}

func skipNonPages(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == healthPath || strings.HasPrefix(p, strings.TrimSuffix(rpcPath, "/")) || strings.HasPrefix(p, mediaPath)
}

func (h *BlogHandler) authRateLimit() []echo.MiddlewareFunc {
	if h.cfg.AuthRateLimit <= 0 {
		return nil
	}
	return []echo.MiddlewareFunc{
		echo.WrapMiddleware(httprate.LimitByIP(h.cfg.AuthRateLimit, time.Minute)),
	}
}

func (h *BlogHandler) loggingMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			h.log.LogAttrs(c.Request().Context(), level, "HTTP request",
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.Int("status", v.Status),
				slog.Int64("duration_ms", v.Latency.Milliseconds()),
				slog.String("remote_addr", v.RemoteIP),
			)
			return nil
		},
	})
}

func (h *BlogHandler) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// httpErrorHandler renders 403, 404 and 500 pages.
func (h *BlogHandler) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := ""

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if msg, ok := he.Message.(string); ok && msg != http.StatusText(status) && status < http.StatusInternalServerError {
			message = msg
		}
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "error", err, "path", c.Request().URL.Path)
	}

	if strings.HasPrefix(c.Request().URL.Path, strings.TrimSuffix(rpcPath, "/")) || c.Request().URL.Path == healthPath {
		if err := c.JSON(status, map[string]string{"error": http.StatusText(status)}); err != nil {
			h.log.Error("failed to write error response", "error", err)
		}
		return
	}

	if c.Request().Method == http.MethodHead {
		if err := c.NoContent(status); err != nil {
			h.log.Error("failed to write error response", "error", err)
		}
		return
	}

	if err := render(c, status, views.ErrorPage(h.props(c), status, message)); err != nil {
		h.log.Error("failed to render error page", "error", err)
	}
}
