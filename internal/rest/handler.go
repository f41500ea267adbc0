package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	"github.com/daniilsolovey/blogicum/internal/views"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	g "github.com/maragudk/gomponents"
)

// BlogManager is the domain API used by the handlers.
type BlogManager interface {
	Posts(ctx context.Context, page int) (*blogicum.Page, error)
	CategoryPosts(ctx context.Context, slug string, page int) (*blogicum.Category, *blogicum.Page, error)
	ProfilePosts(ctx context.Context, username string, viewerID int, page int) (*blogicum.User, *blogicum.Page, error)
	Post(ctx context.Context, postID, viewerID int) (*blogicum.Post, error)
	Comments(ctx context.Context, postID int) (blogicum.Comments, error)
	PostChoices(ctx context.Context) (blogicum.Categories, blogicum.Locations, error)

	CreatePost(ctx context.Context, authorID int, in blogicum.PostInput) (*blogicum.Post, error)
	EditablePost(ctx context.Context, postID, userID int) (*blogicum.Post, error)
	UpdatePost(ctx context.Context, postID, userID int, in blogicum.PostInput) (*blogicum.Post, error)
	DeletePost(ctx context.Context, postID, userID int) error

	AddComment(ctx context.Context, postID, userID int, text string) (*blogicum.Comment, error)
	EditableComment(ctx context.Context, postID, commentID, userID int) (*blogicum.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID, userID int, text string) (*blogicum.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID, userID int) error

	UserByID(ctx context.Context, userID int) (*blogicum.User, error)
	UpdateProfile(ctx context.Context, userID int, in blogicum.ProfileInput) (*blogicum.User, error)
	Register(ctx context.Context, in blogicum.Registration) (*blogicum.User, error)
	Authenticate(ctx context.Context, username, password string) (*blogicum.User, error)
	ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error
}

type Config struct {
	SessionSecret string
	// SessionMaxAge is the cookie lifetime in seconds.
	SessionMaxAge int
	SecureCookie  bool
	DisableCSRF   bool
	Location      *time.Location
	// AuthRateLimit is the number of login and registration attempts allowed
	// per IP and minute; zero disables the limit.
	AuthRateLimit int
}

type BlogHandler struct {
	bm    BlogManager
	log   *slog.Logger
	store sessions.Store
	cfg   Config
	now   func() time.Time
}

func NewBlogHandler(bm BlogManager, log *slog.Logger, cfg Config) *BlogHandler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
	}

	return &BlogHandler{
		bm:    bm,
		log:   log,
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// handleError converts domain errors into HTTP errors rendered by the error handler.
func (h *BlogHandler) handleError(c echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, blogicum.ErrNotFound), errors.Is(err, blogicum.ErrInvalidPage):
		status = http.StatusNotFound
	case errors.Is(err, blogicum.ErrForbidden):
		status = http.StatusForbidden
	default:
		h.log.Error("handleError", "error", err, "method", c.Request().Method, "path", c.Request().URL.Path)
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}

	h.log.Debug("handleError", "error", err, "statusCode", status)
	return echo.NewHTTPError(status)
}

func (h *BlogHandler) props(c echo.Context) views.LayoutProps {
	return views.LayoutProps{
		User:     currentUser(c),
		CSRF:     csrfToken(c),
		Location: h.cfg.Location,
		Now:      h.now(),
	}
}

func render(c echo.Context, status int, node g.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return node.Render(c.Response())
}

// parsePage reads ?page=, defaulting to the first page.
func parsePage(c echo.Context) (int, error) {
	raw := c.QueryParam("page")
	if raw == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, blogicum.ErrInvalidPage
	}

	return page, nil
}

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, blogicum.ErrNotFound
	}
	return id, nil
}

func postPath(postID int) string {
	return "/posts/" + strconv.Itoa(postID) + "/"
}

func profilePath(username string) string {
	return "/profile/" + username + "/"
}
