package rest

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	sessionName    = "blogicum_session"
	sessionUserKey = "userID"
	contextUserKey = "user"
	loginPath      = "/auth/login/"
)

// sessionMiddleware loads the logged-in user into the request context.
func (h *BlogHandler) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// a cookie that fails to decode yields a fresh session
		sess, _ := h.store.Get(c.Request(), sessionName)

		if userID, ok := sess.Values[sessionUserKey].(int); ok && userID > 0 {
			user, err := h.bm.UserByID(c.Request().Context(), userID)
			if err != nil {
				return h.handleError(c, err)
			}
			if user != nil {
				c.Set(contextUserKey, user)
			}
		}

		return next(c)
	}
}

// requireLogin redirects anonymous visitors to the login page.
func requireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if currentUser(c) == nil {
			target := loginPath + "?next=" + url.QueryEscape(c.Request().URL.RequestURI())
			return c.Redirect(http.StatusFound, target)
		}
		return next(c)
	}
}

func currentUser(c echo.Context) *blogicum.User {
	user, _ := c.Get(contextUserKey).(*blogicum.User)
	return user
}

func currentUserID(c echo.Context) int {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return 0
}

func csrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}

func (h *BlogHandler) startSession(c echo.Context, user *blogicum.User) error {
	sess, _ := h.store.Get(c.Request(), sessionName)
	sess.Values[sessionUserKey] = user.ID
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}

	c.Set(contextUserKey, user)
	return nil
}

func (h *BlogHandler) endSession(c echo.Context) error {
	sess, _ := h.store.Get(c.Request(), sessionName)
	delete(sess.Values, sessionUserKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}

	c.Set(contextUserKey, nil)
	return nil
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
