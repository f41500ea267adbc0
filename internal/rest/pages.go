package rest

import (
	"net/http"

	"github.com/daniilsolovey/blogicum/internal/views"
	"github.com/labstack/echo/v4"
)

// About handles GET /pages/about/
func (h *BlogHandler) About(c echo.Context) error {
	return render(c, http.StatusOK, views.AboutPage(h.props(c)))
}

// Rules handles GET /pages/rules/
func (h *BlogHandler) Rules(c echo.Context) error {
	return render(c, http.StatusOK, views.RulesPage(h.props(c)))
}
