package rest

import (
	"errors"
	"net/http"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	"github.com/daniilsolovey/blogicum/internal/views"
	"github.com/labstack/echo/v4"
)

const invalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

// Profile handles GET/POST /profile/:username/
func (h *BlogHandler) Profile(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return h.handleError(c, err)
	}

	user, result, err := h.bm.ProfilePosts(c.Request().Context(), c.Param("username"), currentUserID(c), page)
	if err != nil {
		return h.handleError(c, err)
	}

	return render(c, http.StatusOK, views.ProfilePage(h.props(c), user, result))
}

// EditProfile handles GET/POST /profile/edit/
func (h *BlogHandler) EditProfile(c echo.Context) error {
	user := currentUser(c)

	if c.Request().Method == http.MethodGet {
		form := ProfileForm{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Username:  user.Username,
			Email:     user.Email,
		}
		return render(c, http.StatusOK, views.ProfileEditPage(h.props(c), formData(&form, nil)))
	}

	var form ProfileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	if errs := validateForm(&form); len(errs) > 0 {
		return render(c, http.StatusOK, views.ProfileEditPage(h.props(c), formData(&form, errs)))
	}

	updated, err := h.bm.UpdateProfile(c.Request().Context(), user.ID, form.Input())
	var vErr *blogicum.ValidationError
	if errors.As(err, &vErr) {
		return render(c, http.StatusOK, views.ProfileEditPage(h.props(c), formData(&form, vErr.Fields)))
	} else if err != nil {
		return h.handleError(c, err)
	}

	return c.Redirect(http.StatusFound, profilePath(updated.Username))
}

// Login handles GET/POST /auth/login/
func (h *BlogHandler) Login(c echo.Context) error {
	if c.Request().Method == http.MethodGet {
		form := LoginForm{Next: c.QueryParam("next")}
		return render(c, http.StatusOK, views.LoginPage(h.props(c), formData(&form, nil), form.Next))
	}

	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	if errs := validateForm(&form); len(errs) > 0 {
		return render(c, http.StatusOK, views.LoginPage(h.props(c), formData(&form, errs), form.Next))
	}

	user, err := h.bm.Authenticate(c.Request().Context(), form.Username, form.Password)
	if errors.Is(err, blogicum.ErrInvalidCredentials) {
		errs := map[string]string{"": invalidLogin}
		return render(c, http.StatusOK, views.LoginPage(h.props(c), formData(&form, errs), form.Next))
	} else if err != nil {
		return h.handleError(c, err)
	}

	if err := h.startSession(c, user); err != nil {
		return h.handleError(c, err)
	}

	return c.Redirect(http.StatusFound, safeNext(form.Next))
}

// Logout handles GET/POST /auth/logout/
func (h *BlogHandler) Logout(c echo.Context) error {
	if err := h.endSession(c); err != nil {
		return h.handleError(c, err)
	}

	return render(c, http.StatusOK, views.LoggedOutPage(h.props(c)))
}

// PasswordChange handles GET/POST /auth/password_change/
func (h *BlogHandler) PasswordChange(c echo.Context) error {
	if c.Request().Method == http.MethodGet {
		return render(c, http.StatusOK, views.PasswordChangePage(h.props(c), views.FormData{}))
	}

	var form PasswordChangeForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	if errs := validateForm(&form); len(errs) > 0 {
		return render(c, http.StatusOK, views.PasswordChangePage(h.props(c), formData(&form, errs)))
	}

	err := h.bm.ChangePassword(c.Request().Context(), currentUserID(c), form.OldPassword, form.NewPassword1)
	var vErr *blogicum.ValidationError
	if errors.As(err, &vErr) {
		return render(c, http.StatusOK, views.PasswordChangePage(h.props(c), formData(&form, vErr.Fields)))
	} else if err != nil {
		return h.handleError(c, err)
	}

	return c.Redirect(http.StatusFound, "/auth/password_change/done/")
}

// PasswordChangeDone handles GET /auth/password_change/done/
func (h *BlogHandler) PasswordChangeDone(c echo.Context) error {
	return render(c, http.StatusOK, views.PasswordChangeDonePage(h.props(c)))
}

// Registration handles GET/POST /auth/registration/
func (h *BlogHandler) Registration(c echo.Context) error {
	if c.Request().Method == http.MethodGet {
		return render(c, http.StatusOK, views.RegistrationPage(h.props(c), views.FormData{}))
	}

	var form RegistrationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	if errs := validateForm(&form); len(errs) > 0 {
		return render(c, http.StatusOK, views.RegistrationPage(h.props(c), formData(&form, errs)))
	}

	_, err := h.bm.Register(c.Request().Context(), form.Input())
	var vErr *blogicum.ValidationError
	if errors.As(err, &vErr) {
		return render(c, http.StatusOK, views.RegistrationPage(h.props(c), formData(&form, vErr.Fields)))
	} else if err != nil {
		return h.handleError(c, err)
	}

	return c.Redirect(http.StatusFound, "/")
}
