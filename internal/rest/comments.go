package rest

import (
	"errors"
	"net/http"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	"github.com/daniilsolovey/blogicum/internal/views"
	"github.com/labstack/echo/v4"
)

// AddComment handles POST /posts/:id/comment/
// An empty comment is ignored and the visitor is sent back to the post.
func (h *BlogHandler) AddComment(c echo.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	var form CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	_, err = h.bm.AddComment(c.Request().Context(), postID, currentUserID(c), form.Text)
	var vErr *blogicum.ValidationError
	if err != nil && !errors.As(err, &vErr) {
		return h.handleError(c, err)
	}

	return c.Redirect(http.StatusFound, postPath(postID))
}

// EditComment handles GET/POST /posts/:id/edit_comment/:commentId/
func (h *BlogHandler) EditComment(c echo.Context) error {
	postID, commentID, err := commentPathIDs(c)
	if err != nil {
		return h.handleError(c, err)
	}

	ctx := c.Request().Context()
	comment, err := h.bm.EditableComment(ctx, postID, commentID, currentUserID(c))
	if err != nil {
		return h.handleError(c, err)
	}

	if c.Request().Method == http.MethodGet {
		form := CommentForm{Text: comment.Text}
		return render(c, http.StatusOK, views.CommentEditPage(h.props(c), postID, comment, formData(&form, nil)))
	}

	var form CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	if errs := validateForm(&form); len(errs) > 0 {
		return render(c, http.StatusOK, views.CommentEditPage(h.props(c), postID, comment, formData(&form, errs)))
	}

	_, err = h.bm.UpdateComment(ctx, postID, commentID, currentUserID(c), form.Text)
	var vErr *blogicum.ValidationError
	if errors.As(err, &vErr) {
		return render(c, http.StatusOK, views.CommentEditPage(h.props(c), postID, comment, formData(&form, vErr.Fields)))
	} else if err != nil {
		return h.handleError(c, err)
	}

	return c.Redirect(http.StatusFound, postPath(postID))
}

// DeleteComment handles GET/POST /posts/:id/delete_comment/:commentId/
func (h *BlogHandler) DeleteComment(c echo.Context) error {
	postID, commentID, err := commentPathIDs(c)
	if err != nil {
		return h.handleError(c, err)
	}

	ctx := c.Request().Context()
	comment, err := h.bm.EditableComment(ctx, postID, commentID, currentUserID(c))
	if err != nil {
		return h.handleError(c, err)
	}

	if c.Request().Method == http.MethodGet {
		return render(c, http.StatusOK, views.CommentDeletePage(h.props(c), postID, comment))
	}

	if err := h.bm.DeleteComment(ctx, postID, commentID, currentUserID(c)); err != nil {
		return h.handleError(c, err)
	}

	return c.Redirect(http.StatusFound, postPath(postID))
}

func commentPathIDs(c echo.Context) (int, int, error) {
	postID, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}

	commentID, err := pathID(c, "commentId")
	if err != nil {
		return 0, 0, err
	}

	return postID, commentID, nil
}
