package rest

import (
	"errors"
	"net/http"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	"github.com/daniilsolovey/blogicum/internal/media"
	"github.com/daniilsolovey/blogicum/internal/views"
	"github.com/labstack/echo/v4"
)

// Index handles GET /
func (h *BlogHandler) Index(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return h.handleError(c, err)
	}

	result, err := h.bm.Posts(c.Request().Context(), page)
	if err != nil {
		return h.handleError(c, err)
	}

	return render(c, http.StatusOK, views.IndexPage(h.props(c), result))
}

// CategoryPosts handles GET /category/:slug/
func (h *BlogHandler) CategoryPosts(c echo.Context) error {
	page, err := parsePage(c)
	if err != nil {
		return h.handleError(c, err)
	}

	category, result, err := h.bm.CategoryPosts(c.Request().Context(), c.Param("slug"), page)
	if err != nil {
		return h.handleError(c, err)
	}

	return render(c, http.StatusOK, views.CategoryPage(h.props(c), category, result))
}

// PostDetail handles GET /posts/:id/
func (h *BlogHandler) PostDetail(c echo.Context) error {
	return h.renderPostDetail(c, views.FormData{})
}

func (h *BlogHandler) renderPostDetail(c echo.Context, form views.FormData) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	ctx := c.Request().Context()
	post, err := h.bm.Post(ctx, postID, currentUserID(c))
	if err != nil {
		return h.handleError(c, err)
	}

	comments, err := h.bm.Comments(ctx, post.ID)
	if err != nil {
		return h.handleError(c, err)
	}

	return render(c, http.StatusOK, views.PostDetailPage(h.props(c), post, comments, form))
}

// CreatePost handles GET/POST /posts/create/
func (h *BlogHandler) CreatePost(c echo.Context) error {
	user := currentUser(c)

	if c.Request().Method == http.MethodGet {
		return h.renderPostForm(c, PostForm{IsPublished: "on"}, nil, nil)
	}

	var form PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	in, errs, err := h.postInput(c, form)
	if err != nil {
		return h.handleError(c, err)
	}
	if len(errs) > 0 {
		return h.renderPostForm(c, form, errs, nil)
	}

	_, err = h.bm.CreatePost(c.Request().Context(), user.ID, in)
	var vErr *blogicum.ValidationError
	if errors.As(err, &vErr) {
		return h.renderPostForm(c, form, vErr.Fields, nil)
	} else if err != nil {
		return h.handleError(c, err)
	}

	return c.Redirect(http.StatusFound, profilePath(user.Username))
}

// EditPost handles GET/POST /posts/:id/edit/
// Anybody but the author is sent back to the post.
func (h *BlogHandler) EditPost(c echo.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	ctx := c.Request().Context()
	post, err := h.bm.EditablePost(ctx, postID, currentUserID(c))
	if errors.Is(err, blogicum.ErrForbidden) {
		return c.Redirect(http.StatusFound, postPath(postID))
	} else if err != nil {
		return h.handleError(c, err)
	}

	if c.Request().Method == http.MethodGet {
		return h.renderPostForm(c, NewPostForm(post.Editable(), h.cfg.Location), nil, post)
	}

	var form PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	in, errs, err := h.postInput(c, form)
	if err != nil {
		return h.handleError(c, err)
	}
	if len(errs) > 0 {
		return h.renderPostForm(c, form, errs, post)
	}

	_, err = h.bm.UpdatePost(ctx, postID, currentUserID(c), in)
	var vErr *blogicum.ValidationError
	if errors.As(err, &vErr) {
		return h.renderPostForm(c, form, vErr.Fields, post)
	} else if errors.Is(err, blogicum.ErrForbidden) {
		return c.Redirect(http.StatusFound, postPath(postID))
	} else if err != nil {
		return h.handleError(c, err)
	}

	return c.Redirect(http.StatusFound, postPath(postID))
}

// DeletePost handles GET/POST /posts/:id/delete/
func (h *BlogHandler) DeletePost(c echo.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return h.handleError(c, err)
	}

	ctx := c.Request().Context()
	post, err := h.bm.EditablePost(ctx, postID, currentUserID(c))
	if errors.Is(err, blogicum.ErrForbidden) {
		return c.Redirect(http.StatusFound, postPath(postID))
	} else if err != nil {
		return h.handleError(c, err)
	}

	if c.Request().Method == http.MethodGet {
		return render(c, http.StatusOK, views.PostDeletePage(h.props(c), post))
	}

	if err := h.bm.DeletePost(ctx, postID, currentUserID(c)); err != nil {
		return h.handleError(c, err)
	}

	return c.Redirect(http.StatusFound, profilePath(currentUser(c).Username))
}

// postInput converts the form and the uploaded image. Field problems are
// returned as the second value.
func (h *BlogHandler) postInput(c echo.Context, form PostForm) (blogicum.PostInput, map[string]string, error) {
	errs := validateForm(&form)
	in, parseErrs := form.Input(h.cfg.Location)
	errs = mergeErrors(errs, parseErrs)

	upload, msg, err := readUpload(c)
	if err != nil {
		return in, nil, err
	}
	if msg != "" {
		errs = mergeErrors(errs, map[string]string{"image": msg})
	}
	in.Image = upload

	return in, errs, nil
}

func (h *BlogHandler) renderPostForm(c echo.Context, form PostForm, errs map[string]string, post *blogicum.Post) error {
	categories, locations, err := h.bm.PostChoices(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	categoryChoices := make([]views.Choice, len(categories))
	for i, cat := range categories {
		categoryChoices[i] = views.IDChoice(cat.ID, cat.Title)
	}

	locationChoices := make([]views.Choice, len(locations))
	for i, loc := range locations {
		locationChoices[i] = views.IDChoice(loc.ID, loc.Name)
	}

	return render(c, http.StatusOK, views.PostFormPage(h.props(c), formData(&form, errs), categoryChoices, locationChoices, post))
}

// readUpload returns the optional "image" file. Invalid files produce a field message.
func readUpload(c echo.Context) (*media.Upload, string, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, "", nil
	} else if err != nil {
		return nil, "", err
	}

	if fh.Size == 0 {
		return nil, "", nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	upload, err := media.ReadImage(f)
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return nil, "The file is too large. Upload an image up to 5 MB.", nil
	case errors.Is(err, media.ErrNotImage):
		return nil, "Upload a valid image. The file you uploaded was either not an image or a corrupted image.", nil
	case err != nil:
		return nil, "", err
	}

	return upload, "", nil
}
