package blogicum

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/daniilsolovey/blogicum/internal/media"
)

const imagePrefix = "posts"

type Manager struct {
	db      *db.Repository
	storage media.Storage
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Manager)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(repo *db.Repository, storage media.Storage, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		db:      repo,
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Manager) visible() db.PostSearch {
	return db.PostSearch{
		OnlyPublished: true,
		Now:           m.now(),
	}
}

// Posts returns a page of the public post listing with comment counts.
func (m *Manager) Posts(ctx context.Context, page int) (*Page, error) {
	return m.FilteredPosts(ctx, PostFilter{}, page)
}

// FilteredPosts returns a page of visible posts narrowed by category and/or author.
// Unknown or unpublished categories and unknown authors yield ErrNotFound.
func (m *Manager) FilteredPosts(ctx context.Context, filter PostFilter, page int) (*Page, error) {
	search := m.visible()
	search.WithComments = true

	if filter.CategorySlug != "" {
		category, err := m.publishedCategory(ctx, filter.CategorySlug)
		if err != nil {
			return nil, err
		}
		search.CategoryID = &category.ID
	}

	if filter.Username != "" {
		author, err := m.db.UserByUsername(ctx, filter.Username)
		if err != nil {
			return nil, fmt.Errorf("db get user: %w", err)
		} else if author == nil {
			return nil, ErrNotFound
		}
		search.AuthorID = &author.ID
	}

	return m.page(ctx, search, page)
}

// CategoryPosts returns the published category and a page of its visible posts.
func (m *Manager) CategoryPosts(ctx context.Context, slug string, page int) (*Category, *Page, error) {
	category, err := m.publishedCategory(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	search := m.visible()
	search.CategoryID = &category.ID
	search.WithComments = true

	result, err := m.page(ctx, search, page)
	if err != nil {
		return nil, nil, err
	}

	return category, result, nil
}

// ProfilePosts returns the author and a page of their posts. The author sees
// every own post, other viewers only visible ones. An empty first name is
// replaced with the username.
func (m *Manager) ProfilePosts(ctx context.Context, username string, viewerID int, page int) (*User, *Page, error) {
	author, err := m.db.UserByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("db get user: %w", err)
	} else if author == nil {
		return nil, nil, ErrNotFound
	}

	if author.FirstName == "" {
		author.FirstName = author.Username
		if err := m.db.UpdateUser(ctx, author, db.Columns.User.FirstName); err != nil {
			return nil, nil, fmt.Errorf("db backfill first name: %w", err)
		}
	}

	search := db.PostSearch{AuthorID: &author.ID, WithComments: true}
	if viewerID != author.ID {
		search = m.visible()
		search.AuthorID = &author.ID
		search.WithComments = true
	}

	result, err := m.page(ctx, search, page)
	if err != nil {
		return nil, nil, err
	}

	user := NewUser(author)
	return &user, result, nil
}

// Post returns a post for the viewer. The author always gets their own post,
// everybody else only a visible one.
func (m *Manager) Post(ctx context.Context, postID, viewerID int) (*Post, error) {
	post, err := m.db.Post(ctx, db.PostSearch{ID: &postID})
	if err != nil {
		return nil, fmt.Errorf("db get post: %w", err)
	} else if post == nil {
		return nil, ErrNotFound
	}

	if viewerID == 0 || post.AuthorID != viewerID {
		search := m.visible()
		search.ID = &postID

		post, err = m.db.Post(ctx, search)
		if err != nil {
			return nil, fmt.Errorf("db get post: %w", err)
		} else if post == nil {
			return nil, ErrNotFound
		}
	}

	result := NewPost(post, m.storage)
	return &result, nil
}

// Comments returns the comments of a post, oldest first.
func (m *Manager) Comments(ctx context.Context, postID int) (Comments, error) {
	list, err := m.db.Comments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("db get comments: %w", err)
	}

	return NewComments(list), nil
}

// PostChoices returns every category and location a post may reference.
func (m *Manager) PostChoices(ctx context.Context) (Categories, Locations, error) {
	categories, err := m.db.Categories(ctx, false)
	if err != nil {
		return nil, nil, fmt.Errorf("db get categories: %w", err)
	}

	locations, err := m.db.Locations(ctx, false)
	if err != nil {
		return nil, nil, fmt.Errorf("db get locations: %w", err)
	}

	return NewCategories(categories), NewLocations(locations), nil
}

// Categories returns the published categories.
func (m *Manager) Categories(ctx context.Context) (Categories, error) {
	list, err := m.db.Categories(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("db get categories: %w", err)
	}

	return NewCategories(list), nil
}

func (m *Manager) CreatePost(ctx context.Context, authorID int, in PostInput) (*Post, error) {
	if err := m.validatePost(ctx, in); err != nil {
		return nil, err
	}

	post := &db.Post{AuthorID: authorID}
	applyPostInput(post, in)

	if in.Image != nil {
		key, err := m.storage.Save(ctx, imagePrefix, *in.Image)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		post.Image = &key
	}

	if err := m.db.CreatePost(ctx, post); err != nil {
		if post.Image != nil {
			m.deleteImage(ctx, *post.Image)
		}
		return nil, fmt.Errorf("db create post: %w", err)
	}

	result := NewPost(post, m.storage)
	return &result, nil
}

// EditablePost returns the post when userID is its author.
func (m *Manager) EditablePost(ctx context.Context, postID, userID int) (*Post, error) {
	post, err := m.ownPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	result := NewPost(post, m.storage)
	return &result, nil
}

func (m *Manager) UpdatePost(ctx context.Context, postID, userID int, in PostInput) (*Post, error) {
	post, err := m.ownPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if err := m.validatePost(ctx, in); err != nil {
		return nil, err
	}

	oldImage := post.Image
	applyPostInput(post, in)

	switch {
	case in.Image != nil:
		key, err := m.storage.Save(ctx, imagePrefix, *in.Image)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		post.Image = &key
	case in.ClearImage:
		post.Image = nil
	}

	if err := m.db.UpdatePost(ctx, post); err != nil {
		if post.Image != nil && post.Image != oldImage {
			m.deleteImage(ctx, *post.Image)
		}
		return nil, fmt.Errorf("db update post: %w", err)
	}

	if oldImage != nil && post.Image != oldImage {
		m.deleteImage(ctx, *oldImage)
	}

	// relations were loaded for the previous references
	post.Category, post.Location = nil, nil
	result := NewPost(post, m.storage)
	return &result, nil
}

// DeletePost removes the post together with its comments and image.
func (m *Manager) DeletePost(ctx context.Context, postID, userID int) error {
	post, err := m.ownPost(ctx, postID, userID)
	if err != nil {
		return err
	}

	if err := m.db.DeletePost(ctx, post.ID); err != nil {
		return fmt.Errorf("db delete post: %w", err)
	}

	if post.Image != nil {
		m.deleteImage(ctx, *post.Image)
	}

	return nil
}

// AddComment adds a comment to any existing post.
func (m *Manager) AddComment(ctx context.Context, postID, userID int, text string) (*Comment, error) {
	post, err := m.db.Post(ctx, db.PostSearch{ID: &postID})
	if err != nil {
		return nil, fmt.Errorf("db get post: %w", err)
	} else if post == nil {
		return nil, ErrNotFound
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newValidationError("text", "This field is required.")
	}

	comment := &db.Comment{
		Text:      text,
		PostID:    post.ID,
		AuthorID:  userID,
		CreatedAt: m.now(),
	}
	if err := m.db.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("db create comment: %w", err)
	}

	result := NewComment(comment)
	return &result, nil
}

// EditableComment returns the comment when userID is its author.
func (m *Manager) EditableComment(ctx context.Context, postID, commentID, userID int) (*Comment, error) {
	comment, err := m.ownComment(ctx, postID, commentID, userID)
	if err != nil {
		return nil, err
	}

	result := NewComment(comment)
	return &result, nil
}

func (m *Manager) UpdateComment(ctx context.Context, postID, commentID, userID int, text string) (*Comment, error) {
	comment, err := m.ownComment(ctx, postID, commentID, userID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newValidationError("text", "This field is required.")
	}

	comment.Text = text
	if err := m.db.UpdateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("db update comment: %w", err)
	}

	result := NewComment(comment)
	return &result, nil
}

func (m *Manager) DeleteComment(ctx context.Context, postID, commentID, userID int) error {
	comment, err := m.ownComment(ctx, postID, commentID, userID)
	if err != nil {
		return err
	}

	if err := m.db.DeleteComment(ctx, comment.ID); err != nil {
		return fmt.Errorf("db delete comment: %w", err)
	}

	return nil
}

func (m *Manager) publishedCategory(ctx context.Context, slug string) (*Category, error) {
	category, err := m.db.CategoryBySlug(ctx, slug, true)
	if err != nil {
		return nil, fmt.Errorf("db get category: %w", err)
	} else if category == nil {
		return nil, ErrNotFound
	}

	result := NewCategory(category)
	return &result, nil
}

func (m *Manager) page(ctx context.Context, search db.PostSearch, number int) (*Page, error) {
	if number < 1 {
		return nil, ErrInvalidPage
	}

	list, total, err := m.db.Posts(ctx, search, number, db.PageSize)
	if err != nil {
		return nil, fmt.Errorf("db get posts: %w", err)
	}

	numPages := (total + db.PageSize - 1) / db.PageSize
	if numPages == 0 {
		numPages = 1
	}

	if number > numPages {
		return nil, ErrInvalidPage
	}

	return &Page{
		Posts:    NewPosts(list, m.storage),
		Number:   number,
		NumPages: numPages,
		Total:    total,
	}, nil
}

// ownPost loads a post regardless of visibility and checks its author.
func (m *Manager) ownPost(ctx context.Context, postID, userID int) (*db.Post, error) {
	post, err := m.db.Post(ctx, db.PostSearch{ID: &postID})
	if err != nil {
		return nil, fmt.Errorf("db get post: %w", err)
	} else if post == nil {
		return nil, ErrNotFound
	}

	if userID == 0 || post.AuthorID != userID {
		return nil, ErrForbidden
	}

	return post, nil
}

func (m *Manager) ownComment(ctx context.Context, postID, commentID, userID int) (*db.Comment, error) {
	comment, err := m.db.CommentByID(ctx, postID, commentID)
	if err != nil {
		return nil, fmt.Errorf("db get comment: %w", err)
	} else if comment == nil {
		return nil, ErrNotFound
	}

	if userID == 0 || comment.AuthorID != userID {
		return nil, ErrForbidden
	}

	return comment, nil
}

func (m *Manager) validatePost(ctx context.Context, in PostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return newValidationError("title", "This field is required.")
	}
	if strings.TrimSpace(in.Text) == "" {
		return newValidationError("text", "This field is required.")
	}

	if in.CategoryID != nil {
		category, err := m.db.CategoryByID(ctx, *in.CategoryID)
		if err != nil {
			return fmt.Errorf("db get category: %w", err)
		} else if category == nil {
			return newValidationError("category", "Select a valid choice.")
		}
	}

	if in.LocationID != nil {
		location, err := m.db.LocationByID(ctx, *in.LocationID)
		if err != nil {
			return fmt.Errorf("db get location: %w", err)
		} else if location == nil {
			return newValidationError("location", "Select a valid choice.")
		}
	}

	return nil
}

func (m *Manager) deleteImage(ctx context.Context, key string) {
	if err := m.storage.Delete(ctx, key); err != nil {
		m.logger.WarnContext(ctx, "failed to delete image", "key", key, "error", err)
	}
}

func applyPostInput(post *db.Post, in PostInput) {
	post.Title = in.Title
	post.Text = in.Text
	post.PubDate = in.PubDate
	post.LocationID = in.LocationID
	post.CategoryID = in.CategoryID
	post.IsPublished = in.IsPublished
}
