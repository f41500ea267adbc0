package rest

import (
	"context"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	"github.com/daniilsolovey/blogicum/internal/db"
)

// mockBlogManager is a manual stub of BlogManager. Unset funcs return zero values.
type mockBlogManager struct {
	postsFunc           func(ctx context.Context, page int) (*blogicum.Page, error)
	categoryPostsFunc   func(ctx context.Context, slug string, page int) (*blogicum.Category, *blogicum.Page, error)
	profilePostsFunc    func(ctx context.Context, username string, viewerID, page int) (*blogicum.User, *blogicum.Page, error)
	postFunc            func(ctx context.Context, postID, viewerID int) (*blogicum.Post, error)
	commentsFunc        func(ctx context.Context, postID int) (blogicum.Comments, error)
	postChoicesFunc     func(ctx context.Context) (blogicum.Categories, blogicum.Locations, error)
	createPostFunc      func(ctx context.Context, authorID int, in blogicum.PostInput) (*blogicum.Post, error)
	editablePostFunc    func(ctx context.Context, postID, userID int) (*blogicum.Post, error)
	updatePostFunc      func(ctx context.Context, postID, userID int, in blogicum.PostInput) (*blogicum.Post, error)
	deletePostFunc      func(ctx context.Context, postID, userID int) error
	addCommentFunc      func(ctx context.Context, postID, userID int, text string) (*blogicum.Comment, error)
	editableCommentFunc func(ctx context.Context, postID, commentID, userID int) (*blogicum.Comment, error)
	updateCommentFunc   func(ctx context.Context, postID, commentID, userID int, text string) (*blogicum.Comment, error)
	deleteCommentFunc   func(ctx context.Context, postID, commentID, userID int) error
	updateProfileFunc   func(ctx context.Context, userID int, in blogicum.ProfileInput) (*blogicum.User, error)
	registerFunc        func(ctx context.Context, in blogicum.Registration) (*blogicum.User, error)
	authenticateFunc    func(ctx context.Context, username, password string) (*blogicum.User, error)
	changePasswordFunc  func(ctx context.Context, userID int, oldPassword, newPassword string) error

	users map[int]*blogicum.User
}

func (m *mockBlogManager) Posts(ctx context.Context, page int) (*blogicum.Page, error) {
	if m.postsFunc != nil {
		return m.postsFunc(ctx, page)
	}
	return &blogicum.Page{Number: 1, NumPages: 1}, nil
}

func (m *mockBlogManager) CategoryPosts(ctx context.Context, slug string, page int) (*blogicum.Category, *blogicum.Page, error) {
	if m.categoryPostsFunc != nil {
		return m.categoryPostsFunc(ctx, slug, page)
	}
	return nil, nil, blogicum.ErrNotFound
}

func (m *mockBlogManager) ProfilePosts(ctx context.Context, username string, viewerID, page int) (*blogicum.User, *blogicum.Page, error) {
	if m.profilePostsFunc != nil {
		return m.profilePostsFunc(ctx, username, viewerID, page)
	}
	return nil, nil, blogicum.ErrNotFound
}

func (m *mockBlogManager) Post(ctx context.Context, postID, viewerID int) (*blogicum.Post, error) {
	if m.postFunc != nil {
		return m.postFunc(ctx, postID, viewerID)
	}
	return nil, blogicum.ErrNotFound
}

func (m *mockBlogManager) Comments(ctx context.Context, postID int) (blogicum.Comments, error) {
	if m.commentsFunc != nil {
		return m.commentsFunc(ctx, postID)
	}
	return nil, nil
}

func (m *mockBlogManager) PostChoices(ctx context.Context) (blogicum.Categories, blogicum.Locations, error) {
	if m.postChoicesFunc != nil {
		return m.postChoicesFunc(ctx)
	}
	return nil, nil, nil
}

func (m *mockBlogManager) CreatePost(ctx context.Context, authorID int, in blogicum.PostInput) (*blogicum.Post, error) {
	if m.createPostFunc != nil {
		return m.createPostFunc(ctx, authorID, in)
	}
	return &blogicum.Post{}, nil
}

func (m *mockBlogManager) EditablePost(ctx context.Context, postID, userID int) (*blogicum.Post, error) {
	if m.editablePostFunc != nil {
		return m.editablePostFunc(ctx, postID, userID)
	}
	return nil, blogicum.ErrNotFound
}

func (m *mockBlogManager) UpdatePost(ctx context.Context, postID, userID int, in blogicum.PostInput) (*blogicum.Post, error) {
	if m.updatePostFunc != nil {
		return m.updatePostFunc(ctx, postID, userID, in)
	}
	return &blogicum.Post{}, nil
}

func (m *mockBlogManager) DeletePost(ctx context.Context, postID, userID int) error {
	if m.deletePostFunc != nil {
		return m.deletePostFunc(ctx, postID, userID)
	}
	return nil
}

func (m *mockBlogManager) AddComment(ctx context.Context, postID, userID int, text string) (*blogicum.Comment, error) {
	if m.addCommentFunc != nil {
		return m.addCommentFunc(ctx, postID, userID, text)
	}
	return &blogicum.Comment{}, nil
}

func (m *mockBlogManager) EditableComment(ctx context.Context, postID, commentID, userID int) (*blogicum.Comment, error) {
	if m.editableCommentFunc != nil {
		return m.editableCommentFunc(ctx, postID, commentID, userID)
	}
	return nil, blogicum.ErrNotFound
}

func (m *mockBlogManager) UpdateComment(ctx context.Context, postID, commentID, userID int, text string) (*blogicum.Comment, error) {
	if m.updateCommentFunc != nil {
		return m.updateCommentFunc(ctx, postID, commentID, userID, text)
	}
	return &blogicum.Comment{}, nil
}

func (m *mockBlogManager) DeleteComment(ctx context.Context, postID, commentID, userID int) error {
	if m.deleteCommentFunc != nil {
		return m.deleteCommentFunc(ctx, postID, commentID, userID)
	}
	return nil
}

func (m *mockBlogManager) UserByID(_ context.Context, userID int) (*blogicum.User, error) {
	return m.users[userID], nil
}

func (m *mockBlogManager) UpdateProfile(ctx context.Context, userID int, in blogicum.ProfileInput) (*blogicum.User, error) {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, userID, in)
	}
	return newTestUser(userID, in.Username), nil
}

func (m *mockBlogManager) Register(ctx context.Context, in blogicum.Registration) (*blogicum.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, in)
	}
	return newTestUser(100, in.Username), nil
}

func (m *mockBlogManager) Authenticate(ctx context.Context, username, password string) (*blogicum.User, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, username, password)
	}
	return nil, blogicum.ErrInvalidCredentials
}

func (m *mockBlogManager) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	if m.changePasswordFunc != nil {
		return m.changePasswordFunc(ctx, userID, oldPassword, newPassword)
	}
	return nil
}

func newTestUser(id int, username string) *blogicum.User {
	return &blogicum.User{User: db.User{ID: id, Username: username}}
}
