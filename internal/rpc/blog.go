package rpc

import (
	"context"
	"errors"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	"github.com/vmkteam/zenrpc/v2"
)

//go:generate zenrpc

// BlogReader is the read-only part of the blog used by RPC.
type BlogReader interface {
	FilteredPosts(ctx context.Context, filter blogicum.PostFilter, page int) (*blogicum.Page, error)
	Post(ctx context.Context, postID, viewerID int) (*blogicum.Post, error)
	Comments(ctx context.Context, postID int) (blogicum.Comments, error)
	Categories(ctx context.Context) (blogicum.Categories, error)
}

// BlogService provides RPC methods for reading the blog anonymously.
type BlogService struct {
	zenrpc.Service
	reader BlogReader
}

func NewBlogService(reader BlogReader) *BlogService {
	return &BlogService{reader: reader}
}

// Posts returns a page of published posts, newest first, optionally narrowed
// by category slug and author username.
//
//zenrpc:filter posts filter
//zenrpc:return page of post summaries
//zenrpc:400 invalid page
//zenrpc:404 category or author not found
//zenrpc:500 internal server error
func (s *BlogService) Posts(ctx context.Context, filter PostsFilter) (*PostPage, error) {
	page := 1
	if filter.Page != nil {
		page = *filter.Page
	}

	var f blogicum.PostFilter
	if filter.CategorySlug != nil {
		f.CategorySlug = *filter.CategorySlug
	}
	if filter.Username != nil {
		f.Username = *filter.Username
	}

	result, err := s.reader.FilteredPosts(ctx, f, page)
	if err != nil {
		return nil, newError(err)
	}

	postPage := NewPostPage(result)
	return &postPage, nil
}

// Post returns a published post with its comments.
//
//zenrpc:id post numeric ID
//zenrpc:return post with text and comments
//zenrpc:400 id must be positive
//zenrpc:404 post not found
//zenrpc:500 internal server error
func (s *BlogService) Post(ctx context.Context, id int) (*Post, error) {
	if id <= 0 {
		return nil, zenrpc.NewStringError(400, "id must be positive")
	}

	post, err := s.reader.Post(ctx, id, 0)
	if err != nil {
		return nil, newError(err)
	}

	comments, err := s.reader.Comments(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	result := NewPost(*post, comments)
	return &result, nil
}

// Categories returns published categories ordered by title.
//
//zenrpc:return list of categories
//zenrpc:500 internal server error
func (s *BlogService) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.reader.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return NewCategories(categories), nil
}

// newError maps domain errors to RPC errors.
func newError(err error) error {
	switch {
	case errors.Is(err, blogicum.ErrNotFound):
		return zenrpc.NewStringError(404, "not found")
	case errors.Is(err, blogicum.ErrInvalidPage):
		return zenrpc.NewStringError(400, "invalid page")
	default:
		return err
	}
}
