package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmkteam/zenrpc/v2"
)

// mockBlogReader is a manual stub implementation of BlogReader for testing
type mockBlogReader struct {
	filteredPostsFunc func(ctx context.Context, filter blogicum.PostFilter, page int) (*blogicum.Page, error)
	postFunc          func(ctx context.Context, postID, viewerID int) (*blogicum.Post, error)
	commentsFunc      func(ctx context.Context, postID int) (blogicum.Comments, error)
	categoriesFunc    func(ctx context.Context) (blogicum.Categories, error)
}

func (m *mockBlogReader) FilteredPosts(ctx context.Context, filter blogicum.PostFilter, page int) (*blogicum.Page, error) {
	if m.filteredPostsFunc != nil {
		return m.filteredPostsFunc(ctx, filter, page)
	}
	return &blogicum.Page{Number: page, NumPages: 1}, nil
}

func (m *mockBlogReader) Post(ctx context.Context, postID, viewerID int) (*blogicum.Post, error) {
	if m.postFunc != nil {
		return m.postFunc(ctx, postID, viewerID)
	}
	return nil, blogicum.ErrNotFound
}

func (m *mockBlogReader) Comments(ctx context.Context, postID int) (blogicum.Comments, error) {
	if m.commentsFunc != nil {
		return m.commentsFunc(ctx, postID)
	}
	return nil, nil
}

func (m *mockBlogReader) Categories(ctx context.Context) (blogicum.Categories, error) {
	if m.categoriesFunc != nil {
		return m.categoriesFunc(ctx)
	}
	return nil, nil
}

func testPost(id int) blogicum.Post {
	return blogicum.Post{
		Post: db.Post{
			ID:           id,
			Title:        "Mountain trip",
			Text:         "Text",
			PubDate:      time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
			IsPublished:  true,
			CommentCount: 2,
		},
		Author:   blogicum.User{User: db.User{ID: 1, Username: "alice", FirstName: "Alice"}},
		Category: &blogicum.Category{Category: db.Category{ID: 3, Title: "Travel", Slug: "travel", IsPublished: true}},
		Location: &blogicum.Location{Location: db.Location{ID: 4, Name: "Nowhere"}},
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func rpcCode(err error) int {
	var rpcErr *zenrpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Code
	}
	return 0
}

func TestBlogService_Posts(t *testing.T) {
	tests := []struct {
		name           string
		filter         PostsFilter
		err            error
		expectedFilter blogicum.PostFilter
		expectedPage   int
		expectedCode   int
	}{
		{
			name:         "defaults",
			expectedPage: 1,
		},
		{
			name:           "category and author",
			filter:         PostsFilter{Page: intPtr(2), CategorySlug: strPtr("travel"), Username: strPtr("alice")},
			expectedFilter: blogicum.PostFilter{CategorySlug: "travel", Username: "alice"},
			expectedPage:   2,
		},
		{
			name:           "unknown category",
			filter:         PostsFilter{CategorySlug: strPtr("hidden")},
			err:            blogicum.ErrNotFound,
			expectedFilter: blogicum.PostFilter{CategorySlug: "hidden"},
			expectedPage:   1,
			expectedCode:   404,
		},
		{
			name:         "page out of range",
			filter:       PostsFilter{Page: intPtr(40)},
			err:          blogicum.ErrInvalidPage,
			expectedPage: 40,
			expectedCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &mockBlogReader{
				filteredPostsFunc: func(_ context.Context, filter blogicum.PostFilter, page int) (*blogicum.Page, error) {
					assert.Equal(t, tt.expectedFilter, filter)
					assert.Equal(t, tt.expectedPage, page)
					if tt.err != nil {
						return nil, tt.err
					}
					return &blogicum.Page{Posts: blogicum.Posts{testPost(7)}, Number: page, NumPages: 3, Total: 21}, nil
				},
			}

			result, err := NewBlogService(reader).Posts(context.Background(), tt.filter)
			if tt.expectedCode != 0 {
				assert.Equal(t, tt.expectedCode, rpcCode(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedPage, result.Page)
			assert.Equal(t, 3, result.NumPages)
			require.Len(t, result.Posts, 1)

			post := result.Posts[0]
			assert.Equal(t, 7, post.PostID)
			assert.Equal(t, "Alice", post.Author.FullName)
			assert.Equal(t, "travel", post.Category.Slug)
			assert.Nil(t, post.Location)
			assert.Equal(t, 2, post.CommentCount)
		})
	}
}

func TestBlogService_Post(t *testing.T) {
	reader := &mockBlogReader{
		postFunc: func(_ context.Context, postID, viewerID int) (*blogicum.Post, error) {
			assert.Zero(t, viewerID)
			if postID != 7 {
				return nil, blogicum.ErrNotFound
			}
			p := testPost(postID)
			return &p, nil
		},
		commentsFunc: func(_ context.Context, postID int) (blogicum.Comments, error) {
			return blogicum.Comments{
				{Comment: db.Comment{ID: 1, PostID: postID, Text: "First"}, Author: blogicum.User{User: db.User{Username: "bob"}}},
			}, nil
		},
	}
	s := NewBlogService(reader)

	post, err := s.Post(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Text", post.Text)
	require.Len(t, post.Comments, 1)
	assert.Equal(t, "bob", post.Comments[0].Author.FullName)
	assert.Equal(t, 1, post.CommentCount)

	_, err = s.Post(context.Background(), 8)
	assert.Equal(t, 404, rpcCode(err))

	_, err = s.Post(context.Background(), 0)
	assert.Equal(t, 400, rpcCode(err))
}

func TestServer_Categories(t *testing.T) {
	reader := &mockBlogReader{
		categoriesFunc: func(context.Context) (blogicum.Categories, error) {
			return blogicum.Categories{
				{Category: db.Category{ID: 3, Title: "Travel", Slug: "travel"}},
			}, nil
		},
	}
	var logs bytes.Buffer
	srv := New(slog.New(slog.NewTextHandler(&logs, nil)), reader)

	body := `{"jsonrpc":"2.0","id":1,"method":"blog.categories","params":{}}`
	req := httptest.NewRequest(http.MethodPost, "/rpc/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result []Category `json:"result"`
		Error  *struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	require.Len(t, resp.Result, 1)
	assert.Equal(t, "travel", resp.Result[0].Slug)
	assert.Contains(t, logs.String(), "categories")
}
