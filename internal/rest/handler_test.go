package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	"github.com/daniilsolovey/blogicum/internal/db"
	gcontext "github.com/gorilla/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceID = 1
	bobID   = 2
)

func newTestHandler(bm *mockBlogManager, csrf bool) *BlogHandler {
	if bm.users == nil {
		bm.users = map[int]*blogicum.User{
			aliceID: newTestUser(aliceID, "alice"),
			bobID:   newTestUser(bobID, "bob"),
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBlogHandler(bm, logger, Config{
		SessionSecret: "test-session-secret-0123456789abcdef",
		SessionMaxAge: 3600,
		DisableCSRF:   !csrf,
	})
}

// loginCookie returns a session cookie of the given user.
func loginCookie(t *testing.T, h *BlogHandler, userID int) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	sess, err := h.store.New(req, sessionName)
	require.NoError(t, err)
	sess.Values[sessionUserKey] = userID
	require.NoError(t, sess.Save(req, rec))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func serve(h *BlogHandler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.RegisterRoutes().ServeHTTP(rec, req)
	return rec
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func testPost(id, authorID int, title string) blogicum.Post {
	return blogicum.Post{
		Post: db.Post{
			ID:          id,
			Title:       title,
			Text:        "Some text",
			PubDate:     time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
			AuthorID:    authorID,
			IsPublished: true,
		},
		Author: *newTestUser(authorID, "alice"),
	}
}

func TestBlogHandler_Health(t *testing.T) {
	h := newTestHandler(&mockBlogManager{}, true)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestBlogHandler_Index(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		postsErr       error
		expectedStatus int
		expectedPage   int
	}{
		{name: "first page", query: "", expectedStatus: http.StatusOK, expectedPage: 1},
		{name: "second page", query: "?page=2", expectedStatus: http.StatusOK, expectedPage: 2},
		{name: "not a number", query: "?page=abc", expectedStatus: http.StatusNotFound},
		{name: "zero", query: "?page=0", expectedStatus: http.StatusNotFound},
		{name: "beyond the last page", query: "?page=9", postsErr: blogicum.ErrInvalidPage, expectedStatus: http.StatusNotFound, expectedPage: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPage int
			bm := &mockBlogManager{
				postsFunc: func(_ context.Context, page int) (*blogicum.Page, error) {
					gotPage = page
					if tt.postsErr != nil {
						return nil, tt.postsErr
					}
					return &blogicum.Page{
						Posts:    blogicum.Posts{testPost(7, aliceID, "Mountain trip")},
						Number:   page,
						NumPages: 2,
						Total:    11,
					}, nil
				},
			}
			h := newTestHandler(bm, false)

			rec := serve(h, httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedPage, gotPage)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "Mountain trip")
			}
		})
	}
}

func TestBlogHandler_TrailingSlashRedirect(t *testing.T) {
	h := newTestHandler(&mockBlogManager{}, false)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/pages/about", nil))

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/pages/about/", rec.Header().Get("Location"))
}

func TestBlogHandler_StaticPages(t *testing.T) {
	h := newTestHandler(&mockBlogManager{}, false)

	for _, path := range []string{"/pages/about/", "/pages/rules/"} {
		rec := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestBlogHandler_SessionRegistryCleared(t *testing.T) {
	h := newTestHandler(&mockBlogManager{}, false)
	gcontext.Purge(0)

	for range 20 {
		serve(h, httptest.NewRequest(http.MethodGet, "/pages/about/", nil))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(loginCookie(t, h, aliceID))
	serve(h, req)

	serve(h, postForm("/auth/login/", url.Values{"username": {"alice"}, "password": {"wrong"}}))

	assert.Equal(t, 0, gcontext.Purge(0))
}

func TestBlogHandler_CategoryPosts_NotFound(t *testing.T) {
	h := newTestHandler(&mockBlogManager{}, false)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/category/hidden/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestBlogHandler_PostDetail(t *testing.T) {
	t.Run("passes the viewer", func(t *testing.T) {
		var gotViewer int
		bm := &mockBlogManager{
			postFunc: func(_ context.Context, postID, viewerID int) (*blogicum.Post, error) {
				gotViewer = viewerID
				p := testPost(postID, aliceID, "Mountain trip")
				return &p, nil
			},
		}
		h := newTestHandler(bm, false)

		req := httptest.NewRequest(http.MethodGet, "/posts/7/", nil)
		req.AddCookie(loginCookie(t, h, bobID))
		rec := serve(h, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, bobID, gotViewer)
		assert.Contains(t, rec.Body.String(), "Mountain trip")
	})

	t.Run("hidden post", func(t *testing.T) {
		h := newTestHandler(&mockBlogManager{}, false)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/posts/7/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		h := newTestHandler(&mockBlogManager{}, false)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/posts/abc/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBlogHandler_CreatePost(t *testing.T) {
	t.Run("anonymous is sent to login", func(t *testing.T) {
		h := newTestHandler(&mockBlogManager{}, false)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/posts/create/", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/auth/login/?next=%2Fposts%2Fcreate%2F", rec.Header().Get("Location"))
	})

	t.Run("valid form", func(t *testing.T) {
		var got blogicum.PostInput
		var gotAuthor int
		bm := &mockBlogManager{
			createPostFunc: func(_ context.Context, authorID int, in blogicum.PostInput) (*blogicum.Post, error) {
				gotAuthor, got = authorID, in
				return &blogicum.Post{}, nil
			},
		}
		h := newTestHandler(bm, false)

		req := postForm("/posts/create/", url.Values{
			"title":        {"  New post "},
			"text":         {"Body"},
			"pub_date":     {"2024-01-15T10:30"},
			"category":     {"3"},
			"is_published": {"on"},
		})
		req.AddCookie(loginCookie(t, h, aliceID))
		rec := serve(h, req)

		require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
		assert.Equal(t, "/profile/alice/", rec.Header().Get("Location"))
		assert.Equal(t, aliceID, gotAuthor)
		assert.Equal(t, "New post", got.Title)
		assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), got.PubDate)
		require.NotNil(t, got.CategoryID)
		assert.Equal(t, 3, *got.CategoryID)
		assert.Nil(t, got.LocationID)
		assert.True(t, got.IsPublished)
		assert.Nil(t, got.Image)
	})

	t.Run("invalid form is shown again", func(t *testing.T) {
		called := false
		bm := &mockBlogManager{
			createPostFunc: func(context.Context, int, blogicum.PostInput) (*blogicum.Post, error) {
				called = true
				return &blogicum.Post{}, nil
			},
		}
		h := newTestHandler(bm, false)

		req := postForm("/posts/create/", url.Values{"text": {"Body"}, "pub_date": {"yesterday"}})
		req.AddCookie(loginCookie(t, h, aliceID))
		rec := serve(h, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, called)
		assert.Contains(t, rec.Body.String(), "This field is required.")
		assert.Contains(t, rec.Body.String(), "Enter a valid date/time.")
	})

	t.Run("blank title and text are required", func(t *testing.T) {
		called := false
		bm := &mockBlogManager{
			createPostFunc: func(context.Context, int, blogicum.PostInput) (*blogicum.Post, error) {
				called = true
				return &blogicum.Post{}, nil
			},
		}
		h := newTestHandler(bm, false)

		req := postForm("/posts/create/", url.Values{
			"title":    {"   "},
			"text":     {"   "},
			"pub_date": {"2024-01-15T10:30"},
			"category": {"3"},
		})
		req.AddCookie(loginCookie(t, h, aliceID))
		rec := serve(h, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, called)
		assert.Contains(t, rec.Body.String(), "This field is required.")
	})
}

func TestBlogHandler_EditPost_NotAuthor(t *testing.T) {
	bm := &mockBlogManager{
		editablePostFunc: func(context.Context, int, int) (*blogicum.Post, error) {
			return nil, blogicum.ErrForbidden
		},
	}
	h := newTestHandler(bm, false)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		req := httptest.NewRequest(method, "/posts/7/edit/", nil)
		req.AddCookie(loginCookie(t, h, bobID))
		rec := serve(h, req)

		assert.Equal(t, http.StatusFound, rec.Code, method)
		assert.Equal(t, "/posts/7/", rec.Header().Get("Location"), method)
	}

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/posts/7/delete/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts/7/", rec.Header().Get("Location"))
}

func TestBlogHandler_DeletePost(t *testing.T) {
	deleted := 0
	bm := &mockBlogManager{
		editablePostFunc: func(_ context.Context, postID, _ int) (*blogicum.Post, error) {
			p := testPost(postID, aliceID, "Mountain trip")
			return &p, nil
		},
		deletePostFunc: func(_ context.Context, postID, userID int) error {
			assert.Equal(t, aliceID, userID)
			deleted = postID
			return nil
		},
	}
	h := newTestHandler(bm, false)

	req := httptest.NewRequest(http.MethodGet, "/posts/7/delete/", nil)
	req.AddCookie(loginCookie(t, h, aliceID))
	rec := serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, deleted)

	req = httptest.NewRequest(http.MethodPost, "/posts/7/delete/", nil)
	req.AddCookie(loginCookie(t, h, aliceID))
	rec = serve(h, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/profile/alice/", rec.Header().Get("Location"))
	assert.Equal(t, 7, deleted)
}

func TestBlogHandler_Comments(t *testing.T) {
	t.Run("anonymous comment is sent to login", func(t *testing.T) {
		h := newTestHandler(&mockBlogManager{}, false)

		rec := serve(h, postForm("/posts/7/comment/", url.Values{"text": {"Hi"}}))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/auth/login/?next=%2Fposts%2F7%2Fcomment%2F", rec.Header().Get("Location"))
	})

	t.Run("add", func(t *testing.T) {
		var gotText string
		bm := &mockBlogManager{
			addCommentFunc: func(_ context.Context, postID, userID int, text string) (*blogicum.Comment, error) {
				assert.Equal(t, 7, postID)
				assert.Equal(t, bobID, userID)
				gotText = text
				return &blogicum.Comment{}, nil
			},
		}
		h := newTestHandler(bm, false)

		req := postForm("/posts/7/comment/", url.Values{"text": {"Nice trip"}})
		req.AddCookie(loginCookie(t, h, bobID))
		rec := serve(h, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/posts/7/", rec.Header().Get("Location"))
		assert.Equal(t, "Nice trip", gotText)
	})

	t.Run("empty comment goes back to the post", func(t *testing.T) {
		bm := &mockBlogManager{
			addCommentFunc: func(context.Context, int, int, string) (*blogicum.Comment, error) {
				return nil, &blogicum.ValidationError{Fields: map[string]string{"text": "This field is required."}}
			},
		}
		h := newTestHandler(bm, false)

		req := postForm("/posts/7/comment/", url.Values{"text": {""}})
		req.AddCookie(loginCookie(t, h, bobID))
		rec := serve(h, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/posts/7/", rec.Header().Get("Location"))
	})

	t.Run("editing a foreign comment is forbidden", func(t *testing.T) {
		bm := &mockBlogManager{
			editableCommentFunc: func(context.Context, int, int, int) (*blogicum.Comment, error) {
				return nil, blogicum.ErrForbidden
			},
		}
		h := newTestHandler(bm, false)

		for _, path := range []string{"/posts/7/edit_comment/3/", "/posts/7/delete_comment/3/"} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.AddCookie(loginCookie(t, h, bobID))
			rec := serve(h, req)

			assert.Equal(t, http.StatusForbidden, rec.Code, path)
		}
	})

	t.Run("edit", func(t *testing.T) {
		var gotText string
		bm := &mockBlogManager{
			editableCommentFunc: func(_ context.Context, postID, commentID, userID int) (*blogicum.Comment, error) {
				return &blogicum.Comment{Comment: db.Comment{ID: commentID, PostID: postID, AuthorID: userID, Text: "Old"}}, nil
			},
			updateCommentFunc: func(_ context.Context, _, _, _ int, text string) (*blogicum.Comment, error) {
				gotText = text
				return &blogicum.Comment{}, nil
			},
		}
		h := newTestHandler(bm, false)

		req := postForm("/posts/7/edit_comment/3/", url.Values{"text": {"New"}})
		req.AddCookie(loginCookie(t, h, bobID))
		rec := serve(h, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/posts/7/", rec.Header().Get("Location"))
		assert.Equal(t, "New", gotText)
	})
}

func TestBlogHandler_Profile(t *testing.T) {
	var gotViewer int
	bm := &mockBlogManager{
		profilePostsFunc: func(_ context.Context, username string, viewerID, page int) (*blogicum.User, *blogicum.Page, error) {
			if username != "alice" {
				return nil, nil, blogicum.ErrNotFound
			}
			gotViewer = viewerID
			return newTestUser(aliceID, "alice"), &blogicum.Page{Number: page, NumPages: 1}, nil
		},
	}
	h := newTestHandler(bm, false)

	req := httptest.NewRequest(http.MethodGet, "/profile/alice/", nil)
	req.AddCookie(loginCookie(t, h, aliceID))
	rec := serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, aliceID, gotViewer)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/profile/nobody/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogHandler_EditProfile(t *testing.T) {
	var got blogicum.ProfileInput
	bm := &mockBlogManager{
		updateProfileFunc: func(_ context.Context, userID int, in blogicum.ProfileInput) (*blogicum.User, error) {
			if in.Username == "bob" {
				return nil, &blogicum.ValidationError{Fields: map[string]string{"username": "A user with that username already exists."}}
			}
			got = in
			return newTestUser(userID, in.Username), nil
		},
	}
	h := newTestHandler(bm, false)

	req := postForm("/profile/edit/", url.Values{"username": {"alice2"}, "first_name": {"Alice"}})
	req.AddCookie(loginCookie(t, h, aliceID))
	rec := serve(h, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/profile/alice2/", rec.Header().Get("Location"))
	assert.Equal(t, "Alice", got.FirstName)

	req = postForm("/profile/edit/", url.Values{"username": {"bob"}})
	req.AddCookie(loginCookie(t, h, aliceID))
	rec = serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "A user with that username already exists.")
}

func TestBlogHandler_Login(t *testing.T) {
	bm := &mockBlogManager{
		authenticateFunc: func(_ context.Context, username, password string) (*blogicum.User, error) {
			if username == "alice" && password == "secret-password" {
				return newTestUser(aliceID, "alice"), nil
			}
			return nil, blogicum.ErrInvalidCredentials
		},
	}
	h := newTestHandler(bm, false)

	tests := []struct {
		name     string
		password string
		next     string
		location string
	}{
		{name: "local next", password: "secret-password", next: "/posts/7/", location: "/posts/7/"},
		{name: "foreign next", password: "secret-password", next: "https://example.com/", location: "/"},
		{name: "no next", password: "secret-password", location: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, postForm("/auth/login/", url.Values{
				"username": {"alice"},
				"password": {tt.password},
				"next":     {tt.next},
			}))

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))

			var session *http.Cookie
			for _, c := range rec.Result().Cookies() {
				if c.Name == sessionName {
					session = c
				}
			}
			require.NotNil(t, session)

			req := httptest.NewRequest(http.MethodGet, "/auth/password_change/", nil)
			req.AddCookie(session)
			assert.Equal(t, http.StatusOK, serve(h, req).Code)
		})
	}

	t.Run("wrong password", func(t *testing.T) {
		rec := serve(h, postForm("/auth/login/", url.Values{"username": {"alice"}, "password": {"nope"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please enter a correct username and password.")
	})
}

func TestBlogHandler_Logout(t *testing.T) {
	h := newTestHandler(&mockBlogManager{}, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout/", nil)
	req.AddCookie(loginCookie(t, h, aliceID))
	rec := serve(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
	assert.Contains(t, rec.Body.String(), "Log in again")
}

func TestBlogHandler_PasswordChange(t *testing.T) {
	var gotOld, gotNew string
	bm := &mockBlogManager{
		changePasswordFunc: func(_ context.Context, userID int, oldPassword, newPassword string) error {
			gotOld, gotNew = oldPassword, newPassword
			return nil
		},
	}
	h := newTestHandler(bm, false)

	req := postForm("/auth/password_change/", url.Values{
		"old_password":  {"secret-password"},
		"new_password1": {"brand-new-password"},
		"new_password2": {"brand-new-password"},
	})
	req.AddCookie(loginCookie(t, h, aliceID))
	rec := serve(h, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/password_change/done/", rec.Header().Get("Location"))
	assert.Equal(t, "secret-password", gotOld)
	assert.Equal(t, "brand-new-password", gotNew)
}

func TestBlogHandler_Registration(t *testing.T) {
	var got blogicum.Registration
	bm := &mockBlogManager{
		registerFunc: func(_ context.Context, in blogicum.Registration) (*blogicum.User, error) {
			got = in
			return newTestUser(3, in.Username), nil
		},
	}
	h := newTestHandler(bm, false)

	rec := serve(h, postForm("/auth/registration/", url.Values{
		"username":  {"dave"},
		"password1": {"long-enough-password"},
		"password2": {"something-else"},
	}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The two password fields didn")
	assert.Empty(t, got.Username)

	rec = serve(h, postForm("/auth/registration/", url.Values{
		"username":  {"dave"},
		"email":     {"dave@example.com"},
		"password1": {"long-enough-password"},
		"password2": {"long-enough-password"},
	}))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, blogicum.Registration{Username: "dave", Email: "dave@example.com", Password: "long-enough-password"}, got)
}

func TestBlogHandler_CSRF(t *testing.T) {
	h := newTestHandler(&mockBlogManager{}, true)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/auth/login/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="csrf"`)

	rec = serve(h, postForm("/auth/login/", url.Values{"username": {"alice"}, "password": {"secret-password"}}))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "CSRF verification failed.")
}
