package db

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/go-pg/urlstruct"
)

// PageSize is the number of posts on a single listing page.
const PageSize = 10

// PostSearch describes which posts a listing or a lookup may return.
type PostSearch struct {
	ID         *int
	AuthorID   *int
	CategoryID *int

	// OnlyPublished keeps posts that are published, have pubDate <= Now
	// and belong to a published category.
	OnlyPublished bool
	// WithComments fills Post.CommentCount.
	WithComments bool

	Now time.Time
}

// PostsQuery builds the query for posts matching the search, newest first.
// Author, category and location are joined.
func (r *Repository) PostsQuery(ctx context.Context, posts *[]Post, search PostSearch) *orm.Query {
	query := r.db.ModelContext(ctx, posts).
		Relation(Columns.Post.Author).
		Relation(Columns.Post.Category).
		Relation(Columns.Post.Location)

	if search.OnlyPublished {
		now := search.Now
		if now.IsZero() {
			now = time.Now()
		}

		query = query.
			Where(`"t"."isPublished" = TRUE`).
			Where(`"t"."pubDate" <= ?`, now).
			Where(`"category"."isPublished" = TRUE`)
	}

	if search.ID != nil {
		query = query.Where(`"t"."postId" = ?`, *search.ID)
	}

	if search.AuthorID != nil {
		query = query.Where(`"t"."authorId" = ?`, *search.AuthorID)
	}

	if search.CategoryID != nil {
		query = query.Where(`"t"."categoryId" = ?`, *search.CategoryID)
	}

	return query.
		OrderExpr(`"t"."pubDate" DESC`).
		OrderExpr(`"t"."postId" DESC`)
}

// Posts returns one page of posts matching the search together with the total
// number of matching posts.
func (r *Repository) Posts(ctx context.Context, search PostSearch, page, pageSize int) ([]Post, int, error) {
	if page < 1 || pageSize < 1 {
		return nil, 0, fmt.Errorf(
			"page or pageSize must be greater than 0: page=%d, pageSize=%d",
			page, pageSize,
		)
	}

	pager := urlstruct.Pager{Limit: pageSize}
	pager.SetPage(page)

	var posts []Post
	count, err := r.PostsQuery(ctx, &posts, search).
		Limit(pager.GetLimit()).
		Offset(pager.GetOffset()).
		SelectAndCount()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}

	if search.WithComments {
		if err := r.attachCommentCounts(ctx, posts); err != nil {
			return nil, 0, err
		}
	}

	return posts, count, nil
}

// Post returns the first post matching the search or nil when nothing matches.
func (r *Repository) Post(ctx context.Context, search PostSearch) (*Post, error) {
	var posts []Post
	err := r.PostsQuery(ctx, &posts, search).
		Limit(1).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if len(posts) == 0 {
		return nil, nil
	}

	if search.WithComments {
		if err := r.attachCommentCounts(ctx, posts); err != nil {
			return nil, err
		}
	}

	return &posts[0], nil
}

func (r *Repository) CreatePost(ctx context.Context, post *Post) error {
	if _, err := r.db.ModelContext(ctx, post).Insert(); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// UpdatePost stores every user-editable column of the post. Author and
// creation time are never changed.
func (r *Repository) UpdatePost(ctx context.Context, post *Post) error {
	_, err := r.db.ModelContext(ctx, post).
		Column(
			Columns.Post.Title,
			Columns.Post.Text,
			Columns.Post.PubDate,
			Columns.Post.LocationID,
			Columns.Post.CategoryID,
			Columns.Post.Image,
			Columns.Post.IsPublished,
		).
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

func (r *Repository) DeletePost(ctx context.Context, postID int) error {
	_, err := r.db.ModelContext(ctx, &Post{ID: postID}).
		WherePK().
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

type commentCount struct {
	PostID int `pg:"postId"`
	Count  int `pg:"count"`
}

func (r *Repository) attachCommentCounts(ctx context.Context, posts []Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]int, len(posts))
	for i := range posts {
		postIDs[i] = posts[i].ID
	}

	var counts []commentCount
	_, err := r.db.QueryContext(ctx, &counts, `
		SELECT "postId", count(*) AS "count"
		FROM "comments"
		WHERE "postId" IN (?)
		GROUP BY "postId"`, pg.In(postIDs))
	if err != nil {
		return fmt.Errorf("failed to count comments: %w", err)
	}

	countByPostID := make(map[int]int, len(counts))
	for _, c := range counts {
		countByPostID[c.PostID] = c.Count
	}

	for i := range posts {
		posts[i].CommentCount = countByPostID[posts[i].ID]
	}

	return nil
}
