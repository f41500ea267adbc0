package rpc

import (
	"time"
)

type PostsFilter struct {
	//page=1 page number (1-based)
	Page *int `json:"page,omitempty"`
	//categorySlug optional published category filter
	CategorySlug *string `json:"categorySlug,omitempty"`
	//username optional author filter
	Username *string `json:"username,omitempty"`
}

type Category struct {
	CategoryID  int    `json:"categoryId"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Location struct {
	LocationID int    `json:"locationId"`
	Name       string `json:"name"`
}

type Author struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

type PostSummary struct {
	PostID       int       `json:"postId"`
	Title        string    `json:"title"`
	PubDate      time.Time `json:"pubDate"`
	Author       Author    `json:"author"`
	Category     *Category `json:"category,omitempty"`
	Location     *Location `json:"location,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CommentCount int       `json:"commentCount"`
}

type Post struct {
	PostSummary
	Text     string    `json:"text"`
	Comments []Comment `json:"comments"`
}

type Comment struct {
	CommentID int       `json:"commentId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Author    Author    `json:"author"`
}

type PostPage struct {
	Posts    []PostSummary `json:"posts"`
	Page     int           `json:"page"`
	NumPages int           `json:"numPages"`
	Total    int           `json:"total"`
}
