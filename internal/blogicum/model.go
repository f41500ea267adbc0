package blogicum

import (
	"strings"
	"time"

	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/daniilsolovey/blogicum/internal/media"
)

type User struct {
	db.User
}

// FullName returns "first last" or the username when both are empty.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

type Category struct {
	db.Category
}

type Location struct {
	db.Location
}

type Post struct {
	db.Post
	Author   User
	Category *Category
	Location *Location
	ImageURL string
}

// Editable returns the form values of the post.
func (p Post) Editable() PostInput {
	return PostInput{
		Title:       p.Title,
		Text:        p.Text,
		PubDate:     p.PubDate,
		LocationID:  p.LocationID,
		CategoryID:  p.CategoryID,
		IsPublished: p.IsPublished,
	}
}

type Comment struct {
	db.Comment
	Author User
}

// Page is one page of a post listing.
type Page struct {
	Posts    Posts
	Number   int
	NumPages int
	Total    int
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

// PostInput holds the author-editable fields of a post.
type PostInput struct {
	Title       string
	Text        string
	PubDate     time.Time
	LocationID  *int
	CategoryID  *int
	IsPublished bool

	// Image replaces the current image when set.
	Image *media.Upload
	// ClearImage removes the current image.
	ClearImage bool
}

type ProfileInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

type Registration struct {
	Username string
	Email    string
	Password string
	Bio      string
}

// PostFilter narrows the public post listing.
type PostFilter struct {
	CategorySlug string
	Username     string
}
