package blogicum

import (
	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/daniilsolovey/blogicum/internal/media"
)

func NewUser(u *db.User) User {
	return User{User: *u}
}

func NewCategory(c *db.Category) Category {
	return Category{Category: *c}
}

func NewLocation(l *db.Location) Location {
	return Location{Location: *l}
}

func NewPost(p *db.Post, storage media.Storage) Post {
	post := Post{Post: *p}
	post.Post.Author, post.Post.Category, post.Post.Location = nil, nil, nil

	if p.Author != nil {
		post.Author = NewUser(p.Author)
	}

	if p.Category != nil {
		category := NewCategory(p.Category)
		post.Category = &category
	}

	if p.Location != nil {
		location := NewLocation(p.Location)
		post.Location = &location
	}

	if p.Image != nil && storage != nil {
		post.ImageURL = storage.URL(*p.Image)
	}

	return post
}

func NewComment(c *db.Comment) Comment {
	comment := Comment{Comment: *c}
	comment.Comment.Author, comment.Comment.Post = nil, nil

	if c.Author != nil {
		comment.Author = NewUser(c.Author)
	}

	return comment
}
