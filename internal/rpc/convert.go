package rpc

import "github.com/daniilsolovey/blogicum/internal/blogicum"

func NewAuthor(u blogicum.User) Author {
	return Author{
		UserID:   u.ID,
		Username: u.Username,
		FullName: u.FullName(),
	}
}

func NewCategory(c blogicum.Category) Category {
	return Category{
		CategoryID:  c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
	}
}

func NewCategories(in blogicum.Categories) []Category {
	out := make([]Category, len(in))
	for i := range in {
		out[i] = NewCategory(in[i])
	}
	return out
}

// NewPostSummary converts a post. Unpublished locations are left out.
func NewPostSummary(p blogicum.Post) PostSummary {
	summary := PostSummary{
		PostID:       p.ID,
		Title:        p.Title,
		PubDate:      p.PubDate,
		Author:       NewAuthor(p.Author),
		ImageURL:     p.ImageURL,
		CommentCount: p.CommentCount,
	}

	if p.Category != nil {
		category := NewCategory(*p.Category)
		summary.Category = &category
	}

	if p.Location != nil && p.Location.IsPublished {
		summary.Location = &Location{
			LocationID: p.Location.ID,
			Name:       p.Location.Name,
		}
	}

	return summary
}

func NewPost(p blogicum.Post, comments blogicum.Comments) Post {
	post := Post{
		PostSummary: NewPostSummary(p),
		Text:        p.Text,
		Comments:    make([]Comment, len(comments)),
	}

	for i, c := range comments {
		post.Comments[i] = Comment{
			CommentID: c.ID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
			Author:    NewAuthor(c.Author),
		}
	}
	post.CommentCount = len(comments)

	return post
}

func NewPostPage(p *blogicum.Page) PostPage {
	page := PostPage{
		Posts:    make([]PostSummary, len(p.Posts)),
		Page:     p.Number,
		NumPages: p.NumPages,
		Total:    p.Total,
	}

	for i := range p.Posts {
		page.Posts[i] = NewPostSummary(p.Posts[i])
	}

	return page
}
