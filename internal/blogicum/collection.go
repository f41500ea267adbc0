package blogicum

import (
	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/daniilsolovey/blogicum/internal/media"
)

type (
	Posts      []Post
	Comments   []Comment
	Categories []Category
	Locations  []Location
)

func NewPosts(in []db.Post, storage media.Storage) Posts {
	out := make(Posts, len(in))
	for i := range in {
		out[i] = NewPost(&in[i], storage)
	}
	return out
}

func NewComments(in []db.Comment) Comments {
	out := make(Comments, len(in))
	for i := range in {
		out[i] = NewComment(&in[i])
	}
	return out
}

func NewCategories(in []db.Category) Categories {
	out := make(Categories, len(in))
	for i := range in {
		out[i] = NewCategory(&in[i])
	}
	return out
}

func NewLocations(in []db.Location) Locations {
	out := make(Locations, len(in))
	for i := range in {
		out[i] = NewLocation(&in[i])
	}
	return out
}

// IDs returns post ids in listing order.
func (ll Posts) IDs() []int {
	ids := make([]int, len(ll))
	for i := range ll {
		ids[i] = ll[i].ID
	}
	return ids
}
