// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	Category struct {
		ID, Title, Description, Slug, IsPublished, CreatedAt string
	}
	Comment struct {
		ID, Text, PostID, AuthorID, CreatedAt string

		Post, Author string
	}
	Location struct {
		ID, Name, IsPublished, CreatedAt string
	}
	Post struct {
		ID, Title, Text, PubDate, AuthorID, LocationID, CategoryID, Image, IsPublished, CreatedAt string

		Author, Location, Category string
	}
	Profile struct {
		ID, UserID, Bio string

		User string
	}
	User struct {
		ID, Username, Email, FirstName, LastName, PasswordHash, CreatedAt string
	}
}{
	Category: struct {
		ID, Title, Description, Slug, IsPublished, CreatedAt string
	}{
		ID:          "categoryId",
		Title:       "title",
		Description: "description",
		Slug:        "slug",
		IsPublished: "isPublished",
		CreatedAt:   "createdAt",
	},
	Comment: struct {
		ID, Text, PostID, AuthorID, CreatedAt string

		Post, Author string
	}{
		ID:        "commentId",
		Text:      "text",
		PostID:    "postId",
		AuthorID:  "authorId",
		CreatedAt: "createdAt",

		Post:   "Post",
		Author: "Author",
	},
	Location: struct {
		ID, Name, IsPublished, CreatedAt string
	}{
		ID:          "locationId",
		Name:        "name",
		IsPublished: "isPublished",
		CreatedAt:   "createdAt",
	},
	Post: struct {
		ID, Title, Text, PubDate, AuthorID, LocationID, CategoryID, Image, IsPublished, CreatedAt string

		Author, Location, Category string
	}{
		ID:          "postId",
		Title:       "title",
		Text:        "text",
		PubDate:     "pubDate",
		AuthorID:    "authorId",
		LocationID:  "locationId",
		CategoryID:  "categoryId",
		Image:       "image",
		IsPublished: "isPublished",
		CreatedAt:   "createdAt",

		Author:   "Author",
		Location: "Location",
		Category: "Category",
	},
	Profile: struct {
		ID, UserID, Bio string

		User string
	}{
		ID:     "profileId",
		UserID: "userId",
		Bio:    "bio",

		User: "User",
	},
	User: struct {
		ID, Username, Email, FirstName, LastName, PasswordHash, CreatedAt string
	}{
		ID:           "userId",
		Username:     "username",
		Email:        "email",
		FirstName:    "firstName",
		LastName:     "lastName",
		PasswordHash: "passwordHash",
		CreatedAt:    "createdAt",
	},
}

var Tables = struct {
	Category struct {
		Name, Alias string
	}
	Comment struct {
		Name, Alias string
	}
	Location struct {
		Name, Alias string
	}
	Post struct {
		Name, Alias string
	}
	Profile struct {
		Name, Alias string
	}
	User struct {
		Name, Alias string
	}
}{
	Category: struct {
		Name, Alias string
	}{
		Name:  "categories",
		Alias: "t",
	},
	Comment: struct {
		Name, Alias string
	}{
		Name:  "comments",
		Alias: "t",
	},
	Location: struct {
		Name, Alias string
	}{
		Name:  "locations",
		Alias: "t",
	},
	Post: struct {
		Name, Alias string
	}{
		Name:  "posts",
		Alias: "t",
	},
	Profile: struct {
		Name, Alias string
	}{
		Name:  "profiles",
		Alias: "t",
	},
	User: struct {
		Name, Alias string
	}{
		Name:  "users",
		Alias: "t",
	},
}

type Category struct {
	tableName struct{} `pg:"categories,alias:t,discard_unknown_columns"`

	ID          int       `pg:"categoryId,pk"`
	Title       string    `pg:"title,use_zero"`
	Description string    `pg:"description,use_zero"`
	Slug        string    `pg:"slug,use_zero"`
	IsPublished bool      `pg:"isPublished,use_zero"`
	CreatedAt   time.Time `pg:"createdAt"`
}

type Comment struct {
	tableName struct{} `pg:"comments,alias:t,discard_unknown_columns"`

	ID        int       `pg:"commentId,pk"`
	Text      string    `pg:"text,use_zero"`
	PostID    int       `pg:"postId,use_zero"`
	AuthorID  int       `pg:"authorId,use_zero"`
	CreatedAt time.Time `pg:"createdAt"`

	Post   *Post `pg:"fk:postId,rel:has-one"`
	Author *User `pg:"fk:authorId,rel:has-one"`
}

type Location struct {
	tableName struct{} `pg:"locations,alias:t,discard_unknown_columns"`

	ID          int       `pg:"locationId,pk"`
	Name        string    `pg:"name,use_zero"`
	IsPublished bool      `pg:"isPublished,use_zero"`
	CreatedAt   time.Time `pg:"createdAt"`
}

type Post struct {
	tableName struct{} `pg:"posts,alias:t,discard_unknown_columns"`

	ID          int       `pg:"postId,pk"`
	Title       string    `pg:"title,use_zero"`
	Text        string    `pg:"text,use_zero"`
	PubDate     time.Time `pg:"pubDate,use_zero"`
	AuthorID    int       `pg:"authorId,use_zero"`
	LocationID  *int      `pg:"locationId"`
	CategoryID  *int      `pg:"categoryId"`
	Image       *string   `pg:"image"`
	IsPublished bool      `pg:"isPublished,use_zero"`
	CreatedAt   time.Time `pg:"createdAt"`

	Author   *User     `pg:"fk:authorId,rel:has-one"`
	Location *Location `pg:"fk:locationId,rel:has-one"`
	Category *Category `pg:"fk:categoryId,rel:has-one"`

	CommentCount int `pg:"-"`
}

type Profile struct {
	tableName struct{} `pg:"profiles,alias:t,discard_unknown_columns"`

	ID     int    `pg:"profileId,pk"`
	UserID int    `pg:"userId,use_zero"`
	Bio    string `pg:"bio,use_zero"`

	User *User `pg:"fk:userId,rel:has-one"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID           int       `pg:"userId,pk"`
	Username     string    `pg:"username,use_zero"`
	Email        string    `pg:"email,use_zero"`
	FirstName    string    `pg:"firstName,use_zero"`
	LastName     string    `pg:"lastName,use_zero"`
	PasswordHash string    `pg:"passwordHash,use_zero"`
	CreatedAt    time.Time `pg:"createdAt"`
}
