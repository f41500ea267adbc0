package dbtest

import (
	"context"
	"fmt"
	"time"

	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/go-pg/pg/v10"
	"golang.org/x/crypto/bcrypt"
)

// Password is the plain password of every fixture user.
const Password = "secret-password"

// BaseTime is the moment fixtures are relative to; tests use it as "now".
var BaseTime = time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

const (
	// VisibleTotal is the number of posts visible on the index at BaseTime.
	VisibleTotal = 16
	// VisibleByAlice is the number of Alice's posts visible to others.
	VisibleByAlice = 2
	// AllByAlice is the number of Alice's posts including hidden ones.
	AllByAlice = 4
	// VisibleInTravel is the number of visible posts in the travel category.
	VisibleInTravel = 2
	// VisibleInFood is the number of visible posts in the food category.
	VisibleInFood = 14
	// fillerPosts are extra visible food posts by Bob that force a second index page.
	fillerPosts = 12
)

// Fixtures holds the rows inserted by LoadTestData.
type Fixtures struct {
	Alice, Bob, Carol db.User

	Travel, Food, Hidden db.Category
	Moscow, Nowhere      db.Location

	// Alice, travel, published yesterday, three comments.
	Published db.Post
	// Alice, food, published two days ago.
	AlicesFood db.Post
	// Bob, travel, published three days ago, one comment.
	BobsTravel db.Post
	// Bob, food, published four days ago.
	BobsFood db.Post
	// Alice, travel, isPublished=false.
	Unpublished db.Post
	// Alice, travel, pubDate in the future.
	Scheduled db.Post
	// Bob, unpublished category.
	InHiddenCategory db.Post
	// Bob, no category.
	WithoutCategory db.Post

	// Comments on Published, oldest first.
	Comments []db.Comment
}

// LoadTestData truncates all tables and inserts the fixture set.
func LoadTestData(ctx context.Context, database pg.DBI) (*Fixtures, error) {
	_, err := database.ExecContext(ctx, `
		TRUNCATE TABLE "comments", "posts", "profiles", "users", "categories", "locations" RESTART IDENTITY CASCADE;
	`)
	if err != nil {
		return nil, fmt.Errorf("truncate tables: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	f := &Fixtures{
		Alice: db.User{Username: "alice", Email: "alice@example.com", FirstName: "Alice", LastName: "Smith", PasswordHash: string(hash)},
		Bob:   db.User{Username: "bob", Email: "bob@example.com", FirstName: "Bob", LastName: "Jones", PasswordHash: string(hash)},
		Carol: db.User{Username: "carol", PasswordHash: string(hash)},

		Travel: db.Category{Title: "Travel", Description: "Trips and journeys", Slug: "travel", IsPublished: true},
		Food:   db.Category{Title: "Food", Description: "Recipes", Slug: "food", IsPublished: true},
		Hidden: db.Category{Title: "Hidden", Description: "Not ready yet", Slug: "hidden", IsPublished: false},

		Moscow:  db.Location{Name: "Moscow", IsPublished: true},
		Nowhere: db.Location{Name: "Nowhere", IsPublished: false},
	}

	for _, user := range []*db.User{&f.Alice, &f.Bob, &f.Carol} {
		if _, err := database.ModelContext(ctx, user).Insert(); err != nil {
			return nil, fmt.Errorf("insert user %q: %w", user.Username, err)
		}

		profile := db.Profile{UserID: user.ID}
		if _, err := database.ModelContext(ctx, &profile).Insert(); err != nil {
			return nil, fmt.Errorf("insert profile %q: %w", user.Username, err)
		}
	}

	for _, category := range []*db.Category{&f.Travel, &f.Food, &f.Hidden} {
		if _, err := database.ModelContext(ctx, category).Insert(); err != nil {
			return nil, fmt.Errorf("insert category %q: %w", category.Slug, err)
		}
	}

	for _, location := range []*db.Location{&f.Moscow, &f.Nowhere} {
		if _, err := database.ModelContext(ctx, location).Insert(); err != nil {
			return nil, fmt.Errorf("insert location %q: %w", location.Name, err)
		}
	}

	day := 24 * time.Hour
	f.Published = post(f.Alice.ID, &f.Travel.ID, &f.Moscow.ID, "Trip to the mountains", BaseTime.Add(-1*day), true)
	f.AlicesFood = post(f.Alice.ID, &f.Food.ID, nil, "Borscht recipe", BaseTime.Add(-2*day), true)
	f.BobsTravel = post(f.Bob.ID, &f.Travel.ID, nil, "Sea voyage", BaseTime.Add(-3*day), true)
	f.BobsFood = post(f.Bob.ID, &f.Food.ID, &f.Nowhere.ID, "Pancakes", BaseTime.Add(-4*day), true)
	f.Unpublished = post(f.Alice.ID, &f.Travel.ID, nil, "Draft notes", BaseTime.Add(-5*day), false)
	f.Scheduled = post(f.Alice.ID, &f.Travel.ID, nil, "Next week's trip", BaseTime.Add(2*day), true)
	f.InHiddenCategory = post(f.Bob.ID, &f.Hidden.ID, nil, "Secret plans", BaseTime.Add(-time.Hour), true)
	f.WithoutCategory = post(f.Bob.ID, nil, nil, "Uncategorized thoughts", BaseTime.Add(-6*day), true)

	named := []*db.Post{
		&f.Published, &f.AlicesFood, &f.BobsTravel, &f.BobsFood,
		&f.Unpublished, &f.Scheduled, &f.InHiddenCategory, &f.WithoutCategory,
	}
	for _, p := range named {
		if _, err := database.ModelContext(ctx, p).Insert(); err != nil {
			return nil, fmt.Errorf("insert post %q: %w", p.Title, err)
		}
	}

	for i := 0; i < fillerPosts; i++ {
		p := post(f.Bob.ID, &f.Food.ID, nil, fmt.Sprintf("Food note #%d", i+1), BaseTime.Add(-time.Duration(10+i)*day), true)
		if _, err := database.ModelContext(ctx, &p).Insert(); err != nil {
			return nil, fmt.Errorf("insert post %q: %w", p.Title, err)
		}
	}

	// inserted out of order to check sorting by creation time
	f.Comments = []db.Comment{
		{Text: "First!", PostID: f.Published.ID, AuthorID: f.Bob.ID, CreatedAt: BaseTime.Add(-3 * time.Hour)},
		{Text: "Nice view", PostID: f.Published.ID, AuthorID: f.Carol.ID, CreatedAt: BaseTime.Add(-2 * time.Hour)},
		{Text: "Thanks", PostID: f.Published.ID, AuthorID: f.Alice.ID, CreatedAt: BaseTime.Add(-1 * time.Hour)},
	}
	for _, i := range []int{2, 0, 1} {
		if _, err := database.ModelContext(ctx, &f.Comments[i]).Insert(); err != nil {
			return nil, fmt.Errorf("insert comment %q: %w", f.Comments[i].Text, err)
		}
	}

	bobsComment := db.Comment{Text: "Been there", PostID: f.BobsTravel.ID, AuthorID: f.Alice.ID, CreatedAt: BaseTime.Add(-2 * day)}
	if _, err := database.ModelContext(ctx, &bobsComment).Insert(); err != nil {
		return nil, fmt.Errorf("insert comment %q: %w", bobsComment.Text, err)
	}

	return f, nil
}

func post(authorID int, categoryID, locationID *int, title string, pubDate time.Time, published bool) db.Post {
	return db.Post{
		Title:       title,
		Text:        "Text of " + title,
		PubDate:     pubDate,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		LocationID:  locationID,
		IsPublished: published,
		CreatedAt:   pubDate,
	}
}
