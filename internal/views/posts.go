package views

import (
	"fmt"
	"strings"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

const excerptWords = 30

func IndexPage(props LayoutProps, page *blogicum.Page) g.Node {
	props.Title = "Latest posts"
	return Layout(props,
		H1(g.Text("Latest posts")),
		postList(props, page, "/"),
	)
}

func CategoryPage(props LayoutProps, category *blogicum.Category, page *blogicum.Page) g.Node {
	props.Title = category.Title
	return Layout(props,
		H1(g.Text(category.Title)),
		P(g.Text(category.Description)),
		postList(props, page, categoryURL(category.Slug)),
	)
}

func ProfilePage(props LayoutProps, user *blogicum.User, page *blogicum.Page) g.Node {
	props.Title = user.Username
	owner := props.isUser(user.ID)

	var actions []g.Node
	if owner {
		actions = append(actions,
			A(Class("button outline"), Href("/profile/edit/"), g.Text("Edit profile")),
			A(Class("button outline"), Href("/auth/password_change/"), g.Text("Change password")),
		)
	}

	return Layout(props,
		H1(g.Textf("%s profile", user.Username)),
		Ul(
			Li(g.Textf("Name: %s", user.FullName())),
			Li(g.Textf("Registered: %s", props.date(user.CreatedAt))),
		),
		g.Group(actions),
		H2(g.Text("Posts")),
		postList(props, page, profileURL(user.Username)),
	)
}

func postList(props LayoutProps, page *blogicum.Page, baseURL string) g.Node {
	if len(page.Posts) == 0 {
		return P(g.Text("No posts yet."))
	}

	cards := make([]g.Node, 0, len(page.Posts))
	for i := range page.Posts {
		cards = append(cards, postCard(props, &page.Posts[i]))
	}

	return Div(
		g.Group(cards),
		paginator(page, baseURL),
	)
}

func postCard(props LayoutProps, post *blogicum.Post) g.Node {
	return Article(Class("card"),
		H3(A(Href(postURL(post.ID)), g.Text(post.Title))),
		postMeta(props, post),
		postBadges(props, post),
		P(g.Text(excerpt(post.Text, excerptWords))),
		A(Href(postURL(post.ID)), g.Textf("Comments (%d)", post.CommentCount)),
	)
}

func postMeta(props LayoutProps, post *blogicum.Post) g.Node {
	place := "Planet Earth"
	if post.Location != nil && post.Location.IsPublished {
		place = post.Location.Name
	}

	nodes := []g.Node{
		g.Text(props.date(post.PubDate) + " · "),
		A(Href(profileURL(post.Author.Username)), g.Text("@"+post.Author.Username)),
		g.Text(" · " + place),
	}
	if post.Category != nil {
		nodes = append(nodes,
			g.Text(" · "),
			A(Href(categoryURL(post.Category.Slug)), g.Text("#"+post.Category.Title)),
		)
	}

	return P(Class("meta"), g.Group(nodes))
}

// postBadges explains to the author why a post is not visible to others.
func postBadges(props LayoutProps, post *blogicum.Post) g.Node {
	if !props.isUser(post.AuthorID) {
		return nil
	}

	var badges []g.Node
	if !post.IsPublished {
		badges = append(badges, Span(Class("badge"), g.Text("Hidden by author")))
	}
	if post.PubDate.After(props.Now) {
		badges = append(badges, Span(Class("badge"), g.Text("Scheduled")))
	}
	if post.Category == nil {
		badges = append(badges, Span(Class("badge"), g.Text("No category")))
	} else if !post.Category.IsPublished {
		badges = append(badges, Span(Class("badge"), g.Text("Category hidden")))
	}

	if len(badges) == 0 {
		return nil
	}
	return P(g.Group(badges))
}

func PostDetailPage(props LayoutProps, post *blogicum.Post, comments blogicum.Comments, form FormData) g.Node {
	props.Title = post.Title

	var ownerActions g.Node
	if props.isUser(post.AuthorID) {
		ownerActions = P(
			A(Class("button outline"), Href(postURL(post.ID)+"edit/"), g.Text("Edit")),
			A(Class("button outline"), Href(postURL(post.ID)+"delete/"), g.Text("Delete")),
		)
	}

	var image g.Node
	if post.ImageURL != "" {
		image = Img(Class("post-image"), Src(post.ImageURL), Alt(post.Title))
	}

	return Layout(props,
		Article(
			H1(g.Text(post.Title)),
			postMeta(props, post),
			postBadges(props, post),
			image,
			Div(Class("post-text"), Markdown(post.Text)),
			ownerActions,
		),
		commentSection(props, post.ID, comments, form),
	)
}

func PostFormPage(props LayoutProps, form FormData, categories, locations []Choice, post *blogicum.Post) g.Node {
	heading, action := "New post", "/posts/create/"
	if post != nil {
		heading, action = "Edit post", postURL(post.ID)+"edit/"
	}
	props.Title = heading

	var currentImage g.Node
	if post != nil && post.ImageURL != "" {
		currentImage = Div(Class("form-field"),
			P(g.Text("Current image: "), A(Href(post.ImageURL), g.Text(post.ImageURL))),
			Label(For("image_clear"),
				Input(Type("checkbox"), ID("image_clear"), Name("image_clear"), Value("on")),
				g.Text(" Remove image"),
			),
		)
	}

	return Layout(props,
		H1(g.Text(heading)),
		Form(Method("post"), Action(action), g.Attr("enctype", "multipart/form-data"),
			csrfField(props.CSRF),
			nonFieldError(form),
			inputField(form, "title", "Title", "text"),
			textareaField(form, "text", "Text (Markdown)", 5),
			inputField(form, "pub_date", "Publication date", "datetime-local"),
			selectField(form, "location", "Location", locations),
			selectField(form, "category", "Category", categories),
			checkboxField(form, "is_published", "Published"),
			currentImage,
			Div(Class("form-field"),
				Label(For("image"), g.Text("Image")),
				Input(Type("file"), ID("image"), Name("image"), g.Attr("accept", "image/*")),
				fieldError(form, "image"),
			),
			submitButton("Save"),
		),
	)
}

func PostDeletePage(props LayoutProps, post *blogicum.Post) g.Node {
	props.Title = "Delete post"
	return Layout(props,
		H1(g.Text("Delete post")),
		Article(Class("card"),
			H3(g.Text(post.Title)),
			postMeta(props, post),
			P(g.Text(excerpt(post.Text, excerptWords))),
		),
		Form(Method("post"), Action(postURL(post.ID)+"delete/"),
			csrfField(props.CSRF),
			P(g.Text("Are you sure? The post and all its comments will be deleted.")),
			Button(Type("submit"), Class("button error"), g.Text("Delete")),
			A(Class("button outline"), Href(postURL(post.ID)), g.Text("Cancel")),
		),
	)
}

func excerpt(text string, words int) string {
	fields := strings.Fields(text)
	if len(fields) <= words {
		return strings.Join(fields, " ")
	}
	return fmt.Sprintf("%s …", strings.Join(fields[:words], " "))
}
