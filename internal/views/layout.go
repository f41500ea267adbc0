// Package views renders the HTML pages of the blog.
package views

import (
	"fmt"
	"time"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

const dateLayout = "2 January 2006, 15:04"

// LayoutProps is shared by every page.
type LayoutProps struct {
	Title string
	// User is nil for anonymous visitors.
	User     *blogicum.User
	CSRF     string
	Location *time.Location
	Now      time.Time
}

func (p LayoutProps) date(t time.Time) string {
	if p.Location != nil {
		t = t.In(p.Location)
	}
	return t.Format(dateLayout)
}

func (p LayoutProps) isUser(userID int) bool {
	return p.User != nil && p.User.ID == userID
}

func navbar(props LayoutProps) g.Node {
	var links []g.Node
	if props.User == nil {
		links = append(links,
			A(Href("/auth/login/"), g.Text("Log in")),
			A(Href("/auth/registration/"), g.Text("Sign up")),
		)
	} else {
		links = append(links,
			A(Href("/posts/create/"), g.Text("New post")),
			A(Href(profileURL(props.User.Username)), g.Text(props.User.Username)),
			Form(Method("post"), Action("/auth/logout/"), Class("inline"),
				csrfField(props.CSRF),
				Button(Type("submit"), Class("button clear"), g.Text("Log out")),
			),
		)
	}

	return Nav(Class("nav"),
		Div(Class("nav-left"),
			A(Class("brand"), Href("/"), g.Text("Blogicum")),
		),
		Div(Class("nav-right"),
			A(Href("/pages/about/"), g.Text("About")),
			A(Href("/pages/rules/"), g.Text("Rules")),
			g.Group(links),
		),
	)
}

func footer(props LayoutProps) g.Node {
	return Footer(Class("footer"),
		P(Small(g.Textf("© %d Blogicum", props.Now.Year()))),
	)
}

// Layout wraps page content with the document skeleton and navigation.
func Layout(props LayoutProps, children ...g.Node) g.Node {
	title := "Blogicum"
	if props.Title != "" {
		title = props.Title + " | Blogicum"
	}

	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Link(Rel("stylesheet"), Href("https://unpkg.com/chota@latest")),
				StyleEl(g.Raw(styles)),
				TitleEl(g.Text(title)),
			),
			Body(
				Div(Class("container"),
					navbar(props),
					Main(
						g.Group(children),
					),
					footer(props),
				),
			),
		),
	)
}

const styles = `
.inline { display: inline; }
.field-error { color: #d43939; font-size: 0.9em; }
.meta { color: #777; font-size: 0.9em; }
.badge { background: #f4d35e; padding: 0 0.4em; border-radius: 3px; font-size: 0.8em; }
.comment { border-left: 3px solid #ddd; padding-left: 1em; margin-bottom: 1em; }
.comment-text { white-space: pre-line; }
.post-image { max-width: 100%; }
.footer { margin-top: 3em; text-align: center; }
`

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func postURL(postID int) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func categoryURL(slug string) string {
	return "/category/" + slug + "/"
}
