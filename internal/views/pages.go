package views

import (
	"net/http"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func AboutPage(props LayoutProps) g.Node {
	props.Title = "About"
	return Layout(props,
		H1(g.Text("About the project")),
		P(g.Text("Blogicum is a small blogging platform: write posts, put them on the map, sort them into categories and discuss them with others.")),
	)
}

func RulesPage(props LayoutProps) g.Node {
	props.Title = "Rules"
	return Layout(props,
		H1(g.Text("Rules")),
		Ol(
			Li(g.Text("Be polite to other authors and commenters.")),
			Li(g.Text("Do not publish other people's content without permission.")),
			Li(g.Text("No spam or advertising.")),
		),
	)
}

// ErrorPage renders 403, 404 and 500 responses.
func ErrorPage(props LayoutProps, status int, message string) g.Node {
	props.Title = http.StatusText(status)

	text := message
	if text == "" {
		switch status {
		case http.StatusNotFound:
			text = "The page you are looking for does not exist."
		case http.StatusForbidden:
			text = "You do not have permission to do this."
		default:
			text = "Something went wrong. Please try again later."
		}
	}

	return Layout(props,
		H1(g.Textf("%d %s", status, http.StatusText(status))),
		P(g.Text(text)),
		P(A(Href("/"), g.Text("Back to the main page"))),
	)
}
