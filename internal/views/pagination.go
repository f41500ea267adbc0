package views

import (
	"strconv"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func paginator(page *blogicum.Page, baseURL string) g.Node {
	if page.NumPages <= 1 {
		return nil
	}

	var prev, next g.Node
	if page.HasPrevious() {
		prev = g.Group([]g.Node{
			A(Href(baseURL+"?page=1"), g.Text("« first")),
			g.Text(" "),
			A(Href(baseURL+"?page="+strconv.Itoa(page.Number-1)), g.Text("previous")),
		})
	}
	if page.HasNext() {
		next = g.Group([]g.Node{
			A(Href(baseURL+"?page="+strconv.Itoa(page.Number+1)), g.Text("next")),
			g.Text(" "),
			A(Href(baseURL+"?page="+strconv.Itoa(page.NumPages)), g.Text("last »")),
		})
	}

	return Nav(Class("pagination"),
		prev,
		Span(Class("current"), g.Textf(" Page %d of %d ", page.Number, page.NumPages)),
		next,
	)
}
