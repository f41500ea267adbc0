package views

import (
	"fmt"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func commentSection(props LayoutProps, postID int, comments blogicum.Comments, form FormData) g.Node {
	var addForm g.Node
	if props.User != nil {
		addForm = Form(Method("post"), Action(postURL(postID)+"comment/"),
			csrfField(props.CSRF),
			textareaField(form, "text", "Your comment", 3),
			submitButton("Send"),
		)
	} else {
		addForm = P(
			A(Href("/auth/login/?next="+postURL(postID)), g.Text("Log in")),
			g.Text(" to leave a comment."),
		)
	}

	items := make([]g.Node, 0, len(comments))
	for i := range comments {
		items = append(items, commentItem(props, postID, &comments[i]))
	}

	return Section(ID("comments"),
		H2(g.Textf("Comments (%d)", len(comments))),
		addForm,
		g.Group(items),
	)
}

func commentItem(props LayoutProps, postID int, comment *blogicum.Comment) g.Node {
	var actions g.Node
	if props.isUser(comment.AuthorID) {
		actions = P(Class("meta"),
			A(Href(commentURL(postID, comment.ID, "edit_comment")), g.Text("Edit")),
			g.Text(" · "),
			A(Href(commentURL(postID, comment.ID, "delete_comment")), g.Text("Delete")),
		)
	}

	return Div(Class("comment"), ID(fmt.Sprintf("comment-%d", comment.ID)),
		P(Class("meta"),
			A(Href(profileURL(comment.Author.Username)), g.Text("@"+comment.Author.Username)),
			g.Text(" · "+props.date(comment.CreatedAt)),
		),
		P(Class("comment-text"), g.Text(comment.Text)),
		actions,
	)
}

func CommentEditPage(props LayoutProps, postID int, comment *blogicum.Comment, form FormData) g.Node {
	props.Title = "Edit comment"
	return Layout(props,
		H1(g.Text("Edit comment")),
		Form(Method("post"), Action(commentURL(postID, comment.ID, "edit_comment")),
			csrfField(props.CSRF),
			textareaField(form, "text", "Comment", 3),
			submitButton("Save"),
			A(Class("button outline"), Href(postURL(postID)), g.Text("Cancel")),
		),
	)
}

func CommentDeletePage(props LayoutProps, postID int, comment *blogicum.Comment) g.Node {
	props.Title = "Delete comment"
	return Layout(props,
		H1(g.Text("Delete comment")),
		Div(Class("comment"),
			P(Class("meta"), g.Text(props.date(comment.CreatedAt))),
			P(Class("comment-text"), g.Text(comment.Text)),
		),
		Form(Method("post"), Action(commentURL(postID, comment.ID, "delete_comment")),
			csrfField(props.CSRF),
			Button(Type("submit"), Class("button error"), g.Text("Delete")),
			A(Class("button outline"), Href(postURL(postID)), g.Text("Cancel")),
		),
	)
}

func commentURL(postID, commentID int, action string) string {
	return fmt.Sprintf("/posts/%d/%s/%d/", postID, action, commentID)
}
