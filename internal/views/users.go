package views

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func LoginPage(props LayoutProps, form FormData, next string) g.Node {
	props.Title = "Log in"
	return Layout(props,
		H1(g.Text("Log in")),
		Form(Method("post"), Action("/auth/login/"),
			csrfField(props.CSRF),
			Input(Type("hidden"), Name("next"), Value(next)),
			nonFieldError(form),
			inputField(form, "username", "Username", "text"),
			passwordField(form, "password", "Password"),
			submitButton("Log in"),
		),
		P(g.Text("No account yet? "), A(Href("/auth/registration/"), g.Text("Sign up"))),
	)
}

func LoggedOutPage(props LayoutProps) g.Node {
	props.Title = "Logged out"
	return Layout(props,
		H1(g.Text("You have been logged out")),
		P(A(Href("/auth/login/"), g.Text("Log in again"))),
	)
}

func RegistrationPage(props LayoutProps, form FormData) g.Node {
	props.Title = "Sign up"
	return Layout(props,
		H1(g.Text("Sign up")),
		Form(Method("post"), Action("/auth/registration/"),
			csrfField(props.CSRF),
			nonFieldError(form),
			inputField(form, "username", "Username", "text"),
			P(Class("meta"), g.Text("Up to 150 characters. Letters, digits and @/./+/-/_ only.")),
			inputField(form, "email", "Email", "email"),
			passwordField(form, "password1", "Password"),
			passwordField(form, "password2", "Password confirmation"),
			textareaField(form, "bio", "Bio", 3),
			submitButton("Sign up"),
		),
	)
}

func PasswordChangePage(props LayoutProps, form FormData) g.Node {
	props.Title = "Change password"
	return Layout(props,
		H1(g.Text("Change password")),
		Form(Method("post"), Action("/auth/password_change/"),
			csrfField(props.CSRF),
			nonFieldError(form),
			passwordField(form, "old_password", "Old password"),
			passwordField(form, "new_password1", "New password"),
			passwordField(form, "new_password2", "New password confirmation"),
			submitButton("Change password"),
		),
	)
}

func PasswordChangeDonePage(props LayoutProps) g.Node {
	props.Title = "Password changed"
	return Layout(props,
		H1(g.Text("Your password was changed")),
		P(A(Href("/"), g.Text("Back to posts"))),
	)
}

func ProfileEditPage(props LayoutProps, form FormData) g.Node {
	props.Title = "Edit profile"
	return Layout(props,
		H1(g.Text("Edit profile")),
		Form(Method("post"), Action("/profile/edit/"),
			csrfField(props.CSRF),
			nonFieldError(form),
			inputField(form, "first_name", "First name", "text"),
			inputField(form, "last_name", "Last name", "text"),
			inputField(form, "username", "Username", "text"),
			inputField(form, "email", "Email", "email"),
			submitButton("Save"),
		),
	)
}
