package views

import (
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// FormData carries submitted values and validation messages of a form.
type FormData struct {
	Values map[string]string
	Errors map[string]string
	// NonField is shown above the fields.
	NonField string
}

func (f FormData) Value(name string) string {
	return f.Values[name]
}

func (f FormData) Error(name string) string {
	return f.Errors[name]
}

// Choice is an option of a select field.
type Choice struct {
	Value string
	Label string
}

func IDChoice(id int, label string) Choice {
	return Choice{Value: strconv.Itoa(id), Label: label}
}

func csrfField(token string) g.Node {
	return Input(Type("hidden"), Name("csrf"), Value(token))
}

func fieldError(f FormData, name string) g.Node {
	msg := f.Error(name)
	if msg == "" {
		return nil
	}
	return Div(Class("field-error"), g.Text(msg))
}

func nonFieldError(f FormData) g.Node {
	if f.NonField == "" {
		return nil
	}
	return P(Class("field-error"), g.Text(f.NonField))
}

func inputField(f FormData, name, label, typ string) g.Node {
	return Div(Class("form-field"),
		Label(For(name), g.Text(label)),
		Input(Type(typ), ID(name), Name(name), Value(f.Value(name))),
		fieldError(f, name),
	)
}

func passwordField(f FormData, name, label string) g.Node {
	return Div(Class("form-field"),
		Label(For(name), g.Text(label)),
		Input(Type("password"), ID(name), Name(name), g.Attr("autocomplete", "off")),
		fieldError(f, name),
	)
}

func textareaField(f FormData, name, label string, rows int) g.Node {
	return Div(Class("form-field"),
		Label(For(name), g.Text(label)),
		Textarea(ID(name), Name(name), g.Attr("rows", strconv.Itoa(rows)), g.Text(f.Value(name))),
		fieldError(f, name),
	)
}

func selectField(f FormData, name, label string, choices []Choice) g.Node {
	current := f.Value(name)
	options := []g.Node{Option(Value(""), g.Text("---------"))}
	for _, c := range choices {
		attrs := []g.Node{Value(c.Value), g.Text(c.Label)}
		if c.Value == current {
			attrs = append(attrs, g.Attr("selected"))
		}
		options = append(options, Option(attrs...))
	}

	return Div(Class("form-field"),
		Label(For(name), g.Text(label)),
		Select(ID(name), Name(name), g.Group(options)),
		fieldError(f, name),
	)
}

func checkboxField(f FormData, name, label string) g.Node {
	attrs := []g.Node{Type("checkbox"), ID(name), Name(name), Value("on")}
	if f.Value(name) == "on" {
		attrs = append(attrs, g.Attr("checked"))
	}

	return Div(Class("form-field"),
		Label(For(name), Input(attrs...), g.Text(" "+label)),
		fieldError(f, name),
	)
}

func submitButton(label string) g.Node {
	return Button(Type("submit"), Class("button primary"), g.Text(label))
}
