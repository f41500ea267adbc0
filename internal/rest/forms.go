package rest

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/daniilsolovey/blogicum/internal/blogicum"
	"github.com/daniilsolovey/blogicum/internal/views"
	"github.com/go-playground/validator/v10"
)

const pubDateLayout = "2006-01-02T15:04"

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	validate   = newValidator()
)

type PostForm struct {
	Title       string `form:"title" validate:"required,max=256"`
	Text        string `form:"text" validate:"required"`
	PubDate     string `form:"pub_date" validate:"required"`
	Location    string `form:"location" validate:"omitempty,number"`
	Category    string `form:"category" validate:"required,number"`
	IsPublished string `form:"is_published"`
	ImageClear  string `form:"image_clear"`
}

type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

type ProfileForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
}

type RegistrationForm struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
	Bio       string `form:"bio" validate:"max=500"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

type PasswordChangeForm struct {
	OldPassword  string `form:"old_password" validate:"required"`
	NewPassword1 string `form:"new_password1" validate:"required,min=8"`
	NewPassword2 string `form:"new_password2" validate:"required,eqfield=NewPassword1"`
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})

	return v
}

// cleaner trims the text fields of a form before validation.
type cleaner interface {
	clean()
}

func (f *PostForm) clean() {
	f.Title = strings.TrimSpace(f.Title)
	f.Text = strings.TrimSpace(f.Text)
	f.PubDate = strings.TrimSpace(f.PubDate)
	f.Location = strings.TrimSpace(f.Location)
	f.Category = strings.TrimSpace(f.Category)
}

func (f *CommentForm) clean() {
	f.Text = strings.TrimSpace(f.Text)
}

func (f *ProfileForm) clean() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

// passwords are kept as typed
func (f *RegistrationForm) clean() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.Bio = strings.TrimSpace(f.Bio)
}

func (f *LoginForm) clean() {
	f.Username = strings.TrimSpace(f.Username)
}

// validateForm cleans the form and returns a message per invalid field, or nil.
func validateForm(form any) map[string]string {
	if c, ok := form.(cleaner); ok {
		c.clean()
	}

	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, ok := fields[fe.Field()]; !ok {
			fields[fe.Field()] = fieldMessage(fe)
		}
	}

	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "eqfield":
		return "The two password fields didn't match."
	case "number":
		return "Select a valid choice."
	default:
		return "Enter a valid value."
	}
}

// formValues returns the submitted string fields keyed by their form names.
func formValues(form any) map[string]string {
	v := reflect.Indirect(reflect.ValueOf(form))
	t := v.Type()

	values := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("form")
		if name == "" || name == "-" || v.Field(i).Kind() != reflect.String {
			continue
		}
		values[name] = v.Field(i).String()
	}

	return values
}

func formData(form any, errs map[string]string) views.FormData {
	data := views.FormData{
		Values: formValues(form),
		Errors: errs,
	}
	if msg, ok := errs[""]; ok {
		data.NonField = msg
	}
	return data
}

// Input converts the form into a post input. Unparsable values are reported per field.
func (f PostForm) Input(loc *time.Location) (blogicum.PostInput, map[string]string) {
	errs := map[string]string{}
	in := blogicum.PostInput{
		Title:       strings.TrimSpace(f.Title),
		Text:        f.Text,
		IsPublished: f.IsPublished == "on",
		ClearImage:  f.ImageClear == "on",
	}

	pubDate, err := time.ParseInLocation(pubDateLayout, f.PubDate, loc)
	if err != nil {
		errs["pub_date"] = "Enter a valid date/time."
	}
	in.PubDate = pubDate

	if f.Category != "" {
		id, err := strconv.Atoi(f.Category)
		if err != nil {
			errs["category"] = "Select a valid choice."
		}
		in.CategoryID = &id
	}

	if f.Location != "" {
		id, err := strconv.Atoi(f.Location)
		if err != nil {
			errs["location"] = "Select a valid choice."
		}
		in.LocationID = &id
	}

	if len(errs) == 0 {
		return in, nil
	}
	return in, errs
}

// NewPostForm fills the form from an existing post.
func NewPostForm(in blogicum.PostInput, loc *time.Location) PostForm {
	f := PostForm{
		Title:   in.Title,
		Text:    in.Text,
		PubDate: in.PubDate.In(loc).Format(pubDateLayout),
	}
	if in.IsPublished {
		f.IsPublished = "on"
	}
	if in.CategoryID != nil {
		f.Category = strconv.Itoa(*in.CategoryID)
	}
	if in.LocationID != nil {
		f.Location = strconv.Itoa(*in.LocationID)
	}
	return f
}

func (f ProfileForm) Input() blogicum.ProfileInput {
	return blogicum.ProfileInput{
		Username:  f.Username,
		Email:     f.Email,
		FirstName: f.FirstName,
		LastName:  f.LastName,
	}
}

func (f RegistrationForm) Input() blogicum.Registration {
	return blogicum.Registration{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password1,
		Bio:      f.Bio,
	}
}

// mergeErrors adds the fields of b missing in a.
func mergeErrors(a, b map[string]string) map[string]string {
	if len(b) == 0 {
		return a
	}
	if a == nil {
		a = make(map[string]string, len(b))
	}
	for k, v := range b {
		if _, ok := a[k]; !ok {
			a[k] = v
		}
	}
	return a
}
