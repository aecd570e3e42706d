package validation

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"
)

const InvalidChoice = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."

type PostForm struct {
	Text       string `form:"text" validate:"required"`
	Group      string `form:"group"`
	ClearImage bool   `form:"image-clear"`
}

// Validate trims the text and checks the form. GroupID is meaningful only when no errors are returned.
func (f *PostForm) Validate() Errors {
	f.Text = strings.TrimSpace(f.Text)
	f.Group = strings.TrimSpace(f.Group)

	errs := check(f)
	if f.Group != "" && !f.GroupID().Valid {
		errs.Add("group", InvalidChoice)
	}

	return errs
}

// GroupID is NULL when no group was chosen.
func (f *PostForm) GroupID() sql.NullInt64 {
	if f.Group == "" {
		return sql.NullInt64{}
	}
	id, err := strconv.ParseInt(f.Group, 10, 64)
	if err != nil || id <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}

type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

func (f *CommentForm) Validate() Errors {
	f.Text = strings.TrimSpace(f.Text)
	return check(f)
}

type SignupForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,username"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

func (f *SignupForm) Validate() Errors {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)

	errs := check(f)
	if f.Password1 != "" && isNumeric(f.Password1) && !errs.Has("password1") {
		errs.Add("password1", "Введённый пароль состоит только из цифр.")
	}

	return errs
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (f *LoginForm) Validate() Errors {
	f.Username = strings.TrimSpace(f.Username)
	return check(f)
}

func isNumeric(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type GroupForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=50"`
	Description string `form:"description" validate:"required"`
}

func (f *GroupForm) Validate() Errors {
	f.Title = strings.TrimSpace(f.Title)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Description = strings.TrimSpace(f.Description)

	errs := check(f)
	if f.Slug != "" && !slugPattern.MatchString(f.Slug) && !errs.Has("slug") {
		errs.Add("slug", "Значение должно состоять только из латинских букв, цифр, знаков подчеркивания или дефиса.")
	}

	return errs
}
