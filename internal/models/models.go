package models

import (
	"database/sql"
	"time"
	"unicode/utf8"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// FullName falls back to the username when no name was given at signup.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

type Group struct {
	GroupID     int64  `json:"groupId" db:"group_id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

type Post struct {
	PostID    int64          `json:"postId" db:"post_id"`
	Text      string         `json:"text" db:"text"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	AuthorID  string         `json:"authorId" db:"author_id"`
	GroupID   sql.NullInt64  `json:"groupId" db:"group_id"`
	Image     sql.NullString `json:"image" db:"image"`

	// joined for display
	AuthorUsername  string         `json:"authorUsername" db:"author_username"`
	AuthorFirstName string         `json:"-" db:"author_first_name"`
	AuthorLastName  string         `json:"-" db:"author_last_name"`
	GroupTitle      sql.NullString `json:"groupTitle" db:"group_title"`
	GroupSlug       sql.NullString `json:"groupSlug" db:"group_slug"`
}

func (p Post) AuthorName() string {
	u := User{Username: p.AuthorUsername, FirstName: p.AuthorFirstName, LastName: p.AuthorLastName}
	return u.FullName()
}

func (p Post) HasGroup() bool {
	return p.GroupID.Valid
}

// Title is the leading part of the text shown in listings and page titles.
func (p Post) Title() string {
	return Truncate(p.Text, 30)
}

type Comment struct {
	CommentID int64     `json:"commentId" db:"comment_id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	AuthorUsername string `json:"authorUsername" db:"author_username"`
}

type Follow struct {
	FollowID  int64     `json:"followId" db:"follow_id"`
	UserID    string    `json:"userId" db:"user_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Actor is the principal behind a request. A nil *Actor is an anonymous visitor.
type Actor struct {
	UserID   string
	Username string
}

func (a *Actor) IsAuthenticated() bool {
	return a != nil && a.UserID != ""
}

func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}
