// Package seed fills a development database with generated users, groups,
// posts, comments and follows.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"yatube/internal/models"
	"yatube/internal/repository"
)

// DefaultPassword is set for every generated user.
const DefaultPassword = "password123"

type Options struct {
	Users        int
	Groups       int
	PostsPerUser int
	Comments     int
	Password     string
}

// Result counts what was actually written.
type Result struct {
	Users    int
	Groups   int
	Posts    int
	Comments int
	Follows  int
}

type Seeder struct {
	repo  *repository.Repository
	faker *gofakeit.Faker
}

// New returns a seeder. The same seed produces the same data.
func New(repo *repository.Repository, seed int64) *Seeder {
	return &Seeder{repo: repo, faker: gofakeit.New(seed)}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	result := &Result{}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Username:  fmt.Sprintf("%s%d", strings.ToLower(s.faker.Username()), s.faker.Number(100, 999)),
			FirstName: s.faker.FirstName(),
			LastName:  s.faker.LastName(),
		}
		err := s.repo.User.CreateUser(ctx, user, opts.Password)
		if errors.Is(err, repository.ErrUsernameTaken) {
			continue
		}
		if err != nil {
			return result, err
		}
		users = append(users, user)
	}
	result.Users = len(users)

	groups := make([]*models.Group, 0, opts.Groups)
	for i := 0; i < opts.Groups; i++ {
		title := s.faker.Company()
		group := &models.Group{
			Title:       title,
			Slug:        fmt.Sprintf("%s-%d", slugify(title), s.faker.Number(10, 99)),
			Description: s.faker.Sentence(12),
		}
		err := s.repo.Group.Create(ctx, group)
		if errors.Is(err, repository.ErrSlugTaken) {
			continue
		}
		if err != nil {
			return result, err
		}
		groups = append(groups, group)
	}
	result.Groups = len(groups)

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post := &models.Post{
				Text:     s.faker.Paragraph(s.faker.Number(1, 3), 3, 12, "\n\n"),
				AuthorID: user.UserID,
			}
			// roughly a third of the posts stay without a group
			if len(groups) > 0 && s.faker.Number(0, 2) > 0 {
				group := groups[s.faker.Number(0, len(groups)-1)]
				post.GroupID.Int64, post.GroupID.Valid = group.GroupID, true
			}
			if err := s.repo.Post.Create(ctx, post); err != nil {
				return result, err
			}
			posts = append(posts, post)
		}
	}
	result.Posts = len(posts)

	if len(posts) > 0 && len(users) > 0 {
		for i := 0; i < opts.Comments; i++ {
			comment := &models.Comment{
				PostID:   posts[s.faker.Number(0, len(posts)-1)].PostID,
				AuthorID: users[s.faker.Number(0, len(users)-1)].UserID,
				Text:     s.faker.Sentence(s.faker.Number(3, 15)),
			}
			if err := s.repo.Comment.Create(ctx, comment); err != nil {
				return result, err
			}
			result.Comments++
		}
	}

	// every user follows the next one, so each follow feed has content
	if len(users) > 1 {
		for i, user := range users {
			author := users[(i+1)%len(users)]
			created, err := s.repo.Follow.Create(ctx, user.UserID, author.UserID)
			if err != nil {
				return result, err
			}
			if created {
				result.Follows++
			}
		}
	}

	slog.InfoContext(ctx, "тестовые данные созданы",
		slog.Int("users", result.Users),
		slog.Int("groups", result.Groups),
		slog.Int("posts", result.Posts),
		slog.Int("comments", result.Comments),
		slog.Int("follows", result.Follows),
	)
	return result, nil
}
