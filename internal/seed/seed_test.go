package seed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/validation"
)

// fakes implement only the methods the seeder calls

type fakeUsers struct {
	repository.UserRepository
	created []*models.User
}

func (f *fakeUsers) CreateUser(_ context.Context, user *models.User, password string) error {
	if password == "" {
		return errors.New("пустой пароль")
	}
	user.UserID = fmt.Sprintf("user-%d", len(f.created)+1)
	f.created = append(f.created, user)
	return nil
}

type fakeGroups struct {
	repository.GroupRepository
	created []*models.Group
	taken   bool
}

func (f *fakeGroups) Create(_ context.Context, group *models.Group) error {
	if f.taken {
		f.taken = false
		return repository.ErrSlugTaken
	}
	group.GroupID = int64(len(f.created) + 1)
	f.created = append(f.created, group)
	return nil
}

type fakePosts struct {
	repository.PostRepository
	created []*models.Post
}

func (f *fakePosts) Create(_ context.Context, post *models.Post) error {
	post.PostID = int64(len(f.created) + 1)
	f.created = append(f.created, post)
	return nil
}

type fakeComments struct {
	repository.CommentRepository
	created []*models.Comment
}

func (f *fakeComments) Create(_ context.Context, comment *models.Comment) error {
	f.created = append(f.created, comment)
	return nil
}

type fakeFollows struct {
	repository.FollowRepository
	edges map[[2]string]bool
}

func (f *fakeFollows) Create(_ context.Context, userID, authorID string) (bool, error) {
	key := [2]string{userID, authorID}
	if f.edges[key] {
		return false, nil
	}
	f.edges[key] = true
	return true, nil
}

type fakeStore struct {
	users    *fakeUsers
	groups   *fakeGroups
	posts    *fakePosts
	comments *fakeComments
	follows  *fakeFollows
}

func newFakeRepository() (*repository.Repository, *fakeStore) {
	store := &fakeStore{
		users:    &fakeUsers{},
		groups:   &fakeGroups{},
		posts:    &fakePosts{},
		comments: &fakeComments{},
		follows:  &fakeFollows{edges: map[[2]string]bool{}},
	}
	return &repository.Repository{
		User:    store.users,
		Group:   store.groups,
		Post:    store.posts,
		Comment: store.comments,
		Follow:  store.follows,
	}, store
}

func TestSeeder_Run(t *testing.T) {
	repo, store := newFakeRepository()

	result, err := New(repo, 42).Run(context.Background(), Options{Users: 3, Groups: 2, PostsPerUser: 4, Comments: 5})

	require.NoError(t, err)
	assert.Equal(t, &Result{Users: 3, Groups: 2, Posts: 12, Comments: 5, Follows: 3}, result)

	for _, user := range store.users.created {
		signup := &validation.SignupForm{Username: user.Username, Password1: DefaultPassword, Password2: DefaultPassword}
		assert.True(t, signup.Validate().Empty(), user.Username)
	}
	for _, group := range store.groups.created {
		form := &validation.GroupForm{Title: group.Title, Slug: group.Slug, Description: group.Description}
		assert.True(t, form.Validate().Empty(), group.Slug)
	}
	for _, post := range store.posts.created {
		assert.NotEmpty(t, post.Text)
		assert.NotEmpty(t, post.AuthorID)
	}
	for edge := range store.follows.edges {
		assert.NotEqual(t, edge[0], edge[1])
	}
}

func TestSeeder_SkipsTakenSlug(t *testing.T) {
	repo, store := newFakeRepository()
	store.groups.taken = true

	result, err := New(repo, 7).Run(context.Background(), Options{Users: 1, Groups: 2})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Groups)
	assert.Zero(t, result.Follows)
	assert.Zero(t, result.Comments)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "acme-inc", slugify("Acme, Inc."))
	assert.Equal(t, "r-c-cars", slugify("  R/C cars!"))
}
