package handlers_test

import (
	"context"
	"io"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"yatube/internal/models"
	"yatube/internal/service"
	"yatube/internal/validation"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, form *validation.SignupForm) (*models.User, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, form *validation.LoginForm) (*models.User, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, tokenString string) (*models.Actor, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Actor), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) CreateGroup(ctx context.Context, form *validation.GroupForm) (*models.Group, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) ListAll(ctx context.Context, rawPage string) (*service.PostPage, error) {
	args := m.Called(ctx, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostPage), args.Error(1)
}

func (m *MockFeedService) ListByGroup(ctx context.Context, slug, rawPage string) (*models.Group, *service.PostPage, error) {
	args := m.Called(ctx, slug, rawPage)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Group), args.Get(1).(*service.PostPage), args.Error(2)
}

func (m *MockFeedService) ListByAuthor(ctx context.Context, actor *models.Actor, username, rawPage string) (*service.Profile, error) {
	args := m.Called(ctx, actor, username, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Profile), args.Error(1)
}

func (m *MockFeedService) ListFollowed(ctx context.Context, actor *models.Actor, rawPage string) (*service.PostPage, error) {
	args := m.Called(ctx, actor, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostPage), args.Error(1)
}

func (m *MockFeedService) InvalidateIndex(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetPostDetail(ctx context.Context, actor *models.Actor, postID int64) (*service.PostDetail, error) {
	args := m.Called(ctx, actor, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostDetail), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, actor *models.Actor, form *validation.PostForm, image *validation.ImageUpload) (*models.Post, error) {
	args := m.Called(ctx, actor, form, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) EditPost(ctx context.Context, actor *models.Actor, postID int64, form *validation.PostForm, image *validation.ImageUpload) (*models.Post, error) {
	args := m.Called(ctx, actor, postID, form, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID int64) error {
	return m.Called(ctx, postID).Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, actor *models.Actor, postID int64, form *validation.CommentForm) (*models.Comment, error) {
	args := m.Called(ctx, actor, postID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, actor *models.Actor, username string) error {
	return m.Called(ctx, actor, username).Error(0)
}

func (m *MockFollowService) Unfollow(ctx context.Context, actor *models.Actor, username string) error {
	return m.Called(ctx, actor, username).Error(0)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) GetHealth(ctx context.Context) (*service.Health, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Health), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, authorID, fileName string, file io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, authorID, fileName, file, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

func (m *MockStorage) GetImageURL(ctx context.Context, objectName string) (string, error) {
	args := m.Called(ctx, objectName)
	return args.String(0), args.Error(1)
}
