package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"yatube/internal/config"
	"yatube/internal/metrics"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/validation"
)

const invalidLoginMessage = "Пожалуйста, введите правильные имя пользователя и пароль. Оба поля могут быть чувствительны к регистру."

type AuthService interface {
	Signup(ctx context.Context, form *validation.SignupForm) (*models.User, error)
	Login(ctx context.Context, form *validation.LoginForm) (*models.User, error)
	IssueToken(user *models.User) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	Authenticate(ctx context.Context, tokenString string) (*models.Actor, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, form *validation.SignupForm) (*models.User, error) {
	if errs := form.Validate(); !errs.Empty() {
		return nil, errs
	}

	user := &models.User{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}

	err := s.userRepo.CreateUser(ctx, user, form.Password1)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, validation.Errors{"username": {"Пользователь с таким именем уже существует."}}
		}
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	metrics.Mutations.WithLabelValues("user", "create").Inc()
	return user, nil
}

// Login never tells an unknown username apart from a wrong password.
func (s *authService) Login(ctx context.Context, form *validation.LoginForm) (*models.User, error) {
	if errs := form.Validate(); !errs.Empty() {
		return nil, errs
	}

	user, err := s.userRepo.VerifyPassword(ctx, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrWrongPassword) {
			return nil, validation.Errors{"": {invalidLoginMessage}}
		}
		return nil, fmt.Errorf("ошибка аутентификации: %w", err)
	}

	return user, nil
}

func (s *authService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"userId":   user.UserID,
		"username": user.Username,
		"exp":      now.Add(s.cfg.Session.Duration).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.Session.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Session.JWTSecretKey), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	if !token.Valid {
		return nil, ErrInvalidSession
	}

	return token, nil
}

// Authenticate turns a session token into an actor. Tokens of deleted users are rejected.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.Actor, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: неверный формат claims", ErrInvalidSession)
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("%w: нет идентификатора пользователя", ErrInvalidSession)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: пользователь удалён", ErrInvalidSession)
		}
		return nil, err
	}

	return &models.Actor{UserID: user.UserID, Username: user.Username}, nil
}
