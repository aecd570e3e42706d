package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"yatube/internal/models"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return sqlxDB, mock
}

var userColumns = []string{"user_id", "username", "first_name", "last_name", "password_hash", "created_at"}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		user := &models.User{Username: "leo", FirstName: "Лев", LastName: "Толстой"}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(sqlmock.AnyArg(), "leo", "Лев", "Толстой", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Имя пользователя занято", func(t *testing.T) {
		user := &models.User{Username: "leo"}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(errors.New(`duplicate key value violates unique constraint "users_username_key"`))

		err := repo.CreateUser(ctx, user, "password123")

		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(errors.New("connection failed"))

		err := repo.CreateUser(ctx, &models.User{Username: "leo"}, "password123")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка при создании пользователя")
	})
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("Пользователь найден", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow(userID, "leo", "Лев", "Толстой", "hash", time.Now())

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
			WithArgs("leo").
			WillReturnRows(rows)

		user, err := repo.GetUserByUsername(ctx, "leo")

		require.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, "Лев Толстой", user.FullName())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByUsername(ctx, "ghost")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	userID := uuid.New().String()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id = $1")).
		WithArgs(userID).
		WillReturnError(errors.New("connection failed"))

	user, err := repo.GetUserByID(context.Background(), userID)

	assert.Nil(t, user)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "ошибка при получении пользователя")
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("Верный пароль", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
			WithArgs("leo").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow("id-1", "leo", "", "", string(hash), time.Now()))

		user, err := repo.VerifyPassword(ctx, "leo", "secret-pass")

		require.NoError(t, err)
		assert.Equal(t, "id-1", user.UserID)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
			WithArgs("leo").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow("id-1", "leo", "", "", string(hash), time.Now()))

		user, err := repo.VerifyPassword(ctx, "leo", "wrong")

		assert.Nil(t, user)
		assert.EqualError(t, err, "неверный пароль")
	})
}

func TestUserRepository_DeleteUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE user_id = $1")).
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteUser(ctx, "id-1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE user_id = $1")).
		WithArgs("id-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteUser(ctx, "id-2"), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
