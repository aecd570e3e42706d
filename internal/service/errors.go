package service

import (
	"errors"

	"yatube/internal/repository"
)

var (
	// ErrNotFound is returned for unknown posts, groups and users.
	ErrNotFound = repository.ErrNotFound

	ErrAuthenticationRequired = errors.New("требуется авторизация")

	// ErrAuthorizationDenied means the actor is signed in but may not touch the entity.
	ErrAuthorizationDenied = errors.New("недостаточно прав")

	ErrInvalidSession = errors.New("недействительная сессия")
)
