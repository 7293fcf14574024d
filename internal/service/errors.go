package service

import (
	"errors"

	"webapp-template/internal/repository"
)

var (
	ErrNoteNotFound       = repository.ErrNoteNotFound
	ErrAdminDisabled      = errors.New("admin is not configured")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
