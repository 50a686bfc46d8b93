package ports

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrInvalidUser  = errors.New("invalid user")
)

type User struct {
	Email     string
	Name      string
	Role      string
	Agency    string
	CreatedAt string
	LastLogin *string
}

type UserPatch struct {
	Name   *string
	Role   *string
	Agency *string
}

type UserDirectory interface {
	GetUser(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	CountUsers(ctx context.Context) (int64, error)
	AddUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, email string, patch UserPatch) error
	DeleteUser(ctx context.Context, email string) (bool, error)
	RecordLogin(ctx context.Context, email string, when string) error
}
