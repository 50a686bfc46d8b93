// Package users manages the register's user directory and answers
// permission checks for every surface.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/rbac"
	"aiahub/internal/errs"
	"aiahub/internal/ports"
)

// ErrPermissionDenied is returned whenever an actor may not perform an
// operation. Unknown actors and unknown roles both land here; denial is the
// default.
var ErrPermissionDenied = errors.New("permission denied")

type Service struct {
	users ports.UserDirectory
}

func NewService(users ports.UserDirectory) *Service {
	return &Service{users: users}
}

type AddUserInput struct {
	Email  string
	Name   string
	Role   string
	Agency string
}

type UpdateUserInput struct {
	Email  string
	Name   *string
	Role   *string
	Agency *string
}

func (s *Service) guard(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if s.users == nil {
		return errors.New("user directory is required")
	}
	return nil
}

// Authorize resolves the actor and checks one permission token. The actor
// must exist in the directory and hold a role granting the token; anything
// else is a denial.
func (s *Service) Authorize(ctx context.Context, email string, permission string) (ports.User, error) {
	if err := s.guard(ctx); err != nil {
		return ports.User{}, err
	}

	email = normalizeEmail(email)
	if email == "" {
		return ports.User{}, fmt.Errorf("actor is required: %w", ErrPermissionDenied)
	}

	user, err := s.users.GetUser(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return ports.User{}, fmt.Errorf("unknown actor %q: %w", email, ErrPermissionDenied)
		}
		return ports.User{}, err
	}

	if !rbac.HasPermission(user.Role, permission) {
		logging.Warn(ctx, "permission denied",
			slog.String("actor", email),
			slog.String("role", user.Role),
			slog.String("permission", permission))
		return ports.User{}, fmt.Errorf("%s may not %s: %w", email, permission, ErrPermissionDenied)
	}

	return user, nil
}

// AddUser creates a directory entry after validating the role against the
// known set.
func (s *Service) AddUser(ctx context.Context, input AddUserInput) error {
	if err := s.guard(ctx); err != nil {
		return err
	}

	email := normalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email %q", ports.ErrInvalidUser, input.Email)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ports.ErrInvalidUser)
	}

	role, err := rbac.NormalizeRole(input.Role)
	if err != nil {
		return err
	}

	if err := s.users.AddUser(ctx, ports.User{
		Email:     email,
		Name:      name,
		Role:      role,
		Agency:    strings.TrimSpace(input.Agency),
		CreatedAt: nowUTCString(),
	}); err != nil {
		return err
	}

	logging.Info(ctx, "user added", slog.String("email", email), slog.String("role", role))
	return nil
}

func (s *Service) GetUser(ctx context.Context, email string) (ports.User, error) {
	if err := s.guard(ctx); err != nil {
		return ports.User{}, err
	}
	return s.users.GetUser(ctx, normalizeEmail(email))
}

func (s *Service) ListUsers(ctx context.Context) ([]ports.User, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	return s.users.ListUsers(ctx)
}

// UpdateUser applies a partial update; nil fields stay untouched.
func (s *Service) UpdateUser(ctx context.Context, input UpdateUserInput) error {
	if err := s.guard(ctx); err != nil {
		return err
	}

	email := normalizeEmail(input.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ports.ErrInvalidUser)
	}

	patch := ports.UserPatch{Agency: input.Agency}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return fmt.Errorf("%w: name must not be blank", ports.ErrInvalidUser)
		}
		patch.Name = &name
	}
	if input.Role != nil {
		role, err := rbac.NormalizeRole(*input.Role)
		if err != nil {
			return err
		}
		patch.Role = &role
	}

	if err := s.users.UpdateUser(ctx, email, patch); err != nil {
		return err
	}

	logging.Info(ctx, "user updated", slog.String("email", email))
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, email string) (bool, error) {
	if err := s.guard(ctx); err != nil {
		return false, err
	}

	email = normalizeEmail(email)
	if email == "" {
		return false, fmt.Errorf("%w: email is required", ports.ErrInvalidUser)
	}

	removed, err := s.users.DeleteUser(ctx, email)
	if err != nil {
		return false, err
	}
	if removed {
		logging.Info(ctx, "user deleted", slog.String("email", email))
	}
	return removed, nil
}

// RecordLogin stamps the directory entry with the current time.
func (s *Service) RecordLogin(ctx context.Context, email string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	return s.users.RecordLogin(ctx, normalizeEmail(email), nowUTCString())
}

// EnsureDefaultAdmin seeds an administrator when the directory is empty so a
// fresh install is never locked out. Returns true when it created one.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, email string, name string) (bool, error) {
	if err := s.guard(ctx); err != nil {
		return false, err
	}

	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := s.AddUser(ctx, AddUserInput{
		Email: email,
		Name:  name,
		Role:  rbac.RoleAdmin,
	}); err != nil {
		return false, err
	}

	logging.Info(ctx, "default administrator created", slog.String("email", normalizeEmail(email)))
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nowUTCString() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
