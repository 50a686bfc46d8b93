package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"aiahub/internal/domain/rbac"
	"aiahub/internal/infrastructure/persistence/sqlite/model"
	"aiahub/internal/ports"
)

func setupUserRepository(t *testing.T) *UserRepository {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "users.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return NewUserRepository(db)
}

func TestAddAndGetUser(t *testing.T) {
	repo := setupUserRepository(t)
	ctx := context.Background()

	user := ports.User{
		Email:     "assessor@example.gov",
		Name:      "Avery Assessor",
		Role:      rbac.RoleAssessor,
		Agency:    "Dept of Services",
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := repo.AddUser(ctx, user); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}

	got, err := repo.GetUser(ctx, "assessor@example.gov")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Name != user.Name || got.Role != user.Role || got.Agency != user.Agency {
		t.Fatalf("GetUser() = %#v", got)
	}
	if got.LastLogin != nil {
		t.Fatalf("LastLogin = %v before any login", *got.LastLogin)
	}

	if err := repo.AddUser(ctx, user); !errors.Is(err, ports.ErrUserExists) {
		t.Fatalf("duplicate AddUser() error = %v, want ErrUserExists", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	repo := setupUserRepository(t)

	_, err := repo.GetUser(context.Background(), "ghost@example.gov")
	if !errors.Is(err, ports.ErrUserNotFound) {
		t.Fatalf("GetUser() error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateUser(t *testing.T) {
	repo := setupUserRepository(t)
	ctx := context.Background()

	seed := ports.User{
		Email:     "viewer@example.gov",
		Name:      "Vic Viewer",
		Role:      rbac.RoleViewer,
		Agency:    "Dept A",
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := repo.AddUser(ctx, seed); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}

	role := rbac.RoleReviewer
	agency := "Dept B"
	if err := repo.UpdateUser(ctx, seed.Email, ports.UserPatch{Role: &role, Agency: &agency}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	got, err := repo.GetUser(ctx, seed.Email)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Role != rbac.RoleReviewer || got.Agency != "Dept B" {
		t.Fatalf("after update = %q/%q", got.Role, got.Agency)
	}
	if got.Name != seed.Name {
		t.Fatalf("Name changed unexpectedly to %q", got.Name)
	}

	if err := repo.UpdateUser(ctx, "ghost@example.gov", ports.UserPatch{Role: &role}); !errors.Is(err, ports.ErrUserNotFound) {
		t.Fatalf("UpdateUser(missing) error = %v, want ErrUserNotFound", err)
	}
}

func TestDeleteUser(t *testing.T) {
	repo := setupUserRepository(t)
	ctx := context.Background()

	seed := ports.User{
		Email:     "admin@example.gov",
		Name:      "Ada Admin",
		Role:      rbac.RoleAdmin,
		Agency:    "Central",
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := repo.AddUser(ctx, seed); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}

	removed, err := repo.DeleteUser(ctx, seed.Email)
	if err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if !removed {
		t.Fatalf("DeleteUser() = false, want true")
	}

	removed, err = repo.DeleteUser(ctx, seed.Email)
	if err != nil {
		t.Fatalf("DeleteUser() second call error = %v", err)
	}
	if removed {
		t.Fatalf("DeleteUser() = true for missing row")
	}
}

func TestRecordLogin(t *testing.T) {
	repo := setupUserRepository(t)
	ctx := context.Background()

	seed := ports.User{
		Email:     "reviewer@example.gov",
		Name:      "Rae Reviewer",
		Role:      rbac.RoleReviewer,
		Agency:    "Dept C",
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := repo.AddUser(ctx, seed); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}

	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	if err := repo.RecordLogin(ctx, seed.Email, stamp); err != nil {
		t.Fatalf("RecordLogin() error = %v", err)
	}

	got, err := repo.GetUser(ctx, seed.Email)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.LastLogin == nil || *got.LastLogin != stamp {
		t.Fatalf("LastLogin = %v, want %q", got.LastLogin, stamp)
	}

	if err := repo.RecordLogin(ctx, "ghost@example.gov", stamp); !errors.Is(err, ports.ErrUserNotFound) {
		t.Fatalf("RecordLogin(missing) error = %v, want ErrUserNotFound", err)
	}
}

func TestCountUsers(t *testing.T) {
	repo := setupUserRepository(t)
	ctx := context.Background()

	count, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers() error = %v", err)
	}
	if count != 0 {
		t.Fatalf("CountUsers() = %d on empty table", count)
	}

	for _, email := range []string{"a@example.gov", "b@example.gov"} {
		user := ports.User{
			Email:     email,
			Name:      "Someone",
			Role:      rbac.RoleViewer,
			Agency:    "Dept",
			CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		}
		if err := repo.AddUser(ctx, user); err != nil {
			t.Fatalf("AddUser(%q) error = %v", email, err)
		}
	}

	count, err = repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("CountUsers() = %d, want 2", count)
	}
}
