package users

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"aiahub/internal/domain/rbac"
	"aiahub/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "aiahub/internal/infrastructure/persistence/sqlite/repository"
	"aiahub/internal/ports"
)

func setupService(t *testing.T) *Service {
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

	return NewService(sqliterepo.NewUserRepository(db))
}

func TestAddUserNormalizesAndValidates(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	if err := svc.AddUser(ctx, AddUserInput{
		Email: "  Casey.Assessor@Example.GOV ",
		Name:  "Casey Assessor",
		Role:  " Assessor ",
	}); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}

	user, err := svc.GetUser(ctx, "casey.assessor@example.gov")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.Role != rbac.RoleAssessor {
		t.Fatalf("role = %q", user.Role)
	}

	if err := svc.AddUser(ctx, AddUserInput{Email: "not-an-email", Name: "X", Role: "viewer"}); !errors.Is(err, ports.ErrInvalidUser) {
		t.Fatalf("AddUser() with bad email error = %v", err)
	}
	if err := svc.AddUser(ctx, AddUserInput{Email: "a@example.gov", Name: "", Role: "viewer"}); !errors.Is(err, ports.ErrInvalidUser) {
		t.Fatalf("AddUser() with blank name error = %v", err)
	}
	if err := svc.AddUser(ctx, AddUserInput{Email: "a@example.gov", Name: "A", Role: "superuser"}); !errors.Is(err, rbac.ErrUnknownRole) {
		t.Fatalf("AddUser() with bad role error = %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	if err := svc.AddUser(ctx, AddUserInput{Email: "viewer@example.gov", Name: "Vic", Role: rbac.RoleViewer}); err != nil {
		t.Fatalf("AddUser(viewer) error = %v", err)
	}
	if err := svc.AddUser(ctx, AddUserInput{Email: "assessor@example.gov", Name: "Avery", Role: rbac.RoleAssessor}); err != nil {
		t.Fatalf("AddUser(assessor) error = %v", err)
	}

	if _, err := svc.Authorize(ctx, "assessor@example.gov", rbac.PermAddSystem); err != nil {
		t.Fatalf("Authorize(assessor, add_system) error = %v", err)
	}

	if _, err := svc.Authorize(ctx, "viewer@example.gov", rbac.PermAddSystem); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Authorize(viewer, add_system) error = %v", err)
	}

	if _, err := svc.Authorize(ctx, "ghost@example.gov", rbac.PermViewRegister); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Authorize(unknown actor) error = %v", err)
	}

	if _, err := svc.Authorize(ctx, "", rbac.PermViewRegister); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Authorize(blank actor) error = %v", err)
	}

	// Case differences in the actor never matter.
	if _, err := svc.Authorize(ctx, "ASSESSOR@example.gov", rbac.PermExportAIA); err != nil {
		t.Fatalf("Authorize(mixed case) error = %v", err)
	}
}

func TestUpdateUserValidatesRole(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	if err := svc.AddUser(ctx, AddUserInput{Email: "r@example.gov", Name: "Rae", Role: rbac.RoleReviewer}); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}

	bad := "overlord"
	if err := svc.UpdateUser(ctx, UpdateUserInput{Email: "r@example.gov", Role: &bad}); !errors.Is(err, rbac.ErrUnknownRole) {
		t.Fatalf("UpdateUser(bad role) error = %v", err)
	}

	admin := rbac.RoleAdmin
	if err := svc.UpdateUser(ctx, UpdateUserInput{Email: "r@example.gov", Role: &admin}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	user, err := svc.GetUser(ctx, "r@example.gov")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.Role != rbac.RoleAdmin {
		t.Fatalf("role = %q", user.Role)
	}

	blank := "  "
	if err := svc.UpdateUser(ctx, UpdateUserInput{Email: "r@example.gov", Name: &blank}); !errors.Is(err, ports.ErrInvalidUser) {
		t.Fatalf("UpdateUser(blank name) error = %v", err)
	}
}

func TestEnsureDefaultAdmin(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.EnsureDefaultAdmin(ctx, "admin@example.gov", "Register Admin")
	if err != nil {
		t.Fatalf("EnsureDefaultAdmin() error = %v", err)
	}
	if !created {
		t.Fatalf("EnsureDefaultAdmin() = false on empty directory")
	}

	user, err := svc.GetUser(ctx, "admin@example.gov")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.Role != rbac.RoleAdmin {
		t.Fatalf("role = %q", user.Role)
	}

	created, err = svc.EnsureDefaultAdmin(ctx, "another@example.gov", "Another")
	if err != nil {
		t.Fatalf("EnsureDefaultAdmin() second call error = %v", err)
	}
	if created {
		t.Fatalf("EnsureDefaultAdmin() created a second admin")
	}
}

func TestRecordLoginStampsDirectory(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	if err := svc.AddUser(ctx, AddUserInput{Email: "login@example.gov", Name: "Log In", Role: rbac.RoleViewer}); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	if err := svc.RecordLogin(ctx, "login@example.gov"); err != nil {
		t.Fatalf("RecordLogin() error = %v", err)
	}

	user, err := svc.GetUser(ctx, "login@example.gov")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.LastLogin == nil || *user.LastLogin == "" {
		t.Fatalf("LastLogin not stamped")
	}

	if err := svc.RecordLogin(ctx, "ghost@example.gov"); !errors.Is(err, ports.ErrUserNotFound) {
		t.Fatalf("RecordLogin(unknown) error = %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	if err := svc.AddUser(ctx, AddUserInput{Email: "gone@example.gov", Name: "Gone", Role: rbac.RoleViewer}); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}

	removed, err := svc.DeleteUser(ctx, "gone@example.gov")
	if err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if !removed {
		t.Fatalf("DeleteUser() = false, want true")
	}

	removed, err = svc.DeleteUser(ctx, "gone@example.gov")
	if err != nil {
		t.Fatalf("DeleteUser() second call error = %v", err)
	}
	if removed {
		t.Fatalf("DeleteUser() = true for missing user")
	}
}
