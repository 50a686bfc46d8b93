package register

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"aiahub/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "aiahub/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "aiahub/internal/infrastructure/persistence/sqlite/uow"
	"aiahub/internal/ports"
)

type testCache struct {
	data map[string]string
}

func newTestCache() *testCache {
	return &testCache{
		data: make(map[string]string),
	}
}

func (c *testCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *testCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *testCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

type testNotifier struct {
	events []ports.RegisterEvent
}

func (n *testNotifier) Publish(_ context.Context, event ports.RegisterEvent) error {
	n.events = append(n.events, event)
	return nil
}

func (n *testNotifier) lastKind() string {
	if len(n.events) == 0 {
		return ""
	}
	return n.events[len(n.events)-1].Kind
}

type testProfiles struct {
	profile ports.GovernanceProfile
}

func (p *testProfiles) Current() ports.GovernanceProfile {
	return p.profile
}

func setupServiceWithProfile(t *testing.T, profile ports.GovernanceProfile) (*Service, *testCache, *testNotifier) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "register.sqlite")
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

	if err := db.AutoMigrate(&model.AISystem{}, &model.User{}, &model.RegisterKV{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	cache := newTestCache()
	notifier := &testNotifier{}
	repo := sqliterepo.NewRegisterRepository(db)
	uow := sqliteuow.NewUnitOfWork(db)
	svc := NewService(repo, uow, cache, notifier, &testProfiles{profile: profile}, DashboardCacheTTL(time.Minute))
	return svc, cache, notifier
}

func setupService(t *testing.T) (*Service, *testCache, *testNotifier) {
	t.Helper()
	return setupServiceWithProfile(t, ports.GovernanceProfile{})
}
