package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"aiahub/internal/bootstrap/config"
	"aiahub/internal/bootstrap/database"
	"aiahub/internal/bootstrap/logging"
	cacheinfra "aiahub/internal/infrastructure/cache"
	"aiahub/internal/infrastructure/notify"
	sqliterepo "aiahub/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "aiahub/internal/infrastructure/persistence/sqlite/uow"
	profileinfra "aiahub/internal/infrastructure/profile"
	"aiahub/internal/ports"
	"aiahub/internal/usecase/register"
	"aiahub/internal/usecase/users"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(provideNotifier),
	fx.Provide(provideProfileStore),
	fx.Provide(provideDashboardCacheTTL),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewRegisterRepository,
			fx.As(new(ports.RegisterRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewUserRepository,
			fx.As(new(ports.UserDirectory)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(register.NewService),
	fx.Provide(users.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func provideNotifier(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (ports.Notifier, error) {
	if !cfg.NATS.Enabled {
		return notify.NewNoopNotifier(), nil
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))
	notifier, err := notify.NewNATSNotifier(logCtx, cfg.NATS)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return notifier.Close()
		},
	})

	logging.Info(logCtx, "register event feed enabled", slog.String("subject", cfg.NATS.Subject))
	return notifier, nil
}

func provideProfileStore(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (ports.ProfileSource, error) {
	store := profileinfra.NewStore(cfg.Profile.Path)
	if cfg.Profile.Path == "" {
		return store, nil
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))
	if err := store.Reload(logCtx); err != nil {
		return nil, err
	}

	if cfg.Profile.Watch {
		stop, err := store.Watch(logCtx)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				stop()
				return nil
			},
		})
	}

	return store, nil
}

func provideDashboardCacheTTL(cfg config.Config) register.DashboardCacheTTL {
	return register.DashboardCacheTTL(time.Duration(cfg.Dashboard.CacheTTLSeconds) * time.Second)
}
