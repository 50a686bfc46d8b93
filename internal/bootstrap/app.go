package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"aiahub/internal/bootstrap/config"
	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/errs"
	"aiahub/internal/infrastructure/persistence/sqlite/model"
)

// App bundles the loaded config and the open database handle for commands
// that work below the usecase layer, such as schema migration.
type App struct {
	Config config.Config
	DB     *gorm.DB
}

func (a *App) InitSchema(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.app"))
	logging.Info(logCtx, "start schema migration")

	if err := a.DB.WithContext(ctx).AutoMigrate(
		&model.AISystem{},
		&model.User{},
		&model.RegisterKV{},
	); err != nil {
		return errs.Wrap(err, "auto migrate schema")
	}

	logging.Info(logCtx, "schema migration completed")
	return nil
}
