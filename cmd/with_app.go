package cmd

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"aiahub/internal/bootstrap"
	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/errs"
	"aiahub/internal/ports"
	"aiahub/internal/usecase/register"
	"aiahub/internal/usecase/users"
)

func withApp(run func(cmd *cobra.Command, app *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithAttrs(
			cmd.Context(),
			slog.String("command", cmd.CommandPath()),
			slog.String("config_file", cfgFile),
		)

		var app *bootstrap.App
		var registerSvc *register.Service
		var usersSvc *users.Service
		fxApp := fx.New(
			bootstrap.Module,
			fx.Provide(func() context.Context { return ctx }),
			fx.Provide(
				fx.Annotate(
					func() string { return cfgFile },
					fx.ResultTags(`name:"configFile"`),
				),
			),
			fx.Populate(&app, &registerSvc, &usersSvc),
		)

		startCtx, cancelStart := context.WithTimeout(ctx, 10*time.Second)
		defer cancelStart()
		if err := fxApp.Start(startCtx); err != nil {
			logging.Error(ctx, "bootstrap application failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "start fx application")
		}

		defer func() {
			stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancelStop()
			if err := fxApp.Stop(stopCtx); err != nil {
				logging.Error(ctx, "fx application stop failed", slog.Any("err", errs.Loggable(err)))
			}
		}()

		if err := run(cmd, app, registerSvc, usersSvc); err != nil {
			return errs.Wrap(err, "run command")
		}
		return nil
	}
}

// authorizeActor resolves the --actor flag against the user directory and
// checks one permission token. The returned context carries the actor attr.
func authorizeActor(cmd *cobra.Command, usersSvc *users.Service, permission string) (ports.User, context.Context, error) {
	ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
	actor := strings.TrimSpace(actorEmail)
	if actor != "" {
		ctx = logging.WithActor(ctx, actor)
	}

	user, err := usersSvc.Authorize(ctx, actor, permission)
	if err != nil {
		return ports.User{}, ctx, err
	}
	return user, ctx, nil
}
