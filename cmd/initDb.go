/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"aiahub/internal/bootstrap"
	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/errs"
	"aiahub/internal/usecase/register"
	"aiahub/internal/usecase/users"
)

// initDbCmd represents the initDb command
var initDbCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize database schema and ensure an administrator exists",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, _ *register.Service, usersSvc *users.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		logging.Info(ctx, "start init-db")

		if err := app.InitSchema(ctx); err != nil {
			logging.Error(ctx, "initialize schema failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "initialize schema")
		}

		adminEmail, _ := cmd.Flags().GetString("admin-email")
		adminName, _ := cmd.Flags().GetString("admin-name")
		created, err := usersSvc.EnsureDefaultAdmin(ctx, adminEmail, adminName)
		if err != nil {
			return errs.Wrap(err, "ensure default administrator")
		}

		logging.Info(ctx, "init-db finished", slog.String("database_dsn", app.Config.Database.DSN))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "database schema initialized: %s\n", app.Config.Database.DSN); err != nil {
			return errs.Wrap(err, "write init-db output")
		}
		if created {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "default administrator created: %s\n", adminEmail); err != nil {
				return errs.Wrap(err, "write init-db output")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(initDbCmd)

	initDbCmd.Flags().String("admin-email", "admin@example.gov", "Administrator seeded when the user directory is empty")
	initDbCmd.Flags().String("admin-name", "Administrator", "Name for the seeded administrator")
}
