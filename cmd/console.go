package cmd

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"aiahub/internal/bootstrap"
	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/rbac"
	"aiahub/internal/errs"
	"aiahub/internal/usecase/regconsole"
	"aiahub/internal/usecase/register"
	"aiahub/internal/usecase/users"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the terminal register console",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermViewRegister)
		if err != nil {
			return err
		}

		statusFilter, _ := cmd.Flags().GetString("status")
		agencyFilter, _ := cmd.Flags().GetString("agency")
		refreshInterval, _ := cmd.Flags().GetDuration("refresh-interval")
		if refreshInterval <= 0 {
			refreshInterval = 5 * time.Second
		}

		logging.Info(ctx, "console started", slog.String("actor", actor.Email))

		model := regconsole.NewModel(ctx, registerSvc, regconsole.Options{
			Actor:           actor.Email,
			StatusFilter:    statusFilter,
			AgencyFilter:    agencyFilter,
			RefreshInterval: refreshInterval,
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run register console")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(consoleCmd)

	consoleCmd.Flags().String("status", "", "Optional status filter (Draft|In Progress|Review|Approved|Archived)")
	consoleCmd.Flags().String("agency", "", "Optional agency filter")
	consoleCmd.Flags().Duration("refresh-interval", 5*time.Second, "Auto refresh interval")
}
