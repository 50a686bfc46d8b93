package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"aiahub/internal/bootstrap"
	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/rbac"
	"aiahub/internal/errs"
	"aiahub/internal/ports"
	"aiahub/internal/usecase/register"
	"aiahub/internal/usecase/users"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage the user directory",
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user to the directory",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *register.Service, usersSvc *users.Service) error {
		_, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermManageUsers)
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")
		agency, _ := cmd.Flags().GetString("agency")

		if err := usersSvc.AddUser(ctx, users.AddUserInput{
			Email:  email,
			Name:   name,
			Role:   role,
			Agency: agency,
		}); err != nil {
			logging.Error(ctx, "add user failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "add user")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "added user: %s (%s)\n", email, role); err != nil {
			return errs.Wrap(err, "write users output")
		}
		return nil
	}),
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List directory users",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *register.Service, usersSvc *users.Service) error {
		_, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermManageUsers)
		if err != nil {
			return err
		}

		entries, err := usersSvc.ListUsers(ctx)
		if err != nil {
			logging.Error(ctx, "list users failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list users")
		}

		if len(entries) == 0 {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "no users"); err != nil {
				return errs.Wrap(err, "write users output")
			}
			return nil
		}

		for _, entry := range entries {
			lastLogin := "never"
			if entry.LastLogin != nil {
				lastLogin = *entry.LastLogin
			}
			if _, err := fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s role=%s agency=%s name=%s last-login=%s\n",
				entry.Email,
				entry.Role,
				orDash(entry.Agency),
				entry.Name,
				lastLogin,
			); err != nil {
				return errs.Wrap(err, "write users item")
			}
		}
		return nil
	}),
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a user's name, role, or agency",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *register.Service, usersSvc *users.Service) error {
		_, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermManageUsers)
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")

		if err := usersSvc.UpdateUser(ctx, users.UpdateUserInput{
			Email:  email,
			Name:   flagPtr(cmd, "name"),
			Role:   flagPtr(cmd, "role"),
			Agency: flagPtr(cmd, "agency"),
		}); err != nil {
			logging.Error(ctx, "update user failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "update user")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "updated user: %s\n", email); err != nil {
			return errs.Wrap(err, "write users output")
		}
		return nil
	}),
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove a user from the directory",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *register.Service, usersSvc *users.Service) error {
		_, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermManageUsers)
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		removed, err := usersSvc.DeleteUser(ctx, email)
		if err != nil {
			logging.Error(ctx, "delete user failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "delete user")
		}
		if !removed {
			return fmt.Errorf("%w: %q", ports.ErrUserNotFound, email)
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted user: %s\n", email); err != nil {
			return errs.Wrap(err, "write users output")
		}
		return nil
	}),
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	usersAddCmd.Flags().String("email", "", "Email address (stored lowercase)")
	usersAddCmd.Flags().String("name", "", "Display name")
	usersAddCmd.Flags().String("role", "", "Role (admin|reviewer|assessor|viewer)")
	usersAddCmd.Flags().String("agency", "", "Agency or department")
	_ = usersAddCmd.MarkFlagRequired("email")
	_ = usersAddCmd.MarkFlagRequired("name")
	_ = usersAddCmd.MarkFlagRequired("role")

	usersUpdateCmd.Flags().String("email", "", "Email address of the user to update")
	usersUpdateCmd.Flags().String("name", "", "Display name")
	usersUpdateCmd.Flags().String("role", "", "Role (admin|reviewer|assessor|viewer)")
	usersUpdateCmd.Flags().String("agency", "", "Agency or department")
	_ = usersUpdateCmd.MarkFlagRequired("email")

	usersDeleteCmd.Flags().String("email", "", "Email address of the user to remove")
	_ = usersDeleteCmd.MarkFlagRequired("email")
}
