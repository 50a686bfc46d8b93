package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"aiahub/internal/bootstrap"
	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/assessment"
	"aiahub/internal/domain/rbac"
	"aiahub/internal/errs"
	"aiahub/internal/ports"
	"aiahub/internal/usecase/register"
	"aiahub/internal/usecase/users"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Manage the AI system register",
}

var registerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new AI system",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermAddSystem)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		agency, _ := cmd.Flags().GetString("agency")

		systemID, err := registerSvc.CreateSystem(ctx, register.CreateSystemInput{
			SystemName: name,
			AgencyName: agency,
			Actor:      actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "register system failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "register system")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "registered system: #%d %s\n", systemID, name); err != nil {
			return errs.Wrap(err, "write add output")
		}
		return nil
	}),
}

var registerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered systems",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		_, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermViewRegister)
		if err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		risk, _ := cmd.Flags().GetString("risk")
		agency, _ := cmd.Flags().GetString("agency")

		items, err := registerSvc.ListSystems(ctx, register.ListSystemsInput{
			Status:       status,
			RiskCategory: risk,
			Agency:       agency,
		})
		if err != nil {
			logging.Error(ctx, "list systems failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list systems")
		}

		if len(items) == 0 {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "no systems"); err != nil {
				return errs.Wrap(err, "write list output")
			}
			return nil
		}

		for _, item := range items {
			agencyValue := item.AgencyName
			if agencyValue == "" {
				agencyValue = "-"
			}
			riskValue := item.RiskCategory
			if riskValue == "" {
				riskValue = "-"
			}
			if _, err := fmt.Fprintf(
				cmd.OutOrStdout(),
				"#%d [%s] risk=%s total=%d agency=%s name=%s\n",
				item.SystemID,
				item.Status,
				riskValue,
				item.TotalScore,
				agencyValue,
				item.SystemName,
			); err != nil {
				return errs.Wrap(err, "write list item")
			}
		}
		return nil
	}),
}

var registerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one assessment record",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		_, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermViewAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		record, err := registerSvc.GetAssessment(ctx, systemID)
		if err != nil {
			logging.Error(ctx, "show system failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "show system")
		}

		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "System:   #%d %s\n", record.SystemID, record.SystemName); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "Agency:   %s\n", record.AgencyName); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "Status:   %s\n", record.Status); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "Risk:     %s (total %d/%d)\n", record.RiskCategory.Category, record.TotalScore, assessment.MaxTotalScore); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "Action:   %s\n", record.RiskCategory.Action); err != nil {
			return errs.Wrap(err, "write show output")
		}

		if _, err := fmt.Fprintln(out, "\nDimensions:"); err != nil {
			return errs.Wrap(err, "write show dimensions")
		}
		for _, dimension := range assessment.Dimensions {
			entry := record.Dimensions[dimension]
			line := fmt.Sprintf("- %-36s %d/%d", dimension, entry.Score, assessment.MaxDimensionScore)
			if entry.Justification != "" {
				line += "  " + entry.Justification
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return errs.Wrap(err, "write show dimension")
			}
		}

		if len(record.MitigationPlan) > 0 {
			if _, err := fmt.Fprintln(out, "\nMitigation plan:"); err != nil {
				return errs.Wrap(err, "write show mitigations")
			}
			for _, item := range record.MitigationPlan {
				if _, err := fmt.Fprintf(out, "- %s [%s] %s -> %s (due %s, owner %s)\n",
					item.ID, item.Status, item.RiskDescription, item.Action, item.TargetDate, item.Responsible); err != nil {
					return errs.Wrap(err, "write show mitigation")
				}
			}
		}

		if len(record.RelatedStatuses) > 0 {
			if _, err := fmt.Fprintln(out, "\nRelated assessments:"); err != nil {
				return errs.Wrap(err, "write show related")
			}
			names := make([]string, 0, len(record.RelatedStatuses))
			for name := range record.RelatedStatuses {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if _, err := fmt.Fprintf(out, "- %s: %s\n", name, record.RelatedStatuses[name]); err != nil {
					return errs.Wrap(err, "write show related")
				}
			}
		}

		if _, err := fmt.Fprintf(out, "\nModified: %s\n", record.LastModified); err != nil {
			return errs.Wrap(err, "write show output")
		}
		return nil
	}),
}

var registerImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Overwrite an assessment from an exported snapshot file",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermEditAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		path, _ := cmd.Flags().GetString("file")

		snapshot, err := os.ReadFile(path)
		if err != nil {
			return errs.Wrapf(err, "read snapshot file %q", path)
		}

		record, err := registerSvc.SaveAssessment(ctx, register.SaveAssessmentInput{
			SystemID: systemID,
			Snapshot: snapshot,
			Actor:    actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "import assessment failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "import assessment")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "system #%d imported (total %d/%d, risk %s)\n",
			record.SystemID, record.TotalScore, assessment.MaxTotalScore, record.RiskCategory.Category); err != nil {
			return errs.Wrap(err, "write import output")
		}
		return nil
	}),
}

var registerDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a system and its assessment record",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermDeleteSystem)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		removed, err := registerSvc.DeleteSystem(ctx, register.DeleteSystemInput{
			SystemID: systemID,
			Actor:    actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "delete system failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "delete system")
		}
		if !removed {
			return fmt.Errorf("%w: id %d", ports.ErrSystemNotFound, systemID)
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted system: #%d\n", systemID); err != nil {
			return errs.Wrap(err, "write delete output")
		}
		return nil
	}),
}

var registerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Change the workflow status of an assessment",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermChangeStatus)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		status, _ := cmd.Flags().GetString("status")

		record, err := registerSvc.ChangeStatus(ctx, register.ChangeStatusInput{
			SystemID: systemID,
			Status:   status,
			Actor:    actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "change status failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "change status")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "system #%d status: %s\n", record.SystemID, record.Status); err != nil {
			return errs.Wrap(err, "write status output")
		}
		return nil
	}),
}

var registerRelatedCmd = &cobra.Command{
	Use:   "related",
	Short: "Record the status of a related assessment (PIA, security, human rights, ...)",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermEditAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		name, _ := cmd.Flags().GetString("name")
		status, _ := cmd.Flags().GetString("status")

		record, err := registerSvc.SetRelatedAssessment(ctx, register.SetRelatedAssessmentInput{
			SystemID: systemID,
			Name:     name,
			Status:   status,
			Actor:    actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "set related assessment failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "set related assessment")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "system #%d related %q: %s\n", record.SystemID, name, record.RelatedStatuses[name]); err != nil {
			return errs.Wrap(err, "write related output")
		}
		return nil
	}),
}

var registerDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show register-wide counts",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		_, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermViewDashboard)
		if err != nil {
			return err
		}

		counts, err := registerSvc.DashboardCounts(ctx)
		if err != nil {
			logging.Error(ctx, "load dashboard failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "load dashboard")
		}

		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "Systems: %d\n", counts.TotalSystems); err != nil {
			return errs.Wrap(err, "write dashboard output")
		}
		sections := []struct {
			label  string
			counts map[string]int64
		}{
			{"By status", counts.ByStatus},
			{"By risk", counts.ByRisk},
			{"PIA", counts.ByPIA},
			{"Security Assessment", counts.BySecurity},
			{"Human Rights Assessment", counts.ByHumanRights},
		}
		for _, section := range sections {
			if len(section.counts) == 0 {
				continue
			}
			keys := make([]string, 0, len(section.counts))
			for key := range section.counts {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			if _, err := fmt.Fprintf(out, "%s:\n", section.label); err != nil {
				return errs.Wrap(err, "write dashboard section")
			}
			for _, key := range keys {
				if _, err := fmt.Fprintf(out, "- %s: %d\n", key, section.counts[key]); err != nil {
					return errs.Wrap(err, "write dashboard count")
				}
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.AddCommand(registerAddCmd)
	registerCmd.AddCommand(registerListCmd)
	registerCmd.AddCommand(registerShowCmd)
	registerCmd.AddCommand(registerImportCmd)
	registerCmd.AddCommand(registerDeleteCmd)
	registerCmd.AddCommand(registerStatusCmd)
	registerCmd.AddCommand(registerRelatedCmd)
	registerCmd.AddCommand(registerDashboardCmd)

	registerAddCmd.Flags().String("name", "", "System name")
	registerAddCmd.Flags().String("agency", "", "Owning agency or department")
	_ = registerAddCmd.MarkFlagRequired("name")
	_ = registerAddCmd.MarkFlagRequired("agency")

	registerListCmd.Flags().String("status", "", "Filter by status")
	registerListCmd.Flags().String("risk", "", "Filter by risk category")
	registerListCmd.Flags().String("agency", "", "Filter by agency")

	registerShowCmd.Flags().Uint64("system", 0, "System id")
	_ = registerShowCmd.MarkFlagRequired("system")

	registerImportCmd.Flags().Uint64("system", 0, "System id")
	registerImportCmd.Flags().String("file", "", "Snapshot file to import")
	_ = registerImportCmd.MarkFlagRequired("system")
	_ = registerImportCmd.MarkFlagRequired("file")

	registerDeleteCmd.Flags().Uint64("system", 0, "System id")
	_ = registerDeleteCmd.MarkFlagRequired("system")

	registerStatusCmd.Flags().Uint64("system", 0, "System id")
	registerStatusCmd.Flags().String("status", "", "New status (Draft|In Progress|Review|Approved|Archived)")
	_ = registerStatusCmd.MarkFlagRequired("system")
	_ = registerStatusCmd.MarkFlagRequired("status")

	registerRelatedCmd.Flags().Uint64("system", 0, "System id")
	registerRelatedCmd.Flags().String("name", "", "Related assessment name")
	registerRelatedCmd.Flags().String("status", "", "Status (Not Started|In Progress|Completed|N/A)")
	_ = registerRelatedCmd.MarkFlagRequired("system")
	_ = registerRelatedCmd.MarkFlagRequired("name")
	_ = registerRelatedCmd.MarkFlagRequired("status")
}
