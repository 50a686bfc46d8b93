package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"aiahub/internal/bootstrap"
	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/rbac"
	"aiahub/internal/errs"
	"aiahub/internal/usecase/register"
	"aiahub/internal/usecase/users"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export assessment reports, snapshots, and the record schema",
}

// writeExport sends bytes to --out when given, stdout otherwise.
func writeExport(cmd *cobra.Command, data []byte, outPath string, label string) error {
	if outPath != "" {
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return errs.Wrapf(err, "write %s to %q", label, outPath)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %s\n", label, outPath); err != nil {
			return errs.Wrap(err, "write export output")
		}
		return nil
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return errs.Wrap(err, "write export output")
	}
	return nil
}

var exportReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render one assessment as a markdown report",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		_, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermExportAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		outPath, _ := cmd.Flags().GetString("out")

		report, err := registerSvc.ExportReport(ctx, systemID)
		if err != nil {
			logging.Error(ctx, "export report failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "export report")
		}

		return writeExport(cmd, []byte(report), outPath, "report")
	}),
}

var exportSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export one assessment as its canonical JSON snapshot",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		_, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermExportAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		outPath, _ := cmd.Flags().GetString("out")

		snapshot, err := registerSvc.ExportSnapshot(ctx, systemID)
		if err != nil {
			logging.Error(ctx, "export snapshot failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "export snapshot")
		}

		return writeExport(cmd, snapshot, outPath, "snapshot")
	}),
}

var exportSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Export the JSON schema of the assessment record",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, _ *register.Service, usersSvc *users.Service) error {
		_, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermViewRegister)
		if err != nil {
			return err
		}

		schema, err := register.AssessmentSchema()
		if err != nil {
			logging.Error(ctx, "export schema failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "export schema")
		}

		outPath, _ := cmd.Flags().GetString("out")
		return writeExport(cmd, schema, outPath, "schema")
	}),
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportReportCmd)
	exportCmd.AddCommand(exportSnapshotCmd)
	exportCmd.AddCommand(exportSchemaCmd)

	exportReportCmd.Flags().Uint64("system", 0, "System id")
	exportReportCmd.Flags().String("out", "", "Write to file instead of stdout")
	_ = exportReportCmd.MarkFlagRequired("system")

	exportSnapshotCmd.Flags().Uint64("system", 0, "System id")
	exportSnapshotCmd.Flags().String("out", "", "Write to file instead of stdout")
	_ = exportSnapshotCmd.MarkFlagRequired("system")

	exportSchemaCmd.Flags().String("out", "", "Write to file instead of stdout")
}
