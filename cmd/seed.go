package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"aiahub/internal/bootstrap"
	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/rbac"
	"aiahub/internal/errs"
	"aiahub/internal/usecase/register"
	"aiahub/internal/usecase/users"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load register fixtures from YAML files",
	Long: `Load register entries from YAML fixture files. Seeded systems run
through the same create and edit paths as interactive input, so scores,
statuses, and mitigation items are validated as usual.`,
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermAddSystem)
		if err != nil {
			return err
		}

		file, _ := cmd.Flags().GetString("file")
		dir, _ := cmd.Flags().GetString("dir")

		var paths []string
		if file != "" {
			paths = append(paths, file)
		}
		if dir != "" {
			for _, pattern := range []string{"*.yaml", "*.yml"} {
				matches, err := filepath.Glob(filepath.Join(dir, pattern))
				if err != nil {
					return errs.Wrapf(err, "scan seed directory %q", dir)
				}
				paths = append(paths, matches...)
			}
		}
		if len(paths) == 0 {
			return fmt.Errorf("nothing to seed: pass --file or --dir with fixture files")
		}
		sort.Strings(paths)

		total := 0
		for _, path := range paths {
			created, err := registerSvc.SeedFromFile(ctx, path, actor.Email)
			if err != nil {
				logging.Error(ctx, "seed failed",
					slog.String("path", path),
					slog.Any("err", errs.Loggable(err)))
				return errs.Wrapf(err, "seed from %q", path)
			}
			total += created
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "seeded %d systems from %s\n", created, path); err != nil {
				return errs.Wrap(err, "write seed output")
			}
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "seeded %d systems total\n", total); err != nil {
			return errs.Wrap(err, "write seed output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().String("file", "", "Seed fixture file")
	seedCmd.Flags().String("dir", "", "Directory of *.yaml / *.yml fixtures")
}
