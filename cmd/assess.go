package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"aiahub/internal/bootstrap"
	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/assessment"
	"aiahub/internal/domain/rbac"
	"aiahub/internal/errs"
	"aiahub/internal/usecase/register"
	"aiahub/internal/usecase/users"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Fill in the impact assessment for a registered system",
}

// flagPtr turns a string flag into an optional patch field. Flags the
// caller never set stay nil so the record keeps its current value.
func flagPtr(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

var assessScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one risk dimension (0-5) with a justification",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermEditAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		dimension, _ := cmd.Flags().GetString("dimension")
		score, _ := cmd.Flags().GetInt("score")
		justification, _ := cmd.Flags().GetString("justification")

		record, err := registerSvc.ScoreDimension(ctx, register.ScoreDimensionInput{
			SystemID:      systemID,
			Dimension:     dimension,
			Score:         score,
			Justification: justification,
			Actor:         actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "score dimension failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "score dimension")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "system #%d %q = %d (total %d/%d, risk %s)\n",
			record.SystemID, dimension, score, record.TotalScore, assessment.MaxTotalScore, record.RiskCategory.Category); err != nil {
			return errs.Wrap(err, "write score output")
		}
		return nil
	}),
}

var assessMitigateCmd = &cobra.Command{
	Use:   "mitigate",
	Short: "Maintain the mitigation plan",
}

var assessMitigateAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a mitigation item",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermEditAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		dimension, _ := cmd.Flags().GetString("dimension")
		risk, _ := cmd.Flags().GetString("risk")
		action, _ := cmd.Flags().GetString("action")
		responsible, _ := cmd.Flags().GetString("responsible")
		targetDate, _ := cmd.Flags().GetString("target-date")
		status, _ := cmd.Flags().GetString("status")

		itemID, err := registerSvc.AddMitigation(ctx, register.AddMitigationInput{
			SystemID: systemID,
			Item: assessment.MitigationItem{
				Dimension:       dimension,
				RiskDescription: risk,
				Action:          action,
				Responsible:     responsible,
				TargetDate:      targetDate,
				Status:          status,
			},
			Actor: actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "add mitigation failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "add mitigation")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "added mitigation item: %s\n", itemID); err != nil {
			return errs.Wrap(err, "write mitigate output")
		}
		return nil
	}),
}

var assessMitigateUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update fields of a mitigation item",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermEditAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		itemID, _ := cmd.Flags().GetString("item")

		_, err = registerSvc.UpdateMitigation(ctx, register.UpdateMitigationInput{
			SystemID: systemID,
			ItemID:   itemID,
			Patch: assessment.MitigationPatch{
				Dimension:       flagPtr(cmd, "dimension"),
				RiskDescription: flagPtr(cmd, "risk"),
				Action:          flagPtr(cmd, "action"),
				Responsible:     flagPtr(cmd, "responsible"),
				TargetDate:      flagPtr(cmd, "target-date"),
				Status:          flagPtr(cmd, "status"),
			},
			Actor: actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "update mitigation failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "update mitigation")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "updated mitigation item: %s\n", itemID); err != nil {
			return errs.Wrap(err, "write mitigate output")
		}
		return nil
	}),
}

var assessMitigateRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a mitigation item",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermEditAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		itemID, _ := cmd.Flags().GetString("item")

		_, err = registerSvc.RemoveMitigation(ctx, register.RemoveMitigationInput{
			SystemID: systemID,
			ItemID:   itemID,
			Actor:    actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "remove mitigation failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "remove mitigation")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "removed mitigation item: %s\n", itemID); err != nil {
			return errs.Wrap(err, "write mitigate output")
		}
		return nil
	}),
}

var assessApproveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Record an assessor, reviewer, or approver sign-off",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermApproveAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")
		signoffRole, _ := cmd.Flags().GetString("role")

		name := flagPtr(cmd, "name")
		title := flagPtr(cmd, "title")
		date := flagPtr(cmd, "date")
		comments := flagPtr(cmd, "comments")
		decision := flagPtr(cmd, "decision")
		conditions := flagPtr(cmd, "conditions")

		var patch assessment.ApprovalPatch
		switch signoffRole {
		case "assessor":
			if comments != nil || decision != nil || conditions != nil {
				return fmt.Errorf("%w: --comments, --decision and --conditions do not apply to the assessor sign-off", assessment.ErrInvalidArgument)
			}
			patch.Assessor = &assessment.SignoffPatch{Name: name, Role: title, Date: date}
		case "reviewer":
			if decision != nil || conditions != nil {
				return fmt.Errorf("%w: --decision and --conditions apply to the approver sign-off only", assessment.ErrInvalidArgument)
			}
			patch.Reviewer = &assessment.ReviewerSignoffPatch{Name: name, Role: title, Comments: comments, Date: date}
		case "approver":
			if comments != nil {
				return fmt.Errorf("%w: --comments applies to the reviewer sign-off only", assessment.ErrInvalidArgument)
			}
			patch.Approver = &assessment.ApproverSignoffPatch{Name: name, Role: title, Decision: decision, Conditions: conditions, Date: date}
		default:
			return fmt.Errorf("%w: sign-off role %q (want assessor, reviewer, or approver)", assessment.ErrInvalidArgument, signoffRole)
		}

		record, err := registerSvc.UpdateApprovals(ctx, register.UpdateApprovalsInput{
			SystemID: systemID,
			Patch:    patch,
			Actor:    actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "update approvals failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "update approvals")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "system #%d %s sign-off recorded\n", record.SystemID, signoffRole); err != nil {
			return errs.Wrap(err, "write approve output")
		}
		return nil
	}),
}

var assessMetadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Update assessment metadata (assessors, frameworks, date)",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermEditAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")

		patch := assessment.MetadataPatch{
			ReferencedFrameworks: flagPtr(cmd, "frameworks"),
			AssessmentDate:       flagPtr(cmd, "date"),
		}
		if cmd.Flags().Changed("assessed-by") {
			assessedBy, _ := cmd.Flags().GetStringSlice("assessed-by")
			patch.AssessedBy = assessedBy
		}

		record, err := registerSvc.UpdateMetadata(ctx, register.UpdateMetadataInput{
			SystemID: systemID,
			Patch:    patch,
			Actor:    actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "update metadata failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "update metadata")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "system #%d metadata updated\n", record.SystemID); err != nil {
			return errs.Wrap(err, "write metadata output")
		}
		return nil
	}),
}

var assessDetailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Update system details, technical specs, data, and deployment context",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermEditAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")

		record, err := registerSvc.UpdateSystemDetails(ctx, register.UpdateSystemDetailsInput{
			SystemID: systemID,
			Patch: assessment.SystemDetailsPatch{
				SystemName:    flagPtr(cmd, "name"),
				AgencyName:    flagPtr(cmd, "agency"),
				SystemPurpose: flagPtr(cmd, "purpose"),
				TechnicalSpecs: assessment.TechnicalSpecsPatch{
					ModelType:     flagPtr(cmd, "model-type"),
					Algorithms:    flagPtr(cmd, "algorithms"),
					LanguageLibs:  flagPtr(cmd, "language-libs"),
					HardwareInfra: flagPtr(cmd, "hardware"),
				},
				DataDetails: assessment.DataDetailsPatch{
					Sources:         flagPtr(cmd, "data-sources"),
					VolumeVelocity:  flagPtr(cmd, "data-volume"),
					Types:           flagPtr(cmd, "data-types"),
					RetentionPolicy: flagPtr(cmd, "retention"),
				},
				DeploymentContext: assessment.DeploymentContextPatch{
					OperationalEnv:      flagPtr(cmd, "environment"),
					TargetUsersAffected: flagPtr(cmd, "users-affected"),
					DecisionAuthority:   flagPtr(cmd, "decision-authority"),
				},
				Procurement: assessment.ProcurementPatch{
					Method:      flagPtr(cmd, "procurement-method"),
					EthicalReqs: flagPtr(cmd, "ethical-reqs"),
				},
				RelatedRefs: assessment.RelatedRefsPatch{
					PIARef:           flagPtr(cmd, "pia-ref"),
					OtherAssessments: flagPtr(cmd, "other-assessments"),
				},
			},
			Actor: actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "update details failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "update details")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "system #%d details updated\n", record.SystemID); err != nil {
			return errs.Wrap(err, "write details output")
		}
		return nil
	}),
}

var assessMonitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Update the monitoring plan and review cadence",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermEditAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")

		record, err := registerSvc.UpdateMonitoring(ctx, register.UpdateMonitoringInput{
			SystemID: systemID,
			Patch: assessment.MonitoringPatch{
				PlanRef:         flagPtr(cmd, "plan-ref"),
				ReviewFrequency: flagPtr(cmd, "frequency"),
				NextReviewDate:  flagPtr(cmd, "next-review"),
			},
			Actor: actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "update monitoring failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "update monitoring")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "system #%d monitoring updated\n", record.SystemID); err != nil {
			return errs.Wrap(err, "write monitor output")
		}
		return nil
	}),
}

var assessLinksCmd = &cobra.Command{
	Use:   "links",
	Short: "Update inventory and transparency references",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, registerSvc *register.Service, usersSvc *users.Service) error {
		actor, ctx, err := authorizeActor(cmd, usersSvc, rbac.PermEditAIA)
		if err != nil {
			return err
		}

		systemID, _ := cmd.Flags().GetUint64("system")

		record, err := registerSvc.UpdateLinks(ctx, register.UpdateLinksInput{
			SystemID: systemID,
			Patch: assessment.LinksPatch{
				AIInventoryRef:   flagPtr(cmd, "inventory-ref"),
				TransparencyLink: flagPtr(cmd, "transparency-link"),
			},
			Actor: actor.Email,
		})
		if err != nil {
			logging.Error(ctx, "update links failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "update links")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "system #%d links updated\n", record.SystemID); err != nil {
			return errs.Wrap(err, "write links output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(assessCmd)
	assessCmd.AddCommand(assessScoreCmd)
	assessCmd.AddCommand(assessMitigateCmd)
	assessCmd.AddCommand(assessApproveCmd)
	assessCmd.AddCommand(assessMetadataCmd)
	assessCmd.AddCommand(assessDetailsCmd)
	assessCmd.AddCommand(assessMonitorCmd)
	assessCmd.AddCommand(assessLinksCmd)
	assessMitigateCmd.AddCommand(assessMitigateAddCmd)
	assessMitigateCmd.AddCommand(assessMitigateUpdateCmd)
	assessMitigateCmd.AddCommand(assessMitigateRemoveCmd)

	assessScoreCmd.Flags().Uint64("system", 0, "System id")
	assessScoreCmd.Flags().String("dimension", "", "Dimension name, e.g. \"Privacy Risk\"")
	assessScoreCmd.Flags().Int("score", 0, "Score from 0 (none) to 5 (critical)")
	assessScoreCmd.Flags().String("justification", "", "Why the score was given")
	_ = assessScoreCmd.MarkFlagRequired("system")
	_ = assessScoreCmd.MarkFlagRequired("dimension")
	_ = assessScoreCmd.MarkFlagRequired("score")

	assessMitigateAddCmd.Flags().Uint64("system", 0, "System id")
	assessMitigateAddCmd.Flags().String("dimension", "", "Dimension the risk belongs to")
	assessMitigateAddCmd.Flags().String("risk", "", "Risk description")
	assessMitigateAddCmd.Flags().String("action", "", "Mitigation action")
	assessMitigateAddCmd.Flags().String("responsible", "", "Owner of the action")
	assessMitigateAddCmd.Flags().String("target-date", "", "Target date (YYYY-MM-DD)")
	assessMitigateAddCmd.Flags().String("status", "", "Status (defaults to Planned)")
	_ = assessMitigateAddCmd.MarkFlagRequired("system")
	_ = assessMitigateAddCmd.MarkFlagRequired("risk")
	_ = assessMitigateAddCmd.MarkFlagRequired("action")

	assessMitigateUpdateCmd.Flags().Uint64("system", 0, "System id")
	assessMitigateUpdateCmd.Flags().String("item", "", "Mitigation item id")
	assessMitigateUpdateCmd.Flags().String("dimension", "", "Dimension the risk belongs to")
	assessMitigateUpdateCmd.Flags().String("risk", "", "Risk description")
	assessMitigateUpdateCmd.Flags().String("action", "", "Mitigation action")
	assessMitigateUpdateCmd.Flags().String("responsible", "", "Owner of the action")
	assessMitigateUpdateCmd.Flags().String("target-date", "", "Target date (YYYY-MM-DD)")
	assessMitigateUpdateCmd.Flags().String("status", "", "Status (Planned|In Progress|Completed|Cancelled)")
	_ = assessMitigateUpdateCmd.MarkFlagRequired("system")
	_ = assessMitigateUpdateCmd.MarkFlagRequired("item")

	assessMitigateRemoveCmd.Flags().Uint64("system", 0, "System id")
	assessMitigateRemoveCmd.Flags().String("item", "", "Mitigation item id")
	_ = assessMitigateRemoveCmd.MarkFlagRequired("system")
	_ = assessMitigateRemoveCmd.MarkFlagRequired("item")

	assessApproveCmd.Flags().Uint64("system", 0, "System id")
	assessApproveCmd.Flags().String("role", "", "Sign-off role (assessor|reviewer|approver)")
	assessApproveCmd.Flags().String("name", "", "Signatory name")
	assessApproveCmd.Flags().String("title", "", "Signatory role title")
	assessApproveCmd.Flags().String("date", "", "Sign-off date (YYYY-MM-DD)")
	assessApproveCmd.Flags().String("comments", "", "Reviewer comments")
	assessApproveCmd.Flags().String("decision", "", "Approver decision")
	assessApproveCmd.Flags().String("conditions", "", "Approval conditions")
	_ = assessApproveCmd.MarkFlagRequired("system")
	_ = assessApproveCmd.MarkFlagRequired("role")

	assessMetadataCmd.Flags().Uint64("system", 0, "System id")
	assessMetadataCmd.Flags().StringSlice("assessed-by", nil, "Assessor names (repeat or comma-separate)")
	assessMetadataCmd.Flags().String("frameworks", "", "Referenced frameworks")
	assessMetadataCmd.Flags().String("date", "", "Assessment date (YYYY-MM-DD)")
	_ = assessMetadataCmd.MarkFlagRequired("system")

	assessDetailsCmd.Flags().Uint64("system", 0, "System id")
	assessDetailsCmd.Flags().String("name", "", "System name")
	assessDetailsCmd.Flags().String("agency", "", "Owning agency or department")
	assessDetailsCmd.Flags().String("purpose", "", "System purpose")
	assessDetailsCmd.Flags().String("model-type", "", "Model type")
	assessDetailsCmd.Flags().String("algorithms", "", "Algorithms")
	assessDetailsCmd.Flags().String("language-libs", "", "Languages and libraries")
	assessDetailsCmd.Flags().String("hardware", "", "Hardware and infrastructure")
	assessDetailsCmd.Flags().String("data-sources", "", "Data sources")
	assessDetailsCmd.Flags().String("data-volume", "", "Data volume and velocity")
	assessDetailsCmd.Flags().String("data-types", "", "Data types")
	assessDetailsCmd.Flags().String("retention", "", "Data retention policy")
	assessDetailsCmd.Flags().String("environment", "", "Operational environment")
	assessDetailsCmd.Flags().String("users-affected", "", "Target users and affected people")
	assessDetailsCmd.Flags().String("decision-authority", "", "Decision authority")
	assessDetailsCmd.Flags().String("procurement-method", "", "Procurement method")
	assessDetailsCmd.Flags().String("ethical-reqs", "", "Ethical requirements in procurement")
	assessDetailsCmd.Flags().String("pia-ref", "", "Privacy impact assessment reference")
	assessDetailsCmd.Flags().String("other-assessments", "", "Other assessment references")
	_ = assessDetailsCmd.MarkFlagRequired("system")

	assessMonitorCmd.Flags().Uint64("system", 0, "System id")
	assessMonitorCmd.Flags().String("plan-ref", "", "Monitoring plan reference")
	assessMonitorCmd.Flags().String("frequency", "", "Review frequency, e.g. Quarterly")
	assessMonitorCmd.Flags().String("next-review", "", "Next review date (YYYY-MM-DD)")
	_ = assessMonitorCmd.MarkFlagRequired("system")

	assessLinksCmd.Flags().Uint64("system", 0, "System id")
	assessLinksCmd.Flags().String("inventory-ref", "", "AI inventory reference")
	assessLinksCmd.Flags().String("transparency-link", "", "Public transparency statement link")
	_ = assessLinksCmd.MarkFlagRequired("system")
}
