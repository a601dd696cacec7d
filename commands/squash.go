package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/output"
	"github.com/patchdoc/patchdoc/squashplan"
)

// NewSquashCmd creates the squash command.
func NewSquashCmd() *cobra.Command {
	var plan bool

	cmd := &cobra.Command{
		Use:   "squash <document-id> [earlier-id] [later-id]",
		Short: "Merge commits together",
		Long: `Merge two consecutive commits into one (earlier-id must be
later-id's previous_commit_id). With --plan, instead read a squashplan.Plan
as JSON from stdin and run its whole sequence of keep/squash/drop steps.`,
		Example: `  patchdoc squash doc-123 c1 c2
  patchdoc squash doc-123 --plan < plan.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd.Context())

			if plan {
				return runSquashPlan(cfg, cmd, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			if len(args) != 3 {
				return fmt.Errorf("squash requires <document-id> <earlier-id> <later-id>, or --plan")
			}

			merged, err := cfg.Store.Squash(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			if cfg.JSONOut {
				return output.FormatCommitJSON(cmd.OutOrStdout(), merged)
			}

			return output.FormatCommitsText(
				cmd.OutOrStdout(), []*model.Commit{merged}, output.DefaultTextOptions(),
			)
		},
	}

	cmd.Flags().BoolVar(&plan, "plan", false, "read a squashplan.Plan from stdin instead")

	return cmd
}

func runSquashPlan(cfg Config, cmd *cobra.Command, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	p, err := squashplan.Parse(data)
	if err != nil {
		return err
	}

	result, err := squashplan.Apply(cmd.Context(), cfg.Store, p)
	if err != nil {
		return err
	}

	if cfg.JSONOut {
		return output.FormatCommitsJSON(w, result)
	}

	return output.FormatCommitsText(w, result, output.DefaultTextOptions())
}
