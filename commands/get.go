package commands

import (
	"github.com/spf13/cobra"

	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/output"
)

// NewGetCmd creates the get command.
func NewGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "get <document-id> <commit-id>",
		Short:   "Print a single commit",
		Args:    cobra.ExactArgs(2),
		Example: `  patchdoc get doc-123 c1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd.Context())

			c, err := cfg.Store.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			if cfg.JSONOut {
				return output.FormatCommitJSON(cmd.OutOrStdout(), c)
			}

			return output.FormatCommitsText(cmd.OutOrStdout(), []*model.Commit{c}, output.DefaultTextOptions())
		},
	}

	return cmd
}
