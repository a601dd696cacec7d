package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patchdoc/patchdoc/output"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list <document-id>",
		Short: "List a document's commits, tip first",
		Args:  cobra.ExactArgs(1),
		Example: `  patchdoc list doc-123
  patchdoc list doc-123 --from c2 --to c1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd.Context())

			var fromPtr, toPtr *string
			if from != "" {
				fromPtr = &from
			}

			if to != "" {
				toPtr = &to
			}

			return runList(cfg, cmd, args[0], fromPtr, toPtr)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start listing at this commit (default: tip)")
	cmd.Flags().StringVar(&to, "to", "", "stop listing at this commit, inclusive (default: root)")

	return cmd
}

func runList(cfg Config, cmd *cobra.Command, documentID string, from, to *string) error {
	commits, err := cfg.Store.ListRange(cmd.Context(), documentID, from, to)
	if err != nil {
		return err
	}

	if len(commits) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no commits")

		return nil
	}

	if cfg.JSONOut {
		return output.FormatCommitsJSON(cmd.OutOrStdout(), commits)
	}

	return output.FormatCommitsText(cmd.OutOrStdout(), commits, output.DefaultTextOptions())
}
