package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patchdoc/patchdoc/docstore"
	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/output"
)

// NewAddCommitsCmd creates the add-commits command.
func NewAddCommitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-commits",
		Short: "Add a chain of commits, rebasing around concurrent edits",
		Long: `Read a JSON array of commits (root -> tip) from stdin and add them
to their document's history. Unlike write, the chain doesn't need to
start from the document's exact current tip: if history has moved on
without conflicting with the incoming chain, the first incoming commit
is transparently rebased onto the new tip. If the two chains touch the
same patch path, the add is rejected with a conflict error instead.`,
		Example: `  patchdoc add-commits < commits.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())

			var commits []*model.Commit
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&commits); err != nil {
				return fmt.Errorf("decoding commits: %w", err)
			}

			for _, c := range commits {
				if c.ID == "" {
					c.ID = docstore.NewCommitID()
				}
			}

			written, err := cfg.Store.AddCommits(cmd.Context(), commits)
			if err != nil {
				return err
			}

			if cfg.JSONOut {
				return output.FormatCommitsJSON(cmd.OutOrStdout(), written)
			}

			return output.FormatCommitsText(cmd.OutOrStdout(), written, output.DefaultTextOptions())
		},
	}

	return cmd
}
