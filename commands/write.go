package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/patchdoc/patchdoc/docstore"
	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/output"
)

// NewWriteCmd creates the write command.
func NewWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Append a commit to a document's history",
		Long: `Read a single commit as JSON from stdin and append it to its
document's history. The commit's previous_commit_id must name the
document's current tip, or be absent for the document's first commit;
otherwise the write is rejected (see add-commits for the rebasing path).`,
		Example: `  patchdoc write < commit.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())

			return runWrite(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}

func runWrite(ctx context.Context, cfg Config, r io.Reader, w io.Writer) error {
	var c model.Commit

	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return fmt.Errorf("decoding commit: %w", err)
	}

	if c.ID == "" {
		c.ID = docstore.NewCommitID()
	}

	written, err := cfg.Store.Write(ctx, &c)
	if err != nil {
		return err
	}

	if cfg.JSONOut {
		return output.FormatCommitJSON(w, written)
	}

	return output.FormatCommitsText(w, []*model.Commit{written}, output.DefaultTextOptions())
}
