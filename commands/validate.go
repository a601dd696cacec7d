package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/patchdoc/patchdoc/docstore"
	"github.com/patchdoc/patchdoc/model"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a commit without writing it",
		Long: `Read a single commit as JSON from stdin and check its invariants
(component C): id, previous_commit_id and document_id are UUIDv4s, the
patch uses known ops on non-empty paths, and the commit is not its own
parent. reverse_patch is not checked. Does not touch the store.`,
		Example: `  patchdoc validate < commit.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}

func runValidate(r io.Reader, w io.Writer) error {
	var c model.Commit

	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return fmt.Errorf("decoding commit: %w", err)
	}

	if err := docstore.Validate(&c); err != nil {
		return err
	}

	fmt.Fprintln(w, "ok")

	return nil
}
