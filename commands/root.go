// Package commands contains the CLI command implementations. It is a thin
// wrapper over package docstore: every command validates flags/args, calls
// one or more exported docstore functions, and formats the result. None of
// the commit/patch/squash/conflict semantics live here.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/patchdoc/patchdoc/docstore"
	"github.com/patchdoc/patchdoc/store/memstore"
)

// configKey is the context key for runtime config.
type configKey struct{}

// Config holds runtime configuration for commands.
type Config struct {
	// StorePath is where the in-memory store is snapshotted to/from
	// between CLI invocations, since memstore.Store itself only lives for
	// one process.
	StorePath string

	JSONOut bool

	backend *memstore.Store
	Store   *docstore.Store
}

// getConfig retrieves config from context, or returns defaults.
func getConfig(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey{}).(Config); ok {
		return cfg
	}

	return Config{}
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var (
		storePath string
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:     "patchdoc",
		Short:   "Append-only document commit history for collaborative editing",
		Version: Version,
		Long: `patchdoc manages a document's history as a chain of JSON-patch
commits: append edits, detect and rebase conflicting concurrent edits,
and squash commits together, all without a running server.

Examples:
  # Append a commit (JSON on stdin) to a document's history
  patchdoc write < commit.json

  # List a document's commits, tip first
  patchdoc list <document-id>

  # Merge two consecutive commits into one
  patchdoc squash <document-id> <earlier-id> <later-id>

  # Validate a commit without writing it
  patchdoc validate < commit.json`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			backend := memstore.New()

			if err := loadSnapshot(cmd.Context(), storePath, backend); err != nil {
				return fmt.Errorf("loading store: %w", err)
			}

			cfg := Config{
				StorePath: storePath,
				JSONOut:   jsonOut,
				backend:   backend,
				Store:     docstore.New(backend),
			}

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			if cfg.backend == nil {
				return nil
			}

			return saveSnapshot(cmd.Context(), storePath, cfg.Store, cfg.backend)
		},
	}

	cmd.PersistentFlags().StringVar(
		&storePath, "store", "patchdoc.json",
		"path to the store snapshot file",
	)
	cmd.PersistentFlags().BoolVar(
		&jsonOut, "json", false,
		"output in JSON format (for machine consumption)",
	)

	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewWriteCmd())
	cmd.AddCommand(NewAddCommitsCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewGetCmd())
	cmd.AddCommand(NewSquashCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
