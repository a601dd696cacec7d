// Package docstore is the façade tying validators, the patch algebra, the
// squash engine, the conflict resolver, and the history store together
// into one API surface: validate, validate_many, list, get, write,
// write_many, add_commits, squash, delete, resolve_conflicts, overlap, id.
package docstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/patchdoc/patchdoc/commit"
	"github.com/patchdoc/patchdoc/conflict"
	"github.com/patchdoc/patchdoc/docerr"
	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/patch"
	"github.com/patchdoc/patchdoc/squash"
	"github.com/patchdoc/patchdoc/store"
)

// Store wraps a store.Backend with the full commit/change API surface.
type Store struct {
	backend store.Backend
}

// New wraps backend in a Store.
func New(backend store.Backend) *Store {
	return &Store{backend: backend}
}

// Validate checks a single commit's invariants.
func Validate(c *model.Commit) error { return commit.Validate(c) }

// ValidateMany checks an ordered root->tip chain's invariants.
func ValidateMany(cs []*model.Commit) error { return commit.ValidateMany(cs) }

// Overlap reports whether two patches touch any shared path.
func Overlap(p1, p2 patch.Patch) bool { return patch.Overlap(p1, p2) }

// ID coerces either a *model.Commit or a bare commit-id string to its id.
func ID(x any) (string, error) {
	switch v := x.(type) {
	case *model.Commit:
		return v.ID, nil
	case model.Commit:
		return v.ID, nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("id: unsupported type %T", x)
	}
}

// List returns all commits of a document, tip -> root order.
func (s *Store) List(ctx context.Context, documentID string) ([]*model.Commit, error) {
	return store.RunTxn(ctx, s.backend, func(ctx context.Context, h store.Handle) ([]*model.Commit, error) {
		return h.List(ctx, documentID)
	})
}

// ListRange returns commits with order in [to.order, from.order],
// tip -> root. A nil from means the current tip; a nil to means the root.
func (s *Store) ListRange(
	ctx context.Context, documentID string, from, to *string,
) ([]*model.Commit, error) {
	return store.RunTxn(ctx, s.backend, func(ctx context.Context, h store.Handle) ([]*model.Commit, error) {
		return h.ListRange(ctx, documentID, from, to)
	})
}

// Get returns a single commit.
func (s *Store) Get(ctx context.Context, documentID, commitID string) (*model.Commit, error) {
	return store.RunTxn(ctx, s.backend, func(ctx context.Context, h store.Handle) (*model.Commit, error) {
		return h.Get(ctx, documentID, commitID)
	})
}

// Write persists a single commit, requiring linear append (its
// previous_commit_id must be the document's current tip, or absent for the
// document's first commit). This is the strict path; AddCommits is the
// rebasing path for callers that don't know the current tip.
func (s *Store) Write(ctx context.Context, c *model.Commit) (*model.Commit, error) {
	return store.RunTxn(ctx, s.backend, func(ctx context.Context, h store.Handle) (*model.Commit, error) {
		return writeWithAutosquash(ctx, h, c)
	})
}

// WriteMany persists an ordered root->tip chain atomically, requiring
// linear append the same way Write does.
func (s *Store) WriteMany(ctx context.Context, cs []*model.Commit) ([]*model.Commit, error) {
	return store.RunTxn(ctx, s.backend, func(ctx context.Context, h store.Handle) ([]*model.Commit, error) {
		out := make([]*model.Commit, 0, len(cs))

		for _, c := range cs {
			written, err := writeWithAutosquash(ctx, h, c)
			if err != nil {
				return nil, err
			}

			out = append(out, written)
		}

		return out, nil
	})
}

// writeWithAutosquash applies the autosquash policy before falling back to
// a plain append: if the current tip and c are both
// autosquash-eligible and touch the same path-set, the tip is rewritten in
// place to the squashed commit instead of appending c as a new one.
func writeWithAutosquash(ctx context.Context, h store.Handle, c *model.Commit) (*model.Commit, error) {
	if c.PreviousCommitID != nil {
		history, err := h.List(ctx, c.DocumentID)
		if err == nil && len(history) > 0 && history[0].ID == *c.PreviousCommitID {
			if squashed, ok := squash.MaybeAutosquash(history[0], c); ok {
				if err := h.Overwrite(ctx, squashed); err != nil {
					return nil, err
				}

				return squashed, nil
			}
		}
	}

	return h.Write(ctx, c)
}

// AddCommits validates, resolves conflicts against the document's existing
// history, and writes the (possibly rebased) chain, all in one transaction:
// either the rebased chain commits, or the transaction aborts with the
// Conflict error. This is the rebasing counterpart to Write.
func (s *Store) AddCommits(ctx context.Context, cs []*model.Commit) ([]*model.Commit, error) {
	if err := commit.ValidateMany(cs); err != nil {
		return nil, err
	}

	return store.RunTxn(ctx, s.backend, func(ctx context.Context, h store.Handle) ([]*model.Commit, error) {
		var documentID string
		if len(cs) > 0 {
			documentID = cs[0].DocumentID
		}

		history, err := h.List(ctx, documentID)
		if err != nil {
			return nil, err
		}

		resolved, err := conflict.Resolve(cs, history)
		if err != nil {
			return nil, err
		}

		out := make([]*model.Commit, 0, len(resolved))

		for _, c := range resolved {
			written, err := writeWithAutosquash(ctx, h, c)
			if err != nil {
				return nil, err
			}

			out = append(out, written)
		}

		return out, nil
	})
}

// ResolveConflicts exposes the conflict resolver directly, for callers that
// want to inspect the outcome before deciding whether to write — a client
// rebasing pending local edits against newly fetched history, say.
func (s *Store) ResolveConflicts(
	ctx context.Context, incoming []*model.Commit, history []*model.Commit,
) ([]*model.Commit, error) {
	return conflict.Resolve(incoming, history)
}

// Squash merges two consecutive commits (id1 is the predecessor of id2)
// into one, atomically: the survivor (id1) is overwritten with the merged
// fields, id2 is deleted, and — if id2 wasn't the tip — id2's child is
// re-parented onto id1 so every commit's previous_commit_id still names a
// commit that actually exists. Every commit after id2 moves one order down,
// so order stays dense along the chain.
func (s *Store) Squash(ctx context.Context, documentID, id1, id2 string) (*model.Commit, error) {
	return store.RunTxn(ctx, s.backend, func(ctx context.Context, h store.Handle) (*model.Commit, error) {
		earlier, err := h.Get(ctx, documentID, id1)
		if err != nil {
			return nil, err
		}

		later, err := h.Get(ctx, documentID, id2)
		if err != nil {
			return nil, err
		}

		if later.PreviousCommitID == nil || *later.PreviousCommitID != earlier.ID {
			return nil, docerr.NewValidation(
				"Commit", "previous_commit_id", earlier.ID, fmt.Sprintf("%v", later.PreviousCommitID),
			)
		}

		child, hasChild, err := h.ChildOf(ctx, documentID, later.ID)
		if err != nil {
			return nil, err
		}

		merged := squash.Do(earlier, later)

		if err := h.Overwrite(ctx, merged); err != nil {
			return nil, err
		}

		if err := h.Delete(ctx, documentID, later.ID); err != nil {
			return nil, err
		}

		for hasChild {
			shifted := *child
			shifted.Order--

			if shifted.PreviousCommitID != nil && *shifted.PreviousCommitID == later.ID {
				shifted.PreviousCommitID = &merged.ID
			}

			if err := h.Overwrite(ctx, &shifted); err != nil {
				return nil, err
			}

			child, hasChild, err = h.ChildOf(ctx, documentID, shifted.ID)
			if err != nil {
				return nil, err
			}
		}

		return merged, nil
	})
}

// Delete removes a commit. Idempotent: calling it twice both succeed.
func (s *Store) Delete(ctx context.Context, documentID, commitID string) error {
	_, err := store.RunTxn(ctx, s.backend, func(ctx context.Context, h store.Handle) (struct{}, error) {
		return struct{}{}, h.Delete(ctx, documentID, commitID)
	})

	return err
}

// NewCommitID generates a fresh UUIDv4 for a commit id, assigned at
// creation.
func NewCommitID() string {
	return uuid.New().String()
}
