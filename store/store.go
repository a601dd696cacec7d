// Package store defines the history store interface the commit/change
// subsystem depends on: list/get/write/delete under an atomic transaction.
// The storage layer itself — durability, real isolation — is an external
// collaborator; this package only fixes the contract and, in package
// store/memstore, a reference in-memory implementation used for tests and
// local exploration.
package store

import (
	"context"

	"github.com/patchdoc/patchdoc/model"
)

// Handle exposes the store operations available inside a single atomic
// transaction. Every call is a suspension point where another transaction
// could in principle interleave; the transaction as a whole either commits
// every call's effect or rolls all of them back.
type Handle interface {
	// List returns all commits of a document, tip -> root order.
	List(ctx context.Context, documentID string) ([]*model.Commit, error)

	// ListRange returns commits with order in [to.order, from.order],
	// tip -> root. A nil from means the current tip; a nil to means the
	// chain root.
	ListRange(ctx context.Context, documentID string, from, to *string) ([]*model.Commit, error)

	// Get returns a single commit, or a *docerr.DoesNotExist.
	Get(ctx context.Context, documentID, commitID string) (*model.Commit, error)

	// Write validates c, checks that its previous_commit_id names the
	// document's current tip (or that c is the document's first commit),
	// rejects a duplicate id, assigns order, and computes reverse_patch.
	Write(ctx context.Context, c *model.Commit) (*model.Commit, error)

	// WriteMany writes an ordered root -> tip chain as a single
	// all-or-nothing batch of Write.
	WriteMany(ctx context.Context, cs []*model.Commit) ([]*model.Commit, error)

	// Overwrite replaces the stored record of an existing commit, found by
	// its id and document_id, with c; it neither adds nor removes commits.
	// It is how squash rewrites the surviving commit and re-parents and
	// re-orders the absorbed commit's descendants, all inside the same
	// transaction.
	Overwrite(ctx context.Context, c *model.Commit) error

	// ChildOf returns the commit whose previous_commit_id is commitID, if
	// any (used by squash to find what must be re-parented).
	ChildOf(ctx context.Context, documentID, commitID string) (*model.Commit, bool, error)

	// Delete removes a commit. Idempotent: succeeds even if absent.
	Delete(ctx context.Context, documentID, commitID string) error
}

// Backend is the contract required from the storage layer: an atomic
// transaction primitive yielding a Handle.
type Backend interface {
	// Txn runs fn atomically: either every Handle call inside it commits,
	// or none of them do and the abort reason is returned unchanged.
	Txn(ctx context.Context, fn func(ctx context.Context, h Handle) (any, error)) (any, error)
}

// RunTxn is a typed convenience wrapper over Backend.Txn, since Go
// interfaces can't carry a generic method directly.
func RunTxn[V any](
	ctx context.Context, b Backend,
	fn func(ctx context.Context, h Handle) (V, error),
) (V, error) {
	var zero V

	result, err := b.Txn(ctx, func(ctx context.Context, h Handle) (any, error) {
		return fn(ctx, h)
	})
	if err != nil {
		return zero, err
	}

	v, _ := result.(V)

	return v, nil
}
