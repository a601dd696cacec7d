// Package conflict walks incoming commits against existing history,
// detecting overlap, and either rebases or reports an unresolvable
// Conflict.
package conflict

import (
	"github.com/patchdoc/patchdoc/docerr"
	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/patch"
)

// Resolve places incoming onto history, rebasing or rejecting it as needed.
//
// incoming is root -> tip order; history is tip -> root order.
//
//  1. empty incoming -> success, nil.
//  2. empty history -> incoming accepted verbatim.
//  3. incoming[0].previous_commit_id == history[0].id -> incoming already
//     extends the tip, returned unchanged.
//  4. otherwise scan history tip -> root, stopping at (not including) the
//     commit incoming[0].previous_commit_id names, or all the way to root
//     if that commit isn't present in history:
//     - any overlap -> docerr.Conflict{commit_id, conflicts_with}
//     - no overlap -> rebase: incoming[0].previous_commit_id is rewritten
//       to history[0].id; every other incoming commit keeps its original
//       linkage (validate_many already proved internal consistency).
//
// Only the returned slice's first element is ever a new value; it iterates
// rather than recurses so long histories don't grow the call stack.
func Resolve(incoming, history []*model.Commit) ([]*model.Commit, error) {
	if len(incoming) == 0 {
		return nil, nil
	}

	if len(history) == 0 {
		return incoming, nil
	}

	tip := history[0]
	first := incoming[0]

	if first.PreviousCommitID != nil && *first.PreviousCommitID == tip.ID {
		return incoming, nil
	}

	for _, h := range history {
		if first.PreviousCommitID != nil && h.ID == *first.PreviousCommitID {
			break
		}

		if patch.Overlap(first.Patch, h.Patch) {
			return nil, docerr.NewConflict(first.ID, h.ID)
		}
	}

	return rebaseOnto(incoming, tip.ID), nil
}

// rebaseOnto returns a copy of incoming with the first commit's
// previous_commit_id rewritten to newParent. The first element is
// shallow-copied so the caller's original slice and commit are untouched;
// the rest of the chain is passed through as-is.
func rebaseOnto(incoming []*model.Commit, newParent string) []*model.Commit {
	out := make([]*model.Commit, len(incoming))
	copy(out, incoming)

	rewritten := *incoming[0]
	rewritten.PreviousCommitID = &newParent
	out[0] = &rewritten

	return out
}
