// Package applier folds a document's commit chain into a materialized
// state value. The per-operation semantics (update/delete/add/remove) live
// in package patch since they're inseparable from the patch algebra's
// Invert; this package is the document-level façade over them — "applying
// a commit", "applying a chain".
package applier

import (
	"fmt"

	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/patch"
)

// Commit applies a single commit's patch to value, left to right.
func Commit(value any, c *model.Commit) (any, error) {
	next, err := patch.ApplyPatch(value, c.Patch)
	if err != nil {
		return nil, fmt.Errorf("applying commit %s: %w", c.ID, err)
	}

	return next, nil
}

// Chain folds an ordered root-to-tip commit chain over an initial state,
// one commit at a time.
func Chain(initial any, chain []*model.Commit) (any, error) {
	cur := initial

	for _, c := range chain {
		next, err := Commit(cur, c)
		if err != nil {
			return nil, err
		}

		cur = next
	}

	return cur, nil
}

// Document materializes a Document's State by folding its commit chain
// (root-to-tip order) over a nil initial value.
func Document(chainRootToTip []*model.Commit) (*model.Document, error) {
	if len(chainRootToTip) == 0 {
		return &model.Document{}, nil
	}

	docID := chainRootToTip[0].DocumentID

	state, err := Chain(nil, chainRootToTip)
	if err != nil {
		return nil, err
	}

	return &model.Document{ID: docID, State: state}, nil
}
