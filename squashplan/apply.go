package squashplan

import (
	"context"
	"fmt"

	"github.com/patchdoc/patchdoc/docstore"
	"github.com/patchdoc/patchdoc/model"
)

// Apply executes a validated plan's steps in order against store, one
// docstore call per step, and returns the surviving commit chain
// afterwards (tip -> root).
//
// squash steps merge the step's commit into whatever commit the previous
// step left behind — the survivor keeps its id across a squash (the
// earlier commit's id always wins, per squash.Do), so Apply carries it
// forward itself rather than asking the caller to repeat it. drop steps are
// only accepted when the named commit is still the chain's tip; dropping
// an interior commit would orphan its child, which the store's Delete
// doesn't attempt to repair.
func Apply(ctx context.Context, store *docstore.Store, plan *Plan) ([]*model.Commit, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	var prevSurvivor string

	for i, step := range plan.Steps {
		switch step.Action {
		case ActionKeep:
			prevSurvivor = step.CommitID

		case ActionSquash:
			if prevSurvivor == "" {
				return nil, fmt.Errorf("step %d: squash with no prior survivor", i+1)
			}

			merged, err := store.Squash(ctx, plan.DocumentID, prevSurvivor, step.CommitID)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}

			prevSurvivor = merged.ID

		case ActionDrop:
			tip, err := store.Get(ctx, plan.DocumentID, step.CommitID)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}

			history, err := store.List(ctx, plan.DocumentID)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}

			if len(history) == 0 || history[0].ID != tip.ID {
				return nil, fmt.Errorf(
					"step %d: %s is not the current tip, cannot drop an interior commit",
					i+1, step.CommitID,
				)
			}

			if err := store.Delete(ctx, plan.DocumentID, step.CommitID); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}

			prevSurvivor = ""
		}
	}

	return store.List(ctx, plan.DocumentID)
}
