// Package squash merges two consecutive commits into one, including
// inverse-patch composition, and implements the autosquash policy applied
// at write time.
package squash

import (
	"fmt"

	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/patch"
)

// Do merges earlier and later into a single surviving commit:
//
//   - id, previous_commit_id, order are taken from earlier (the survivor).
//   - autosquash, meta, updated_at are taken from later (the absorbed
//     commit).
//   - patch is the forward composition of earlier.patch then later.patch.
//   - reverse_patch is the inverse composition, in reverse order: undoing
//     "earlier then later" means undoing later's effect first.
//
// earlier.DocumentID == later.DocumentID is a precondition; a violation is
// a programmer error (mismatched commits were never from the same chain),
// not a runtime case a caller should need to handle, so it panics rather
// than returning an error.
func Do(earlier, later *model.Commit) *model.Commit {
	if earlier.DocumentID != later.DocumentID {
		panic(fmt.Sprintf(
			"squash: commits belong to different documents (%s != %s)",
			earlier.DocumentID, later.DocumentID,
		))
	}

	return &model.Commit{
		ID:               earlier.ID,
		PreviousCommitID: earlier.PreviousCommitID,
		DocumentID:       earlier.DocumentID,
		Order:            earlier.Order,
		Autosquash:       later.Autosquash,
		Patch:            patch.Squash(earlier.Patch, later.Patch),
		ReversePatch:     patch.Squash(later.ReversePatch, earlier.ReversePatch),
		Meta:             later.Meta,
		UpdatedAt:        later.UpdatedAt,
	}
}

// MaybeAutosquash implements the autosquash policy: if the tip
// commit and the incoming commit are both marked autosquash and their
// patches touch the exact same set of paths, they are squashed in place,
// preserving order/previous_commit_id from the tip. A commit with
// autosquash = false is never squashed — writing it as a distinct commit is
// exactly what "terminates the autosquash run" means in practice, since the
// policy is evaluated pairwise against the current tip at write time.
//
// "Same path-set" is fixed as exact set equality of operation paths, not
// prefix equivalence.
func MaybeAutosquash(tip, incoming *model.Commit) (*model.Commit, bool) {
	if tip == nil || !tip.Autosquash || !incoming.Autosquash {
		return nil, false
	}

	if !samePathSet(tip.Patch, incoming.Patch) {
		return nil, false
	}

	return Do(tip, incoming), true
}

func samePathSet(a, b patch.Patch) bool {
	aPaths := a.Paths()
	bPaths := b.Paths()

	if len(aPaths) != len(bPaths) {
		return false
	}

	for _, p := range aPaths {
		found := false

		for _, q := range bPaths {
			if p.Equal(q) {
				found = true

				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}
