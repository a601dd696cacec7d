// Package commit implements single-commit validation and ordered-chain
// validation.
package commit

import (
	"fmt"

	"github.com/patchdoc/patchdoc/docerr"
	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/validate"
)

// Validate checks a single commit's invariants, fail-fast on the first
// offending field, in this order:
//
//  1. id is UUIDv4
//  2. previous_commit_id is UUIDv4 or absent
//  3. document_id is UUIDv4
//  4. patch is a valid JSON patch
//  5. id != previous_commit_id
func Validate(c *model.Commit) error {
	if err := validate.UUID4("Commit", "id", c.ID); err != nil {
		return err
	}

	if err := validate.MaybeUUID4("Commit", "previous_commit_id", c.PreviousCommitID); err != nil {
		return err
	}

	if err := validate.UUID4("Commit", "document_id", c.DocumentID); err != nil {
		return err
	}

	if err := validatePatchField(c); err != nil {
		return err
	}

	if c.PreviousCommitID != nil && *c.PreviousCommitID == c.ID {
		return docerr.NewValidation(
			"Commit", "previous_commit_id", "not equal to id", c.ID,
		)
	}

	return nil
}

// validatePatchField re-validates c.Patch's structural shape. Commits built
// directly (not via validate.JSONPatch from raw bytes) may already carry a
// parsed patch.Patch, so this re-derives the shape check from the parsed
// form rather than requiring callers to keep the raw bytes around.
func validatePatchField(c *model.Commit) error {
	for i, op := range c.Patch {
		if !op.Op.Valid() {
			return docerr.NewValidation(
				"Commit", "patch", "operations using add/remove/update/delete",
				string(op.Op),
			)
		}

		if err := validate.Path("Commit", fmt.Sprintf("patch[%d].path", i), op.Path); err != nil {
			return err
		}
	}

	return nil
}

// ValidateMany enforces chain validation over an ordered list representing
// root-ward -> tip-ward edits:
//
//  1. empty list is trivially valid
//  2. each element passes single-commit validation
//  3. for i >= 1: cs[i].previous_commit_id == cs[i-1].id
//  4. all commits share one document_id
//  5. the first commit's previous_commit_id is not equal to any commit's id
//     in cs (catches cycles in a submitted batch)
func ValidateMany(cs []*model.Commit) error {
	if len(cs) == 0 {
		return nil
	}

	for _, c := range cs {
		if err := Validate(c); err != nil {
			return err
		}
	}

	docID := cs[0].DocumentID
	for i, c := range cs {
		if c.DocumentID != docID {
			return docerr.NewValidation(
				"Commit", "document_id", docID, c.DocumentID,
			)
		}

		if i == 0 {
			continue
		}

		prev := cs[i-1]
		if c.PreviousCommitID == nil || *c.PreviousCommitID != prev.ID {
			got := "absent"
			if c.PreviousCommitID != nil {
				got = *c.PreviousCommitID
			}

			return docerr.NewValidation(
				"Commit", "previous_commit_id", prev.ID, got,
			)
		}
	}

	first := cs[0]
	if first.PreviousCommitID != nil {
		for _, c := range cs {
			if *first.PreviousCommitID == c.ID {
				return docerr.NewValidation(
					"Commit", "previous_commit_id",
					"not a successor of any commit in the same batch",
					*first.PreviousCommitID,
				)
			}
		}
	}

	return nil
}
