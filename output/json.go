// Package output provides formatting for commit history output.
package output

import (
	"encoding/json"
	"io"

	"github.com/patchdoc/patchdoc/model"
)

// CommitOutput is the JSON shape of a single commit in list/get output.
type CommitOutput struct {
	ID               string `json:"id"`
	PreviousCommitID string `json:"previous_commit_id,omitempty"`
	DocumentID       string `json:"document_id"`
	Order            int    `json:"order"`
	Autosquash       bool   `json:"autosquash,omitempty"`
	Patch            any    `json:"patch"`
	ReversePatch     any    `json:"reverse_patch,omitempty"`
}

// FormatCommitsJSON writes commits as a JSON array, tip -> root or
// whatever order the caller passes.
func FormatCommitsJSON(w io.Writer, commits []*model.Commit) error {
	out := make([]CommitOutput, 0, len(commits))

	for _, c := range commits {
		co := CommitOutput{
			ID:         c.ID,
			DocumentID: c.DocumentID,
			Order:      c.Order,
			Autosquash: c.Autosquash,
			Patch:      c.Patch,
		}

		if c.PreviousCommitID != nil {
			co.PreviousCommitID = *c.PreviousCommitID
		}

		if len(c.ReversePatch) > 0 {
			co.ReversePatch = c.ReversePatch
		}

		out = append(out, co)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

// FormatCommitJSON writes a single commit as a one-element JSON array, the
// same shape FormatCommitsJSON produces.
func FormatCommitJSON(w io.Writer, c *model.Commit) error {
	return FormatCommitsJSON(w, []*model.Commit{c})
}

// FormatDocumentJSON writes a materialized document state as JSON.
func FormatDocumentJSON(w io.Writer, doc *model.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}
