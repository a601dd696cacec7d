// Package model defines the core data types of the versioned-document
// commit subsystem: Commit and Document.
package model

import (
	"encoding/json"
	"time"

	"github.com/patchdoc/patchdoc/patch"
)

// Commit is the unit of history. See package commit for the full set of
// invariants it must satisfy.
type Commit struct {
	// ID is a UUIDv4, globally unique, assigned at creation.
	ID string `json:"id"`

	// PreviousCommitID is a UUIDv4, or nil for the root commit of a
	// document's chain.
	PreviousCommitID *string `json:"previous_commit_id,omitempty"`

	// DocumentID is a UUIDv4 identifying the history this commit belongs
	// to. Immutable once set.
	DocumentID string `json:"document_id"`

	// Order is a non-negative integer, dense and strictly increasing from
	// root to tip within a document. Autogenerated at write time.
	Order int `json:"order"`

	// Autosquash marks this commit as eligible for automatic squashing
	// with an adjacent compatible commit.
	Autosquash bool `json:"autosquash"`

	// Patch is the forward edit.
	Patch patch.Patch `json:"patch"`

	// ReversePatch undoes Patch against the document state just before
	// this commit. Autogenerated at write time.
	ReversePatch patch.Patch `json:"reverse_patch"`

	// Meta is opaque author-supplied metadata; this subsystem assigns it
	// no schema.
	Meta json.RawMessage `json:"meta,omitempty"`

	// UpdatedAt is the timestamp of the last squash/rewrite.
	UpdatedAt time.Time `json:"updated_at"`
}

// Document is identified by a UUIDv4 and owns a commit chain plus a
// materialized state value.
type Document struct {
	// ID is the document's UUIDv4.
	ID string `json:"id"`

	// State is the materialized JSON value produced by folding the
	// commit chain's patches from root to tip.
	State any `json:"state"`
}

// ID extracts a commit's id. Kept as a function rather than inlined at call
// sites so callers that only have a *Commit can be treated uniformly with
// callers that already have a bare id string (see docstore.ID).
func ID(c *Commit) string { return c.ID }
