// Package testutil provides test helpers for exercising the commit/change
// API against a real in-memory store.
package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/patchdoc/patchdoc/docstore"
	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/patch"
	"github.com/patchdoc/patchdoc/store/memstore"
)

// DocHarness wraps a fresh in-memory store and a document id, giving tests
// a small fluent API for building up commit chains without hand-assembling
// *model.Commit values every time.
type DocHarness struct {
	t          *testing.T
	ctx        context.Context
	Store      *docstore.Store
	DocumentID string
}

// NewDocHarness creates a harness backed by a new, empty memstore.Store.
func NewDocHarness(t *testing.T) *DocHarness {
	t.Helper()

	return &DocHarness{
		t:          t,
		ctx:        context.Background(),
		Store:      docstore.New(memstore.New()),
		DocumentID: uuid.New().String(),
	}
}

// Op builds a single operation addressed by a sequence of plain map keys,
// for tests that don't need list indices.
func Op(op patch.OpKind, value any, keys ...string) patch.Operation {
	path := make(patch.Path, len(keys))
	for i, k := range keys {
		path[i] = patch.Key(k)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}

	return patch.Operation{Op: op, Path: path, Value: raw}
}

// Commit appends a commit with the given patch onto the harness's
// document, requiring it to succeed, and returns the written commit (with
// order and reverse_patch populated by the store).
func (h *DocHarness) Commit(p patch.Patch) *model.Commit {
	h.t.Helper()

	tip := h.Tip()

	c := &model.Commit{
		ID:         uuid.New().String(),
		DocumentID: h.DocumentID,
		Patch:      p,
	}

	if tip != nil {
		c.PreviousCommitID = &tip.ID
	}

	written, err := h.Store.Write(h.ctx, c)
	require.NoError(h.t, err)

	return written
}

// Tip returns the document's current tip commit, or nil if none exists.
func (h *DocHarness) Tip() *model.Commit {
	h.t.Helper()

	commits, err := h.Store.List(h.ctx, h.DocumentID)
	require.NoError(h.t, err)

	if len(commits) == 0 {
		return nil
	}

	return commits[0]
}

// History returns the full commit chain, tip -> root.
func (h *DocHarness) History() []*model.Commit {
	h.t.Helper()

	commits, err := h.Store.List(h.ctx, h.DocumentID)
	require.NoError(h.t, err)

	return commits
}

// Context returns the harness's background context, for callers driving
// the store directly.
func (h *DocHarness) Context() context.Context { return h.ctx }
