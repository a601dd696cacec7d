// Package memstore is a reference in-memory implementation of store.Backend
// used by tests and local exploration; it is not a production storage
// layer. It serializes transactions behind a single mutex, standing in for
// the real isolation guarantee an external storage layer would need to
// provide, and rolls back a failed transaction's mutations via an undo log
// rather than a real WAL/snapshot mechanism.
package memstore

import (
	"context"
	"sync"

	"github.com/patchdoc/patchdoc/applier"
	"github.com/patchdoc/patchdoc/commit"
	"github.com/patchdoc/patchdoc/docerr"
	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/patch"
	"github.com/patchdoc/patchdoc/store"
)

// docChain is the per-document state the store tracks: every commit keyed
// by id, the current tip, and whether a root has been written yet.
type docChain struct {
	commits map[string]*model.Commit
	tip     string // "" if the document has no commits yet
	hasRoot bool
}

// Store is the reference in-memory store.Backend.
type Store struct {
	mu   sync.Mutex
	docs map[string]*docChain
}

// New returns an empty Store.
func New() *Store {
	return &Store{docs: make(map[string]*docChain)}
}

var _ store.Backend = (*Store)(nil)

// Documents returns the ids of every document the store has seen a commit
// for. Used by the demo CLI to snapshot the whole store to disk between
// invocations; the core never needs a store-wide listing.
func (s *Store) Documents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.docs))
	for id := range s.docs {
		out = append(out, id)
	}

	return out
}

// Txn runs fn under the store's single mutex, rolling back via an undo log
// if fn returns an error.
func (s *Store) Txn(
	ctx context.Context,
	fn func(ctx context.Context, h store.Handle) (any, error),
) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := &handle{s: s}

	result, err := fn(ctx, h)
	if err != nil {
		h.rollback()

		return nil, err
	}

	return result, nil
}

// handle implements store.Handle against the locked Store, recording an
// undo closure for every mutation so a failed transaction can be rolled
// back in full.
type handle struct {
	s    *Store
	undo []func()
}

func (h *handle) rollback() {
	for i := len(h.undo) - 1; i >= 0; i-- {
		h.undo[i]()
	}
}

func (h *handle) chain(documentID string) *docChain {
	dc, ok := h.s.docs[documentID]
	if !ok {
		dc = &docChain{commits: make(map[string]*model.Commit)}
		h.s.docs[documentID] = dc
		h.undo = append(h.undo, func() { delete(h.s.docs, documentID) })
	}

	return dc
}

// orderedChain walks tip -> root via an explicit accumulator rather than
// recursion, so long histories don't grow the call stack.
func orderedChain(dc *docChain) []*model.Commit {
	var out []*model.Commit

	cur := dc.tip
	for cur != "" {
		c, ok := dc.commits[cur]
		if !ok {
			break
		}

		out = append(out, c)

		if c.PreviousCommitID == nil {
			break
		}

		cur = *c.PreviousCommitID
	}

	return out
}

func (h *handle) List(_ context.Context, documentID string) ([]*model.Commit, error) {
	dc, ok := h.s.docs[documentID]
	if !ok {
		return nil, nil
	}

	return orderedChain(dc), nil
}

func (h *handle) ListRange(
	_ context.Context, documentID string, from, to *string,
) ([]*model.Commit, error) {
	dc, ok := h.s.docs[documentID]
	if !ok {
		return nil, nil
	}

	full := orderedChain(dc)

	fromOrder := -1 // sentinel: "no upper bound found yet" (tip)
	if from != nil {
		c, ok := dc.commits[*from]
		if !ok {
			return nil, docerr.NewDoesNotExist("Commit", *from)
		}

		fromOrder = c.Order
	} else if len(full) > 0 {
		fromOrder = full[0].Order
	}

	toOrder := 0
	if to != nil {
		c, ok := dc.commits[*to]
		if !ok {
			return nil, docerr.NewDoesNotExist("Commit", *to)
		}

		toOrder = c.Order
	}

	out := make([]*model.Commit, 0, len(full))

	for _, c := range full {
		if c.Order <= fromOrder && c.Order >= toOrder {
			out = append(out, c)
		}
	}

	return out, nil
}

func (h *handle) Get(_ context.Context, documentID, commitID string) (*model.Commit, error) {
	dc, ok := h.s.docs[documentID]
	if !ok {
		return nil, docerr.NewDoesNotExist("Commit", commitID)
	}

	c, ok := dc.commits[commitID]
	if !ok {
		return nil, docerr.NewDoesNotExist("Commit", commitID)
	}

	return c, nil
}

func (h *handle) ChildOf(
	_ context.Context, documentID, commitID string,
) (*model.Commit, bool, error) {
	dc, ok := h.s.docs[documentID]
	if !ok {
		return nil, false, nil
	}

	for _, c := range dc.commits {
		if c.PreviousCommitID != nil && *c.PreviousCommitID == commitID {
			return c, true, nil
		}
	}

	return nil, false, nil
}

// Write implements the strict linear-append contract: previous_commit_id
// must name the document's current tip, or be absent for the document's
// very first commit. This is the strict path; docstore.AddCommits is the
// rebasing path for callers that don't know the current tip.
func (h *handle) Write(_ context.Context, c *model.Commit) (*model.Commit, error) {
	if err := commit.Validate(c); err != nil {
		return nil, err
	}

	dc := h.chain(c.DocumentID)

	if _, exists := dc.commits[c.ID]; exists {
		return nil, docerr.NewAlreadyExist("Commit", c.ID)
	}

	var (
		order    int
		prevState any
	)

	if c.PreviousCommitID == nil {
		if dc.hasRoot {
			return nil, docerr.NewAlreadyExist("Commit", "document root")
		}

		order = 0
	} else {
		if dc.tip != *c.PreviousCommitID {
			return nil, docerr.NewDoesNotExist("Commit", *c.PreviousCommitID)
		}

		parent := dc.commits[dc.tip]
		order = parent.Order + 1

		chain := orderedChain(dc)
		state, err := applier.Chain(nil, reverseChain(chain))
		if err != nil {
			return nil, err
		}

		prevState = state
	}

	reverse, err := patch.Invert(prevState, c.Patch)
	if err != nil {
		return nil, err
	}

	stored := *c
	stored.Order = order
	stored.ReversePatch = reverse

	prevTip := dc.tip
	prevHasRoot := dc.hasRoot

	dc.commits[c.ID] = &stored
	dc.tip = c.ID

	if c.PreviousCommitID == nil {
		dc.hasRoot = true
	}

	h.undo = append(h.undo, func() {
		delete(dc.commits, c.ID)
		dc.tip = prevTip
		dc.hasRoot = prevHasRoot
	})

	return &stored, nil
}

// reverseChain reverses a tip->root slice into root->tip order.
func reverseChain(tipToRoot []*model.Commit) []*model.Commit {
	out := make([]*model.Commit, len(tipToRoot))
	for i, c := range tipToRoot {
		out[len(tipToRoot)-1-i] = c
	}

	return out
}

func (h *handle) WriteMany(ctx context.Context, cs []*model.Commit) ([]*model.Commit, error) {
	if err := commit.ValidateMany(cs); err != nil {
		return nil, err
	}

	out := make([]*model.Commit, 0, len(cs))

	for _, c := range cs {
		written, err := h.Write(ctx, c)
		if err != nil {
			return nil, err
		}

		out = append(out, written)
	}

	return out, nil
}

// Overwrite replaces an existing commit's record in place without touching
// its position (order/previous_commit_id linkage to its own parent stays
// whatever the caller set, which for squash's survivor is unchanged, and
// for a re-parented child is the new parent id).
func (h *handle) Overwrite(_ context.Context, c *model.Commit) error {
	dc, ok := h.s.docs[c.DocumentID]
	if !ok {
		return docerr.NewDoesNotExist("Commit", c.ID)
	}

	old, ok := dc.commits[c.ID]
	if !ok {
		return docerr.NewDoesNotExist("Commit", c.ID)
	}

	stored := *c
	dc.commits[c.ID] = &stored

	h.undo = append(h.undo, func() { dc.commits[c.ID] = old })

	return nil
}

func (h *handle) Delete(_ context.Context, documentID, commitID string) error {
	dc, ok := h.s.docs[documentID]
	if !ok {
		return nil
	}

	old, existed := dc.commits[commitID]
	if !existed {
		return nil
	}

	prevTip := dc.tip
	prevHasRoot := dc.hasRoot

	delete(dc.commits, commitID)

	if dc.tip == commitID {
		if old.PreviousCommitID != nil {
			dc.tip = *old.PreviousCommitID
		} else {
			dc.tip = ""
		}
	}

	if old.PreviousCommitID == nil {
		dc.hasRoot = false
	}

	h.undo = append(h.undo, func() {
		dc.commits[commitID] = old
		dc.tip = prevTip
		dc.hasRoot = prevHasRoot
	})

	return nil
}
