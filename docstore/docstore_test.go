package docstore_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/patchdoc/patchdoc/docerr"
	"github.com/patchdoc/patchdoc/docstore"
	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/patch"
	"github.com/patchdoc/patchdoc/store/memstore"
)

func patchOn(key string) patch.Patch {
	return patch.Patch{{Op: patch.OpUpdate, Path: patch.Path{patch.Key(key)}, Value: []byte(`1`)}}
}

func newStore() *docstore.Store {
	return docstore.New(memstore.New())
}

func TestWrite_RejectsNonTipParent(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	docID := uuid.NewString()

	_, err := s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, Patch: patchOn("a")})
	require.NoError(t, err)

	staleParent := uuid.NewString()
	_, err = s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, PreviousCommitID: &staleParent, Patch: patchOn("b")})

	var dne *docerr.DoesNotExist
	require.ErrorAs(t, err, &dne)
}

func TestAddCommits_RebasesOnConflictFreeFork(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	docID := uuid.NewString()

	root, err := s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, Patch: patchOn("a")})
	require.NoError(t, err)
	rootID := root.ID

	// Client forked before learning about "root" — its parent is a stale id
	// the store doesn't know — AddCommits should rebase it onto root.
	staleParent := uuid.NewString()
	pending := []*model.Commit{
		{ID: uuid.NewString(), DocumentID: docID, PreviousCommitID: &staleParent, Patch: patchOn("b")},
	}

	out, err := s.AddCommits(ctx, pending)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, rootID, *out[0].PreviousCommitID)
}

func TestAddCommits_ConflictOnOverlap(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	docID := uuid.NewString()

	root, err := s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, Patch: patchOn("a")})
	require.NoError(t, err)

	staleParent := uuid.NewString()
	pending := []*model.Commit{
		{ID: uuid.NewString(), DocumentID: docID, PreviousCommitID: &staleParent, Patch: patchOn("a")},
	}

	_, err = s.AddCommits(ctx, pending)

	var ce *docerr.Conflict
	require.ErrorAs(t, err, &ce)
	require.Equal(t, root.ID, ce.ConflictsWith)
}

func TestAddCommits_AlreadyExtendsTipIsUnchanged(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	docID := uuid.NewString()

	root, err := s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, Patch: patchOn("a")})
	require.NoError(t, err)
	rootID := root.ID

	pending := []*model.Commit{
		{ID: uuid.NewString(), DocumentID: docID, PreviousCommitID: &rootID, Patch: patchOn("b")},
	}

	out, err := s.AddCommits(ctx, pending)
	require.NoError(t, err)
	require.Equal(t, rootID, *out[0].PreviousCommitID)
}

func TestSquash_MergesConsecutiveCommitsAndReparentsChild(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	docID := uuid.NewString()

	c0, err := s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, Patch: patchOn("a")})
	require.NoError(t, err)
	c0ID := c0.ID

	c1, err := s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, PreviousCommitID: &c0ID, Patch: patchOn("b")})
	require.NoError(t, err)
	c1ID := c1.ID

	c2, err := s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, PreviousCommitID: &c1ID, Patch: patchOn("c")})
	require.NoError(t, err)

	merged, err := s.Squash(ctx, docID, c0ID, c1ID)
	require.NoError(t, err)
	require.Equal(t, c0ID, merged.ID)

	history, err := s.List(ctx, docID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, c2.ID, history[0].ID)
	require.Equal(t, c0ID, *history[0].PreviousCommitID)
	require.Equal(t, c0ID, history[1].ID)
	require.Nil(t, history[1].PreviousCommitID)
}

func TestSquash_RejectsNonConsecutivePair(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	docID := uuid.NewString()

	c0, err := s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, Patch: patchOn("a")})
	require.NoError(t, err)
	c0ID := c0.ID

	c1, err := s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, PreviousCommitID: &c0ID, Patch: patchOn("b")})
	require.NoError(t, err)
	c1ID := c1.ID

	c2, err := s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, PreviousCommitID: &c1ID, Patch: patchOn("c")})
	require.NoError(t, err)

	_, err = s.Squash(ctx, docID, c0ID, c2.ID)

	var ve *docerr.Validation
	require.ErrorAs(t, err, &ve)
}

func TestDelete_Idempotent(t *testing.T) {
	s := newStore()
	ctx := context.Background()
	docID := uuid.NewString()

	root, err := s.Write(ctx, &model.Commit{ID: uuid.NewString(), DocumentID: docID, Patch: patchOn("a")})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, docID, root.ID))
	require.NoError(t, s.Delete(ctx, docID, root.ID))

	history, err := s.List(ctx, docID)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestNewCommitID_ProducesUUID4(t *testing.T) {
	id := docstore.NewCommitID()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(4), parsed.Version())
}

func TestID_CoercesCommitAndString(t *testing.T) {
	c := &model.Commit{ID: "abc"}

	id, err := docstore.ID(c)
	require.NoError(t, err)
	require.Equal(t, "abc", id)

	id, err = docstore.ID("xyz")
	require.NoError(t, err)
	require.Equal(t, "xyz", id)

	_, err = docstore.ID(42)
	require.Error(t, err)
}
