package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/patch"
)

func TestCommit_JSONRoundTrip(t *testing.T) {
	parent := "11111111-1111-4111-8111-111111111111"

	c := model.Commit{
		ID:               "22222222-2222-4222-8222-222222222222",
		PreviousCommitID: &parent,
		DocumentID:       "33333333-3333-4333-8333-333333333333",
		Order:            1,
		Patch:            patch.Patch{{Op: patch.OpUpdate, Path: patch.Path{patch.Key("a")}, Value: []byte(`1`)}},
		UpdatedAt:        time.Unix(0, 0).UTC(),
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded model.Commit
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Equal(t, c.ID, decoded.ID)
	require.Equal(t, *c.PreviousCommitID, *decoded.PreviousCommitID)
	require.Equal(t, c.Patch, decoded.Patch)
}

func TestCommit_RootHasNoParent(t *testing.T) {
	c := model.Commit{ID: "root"}
	require.Nil(t, c.PreviousCommitID)
}

func TestID(t *testing.T) {
	c := &model.Commit{ID: "c1"}
	require.Equal(t, "c1", model.ID(c))
}
