package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patchdoc/patchdoc/model"
	"github.com/patchdoc/patchdoc/output"
	"github.com/patchdoc/patchdoc/patch"
)

func testCommit(t *testing.T, id, parent string, order int) *model.Commit {
	t.Helper()

	p := patch.Patch{{Op: patch.OpAdd, Path: patch.Path{patch.Key("title")}, Value: json.RawMessage(`"hi"`)}}

	c := &model.Commit{
		ID:         id,
		DocumentID: "doc-1",
		Order:      order,
		Patch:      p,
	}

	if parent != "" {
		c.PreviousCommitID = &parent
	}

	return c
}

func TestFormatCommitsJSON(t *testing.T) {
	commits := []*model.Commit{testCommit(t, "c2", "c1", 1), testCommit(t, "c1", "", 0)}

	var buf bytes.Buffer
	err := output.FormatCommitsJSON(&buf, commits)
	require.NoError(t, err)

	var result []output.CommitOutput
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)

	require.Len(t, result, 2)
	require.Equal(t, "c2", result[0].ID)
	require.Equal(t, "c1", result[0].PreviousCommitID)
	require.Equal(t, "c1", result[1].ID)
	require.Empty(t, result[1].PreviousCommitID)
}

func TestFormatCommitJSON(t *testing.T) {
	var buf bytes.Buffer
	err := output.FormatCommitJSON(&buf, testCommit(t, "c1", "", 0))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "\"id\": \"c1\"")
}

func TestFormatDocumentJSON(t *testing.T) {
	var buf bytes.Buffer
	doc := &model.Document{ID: "doc-1", State: map[string]any{"title": "hi"}}

	err := output.FormatDocumentJSON(&buf, doc)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "doc-1")
}
