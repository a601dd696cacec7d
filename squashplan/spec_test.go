package squashplan_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/patchdoc/patchdoc/squashplan"
)

func TestPlan_Validate_OK(t *testing.T) {
	p := &squashplan.Plan{
		DocumentID: uuid.NewString(),
		Steps: []squashplan.Step{
			{Action: squashplan.ActionKeep, CommitID: uuid.NewString()},
			{Action: squashplan.ActionSquash, CommitID: uuid.NewString()},
		},
	}
	require.NoError(t, p.Validate())
}

func TestPlan_Validate_RejectsMissingDocumentID(t *testing.T) {
	p := &squashplan.Plan{Steps: []squashplan.Step{{Action: squashplan.ActionKeep, CommitID: uuid.NewString()}}}
	require.Error(t, p.Validate())
}

func TestPlan_Validate_RejectsEmptySteps(t *testing.T) {
	p := &squashplan.Plan{DocumentID: uuid.NewString()}
	require.Error(t, p.Validate())
}

func TestPlan_Validate_RejectsLeadingSquash(t *testing.T) {
	p := &squashplan.Plan{
		DocumentID: uuid.NewString(),
		Steps:      []squashplan.Step{{Action: squashplan.ActionSquash, CommitID: uuid.NewString()}},
	}
	require.Error(t, p.Validate())
}

func TestPlan_Validate_RejectsDuplicateCommitID(t *testing.T) {
	id := uuid.NewString()
	p := &squashplan.Plan{
		DocumentID: uuid.NewString(),
		Steps: []squashplan.Step{
			{Action: squashplan.ActionKeep, CommitID: id},
			{Action: squashplan.ActionSquash, CommitID: id},
		},
	}
	require.Error(t, p.Validate())
}

func TestPlan_Validate_RejectsUnknownAction(t *testing.T) {
	p := &squashplan.Plan{
		DocumentID: uuid.NewString(),
		Steps:      []squashplan.Step{{Action: "reword", CommitID: uuid.NewString()}},
	}
	require.Error(t, p.Validate())
}

func TestPlan_Validate_RejectsMissingCommitID(t *testing.T) {
	p := &squashplan.Plan{
		DocumentID: uuid.NewString(),
		Steps:      []squashplan.Step{{Action: squashplan.ActionKeep}},
	}
	require.Error(t, p.Validate())
}

func TestParse_OK(t *testing.T) {
	docID := uuid.NewString()
	id1 := uuid.NewString()

	data, err := json.Marshal(squashplan.Plan{
		DocumentID: docID,
		Steps:      []squashplan.Step{{Action: squashplan.ActionKeep, CommitID: id1}},
	})
	require.NoError(t, err)

	p, err := squashplan.Parse(data)
	require.NoError(t, err)
	require.Equal(t, docID, p.DocumentID)
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	_, err := squashplan.Parse([]byte(`not json`))
	require.Error(t, err)
}

func TestParse_RejectsInvalidPlan(t *testing.T) {
	_, err := squashplan.Parse([]byte(`{"document_id":"","steps":[]}`))
	require.Error(t, err)
}
