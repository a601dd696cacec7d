package validate_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/patchdoc/patchdoc/validate"
)

func TestUUID4(t *testing.T) {
	require.NoError(t, validate.UUID4("Commit", "id", uuid.NewString()))
	require.Error(t, validate.UUID4("Commit", "id", "not-a-uuid"))
	require.Error(t, validate.UUID4("Commit", "id", ""))
}

func TestUUID4_RejectsNonV4(t *testing.T) {
	// A nil UUID is version 0, not 4.
	require.Error(t, validate.UUID4("Commit", "id", uuid.Nil.String()))
}

func TestMaybeUUID4(t *testing.T) {
	require.NoError(t, validate.MaybeUUID4("Commit", "previous_commit_id", nil))

	v := uuid.NewString()
	require.NoError(t, validate.MaybeUUID4("Commit", "previous_commit_id", &v))

	bad := "nope"
	require.Error(t, validate.MaybeUUID4("Commit", "previous_commit_id", &bad))
}

func TestJSONPatch(t *testing.T) {
	raw := []byte(`[{"op":"add","path":["title"],"value":"hi"}]`)

	p, err := validate.JSONPatch("Commit", "patch", raw)
	require.NoError(t, err)
	require.Len(t, p, 1)
}

func TestJSONPatch_RejectsUnknownOp(t *testing.T) {
	// "replace" is a standard RFC 6902 verb (passes the structural decode)
	// but isn't in this system's narrower {add,remove,update,delete} set.
	raw := []byte(`[{"op":"replace","path":["title"],"value":"hi"}]`)

	_, err := validate.JSONPatch("Commit", "patch", raw)
	require.Error(t, err)
}

func TestJSONPatch_RejectsMalformed(t *testing.T) {
	_, err := validate.JSONPatch("Commit", "patch", []byte(`not json`))
	require.Error(t, err)
}
