package docerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patchdoc/patchdoc/docerr"
)

func TestValidation_As(t *testing.T) {
	err := docerr.NewValidation("Commit", "id", "a UUIDv4", "garbage")

	var target *docerr.Validation
	require.ErrorAs(t, err, &target)
	require.Equal(t, "Commit", target.Struct)
	require.Contains(t, err.Error(), "id")
}

func TestDoesNotExist_As(t *testing.T) {
	err := docerr.NewDoesNotExist("Commit", "c1")

	var target *docerr.DoesNotExist
	require.ErrorAs(t, err, &target)
	require.Equal(t, "c1", target.ID)
}

func TestAlreadyExist_As(t *testing.T) {
	err := docerr.NewAlreadyExist("Commit", "c1")

	var target *docerr.AlreadyExist
	require.ErrorAs(t, err, &target)
}

func TestConflict_As(t *testing.T) {
	err := docerr.NewConflict("c2", "c1")

	var target *docerr.Conflict
	require.ErrorAs(t, err, &target)
	require.Equal(t, "c2", target.CommitID)
	require.Equal(t, "c1", target.ConflictsWith)
}

func TestErrorsDistinguishable(t *testing.T) {
	var validationErr error = docerr.NewValidation("Commit", "id", "x", "y")

	var dne *docerr.DoesNotExist
	require.False(t, errors.As(validationErr, &dne))
}
