// Package validate implements the pure structural predicates of spec
// component A: UUID shape, JSON patch shape, and path shape. Every check
// returns a *docerr.Validation carrying {struct, field, expected, got} on
// failure rather than a bare error, so callers can inspect exactly what was
// wrong.
package validate

import (
	"fmt"

	"github.com/google/uuid"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/patchdoc/patchdoc/docerr"
	"github.com/patchdoc/patchdoc/patch"
)

// UUID4 checks that v is a canonical 8-4-4-4-12 lowercase-hex UUIDv4.
func UUID4(structName, field, v string) error {
	parsed, err := uuid.Parse(v)
	if err != nil {
		return docerr.NewValidation(structName, field, "a UUIDv4", fmt.Sprintf("%q (%v)", v, err))
	}

	if parsed.Version() != 4 {
		return docerr.NewValidation(
			structName, field, "a UUIDv4",
			fmt.Sprintf("a version-%d UUID", parsed.Version()),
		)
	}

	if parsed.String() != v {
		return docerr.NewValidation(
			structName, field, "canonical lowercase 8-4-4-4-12 form", v,
		)
	}

	return nil
}

// MaybeUUID4 checks that v is either a UUIDv4 or the absent marker (nil).
func MaybeUUID4(structName, field string, v *string) error {
	if v == nil {
		return nil
	}

	return UUID4(structName, field, *v)
}

// JSONPatch checks that raw is a structurally valid patch: a JSON array of
// operation objects using one of the recognized op kinds, each with a
// well-formed path. It first runs the bytes through
// github.com/evanphx/json-patch's decoder to confirm the payload is at
// least shaped like an RFC 6902 document (an array of op objects), then
// decodes it into this system's own (narrower) operation vocabulary.
func JSONPatch(structName, field string, raw []byte) (patch.Patch, error) {
	if _, err := jsonpatch.DecodePatch(raw); err != nil {
		return nil, docerr.NewValidation(
			structName, field, "an RFC 6902-shaped JSON patch array",
			fmt.Sprintf("malformed JSON: %v", err),
		)
	}

	p, err := patch.Decode(raw)
	if err != nil {
		return nil, docerr.NewValidation(
			structName, field, "operations using add/remove/update/delete with non-empty paths",
			err.Error(),
		)
	}

	for i, op := range p {
		if err := Path(structName, fmt.Sprintf("%s[%d].path", field, i), op.Path); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Path checks that p is a non-empty sequence of string/integer segments.
// patch.Path's JSON decoding already rejects segments that are neither, so
// this mostly guards against an empty path slipping through a
// programmatically constructed (non-JSON-sourced) patch.Operation.
func Path(structName, field string, p patch.Path) error {
	if len(p) == 0 {
		return docerr.NewValidation(structName, field, "a non-empty path", "[]")
	}

	return nil
}
