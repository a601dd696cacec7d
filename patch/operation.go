// Package patch implements the JSON patch algebra this system depends on:
// parsing, overlap detection, squash (forward and reverse composition), and
// inversion. No existing third-party library implements this exact
// dialect, so they are implemented here behind the narrow Algebra
// interface.
package patch

import (
	"encoding/json"
	"fmt"
)

// OpKind is one of the four recognized patch operation kinds. This is a
// deliberately narrower dialect than the full six-verb RFC 6902 surface —
// there is no move/copy/test, and "update" replaces "replace"/"set".
type OpKind string

const (
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
	OpAdd    OpKind = "add"
	OpRemove OpKind = "remove"
)

// Valid reports whether k is one of the recognized operation kinds.
func (k OpKind) Valid() bool {
	switch k {
	case OpUpdate, OpDelete, OpAdd, OpRemove:
		return true
	default:
		return false
	}
}

// Operation is a single patch operation: set/remove/prepend/delete a value
// at a path. Value is carried as raw JSON and decoded lazily so that a
// Patch can be parsed without fully materializing every value.
type Operation struct {
	Op    OpKind          `json:"op"`
	Path  Path            `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// DecodedValue unmarshals Value into a generic interface{}. Operations with
// no Value (e.g. delete) return nil.
func (o Operation) DecodedValue() (any, error) {
	if len(o.Value) == 0 {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(o.Value, &v); err != nil {
		return nil, fmt.Errorf("operation %s %s: invalid value: %w", o.Op, o.Path, err)
	}

	return v, nil
}

// Patch is an ordered list of operations, applied left to right.
type Patch []Operation

// Decode parses raw JSON bytes into a Patch, rejecting unrecognized op
// kinds or malformed paths. Callers that also need a generic RFC
// 6902-shape check should run validate.JSONPatch first.
func Decode(raw []byte) (Patch, error) {
	var ops []Operation
	if err := json.Unmarshal(raw, &ops); err != nil {
		return nil, fmt.Errorf("invalid patch JSON: %w", err)
	}

	for i, op := range ops {
		if !op.Op.Valid() {
			return nil, fmt.Errorf("operation %d: unrecognized op %q", i, op.Op)
		}

		if len(op.Path) == 0 {
			return nil, fmt.Errorf("operation %d (%s): empty path", i, op.Op)
		}
	}

	return Patch(ops), nil
}

// Encode serializes a Patch back to JSON.
func (p Patch) Encode() ([]byte, error) {
	return json.Marshal([]Operation(p))
}

// Paths returns the set of distinct paths the patch's operations touch, in
// first-seen order.
func (p Patch) Paths() []Path {
	var out []Path

	for _, op := range p {
		found := false

		for _, existing := range out {
			if existing.Equal(op.Path) {
				found = true

				break
			}
		}

		if !found {
			out = append(out, op.Path)
		}
	}

	return out
}
