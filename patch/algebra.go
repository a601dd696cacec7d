package patch

import "encoding/json"

// Algebra is the narrow interface this package implements and the rest of
// the commit/change subsystem depends on: overlap detection, forward/
// reverse composition, and application. A single concrete type,
// DefaultAlgebra, backs it. The conflict and squash packages call the
// package-level functions (Overlap, Squash) directly, not through this
// interface.
type Algebra interface {
	Overlap(p1, p2 Patch) bool
	Squash(earlier, later Patch) Patch
	Apply(value any, p Patch) (any, error)
	Invert(valueBefore any, p Patch) (Patch, error)
}

// DefaultAlgebra is the production implementation of Algebra.
type DefaultAlgebra struct{}

var _ Algebra = DefaultAlgebra{}

// Overlap reports whether two patches mutate any shared path. This is the
// sole signal the conflict resolver uses — no three-way merge is attempted.
func Overlap(p1, p2 Patch) bool {
	for _, a := range p1.Paths() {
		for _, b := range p2.Paths() {
			if a.Equal(b) {
				return true
			}
		}
	}

	return false
}

func (DefaultAlgebra) Overlap(p1, p2 Patch) bool { return Overlap(p1, p2) }

// Squash composes two patches by forward concatenation: apply earlier then
// later. Concatenation alone satisfies the squash identity
// (apply(v, Squash(p1,p2)) == apply(apply(v,p1),p2)) because Apply already
// folds operations left to right.
func Squash(earlier, later Patch) Patch {
	out := make(Patch, 0, len(earlier)+len(later))
	out = append(out, earlier...)
	out = append(out, later...)

	return out
}

func (DefaultAlgebra) Squash(earlier, later Patch) Patch { return Squash(earlier, later) }

func (DefaultAlgebra) Apply(value any, p Patch) (any, error) { return ApplyPatch(value, p) }

// Invert computes the patch that undoes p against the document state just
// before p was applied. For each operation, in forward order, it captures
// the value at that operation's path before the operation runs; the
// inverse operation either restores that captured value (update) or
// deletes the path if it didn't exist before (delete). The resulting
// per-operation inverses are then reversed, since undoing "op1 then op2"
// means undoing op2 first, then op1.
func Invert(valueBefore any, p Patch) (Patch, error) {
	cur := valueBefore
	inverses := make(Patch, 0, len(p))

	for _, op := range p {
		before, existed := Get(cur, op.Path)

		var inv Operation
		if existed {
			encoded, err := json.Marshal(before)
			if err != nil {
				return nil, err
			}

			inv = Operation{Op: OpUpdate, Path: op.Path, Value: encoded}
		} else {
			inv = Operation{Op: OpDelete, Path: op.Path}
		}

		inverses = append(inverses, inv)

		next, err := Apply(cur, op)
		if err != nil {
			return nil, err
		}

		cur = next
	}

	reversed := make(Patch, len(inverses))
	for i, inv := range inverses {
		reversed[len(inverses)-1-i] = inv
	}

	return reversed, nil
}

func (DefaultAlgebra) Invert(valueBefore any, p Patch) (Patch, error) {
	return Invert(valueBefore, p)
}
