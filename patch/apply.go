package patch

import "fmt"

// Get navigates value along path and returns the node found there. ok is
// false if any intermediate segment is absent — this is not an error, it is
// how callers tolerate missing paths.
func Get(value any, path Path) (node any, ok bool) {
	cur := value

	for _, seg := range path {
		switch container := cur.(type) {
		case map[string]any:
			if seg.IsIndex {
				return nil, false
			}

			v, present := container[seg.Key]
			if !present {
				return nil, false
			}

			cur = v

		case []any:
			if !seg.IsIndex || seg.Index < 0 || seg.Index >= len(container) {
				return nil, false
			}

			cur = container[seg.Index]

		default:
			return nil, false
		}
	}

	return cur, true
}

// Set navigates value along path, creating intermediate map containers as
// needed, and force-sets the final segment to v. Set never auto-vivifies
// through an array index — only maps grow on demand, arrays must already
// exist at the right length.
func Set(value any, path Path, v any) (any, error) {
	if len(path) == 0 {
		return v, nil
	}

	root := value
	if root == nil {
		root = map[string]any{}
	}

	return setRec(root, path, v)
}

func setRec(cur any, path Path, v any) (any, error) {
	seg := path[0]
	rest := path[1:]

	if seg.IsIndex {
		arr, ok := cur.([]any)
		if !ok {
			return nil, fmt.Errorf("cannot index into non-array at %s", seg)
		}

		if seg.Index < 0 || seg.Index >= len(arr) {
			return nil, fmt.Errorf("index %d out of range (len %d)", seg.Index, len(arr))
		}

		if len(rest) == 0 {
			arr[seg.Index] = v

			return arr, nil
		}

		child, err := setRec(arr[seg.Index], rest, v)
		if err != nil {
			return nil, err
		}

		arr[seg.Index] = child

		return arr, nil
	}

	m, ok := cur.(map[string]any)
	if !ok {
		m = map[string]any{}
	}

	if len(rest) == 0 {
		m[seg.Key] = v

		return m, nil
	}

	child, present := m[seg.Key]
	if !present {
		child = map[string]any{}
	}

	updated, err := setRec(child, rest, v)
	if err != nil {
		return nil, err
	}

	m[seg.Key] = updated

	return m, nil
}

// Delete removes the node at path. If path (or any prefix of it) is absent,
// the value is returned unchanged — delete is idempotent.
func Delete(value any, path Path) (any, error) {
	if len(path) == 0 {
		return value, nil
	}

	parentPath, last := path[:len(path)-1], path[len(path)-1]

	parent, ok := Get(value, parentPath)
	if !ok {
		return value, nil
	}

	switch container := parent.(type) {
	case map[string]any:
		if last.IsIndex {
			return value, nil
		}

		delete(container, last.Key)

	case []any:
		if !last.IsIndex || last.Index < 0 || last.Index >= len(container) {
			return value, nil
		}

		if len(parentPath) == 0 {
			return removeAt(container, last.Index), nil
		}

		newArr := removeAt(container, last.Index)

		return Set(value, parentPath, newArr)

	default:
		return value, nil
	}

	return value, nil
}

func removeAt(arr []any, i int) []any {
	out := make([]any, 0, len(arr)-1)
	out = append(out, arr[:i]...)
	out = append(out, arr[i+1:]...)

	return out
}

// Apply applies a single operation to value, implementing each op kind's
// semantics:
//
//   - update(path, v): force-set path to v, creating intermediate
//     containers as needed.
//   - delete(path, _): remove the node at path; idempotent if absent.
//   - add(path, v): if the existing node is a list, prepend v; otherwise
//     force-set to v.
//   - remove(path, v): if the existing node is a list, remove the first
//     occurrence of v; if it's a non-list scalar, delete the node; if path
//     is absent, unchanged.
func Apply(value any, op Operation) (any, error) {
	v, err := op.DecodedValue()
	if err != nil {
		return nil, err
	}

	switch op.Op {
	case OpUpdate:
		return Set(value, op.Path, v)

	case OpDelete:
		return Delete(value, op.Path)

	case OpAdd:
		existing, ok := Get(value, op.Path)
		if ok {
			if list, isList := existing.([]any); isList {
				prepended := append([]any{v}, list...)

				return Set(value, op.Path, prepended)
			}
		}

		return Set(value, op.Path, v)

	case OpRemove:
		existing, ok := Get(value, op.Path)
		if !ok {
			return value, nil
		}

		if list, isList := existing.([]any); isList {
			idx := indexOf(list, v)
			if idx < 0 {
				return value, nil
			}

			return Set(value, op.Path, removeAt(list, idx))
		}

		return Delete(value, op.Path)

	default:
		return nil, fmt.Errorf("unrecognized op %q", op.Op)
	}
}

// indexOf returns the index of the first element deep-equal to v, or -1.
func indexOf(list []any, v any) int {
	for i, item := range list {
		if deepEqual(item, v) {
			return i
		}
	}

	return -1
}

// ApplyPatch folds a patch's operations left to right over value: applying
// a commit means applying its patch operations in order.
func ApplyPatch(value any, p Patch) (any, error) {
	cur := value

	for i, op := range p {
		next, err := Apply(cur, op)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s %s): %w", i, op.Op, op.Path, err)
		}

		cur = next
	}

	return cur, nil
}
