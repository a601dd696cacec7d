package patch

import "reflect"

// deepEqual compares two decoded JSON values for equality. Values always
// originate from encoding/json decode (map[string]any, []any, string,
// float64, bool, nil), so reflect.DeepEqual is exact.
func deepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
