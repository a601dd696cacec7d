package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PathSegment addresses one level of a JSON value: either a map key or an
// array index. Exactly one of the two is meaningful, selected by IsIndex.
type PathSegment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key builds a string-keyed segment.
func Key(k string) PathSegment { return PathSegment{Key: k} }

// Idx builds an array-index segment.
func Idx(i int) PathSegment { return PathSegment{Index: i, IsIndex: true} }

// String renders a segment for error messages.
func (s PathSegment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}

	return s.Key
}

// Path is a sequence of string/integer segments addressing a node inside a
// JSON document, e.g. ["users", 0, "name"].
type Path []PathSegment

// String renders the path as a slash-joined string for error messages.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.String()
	}

	return "/" + strings.Join(parts, "/")
}

// MarshalJSON renders the path as a JSON array of strings and numbers.
func (p Path) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, seg := range p {
		if i > 0 {
			buf.WriteByte(',')
		}

		if seg.IsIndex {
			buf.WriteString(strconv.Itoa(seg.Index))

			continue
		}

		encoded, err := json.Marshal(seg.Key)
		if err != nil {
			return nil, err
		}

		buf.Write(encoded)
	}

	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON array of strings and/or numbers into a Path.
func (p *Path) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("path must be a JSON array: %w", err)
	}

	segs := make(Path, 0, len(raw))

	for _, elem := range raw {
		var asString string
		if err := json.Unmarshal(elem, &asString); err == nil {
			segs = append(segs, Key(asString))

			continue
		}

		var asNumber int
		if err := json.Unmarshal(elem, &asNumber); err == nil {
			if asNumber < 0 {
				return fmt.Errorf("path segment %q: negative index", elem)
			}

			segs = append(segs, Idx(asNumber))

			continue
		}

		return fmt.Errorf("path segment %q is neither a string nor an integer", elem)
	}

	*p = segs

	return nil
}

// Equal reports whether two paths address the same node.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}

	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}

	return true
}
