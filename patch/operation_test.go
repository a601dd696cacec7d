package patch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patchdoc/patchdoc/patch"
)

func TestDecode(t *testing.T) {
	raw := []byte(`[
		{"op":"add","path":["title"],"value":"hi"},
		{"op":"delete","path":["draft"]}
	]`)

	p, err := patch.Decode(raw)
	require.NoError(t, err)
	require.Len(t, p, 2)
	require.Equal(t, patch.OpAdd, p[0].Op)
	require.Equal(t, patch.OpDelete, p[1].Op)
}

func TestDecode_RejectsUnknownOp(t *testing.T) {
	_, err := patch.Decode([]byte(`[{"op":"move","path":["a"],"value":1}]`))
	require.Error(t, err)
}

func TestDecode_RejectsEmptyPath(t *testing.T) {
	_, err := patch.Decode([]byte(`[{"op":"update","path":[],"value":1}]`))
	require.Error(t, err)
}

func TestPatch_EncodeDecodeRoundTrip(t *testing.T) {
	p := patch.Patch{{Op: patch.OpUpdate, Path: patch.Path{patch.Key("a")}, Value: []byte(`1`)}}

	data, err := p.Encode()
	require.NoError(t, err)

	decoded, err := patch.Decode(data)
	require.NoError(t, err)
	require.Equal(t, p, decoded)
}

func TestPatch_Paths_Dedupes(t *testing.T) {
	p := patch.Patch{
		{Op: patch.OpUpdate, Path: patch.Path{patch.Key("a")}, Value: []byte(`1`)},
		{Op: patch.OpUpdate, Path: patch.Path{patch.Key("b")}, Value: []byte(`2`)},
		{Op: patch.OpUpdate, Path: patch.Path{patch.Key("a")}, Value: []byte(`3`)},
	}

	paths := p.Paths()
	require.Len(t, paths, 2)
}

func TestOperation_DecodedValue(t *testing.T) {
	op := patch.Operation{Op: patch.OpUpdate, Path: patch.Path{patch.Key("a")}, Value: []byte(`{"x":1}`)}

	v, err := op.DecodedValue()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"x": float64(1)}, v)
}

func TestOperation_DecodedValue_Empty(t *testing.T) {
	op := patch.Operation{Op: patch.OpDelete, Path: patch.Path{patch.Key("a")}}

	v, err := op.DecodedValue()
	require.NoError(t, err)
	require.Nil(t, v)
}
