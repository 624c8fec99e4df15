package cmd

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/gpp/lang"
)

const fmtTemplate = `# header comment
$for(i=0, j=8; i<2; i=i+1, j=j-4){
mov r%1, r%2
}
`

func TestFmt_Native(t *testing.T) {
	ctx, stdout, _ := testStreams(t, fmtTemplate)

	require.NoError(t, (&Native{Source{Indent: 4, Path: "-"}}).Run(ctx))

	want := "$for (i = 0, j = 8; i < 2; i += 1, j -= 4) {\n" +
		"    mov r%1, r%2\n" +
		"}\n"
	assert.Equal(t, want, stdout.String())
}

func TestFmt_NativeRoundTrip(t *testing.T) {
	ctx, stdout, _ := testStreams(t, fmtTemplate)
	require.NoError(t, (&Native{Source{Indent: 2, Path: "-"}}).Run(ctx))

	ctx2, expanded, _ := testStreams(t, stdout.String())
	require.NoError(t, (&Expand{Input: "-"}).Run(ctx2))

	assert.Equal(t, "mov r0, r8;\nmov r1, r4;\n", expanded.String())
}

func TestFmt_JSON(t *testing.T) {
	ctx, stdout, _ := testStreams(t, fmtTemplate)

	require.NoError(t, (&JSON{Source{Indent: 2, Path: "-"}}).Run(ctx))

	var blocks []map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &blocks))
	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0], "loop")
}

func TestFmt_YAML(t *testing.T) {
	ctx, stdout, _ := testStreams(t, fmtTemplate)

	require.NoError(t, (&YAML{Source{Indent: 2, Path: "-"}}).Run(ctx))

	var blocks []map[string]any
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &blocks))
	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0], "loop")
}

func TestFmt_ParseError(t *testing.T) {
	ctx, stdout, _ := testStreams(t, "$for(i=0;i<2){\n}")

	err := (&Native{Source{Indent: 2, Path: "-"}}).Run(ctx)
	require.ErrorIs(t, err, lang.ErrHeaderClauses)
	assert.Empty(t, stdout.String())
}
