package qdimacs_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonsing/qratpreplus/qbf"
	"github.com/lonsing/qratpreplus/qdimacs"
)

func TestParse_ScenarioOne(t *testing.T) {
	const input = `c comment line, ignored
p cnf 2 2
e 1 2 0
1 2 0
1 -2 0
`
	f := qbf.NewFormula(qbf.DefaultOptions())
	require.NoError(t, qdimacs.Parse(strings.NewReader(input), f))

	blocks := f.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, qbf.Exists, blocks[0].Kind)
	assert.Equal(t, []int32{1, 2}, blocks[0].Vars)

	assert.Len(t, f.LiveClauses(), 2)
	assert.False(t, f.ParsedEmptyClause())
}

func TestParse_UniversalReductionToEmptyClause(t *testing.T) {
	const input = `p cnf 1 1
a 1 0
1 0
`
	f := qbf.NewFormula(qbf.DefaultOptions())
	require.NoError(t, qdimacs.Parse(strings.NewReader(input), f))
	assert.True(t, f.ParsedEmptyClause())
	assert.Empty(t, f.LiveClauses())
}

func TestParse_AlternatingPrefixMerging(t *testing.T) {
	const input = `p cnf 3 2
a 1 0
e 2 3 0
-1 2 0
1 3 0
`
	f := qbf.NewFormula(qbf.DefaultOptions())
	require.NoError(t, qdimacs.Parse(strings.NewReader(input), f))

	blocks := f.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, qbf.Forall, blocks[0].Kind)
	assert.Equal(t, 0, blocks[0].Nesting)
	assert.Equal(t, qbf.Exists, blocks[1].Kind)
	assert.Equal(t, 1, blocks[1].Nesting)
}

func TestParse_MalformedPreambleRejected(t *testing.T) {
	const input = `p cnf notanumber 2
e 1 0
1 0
`
	f := qbf.NewFormula(qbf.DefaultOptions())
	err := qdimacs.Parse(strings.NewReader(input), f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParse_ClauseBeforePreambleRejected(t *testing.T) {
	const input = `1 2 0
p cnf 2 1
`
	f := qbf.NewFormula(qbf.DefaultOptions())
	err := qdimacs.Parse(strings.NewReader(input), f)
	require.Error(t, err)
}

func TestParse_TautologyDropped(t *testing.T) {
	const input = `p cnf 2 1
e 1 2 0
1 -1 2 0
`
	f := qbf.NewFormula(qbf.DefaultOptions())
	require.NoError(t, qdimacs.Parse(strings.NewReader(input), f))
	assert.Empty(t, f.LiveClauses())
	assert.Equal(t, int64(1), f.Stats().TautologiesDropped)
}

func TestAddFormula_MissingFileIsParseError(t *testing.T) {
	f := qbf.NewFormula(qbf.DefaultOptions())
	err := qdimacs.AddFormula("/nonexistent/path/to/formula.qdimacs", f)
	require.Error(t, err)
	var perr *qdimacs.ParseError
	assert.ErrorAs(t, err, &perr)
}
