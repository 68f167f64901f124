package qbf

import "testing"

// qblockSpec is a test-only shorthand for building a prefix one block
// at a time via the ingest API.
type qblockSpec struct {
	kind QuantKind
	vars []int32
}

// buildFormula drives the ingest event stream (DeclareMaxVarID,
// NewQBlock/AddVarToQBlock/AddLiteral(0), then one AddLiteral
// run per clause terminated by 0) the way qdimacs.Parse does, without
// depending on that package.
func buildFormula(t *testing.T, opts Options, maxVar int32, blocks []qblockSpec, clauses [][]int32) *Formula {
	t.Helper()
	f := NewFormula(opts)
	if err := f.DeclareMaxVarID(maxVar); err != nil {
		t.Fatalf("DeclareMaxVarID: %v", err)
	}
	for _, b := range blocks {
		if err := f.NewQBlock(b.kind); err != nil {
			t.Fatalf("NewQBlock: %v", err)
		}
		for _, v := range b.vars {
			if err := f.AddVarToQBlock(v); err != nil {
				t.Fatalf("AddVarToQBlock(%d): %v", v, err)
			}
		}
		if err := f.AddLiteral(0); err != nil {
			t.Fatalf("AddLiteral(0) (block terminator): %v", err)
		}
	}
	for _, cl := range clauses {
		for _, l := range cl {
			if err := f.AddLiteral(l); err != nil {
				t.Fatalf("AddLiteral(%d): %v", l, err)
			}
		}
		if err := f.AddLiteral(0); err != nil {
			t.Fatalf("AddLiteral(0) (clause terminator): %v", err)
		}
	}
	return f
}

// varsOf collects the variable ids present in a clause's literal array.
func varsOf(c *Clause) map[int32]bool {
	m := make(map[int32]bool, len(c.Lits))
	for _, l := range c.Lits {
		m[l.Var()] = true
	}
	return m
}
