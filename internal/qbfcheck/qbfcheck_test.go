package qbfcheck

import "testing"

import "github.com/lonsing/qratpreplus/qbf"

func TestSatisfiable_PlainPropositionalSAT(t *testing.T) {
	blocks := []BlockSpec{{Kind: qbf.Exists, Vars: []int32{1, 2}}}
	clauses := [][]int32{{1, 2}, {-1, -2}}
	if !Satisfiable(blocks, clauses) {
		t.Fatal("expected SAT: (1 v 2) & (-1 v -2) has model 1=T,2=F")
	}
}

func TestSatisfiable_PlainPropositionalUNSAT(t *testing.T) {
	blocks := []BlockSpec{{Kind: qbf.Exists, Vars: []int32{1}}}
	clauses := [][]int32{{1}, {-1}}
	if Satisfiable(blocks, clauses) {
		t.Fatal("expected UNSAT: 1 & -1")
	}
}

func TestSatisfiable_ForallExistsTrue(t *testing.T) {
	// forall x exists y. x <-> y: always satisfiable (y tracks x).
	blocks := []BlockSpec{
		{Kind: qbf.Forall, Vars: []int32{1}},
		{Kind: qbf.Exists, Vars: []int32{2}},
	}
	clauses := [][]int32{{-1, 2}, {1, -2}}
	if !Satisfiable(blocks, clauses) {
		t.Fatal("expected true: forall x exists y. x <-> y")
	}
}

func TestSatisfiable_ExistsForallFalse(t *testing.T) {
	// exists x forall y. x <-> y: false, a fixed x cannot track both y values.
	blocks := []BlockSpec{
		{Kind: qbf.Exists, Vars: []int32{1}},
		{Kind: qbf.Forall, Vars: []int32{2}},
	}
	clauses := [][]int32{{-1, 2}, {1, -2}}
	if Satisfiable(blocks, clauses) {
		t.Fatal("expected false: exists x forall y. x <-> y")
	}
}

func TestFormulaSatisfiable_MatchesDirectIngest(t *testing.T) {
	f := qbf.NewFormula(qbf.DefaultOptions())
	if err := f.DeclareMaxVarID(2); err != nil {
		t.Fatal(err)
	}
	if err := f.NewQBlock(qbf.Exists); err != nil {
		t.Fatal(err)
	}
	if err := f.AddVarToQBlock(1); err != nil {
		t.Fatal(err)
	}
	if err := f.AddVarToQBlock(2); err != nil {
		t.Fatal(err)
	}
	if err := f.AddLiteral(0); err != nil {
		t.Fatal(err)
	}
	for _, lit := range []int32{1, 2, 0, 1, -2, 0} {
		if err := f.AddLiteral(lit); err != nil {
			t.Fatal(err)
		}
	}
	if !FormulaSatisfiable(f) {
		t.Fatal("expected satisfiable: (1 v 2) & (1 v -2)")
	}
}
