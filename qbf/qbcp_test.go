package qbf

import "testing"

// TestQBCETest_PureLiteralVacuouslyBlocked grounds the "for every
// opposite-phase occurrence" wording of spec.md §4.5 against the
// original tool's is_literal_blocked, whose occurrence-list loop
// falls through to "blocked" when the list is empty: a literal with
// no complementary occurrence anywhere (a pure literal) is trivially
// QBCE-blocked. This is also exactly what happens to both clauses of
// spec.md §8 scenario 1 (`e 1 2 0 / 1 2 0 / 1 -2 0`): variable 1 never
// occurs negated, so both clauses are blocked on literal 1 in a single
// QBCE pass, independent of the asymmetric-tautology walk the prose
// describes for the same example.
func TestQBCETest_PureLiteralVacuouslyBlocked(t *testing.T) {
	f := buildFormula(t, DefaultOptions(), 2,
		[]qblockSpec{{Exists, []int32{1, 2}}},
		[][]int32{{1, 2}, {1, -2}},
	)
	live := f.LiveClauses()
	c0, c1 := f.Clause(live[0]), f.Clause(live[1])

	p := &passState{f: f, mode: modeQBCE}
	if !f.qbceTest(c0, p) {
		t.Fatal("clause 1 should be vacuously QBCE-blocked on the pure literal 1")
	}
	if !f.qbceTest(c1, p) {
		t.Fatal("clause 2 should be vacuously QBCE-blocked on the pure literal 1")
	}
	if !c0.Redundant || !c1.Redundant {
		t.Fatal("qbceTest must mark a clause redundant when it returns true")
	}
}

// TestPreprocess_ScenarioOne exercises spec.md §8 scenario 1 end to
// end: the formula reduces to empty.
func TestPreprocess_ScenarioOne(t *testing.T) {
	f := buildFormula(t, DefaultOptions(), 2,
		[]qblockSpec{{Exists, []int32{1, 2}}},
		[][]int32{{1, 2}, {1, -2}},
	)
	f.Preprocess()
	if len(f.LiveClauses()) != 0 {
		t.Fatalf("expected the formula to reduce to empty, got %d live clauses", len(f.LiveClauses()))
	}
}

// TestQATCheck_DetectsAsymmetricTautology is a hand-verified positive
// QAT example. C = (1 v 2), D = (1 v 3), E = (2 v -3). Falsifying C's
// literals forces x1=false, x2=false; unit propagation through D
// forces x3=true, and E then falsifies under x2=false and x3=true, a
// genuine conflict. C is QAT-redundant.
func TestQATCheck_DetectsAsymmetricTautology(t *testing.T) {
	f := buildFormula(t, DefaultOptions(), 3,
		[]qblockSpec{{Exists, []int32{1, 2, 3}}},
		[][]int32{{1, 2}, {1, 3}, {2, -3}},
	)
	c := f.Clause(f.LiveClauses()[0])
	if !f.qatCheck(c) {
		t.Fatal("expected clause (1 v 2) to be an asymmetric tautology given (1 v 3) and (2 v -3)")
	}
}

// TestQATCheck_RetractsAssignments verifies invariant 4 of spec.md §8,
// including for a variable forced mid-propagation (not merely seeded):
// after qatCheck returns, every variable touched by the call is back
// to Undef/unpropagated and the engine's invariants still hold.
func TestQATCheck_RetractsAssignments(t *testing.T) {
	f := buildFormula(t, DefaultOptions(), 3,
		[]qblockSpec{{Exists, []int32{1, 2, 3}}},
		[][]int32{{1, 2}, {1, 3}, {2, -3}},
	)
	c := f.Clause(f.LiveClauses()[0])

	f.qatCheck(c)

	for _, vid := range []int32{1, 2, 3} {
		v := f.Var(vid)
		if v.Assignment != Undef {
			t.Fatalf("variable %d: expected Undef after retract, got %v", vid, v.Assignment)
		}
		if v.Propagated {
			t.Fatalf("variable %d: expected Propagated=false after retract", vid)
		}
	}
	if c.IgnoreInQBCP {
		t.Fatal("expected IgnoreInQBCP cleared after qatCheck returns")
	}
	if err := f.CheckInvariants(); err != nil {
		t.Fatalf("invariants broken after qatCheck: %v", err)
	}
}

// TestQBCETest_NoBlockingWithRealPartners constructs a case where every
// existential literal has a genuine (non-vacuous) opposite-phase
// occurrence that still fails the outer-tautology check, so QBCE must
// not fire. Each pivot variable is given a real partner specifically
// to avoid the vacuous-occurrence shortcut of
// TestQBCETest_PureLiteralVacuouslyBlocked.
func TestQBCETest_NoBlockingWithRealPartners(t *testing.T) {
	f := buildFormula(t, DefaultOptions(), 4,
		[]qblockSpec{{Forall, []int32{1}}, {Exists, []int32{2, 3, 4}}},
		[][]int32{{-1, 2}, {1, 3}, {-2, 4}, {-3, 4}},
	)
	live := f.LiveClauses()
	c0, c1 := f.Clause(live[0]), f.Clause(live[1])

	p := &passState{f: f, mode: modeQBCE}
	if f.qbceTest(c0, p) {
		t.Fatal("clause (-1 v 2) should not be QBCE-redundant")
	}
	if f.qbceTest(c1, p) {
		t.Fatal("clause (1 v 3) should not be QBCE-redundant")
	}
}

// TestBLETest_ScenarioThree exercises spec.md §8 scenario 3: the
// universal pivot 1 is not blocked because the outer resolvent on
// {2} vs {-2} is never a tautology (variable 1 occurs both ways, so
// this does not hit the vacuous-occurrence shortcut).
func TestBLETest_ScenarioThree(t *testing.T) {
	f := buildFormula(t, DefaultOptions(), 2,
		[]qblockSpec{{Forall, []int32{1}}, {Exists, []int32{2}}},
		[][]int32{{1, 2}, {-1, 2}},
	)
	live := f.LiveClauses()
	c0, c1 := f.Clause(live[0]), f.Clause(live[1])

	p := &passState{f: f, mode: modeBLE}
	if f.bleTest(c0, p) {
		t.Fatal("clause 1's universal literal should not be removable")
	}
	if f.bleTest(c1, p) {
		t.Fatal("clause 2's universal literal should not be removable")
	}
	if c0.Len() != 2 || c1.Len() != 2 {
		t.Fatalf("expected both clauses to keep length 2, got %d and %d", c0.Len(), c1.Len())
	}
}

// TestQBCETest_ScenarioFour exercises spec.md §8 scenario 4: clause 1's
// outer resolvent on pivot 1, restricted to nesting <= 0, finds no
// complementary pair, so QBCE does not fire. Variables 1 and 3 each
// occur both ways (not pure), so this is a genuine, non-vacuous check.
func TestQBCETest_ScenarioFour(t *testing.T) {
	f := buildFormula(t, DefaultOptions(), 3,
		[]qblockSpec{{Exists, []int32{1}}, {Forall, []int32{2}}, {Exists, []int32{3}}},
		[][]int32{{1, 2, 3}, {-1, 3}, {1, -3}},
	)
	c0 := f.Clause(f.LiveClauses()[0])
	p := &passState{f: f, mode: modeQBCE}
	if f.qbceTest(c0, p) {
		t.Fatal("clause 1 should not be QBCE-redundant")
	}
}
