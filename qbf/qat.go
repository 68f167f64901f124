package qbf

// This file implements the QAT/QRAT checkers of spec.md §4.4: both wrap
// a single QBCP call, differing only in what they seed into it before
// propagating.

// seedUnitClauses seeds the queue with every live unit-input clause's
// forced literal (spec.md §9: "a small fixed prelude to propagation").
// Reports false on a seed-level conflict.
func (f *Formula) seedUnitClauses(s *qbcpState) bool {
	for _, id := range f.unitClauses {
		c := f.clauses[id]
		if c.Redundant {
			continue
		}
		if !s.seedSatisfying(c.Lits[0]) {
			return false
		}
	}
	return true
}

// seedSatisfying seeds the assignment that makes l true.
func (s *qbcpState) seedSatisfying(l Literal) bool {
	a := True
	if l.Sign() {
		a = False
	}
	return s.seed(l.Var(), a)
}

// seedFalsifying seeds the assignment that makes l false.
func (s *qbcpState) seedFalsifying(l Literal) bool {
	a := False
	if l.Sign() {
		a = True
	}
	return s.seed(l.Var(), a)
}

// applyEABS computes and sets the call's abstraction level from
// eabs_nesting_aux, once seeding is complete (spec.md §4.4 step 3).
func (s *qbcpState) applyEABS(f *Formula) {
	if f.opts.NoEABS {
		s.eabsNesting = eabsOff
		return
	}
	nesting := s.eabsNestingAux
	if !f.opts.NoEABSImprovedNesting && nesting > 0 {
		nesting--
	}
	s.eabsNesting = nesting
}

// qatCheck implements qat_check(C): is C an asymmetric tautology?
func (f *Formula) qatCheck(C *Clause) bool {
	C.IgnoreInQBCP = true
	s := newQBCPState(f, f.opts.LimitQBCPCurProps)

	conflict := !f.seedUnitClauses(s)
	if !conflict {
		for _, l := range C.Lits {
			if !s.seedFalsifying(l) {
				conflict = true
				break
			}
		}
	}
	s.applyEABS(f)

	unsat := conflict
	if !conflict {
		unsat = s.run() == propUnsat
	}

	s.retract()
	C.IgnoreInQBCP = false
	return unsat
}

// qratCheck implements qrat_check(C, lit, Occ): assumes C's negation
// (minus lit) and Occ's negation (minus -lit, restricted to the outer
// part of the prefix relative to lit), then propagates.
func (f *Formula) qratCheck(C *Clause, lit Literal, Occ *Clause) bool {
	C.IgnoreInQBCP = true
	s := newQBCPState(f, f.opts.LimitQBCPCurProps)

	litNesting := f.vars[lit.Var()].Block.Nesting

	conflict := !f.seedUnitClauses(s)

	if !conflict {
		for _, l := range C.Lits {
			if l == lit {
				continue
			}
			if f.opts.IgnoreInnerLits && f.vars[l.Var()].Block.Nesting > litNesting {
				continue
			}
			if !s.seedFalsifying(l) {
				conflict = true
				break
			}
		}
	}

	if !conflict {
		negLit := lit.Neg()
		for _, l := range Occ.Lits {
			if l == negLit {
				continue
			}
			if f.vars[l.Var()].Block.Nesting > litNesting {
				break // Occ is sorted by nesting; nothing further qualifies
			}
			if !s.seedFalsifying(l) {
				conflict = true
				break
			}
		}
	}

	s.applyEABS(f)

	unsat := conflict
	if !conflict {
		unsat = s.run() == propUnsat
	}

	s.retract()
	C.IgnoreInQBCP = false
	return unsat
}

// hasQRATOnLiteral implements has_qrat_on_literal(C, lit): lit blocks C
// iff every non-redundant opposite-phase occurrence of lit's variable
// passes qrat_check. For an existential pivot, the first partner that
// fails is recorded as a witness (unless it already is one) so
// redundancy.go can reschedule it later.
func (f *Formula) hasQRATOnLiteral(C *Clause, lit Literal, p *passState) bool {
	v := &f.vars[lit.Var()]
	var occ []ClauseID
	if lit.Sign() {
		occ = v.PosOcc
	} else {
		occ = v.NegOcc
	}

	for _, id := range occ {
		Occ := f.clauses[id]
		if Occ == C || Occ.Redundant {
			continue
		}
		if !f.qratCheck(C, lit, Occ) {
			if v.Block.Kind == Exists && !Occ.Witness {
				Occ.Witness = true
				p.recordWitness(id)
			}
			return false
		}
	}
	return true
}

// clauseHasQRAT implements clause_has_qrat(C): true at the first
// existential literal on which C has QRAT.
func (f *Formula) clauseHasQRAT(C *Clause, p *passState) bool {
	for _, lit := range C.Lits {
		if f.vars[lit.Var()].Block.Kind != Exists {
			continue
		}
		if f.hasQRATOnLiteral(C, lit, p) {
			return true
		}
	}
	return false
}
