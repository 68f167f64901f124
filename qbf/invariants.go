package qbf

// CheckInvariants verifies invariants 1-3 of spec.md §8 against the
// current store state. It is not called anywhere in the production
// redundancy loop (the core's error policy is catastrophic abort on
// bad input, silent give-up on resource limits, never a structured
// result for an internal bug); it exists for tests and debug tooling
// to call explicitly after a pass or after retract(). Invariant 4 is
// checked by CheckRetracted.
func (f *Formula) CheckInvariants() error {
	if err := f.checkClauseInvariants(); err != nil {
		return err
	}
	if err := f.checkOccurrenceInvariants(); err != nil {
		return err
	}
	return nil
}

// checkClauseInvariants verifies invariant 1 (sorted, deduped,
// non-tautological, existential-terminated) and invariant 2 (watcher
// placement) for every live, non-redundant clause.
func (f *Formula) checkClauseInvariants() error {
	for _, id := range f.liveClauses {
		c := f.clauses[id]
		if c.Redundant {
			continue
		}
		seen := make(map[int32]Literal, len(c.Lits))
		for i, l := range c.Lits {
			if prev, ok := seen[l.Var()]; ok {
				return newInvariantError("CheckInvariants", "clause %d: variable %d appears twice (%v and %v)", id, l.Var(), prev, l)
			}
			seen[l.Var()] = l
			if i > 0 {
				prevLit := c.Lits[i-1]
				pn, cn := f.vars[prevLit.Var()].Block.Nesting, f.vars[l.Var()].Block.Nesting
				if pn > cn || (pn == cn && prevLit.Var() > l.Var()) {
					return newInvariantError("CheckInvariants", "clause %d: literals out of (nesting, id) order at index %d", id, i)
				}
			}
		}
		if c.Len() >= 2 {
			last := c.Lits[c.Len()-1]
			if f.vars[last.Var()].Block.Kind != Exists {
				return newInvariantError("CheckInvariants", "clause %d: does not end in an existential literal", id)
			}
			if c.RWIndex >= c.Len() {
				return newInvariantError("CheckInvariants", "clause %d: rw_index out of range", id)
			}
			if c.LWIndex >= c.RWIndex {
				return newInvariantError("CheckInvariants", "clause %d: lw_index not < rw_index", id)
			}
			rw := c.RWLit()
			if f.vars[rw.Var()].Block.Kind != Exists && !c.IgnoreInQBCP {
				return newInvariantError("CheckInvariants", "clause %d: right watcher on a universal literal outside qbcp", id)
			}
			if !containsClauseID(f.watchedOccOf(rw), id) {
				return newInvariantError("CheckInvariants", "clause %d: right watcher's occurrence list does not contain the clause", id)
			}
			lw := c.LWLit()
			if !containsClauseID(f.watchedOccOf(lw), id) {
				return newInvariantError("CheckInvariants", "clause %d: left watcher's occurrence list does not contain the clause", id)
			}
		}
	}
	return nil
}

// checkOccurrenceInvariants verifies invariant 3: every clause on
// V.pos_occ/neg_occ actually contains the matching literal.
func (f *Formula) checkOccurrenceInvariants() error {
	for vid := int32(1); vid <= f.maxVarID; vid++ {
		v := &f.vars[vid]
		for _, id := range v.PosOcc {
			if !clauseContainsLiteral(f.clauses[id], Literal(vid)) {
				return newInvariantError("CheckInvariants", "variable %d: pos_occ clause %d does not contain +%d", vid, id, vid)
			}
		}
		for _, id := range v.NegOcc {
			if !clauseContainsLiteral(f.clauses[id], Literal(-vid)) {
				return newInvariantError("CheckInvariants", "variable %d: neg_occ clause %d does not contain -%d", vid, id, vid)
			}
		}
	}
	return nil
}

// CheckRetracted verifies invariant 4 after a QBCP call: every variable
// touched during the call (ids) is back to Undef/unpropagated, and every
// live clause's right watcher sits on a syntactically existential
// literal. The propagation queue belongs to the call's qbcpState and is
// not checked here.
func (f *Formula) CheckRetracted(ids []int32) error {
	for _, vid := range ids {
		v := &f.vars[vid]
		if v.Assignment != Undef {
			return newInvariantError("CheckRetracted", "variable %d: assignment not Undef after retract", vid)
		}
		if v.Propagated {
			return newInvariantError("CheckRetracted", "variable %d: propagated still set after retract", vid)
		}
	}
	for _, id := range f.liveClauses {
		c := f.clauses[id]
		if c.Redundant || !c.HasWatchers() {
			continue
		}
		if f.vars[c.RWLit().Var()].Block.Kind != Exists {
			return newInvariantError("CheckRetracted", "clause %d: right watcher not syntactically existential after retract", id)
		}
	}
	return nil
}

func (f *Formula) watchedOccOf(l Literal) []ClauseID {
	v := &f.vars[l.Var()]
	if l.Sign() {
		return v.WatchedNegOcc
	}
	return v.WatchedPosOcc
}

func containsClauseID(s []ClauseID, id ClauseID) bool {
	for _, x := range s {
		if x == id {
			return true
		}
	}
	return false
}

func clauseContainsLiteral(c *Clause, l Literal) bool {
	for _, cl := range c.Lits {
		if cl == l {
			return true
		}
	}
	return false
}
