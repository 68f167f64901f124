package qbf

// This file implements watcher initialization and maintenance
// (invariant 4/5) and universal literal removal (spec.md §4.6), plus
// the "unlink redundant clauses" formula-maintenance step of §4.7.

// initWatchers sets up the two watchers for a freshly ingested or
// freshly re-sized clause of length >= 2: rw_index = len-1 (guaranteed
// existential by invariant 3), lw_index = len-2 (spec.md §4.1 step 7).
func (f *Formula) initWatchers(c *Clause) {
	n := len(c.Lits)
	c.RWIndex = n - 1
	c.LWIndex = n - 2
	f.addWatchedOcc(c.Lits[c.RWIndex], c.ID)
	f.addWatchedOcc(c.Lits[c.LWIndex], c.ID)
}

func (f *Formula) addWatchedOcc(l Literal, id ClauseID) {
	v := &f.vars[l.Var()]
	if l.Sign() {
		v.WatchedNegOcc = append(v.WatchedNegOcc, id)
	} else {
		v.WatchedPosOcc = append(v.WatchedPosOcc, id)
	}
}

func (f *Formula) removeWatchedOcc(l Literal, id ClauseID) {
	v := &f.vars[l.Var()]
	if l.Sign() {
		removeClauseID(&v.WatchedNegOcc, id)
	} else {
		removeClauseID(&v.WatchedPosOcc, id)
	}
}

func (f *Formula) removeOcc(l Literal, id ClauseID) {
	v := &f.vars[l.Var()]
	if l.Sign() {
		removeClauseID(&v.NegOcc, id)
	} else {
		removeClauseID(&v.PosOcc, id)
	}
}

// removeClauseID removes the first occurrence of id from *s by
// swap-with-last; occurrence and watched-occurrence lists are
// unordered, so this is sound and avoids an O(n) shift.
func removeClauseID(s *[]ClauseID, id ClauseID) {
	a := *s
	for i, x := range a {
		if x == id {
			a[i] = a[len(a)-1]
			*s = a[:len(a)-1]
			return
		}
	}
}

// RemoveUniversalLiteral removes the universal literal at index idx
// from c, fixing occurrence lists, watchers and clause bookkeeping
// (spec.md §4.6). Used by BLE and QRATU.
func (f *Formula) RemoveUniversalLiteral(c *Clause, idx int) {
	l := c.Lits[idx]

	// Step 1.
	f.removeOcc(l, c.ID)

	reinitWatchers := false
	if c.HasWatchers() {
		switch idx {
		case c.LWIndex, c.RWIndex:
			// Step 2: literal is currently watched.
			f.removeWatchedOcc(c.Lits[c.LWIndex], c.ID)
			f.removeWatchedOcc(c.Lits[c.RWIndex], c.ID)
			c.LWIndex, c.RWIndex = invalidIndex, invalidIndex
			reinitWatchers = true
		default:
			// Step 3: shift watcher indices left of the removal point
			// unaffected; those to the right must decrement.
			if c.LWIndex > idx {
				c.LWIndex--
			}
			if c.RWIndex > idx {
				c.RWIndex--
			}
		}
	}

	// Step 4: shift remaining literals left by one.
	copy(c.Lits[idx:], c.Lits[idx+1:])
	c.Lits = c.Lits[:len(c.Lits)-1]

	switch {
	case len(c.Lits) == 1:
		// Step 5: becomes a unit clause; no watchers.
		f.unitClauses = append(f.unitClauses, c.ID)
	case reinitWatchers:
		// Step 6.
		f.initWatchers(c)
	}
}

// unlinkRedundantClauses removes clauses flagged redundant from the
// main clause list and from every occurrence/watched-occurrence list
// they appear in (spec.md §4.7: "speeds later QBCP"). Clauses remain
// addressable via Formula.Clause for export filtering and eventual
// teardown.
func (f *Formula) unlinkRedundantClauses() {
	kept := f.liveClauses[:0]
	for _, id := range f.liveClauses {
		c := f.clauses[id]
		if !c.Redundant {
			kept = append(kept, id)
			continue
		}
		for _, l := range c.Lits {
			f.removeOcc(l, id)
		}
		if c.HasWatchers() {
			f.removeWatchedOcc(c.LWLit(), id)
			f.removeWatchedOcc(c.RWLit(), id)
			c.LWIndex, c.RWIndex = invalidIndex, invalidIndex
		}
	}
	f.liveClauses = kept
}
