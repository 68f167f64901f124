package qbf

import (
	"math/rand"
	"sort"
	"time"
)

// redundancyMode selects which of the five notions a scheduling pass
// tests (spec.md §4.5).
type redundancyMode int8

const (
	modeQBCE redundancyMode = iota
	modeQAT
	modeQRATE
	modeBLE
	modeQRATU
)

// softTimeCheckMask evaluates the soft time limit every 2^k clause
// tests; the source uses k = 10 (spec.md §4.5).
const softTimeCheckMask = 1<<10 - 1

// passState carries per-pass-iteration bookkeeping: which clauses
// witnessed another clause's non-redundancy, so a later redundancy can
// trigger rescheduling (spec.md §9: "witness tracking").
type passState struct {
	f              *Formula
	mode           redundancyMode
	witnessClauses []ClauseID
}

func (p *passState) recordWitness(id ClauseID) {
	p.witnessClauses = append(p.witnessClauses, id)
}

// outerBlocked implements the shared "blocked by outer tautology" test
// used by QBCE (on existential pivots) and BLE (on universal pivots):
// lit blocks C iff every non-redundant opposite-phase occurrence of
// lit's variable gives an outer-tautologous resolvent. For an
// existential pivot, the first partner that fails is recorded as a
// witness, mirroring hasQRATOnLiteral so QBCE also participates in
// witness rescheduling (spec.md §4.5 "QBCE/QRAT clause modes").
func (f *Formula) outerBlocked(C *Clause, lit Literal, p *passState) bool {
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
		if !f.outerTautology(C, lit, Occ, f.opts.QBCECheckTautByNesting) {
			if v.Block.Kind == Exists && !Occ.Witness {
				Occ.Witness = true
				p.recordWitness(id)
			}
			return false
		}
	}
	return true
}

func (f *Formula) skipOutermost(v *Variable) bool {
	return f.opts.IgnoreOutermostVars && v.Block.Nesting == 0
}

// qbceTest implements the QBCE clause test: C is blocked if any
// existential literal blocks it.
func (f *Formula) qbceTest(C *Clause, p *passState) bool {
	for _, lit := range C.Lits {
		v := &f.vars[lit.Var()]
		if v.Block.Kind != Exists || f.skipOutermost(v) {
			continue
		}
		if f.outerBlocked(C, lit, p) {
			C.Redundant = true
			f.stats.QBCEClausesRemoved++
			return true
		}
	}
	return false
}

func (f *Formula) qatTest(C *Clause) bool {
	if f.qatCheck(C) {
		C.Redundant = true
		f.stats.QATClausesRemoved++
		return true
	}
	return false
}

func (f *Formula) qrateTest(C *Clause, p *passState) bool {
	if f.clauseHasQRAT(C, p) {
		C.Redundant = true
		f.stats.QRATEClausesRemoved++
		return true
	}
	return false
}

// bleTest removes every universal literal of C blocked by outer
// tautology. Removal invalidates literal indices, so each removal
// restarts the scan rather than trusting a stale index (spec.md §9
// Open Question (a)).
func (f *Formula) bleTest(C *Clause, p *passState) bool {
	fired := false
	for C.Len() >= 2 {
		removed := false
		for i := 0; i < len(C.Lits); i++ {
			lit := C.Lits[i]
			v := &f.vars[lit.Var()]
			if v.Block.Kind != Forall || f.skipOutermost(v) {
				continue
			}
			if f.outerBlocked(C, lit, p) {
				f.RemoveUniversalLiteral(C, i)
				f.stats.BLELiteralsRemoved++
				fired = true
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}
	return fired
}

// qratuTest removes every universal literal of C that has QRAT.
func (f *Formula) qratuTest(C *Clause, p *passState) bool {
	fired := false
	for C.Len() >= 2 {
		removed := false
		for i := 0; i < len(C.Lits); i++ {
			lit := C.Lits[i]
			v := &f.vars[lit.Var()]
			if v.Block.Kind != Forall || f.skipOutermost(v) {
				continue
			}
			if f.hasQRATOnLiteral(C, lit, p) {
				f.RemoveUniversalLiteral(C, i)
				f.stats.QRATULiteralsRemoved++
				fired = true
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}
	return fired
}

func (f *Formula) testClause(mode redundancyMode, c *Clause, p *passState) bool {
	switch mode {
	case modeQBCE:
		return f.qbceTest(c, p)
	case modeQAT:
		return f.qatTest(c)
	case modeQRATE:
		return f.qrateTest(c, p)
	case modeBLE:
		return f.bleTest(c, p)
	case modeQRATU:
		return f.qratuTest(c, p)
	}
	return false
}

// withinRescheduleLimits implements the clause-limit filter of
// spec.md §4.5.
func (f *Formula) withinRescheduleLimits(c *Clause) bool {
	if c.Len() < f.opts.LimitMinClauseLen || c.Len() > f.opts.LimitMaxClauseLen {
		return false
	}
	for _, l := range c.Lits {
		v := &f.vars[l.Var()]
		var comp []ClauseID
		if l.Sign() {
			comp = v.PosOcc
		} else {
			comp = v.NegOcc
		}
		if len(comp) > f.opts.LimitMaxOccCnt {
			return false
		}
	}
	return true
}

// hasUniversalLiteral reports whether c has any literal eligible for a
// literal-removal mode test.
func (c *Clause) hasUniversalLiteral(f *Formula) bool {
	for _, l := range c.Lits {
		if f.vars[l.Var()].Block.Kind == Forall {
			return true
		}
	}
	return false
}

// collectCandidates builds the initial to_be_checked queue for mode:
// every live clause meeting the reschedule limits, additionally
// restricted to clauses containing a universal literal for the
// literal-removal modes.
func (f *Formula) collectCandidates(mode redundancyMode) []ClauseID {
	var out []ClauseID
	for _, id := range f.liveClauses {
		c := f.clauses[id]
		if c.Redundant || !f.withinRescheduleLimits(c) {
			continue
		}
		if (mode == modeBLE || mode == modeQRATU) && !c.hasUniversalLiteral(f) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// reschedule computes the next to_be_checked queue from this
// iteration's outcome (spec.md §4.5 "After the pass, reschedule
// candidates").
func (f *Formula) reschedule(mode redundancyMode, p *passState, changed bool) []ClauseID {
	switch mode {
	case modeQAT:
		return nil
	case modeQBCE, modeQRATE:
		return f.rescheduleFromWitnesses(p)
	default: // modeBLE, modeQRATU
		if !changed {
			return nil
		}
		return f.collectCandidates(mode)
	}
}

func (f *Formula) rescheduleFromWitnesses(p *passState) []ClauseID {
	var next []ClauseID
	for _, wid := range p.witnessClauses {
		w := f.clauses[wid]
		w.Witness = false
		if !w.Redundant {
			continue
		}
		for _, l := range w.Lits {
			v := &f.vars[l.Var()]
			var comp []ClauseID
			if l.Sign() {
				comp = v.PosOcc
			} else {
				comp = v.NegOcc
			}
			for _, pid := range comp {
				partner := f.clauses[pid]
				if partner.Redundant || partner.Rescheduled || !f.withinRescheduleLimits(partner) {
					continue
				}
				partner.Rescheduled = true
				next = append(next, pid)
				f.stats.Reschedules++
			}
		}
	}
	return next
}

// runMode drives one redundancy mode to its local fixed point: swap
// to_be_checked/rescheduled, order the queue (sorted or permuted),
// test every clause, then reschedule (spec.md §4.5). Returns whether
// any redundancy was found.
func (f *Formula) runMode(mode redundancyMode, deadline time.Time, rng *rand.Rand) bool {
	toCheck := f.collectCandidates(mode)
	overallChanged := false
	testCount := 0

	for len(toCheck) > 0 {
		for _, id := range toCheck {
			f.clauses[id].Rescheduled = false
		}

		if f.opts.Permute && (mode == modeQAT || mode == modeQRATE || mode == modeQRATU) {
			fisherYates(toCheck, rng)
		} else {
			sort.Slice(toCheck, func(i, j int) bool { return toCheck[i] < toCheck[j] })
		}

		p := &passState{f: f, mode: mode}
		changedThisIter := false
		timedOut := false

		for _, id := range toCheck {
			testCount++
			if testCount&softTimeCheckMask == 0 && f.overTime(deadline) {
				f.stats.TimedOut = true
				timedOut = true
				break
			}
			c := f.clauses[id]
			if c.Redundant {
				continue
			}
			if f.testClause(mode, c, p) {
				changedThisIter = true
			}
		}

		overallChanged = overallChanged || changedThisIter
		if timedOut {
			break
		}
		toCheck = f.reschedule(mode, p, changedThisIter)
	}
	return overallChanged
}

func (f *Formula) overTime(deadline time.Time) bool {
	return f.opts.SoftTimeLimitSeconds > 0 && !deadline.IsZero() && time.Now().After(deadline)
}

// fisherYates shuffles ids in place using rng (spec.md §4.5 "Fisher–
// Yates shuffle seeded from the configurable RNG seed").
func fisherYates(ids []ClauseID, rng *rand.Rand) {
	for i := len(ids) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
