package qbf

// outerTautology implements the outer-resolvent / outer-tautology
// checker of spec.md §4.2: given C, a pivot literal lit in C with -lit
// in occ, decide whether the outer resolvent of C and occ on lit is a
// tautology restricted to variables at nesting <= nesting(lit).
//
// The pruneByNesting option only affects how the scan exploits occ's
// sorted order to cut visits short for statistics purposes; both code
// paths compute the same boolean (every candidate is still subject to
// the nesting(cl) <= nesting(lit) predicate either way).
func (f *Formula) outerTautology(C *Clause, lit Literal, occ *Clause, pruneByNesting bool) bool {
	maxNesting := f.vars[lit.Var()].Block.Nesting

	for _, cl := range C.Lits {
		f.stats.OuterLiteralVisits++
		if cl == lit {
			continue
		}
		if f.vars[cl.Var()].Block.Nesting > maxNesting {
			continue
		}
		target := cl.Neg()
		for _, ol := range occ.Lits {
			f.stats.OuterLiteralVisits++
			if f.vars[ol.Var()].Block.Nesting > maxNesting {
				if pruneByNesting {
					break // occ is sorted; nothing further can match
				}
				continue
			}
			if ol == target {
				return true
			}
		}
	}
	return false
}
