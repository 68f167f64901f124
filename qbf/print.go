package qbf

import (
	"fmt"
	"io"
)

// Print writes the formula in QDIMACS format (spec.md §6.3), honoring
// the two special cases: a parsed empty clause collapses the whole
// output to a one-clause trivially-unsatisfiable instance; an empty
// clause list (everything eliminated) collapses to an empty instance.
func (f *Formula) Print(w io.Writer) error {
	if f.parsedEmptyClause {
		_, err := io.WriteString(w, "p cnf 0 1\n0\n")
		return err
	}

	clauseCount := len(f.liveClauses)
	if clauseCount == 0 {
		_, err := io.WriteString(w, "p cnf 0 0\n")
		return err
	}

	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", f.maxVarIDInUse(), clauseCount); err != nil {
		return err
	}
	for _, b := range f.blocks {
		if len(b.Vars) == 0 {
			continue
		}
		if _, err := io.WriteString(w, b.Kind.String()); err != nil {
			return err
		}
		for _, v := range b.Vars {
			if _, err := fmt.Fprintf(w, " %d", v); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, " 0\n"); err != nil {
			return err
		}
	}
	for _, id := range f.liveClauses {
		c := f.clauses[id]
		for _, l := range c.Lits {
			if _, err := fmt.Fprintf(w, "%d ", int32(l)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "0\n"); err != nil {
			return err
		}
	}
	return nil
}

// maxVarIDInUse returns the largest variable id still appearing in a
// live clause (spec.md §6.3: "V' = max var id still in use").
func (f *Formula) maxVarIDInUse() int32 {
	var max int32
	for _, id := range f.liveClauses {
		for _, l := range f.clauses[id].Lits {
			if v := l.Var(); v > max {
				max = v
			}
		}
	}
	return max
}
