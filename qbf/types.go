// Package qbf implements the core redundancy engine for preprocessing
// quantified Boolean formulas (QBF) in prenex conjunctive normal form:
// the clause/occurrence data model, the QBCP (Q-unit-propagation) kernel
// with watched literals and existential abstraction, the outer-resolvent
// and asymmetric-tautology checkers, and the saturating redundancy loop
// that implements QBCE, QAT, QRATE, BLE and QRATU.
//
// Parsing, option/CLI handling, signal and timeout handling, and
// statistics printing are deliberately outside this package; see
// qdimacs and cmd/qratpreplus.
package qbf

import "math"

// QuantKind distinguishes the two quantifier types of a prefix block.
type QuantKind int8

const (
	Exists QuantKind = iota
	Forall
)

func (k QuantKind) String() string {
	if k == Forall {
		return "a"
	}
	return "e"
}

// Opposite returns the other quantifier kind.
func (k QuantKind) Opposite() QuantKind {
	if k == Forall {
		return Exists
	}
	return Forall
}

// Assignment is a variable's current truth value under QBCP.
type Assignment int8

const (
	Undef Assignment = iota
	True
	False
)

// invalidIndex is the sentinel for an unset watcher index (invariant 4).
const invalidIndex = math.MaxInt32

// Literal is a signed integer: magnitude is the variable id, sign is the
// phase (positive = unnegated).
type Literal int32

// Var returns the variable id of a literal.
func (l Literal) Var() int32 {
	if l < 0 {
		return int32(-l)
	}
	return int32(l)
}

// Sign returns true if the literal is negative (i.e. the variable
// occurs negated).
func (l Literal) Sign() bool {
	return l < 0
}

// Neg returns the complementary literal.
func (l Literal) Neg() Literal {
	return -l
}

// ClauseID identifies a clause by its ingest-order-assigned index into
// Formula.clauses. Stable for the lifetime of the formula even once a
// clause is unlinked from the main clause list (invariant: "redundant
// clauses may be unlinked ... but are retained for final free").
type ClauseID int32

// QBlock is a maximal run of same-quantifier-type variables in the
// prefix, at a given nesting level (0 = outermost).
type QBlock struct {
	Kind    QuantKind
	Nesting int
	Vars    []int32
}

// Variable holds the per-variable state the redundancy engine mutates:
// its owning block, its current QBCP assignment, transient scan marks,
// and its four occurrence lists (invariant 8).
type Variable struct {
	ID         int32
	Block      *QBlock
	Assignment Assignment
	Propagated bool

	// Mark1/Mark2 are scratch bits reserved for transient scans; no
	// check in this package sets them. Callers must clear them when done.
	Mark1 bool
	Mark2 bool

	PosOcc []ClauseID
	NegOcc []ClauseID

	WatchedPosOcc []ClauseID
	WatchedNegOcc []ClauseID
}

// IsExistential reports whether v is existential under the given
// abstraction level: its block is existential, or its block's nesting
// is at or outside eabsNesting, i.e. Nesting <= eabsNesting (§4.3). eabsNesting == eabsAll means every
// variable is treated as existential.
func (v *Variable) IsExistential(eabsNesting int) bool {
	if v.Block.Kind == Exists {
		return true
	}
	return eabsNesting == eabsAll || v.Block.Nesting <= eabsNesting
}

// eabsAll ("UINT_MAX means all variables existential" in spec.md §4.3).
const eabsAll = math.MaxInt32

// Clause is a clause in the formula: a literal sequence kept sorted
// ascending by (nesting, variable id) (invariant 1), plus watcher
// indices and status bits.
type Clause struct {
	ID   ClauseID
	Lits []Literal

	// LWIndex < RWIndex when both are set (invariant 4); invalidIndex
	// when the clause has no watchers (unit/empty clauses, invariant 7).
	LWIndex int
	RWIndex int

	Redundant         bool
	Rescheduled       bool
	IgnoreInQBCP      bool
	Witness           bool
	LWUpdateCollected bool
}

// Len returns the number of literals currently in the clause.
func (c *Clause) Len() int { return len(c.Lits) }

// HasWatchers reports whether the clause participates in watched-literal
// propagation (length >= 2).
func (c *Clause) HasWatchers() bool {
	return c.RWIndex != invalidIndex
}

// RWLit / LWLit return the currently watched literals. Callers must
// check HasWatchers first.
func (c *Clause) RWLit() Literal { return c.Lits[c.RWIndex] }
func (c *Clause) LWLit() Literal { return c.Lits[c.LWIndex] }
