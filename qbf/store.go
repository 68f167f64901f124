package qbf

import "sort"

// Formula is the Prefix/Formula store (spec.md §4.1): it holds prefix
// blocks, the dense variable table, the clause arena, occurrence lists
// and watcher lists, and is the sole piece of state the redundancy
// engine mutates. Nothing reads Variable/Clause fields concurrently
// with a Preprocess call (spec.md §5).
type Formula struct {
	opts  Options
	stats Stats

	vars     []Variable // dense, index 0 unused; len == maxVarID+1 once declared
	maxVarID int32
	declared bool

	blocks         []*QBlock
	blocksFinal    bool // true once the first clause has been ingested
	blockOpen      bool
	pendingBlock   *QBlock

	// clauses is the append-only arena; ClauseID i is always clauses[i].
	// liveClauses is the "main clause list" of spec.md §4.7, which
	// shrinks as unlinkRedundantClauses runs.
	clauses     []*Clause
	liveClauses []ClauseID
	unitClauses []ClauseID

	litBuf []Literal

	parsedEmptyClause bool
}

// NewFormula creates an empty store with the given options.
func NewFormula(opts Options) *Formula {
	return &Formula{opts: opts}
}

// Stats returns a snapshot of the engine's running counters.
func (f *Formula) Stats() Stats { return f.stats }

// DeclareMaxVarID allocates the dense variable table. Must be called at
// most once, before any literal event (spec.md §4.1).
func (f *Formula) DeclareMaxVarID(n int32) error {
	if f.declared {
		return newIngestError("DeclareMaxVarID", "max variable id already declared")
	}
	f.vars = make([]Variable, n+1)
	for i := int32(1); i <= n; i++ {
		f.vars[i].ID = i
	}
	f.maxVarID = n
	f.declared = true
	return nil
}

// NewQBlock opens a quantifier block of the given kind. Subsequent
// AddVarToQBlock calls append to it until a terminating AddLiteral(0).
func (f *Formula) NewQBlock(kind QuantKind) error {
	if f.blockOpen {
		return newIngestError("NewQBlock", "previous quantifier block not terminated")
	}
	f.pendingBlock = &QBlock{Kind: kind}
	f.blockOpen = true
	return nil
}

// AddVarToQBlock appends v to the currently open block.
func (f *Formula) AddVarToQBlock(v int32) error {
	if !f.blockOpen {
		return newIngestError("AddVarToQBlock", "no quantifier block is open")
	}
	if v <= 0 || v > f.maxVarID {
		return newIngestError("AddVarToQBlock", "variable id out of declared range")
	}
	if f.vars[v].Block != nil {
		return newIngestError("AddVarToQBlock", "variable already quantified")
	}
	f.pendingBlock.Vars = append(f.pendingBlock.Vars, v)
	f.vars[v].Block = f.pendingBlock
	return nil
}

// AddLiteral appends a literal to the pending clause buffer, or, when a
// quantifier block is open, terminates that block on l == 0. This is
// the single entry point spec.md §4.1/§6.1 describes.
func (f *Formula) AddLiteral(l int32) error {
	if f.blockOpen {
		if l != 0 {
			return newIngestError("AddLiteral", "non-zero literal while a quantifier block is open")
		}
		f.blocks = append(f.blocks, f.pendingBlock)
		f.pendingBlock = nil
		f.blockOpen = false
		return nil
	}

	if l == 0 {
		return f.importClause()
	}

	v := l
	if v < 0 {
		v = -v
	}
	if v > f.maxVarID || f.vars[v].Block == nil {
		return newIngestError("AddLiteral", "literal references an undeclared or unquantified variable")
	}
	f.litBuf = append(f.litBuf, Literal(l))
	return nil
}

// finalizeBlocks merges adjacent same-type blocks, renumbers the
// sequence 0..k-1 (spec.md §4.1: "on first clause import"), and is run
// exactly once, before the first clause is ingested.
func (f *Formula) finalizeBlocks() {
	if f.blocksFinal {
		return
	}
	f.blocksFinal = true

	merged := f.blocks[:0:0]
	for _, b := range f.blocks {
		if n := len(merged); n > 0 && merged[n-1].Kind == b.Kind {
			merged[n-1].Vars = append(merged[n-1].Vars, b.Vars...)
			continue
		}
		merged = append(merged, b)
	}
	for i, b := range merged {
		b.Nesting = i
		for _, v := range b.Vars {
			f.vars[v].Block = b
		}
	}
	f.blocks = merged
}

// importClause consumes litBuf as a clause (spec.md §4.1 steps 1-7).
func (f *Formula) importClause() error {
	f.finalizeBlocks()
	lits := f.litBuf
	f.litBuf = nil

	// Step 2: dedup same-variable literals; detect tautologies.
	byVar := make(map[int32]Literal, len(lits))
	order := make([]int32, 0, len(lits))
	for _, l := range lits {
		v := l.Var()
		if existing, ok := byVar[v]; ok {
			if existing != l {
				f.stats.TautologiesDropped++
				return nil // tautology: discard clause entirely
			}
			continue // duplicate, already recorded
		}
		byVar[v] = l
		order = append(order, v)
	}
	dedup := make([]Literal, 0, len(order))
	for _, v := range order {
		dedup = append(dedup, byVar[v])
	}

	// Step 3: sort ascending by (nesting, var id) — invariant 1.
	sort.Slice(dedup, func(i, j int) bool {
		bi, bj := f.vars[dedup[i].Var()].Block, f.vars[dedup[j].Var()].Block
		if bi.Nesting != bj.Nesting {
			return bi.Nesting < bj.Nesting
		}
		return dedup[i].Var() < dedup[j].Var()
	})

	// Step 4: universal reduction — strip trailing universal literals.
	for len(dedup) > 0 {
		last := dedup[len(dedup)-1]
		if f.vars[last.Var()].Block.Kind != Forall {
			break
		}
		dedup = dedup[:len(dedup)-1]
		f.stats.UniversalLitsStripped++
	}

	f.stats.ClausesIngested++
	id := ClauseID(len(f.clauses))
	c := &Clause{ID: id, Lits: dedup, LWIndex: invalidIndex, RWIndex: invalidIndex}
	f.clauses = append(f.clauses, c)

	if len(dedup) == 0 {
		f.parsedEmptyClause = true
		f.stats.ParsedEmptyClause = true
		return nil
	}

	f.addOccurrences(c)
	if len(dedup) == 1 {
		f.unitClauses = append(f.unitClauses, id)
		f.stats.UnitClausesIngested++
	} else {
		f.initWatchers(c)
	}
	f.liveClauses = append(f.liveClauses, id)
	return nil
}

// addOccurrences appends c to every involved variable's pos/neg
// occurrence list (invariant 8).
func (f *Formula) addOccurrences(c *Clause) {
	for _, l := range c.Lits {
		v := &f.vars[l.Var()]
		if l.Sign() {
			v.NegOcc = append(v.NegOcc, c.ID)
		} else {
			v.PosOcc = append(v.PosOcc, c.ID)
		}
	}
}

// ParsedEmptyClause reports whether an empty clause was ever ingested.
func (f *Formula) ParsedEmptyClause() bool { return f.parsedEmptyClause }

// Blocks returns the finalized, renumbered prefix sequence once the
// first clause has been ingested. It does not finalize the prefix
// itself: before the first clause it returns the blocks as declared,
// unmerged and with Nesting not yet assigned.
func (f *Formula) Blocks() []*QBlock { return f.blocks }

// Clause looks up a clause by id. Valid for the lifetime of the
// Formula, even after the clause is unlinked from the live list.
func (f *Formula) Clause(id ClauseID) *Clause { return f.clauses[id] }

// LiveClauses returns the current main clause list (non-redundant,
// linked clauses), in ingest-id order.
func (f *Formula) LiveClauses() []ClauseID { return f.liveClauses }

// UnitClauses returns the unit-input-clauses list (spec.md §4.3,
// §9: "never watched; every QBCP call seeds them").
func (f *Formula) UnitClauses() []ClauseID { return f.unitClauses }

// Var returns the variable record for id.
func (f *Formula) Var(id int32) *Variable { return &f.vars[id] }

// MaxVarID returns the declared variable capacity.
func (f *Formula) MaxVarID() int32 { return f.maxVarID }
