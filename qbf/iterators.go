package qbf

// This file implements the export iterator API of spec.md §6.2. It is
// a thin, deliberately non-central read-only view over the store (see
// spec.md §1: "the programmatic import/export iterator API" is an
// external collaborator, not part of the core redundancy engine).

// ClauseIter walks the formula's non-redundant clauses in id order.
type ClauseIter struct {
	f   *Formula
	ids []ClauseID
	pos int
}

// ClauseIterInit returns an iterator over the current live clause list.
// Call after Preprocess (or at any point where the caller wants the
// clauses live right now).
func (f *Formula) ClauseIterInit() *ClauseIter {
	return &ClauseIter{f: f, ids: f.liveClauses}
}

func (it *ClauseIter) HasNext() bool { return it.pos < len(it.ids) }

// NextLen peeks the literal count of the next clause without advancing.
func (it *ClauseIter) NextLen() int {
	return it.f.clauses[it.ids[it.pos]].Len()
}

// Next copies the next clause's literals into buf (reusing its storage
// when large enough) and advances. Returns nil once exhausted.
func (it *ClauseIter) Next(buf []Literal) []Literal {
	if !it.HasNext() {
		return nil
	}
	c := it.f.clauses[it.ids[it.pos]]
	it.pos++
	return append(buf[:0], c.Lits...)
}

// QBlockIter walks the finalized prefix, outermost block first.
type QBlockIter struct {
	f   *Formula
	pos int
}

func (f *Formula) QBlockIterInit() *QBlockIter {
	return &QBlockIter{f: f}
}

func (it *QBlockIter) HasNext() bool { return it.pos < len(it.f.blocks) }

func (it *QBlockIter) NextLen() int {
	return len(it.f.blocks[it.pos].Vars)
}

// GetVars copies the next block's variable ids into buf.
func (it *QBlockIter) GetVars(buf []int32) []int32 {
	return append(buf[:0], it.f.blocks[it.pos].Vars...)
}

// Next advances past the block and reports its kind: -1 for Exists,
// +1 for Forall, 0 once exhausted.
func (it *QBlockIter) Next() int {
	if !it.HasNext() {
		return 0
	}
	b := it.f.blocks[it.pos]
	it.pos++
	if b.Kind == Forall {
		return 1
	}
	return -1
}
