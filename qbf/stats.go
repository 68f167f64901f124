package qbf

// Stats tracks engine performance and outcome counters, in the spirit
// of the teacher's SolverStatistics / InprocessStatistics: a flat,
// exported-field struct updated in place as the engine runs, cheap to
// copy out for reporting.
type Stats struct {
	// Ingest.
	ClausesIngested      int64
	TautologiesDropped   int64
	UnitClausesIngested  int64
	UniversalLitsStripped int64
	ParsedEmptyClause    bool

	// Outer-resolvent checker.
	OuterLiteralVisits int64

	// QBCP.
	QBCPCalls          int64
	QBCPAssignments    int64
	QBCPPropagations   int64
	QBCPBudgetExceeded int64

	// Redundancy loop, per mode.
	QBCEClausesRemoved   int64
	QATClausesRemoved    int64
	QRATEClausesRemoved  int64
	BLELiteralsRemoved   int64
	QRATULiteralsRemoved int64

	Reschedules int64

	// Driver loop.
	Iterations    int64
	TimedOut      bool
	ElapsedNanos  int64
}

// ClausesRemoved is the total number of clauses eliminated by any
// clause-redundancy mode.
func (s *Stats) ClausesRemoved() int64 {
	return s.QBCEClausesRemoved + s.QATClausesRemoved + s.QRATEClausesRemoved
}

// LiteralsRemoved is the total number of universal literals eliminated
// by any literal-redundancy mode.
func (s *Stats) LiteralsRemoved() int64 {
	return s.BLELiteralsRemoved + s.QRATULiteralsRemoved
}
