package qbf

import (
	"math/rand"
	"time"
)

// Preprocess drives the formula to saturation (spec.md §4.7): it
// alternates a clause-redundancy pipeline (QBCE, QAT, QRATE) with a
// literal-redundancy pipeline (BLE, QRATU) until neither makes
// progress, the soft time limit elapses, or the global iteration cap
// is hit.
func (f *Formula) Preprocess() {
	start := time.Now()
	var deadline time.Time
	if f.opts.SoftTimeLimitSeconds > 0 {
		deadline = start.Add(time.Duration(f.opts.SoftTimeLimitSeconds * float64(time.Second)))
	}
	rng := rand.New(rand.NewSource(f.opts.Seed))

	iter := 0
	changed := true
	for changed && !f.overTime(deadline) && iter < f.opts.LimitGlobalIterations {
		iter++
		changed = false

		if f.runClausePipeline(deadline, rng) {
			changed = true
		}
		if !f.overTime(deadline) {
			if f.runLiteralPipeline(deadline, rng) {
				changed = true
			}
		}
	}

	f.unlinkRedundantClauses()

	f.stats.Iterations = int64(iter)
	f.stats.ElapsedNanos = int64(time.Since(start))
}

// runClausePipeline runs QBCE, then QAT, then QRATE, unlinking
// redundant clauses between each sub-pass so later QBCP calls carry
// fewer watched-occurrence entries (spec.md §4.7).
func (f *Formula) runClausePipeline(deadline time.Time, rng *rand.Rand) bool {
	changed := false

	if !f.opts.NoQBCE {
		if f.runMode(modeQBCE, deadline, rng) {
			changed = true
		}
		f.unlinkRedundantClauses()
	}
	if !f.overTime(deadline) && !f.opts.NoQAT {
		if f.runMode(modeQAT, deadline, rng) {
			changed = true
		}
		f.unlinkRedundantClauses()
	}
	if !f.overTime(deadline) && !f.opts.NoQRATE {
		if f.runMode(modeQRATE, deadline, rng) {
			changed = true
		}
		f.unlinkRedundantClauses()
	}
	return changed
}

// runLiteralPipeline runs BLE, then QRATU.
func (f *Formula) runLiteralPipeline(deadline time.Time, rng *rand.Rand) bool {
	changed := false

	if !f.opts.NoBLE {
		if f.runMode(modeBLE, deadline, rng) {
			changed = true
		}
	}
	if !f.overTime(deadline) && !f.opts.NoQRATU {
		if f.runMode(modeQRATU, deadline, rng) {
			changed = true
		}
	}
	return changed
}
