package qbf

import (
	"fmt"

	"github.com/lonsing/qratpreplus/core"
)

// IngestError reports an unrecoverable problem with the ingest event
// stream (spec.md §7: "undeclared variable in a clause", "variable
// reused across blocks", "clause/block interleaving violation",
// "malformed preamble"). The caller (qdimacs or a programmatic
// producer) is expected to treat this as fatal, matching the original's
// abort-on-bad-input policy; see cmd/qratpreplus for where that abort
// actually happens.
type IngestError struct {
	*core.LogicError
}

func newIngestError(op, message string) *IngestError {
	return &IngestError{core.NewLogicError("qbf", op, message)}
}

// ConfigError reports an unrecognized option or a malformed option
// argument (spec.md §7).
type ConfigError struct {
	*core.LogicError
}

func newConfigError(op, message string) *ConfigError {
	return &ConfigError{core.NewLogicError("qbf", op, message)}
}

// InvariantError is raised only by the debug-mode assertions described
// in spec.md §5 and §8 (e.g. "every right-watcher is on a syntactically
// existential literal outside of QBCP"). Only CheckInvariants and
// CheckRetracted construct one, and Preprocess calls neither.
type InvariantError struct {
	*core.LogicError
}

func newInvariantError(op, format string, args ...any) *InvariantError {
	return &InvariantError{core.NewLogicError("qbf", op, fmt.Sprintf(format, args...))}
}
