// Package qdimacs parses the textual QDIMACS format (spec.md §6.1)
// into a stream of calls against a qbf.Formula. It is a thin external
// collaborator: the grammar lives here, the semantics of ingest live
// in package qbf.
package qdimacs

import (
	"fmt"

	"github.com/lonsing/qratpreplus/core"
)

// ParseError reports a lexical, grammatical, or ingest-rejected
// problem with a QDIMACS stream, tagged with the offending line
// (spec.md §7: "malformed preamble", "input file missing" are both
// ingest-fatal).
type ParseError struct {
	*core.LogicError
}

func newParseError(op string, line int, message string) *ParseError {
	if line > 0 {
		message = fmt.Sprintf("line %d: %s", line, message)
	}
	return &ParseError{core.NewLogicError("qdimacs", op, message)}
}
