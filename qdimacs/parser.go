package qdimacs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lonsing/qratpreplus/qbf"
)

// Parse reads a QDIMACS-formatted stream and drives the ingest events
// of spec.md §6.1 against f: a preamble line, any number of prefix
// (`a`/`e`) lines, then clause lines. Comment lines (`c ...`) are
// skipped.
func Parse(r io.Reader, f *qbf.Formula) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16<<20)

	lineNo := 0
	preambleSeen := false

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "c":
			continue

		case "p":
			if preambleSeen {
				return newParseError("Parse", lineNo, "duplicate preamble line")
			}
			if len(fields) != 4 || fields[1] != "cnf" {
				return newParseError("Parse", lineNo, "malformed preamble, expected 'p cnf V C'")
			}
			maxVar, err := strconv.ParseInt(fields[2], 10, 32)
			if err != nil {
				return newParseError("Parse", lineNo, "non-numeric variable count in preamble")
			}
			if _, err := strconv.ParseInt(fields[3], 10, 32); err != nil {
				return newParseError("Parse", lineNo, "non-numeric clause count in preamble")
			}
			if err := f.DeclareMaxVarID(int32(maxVar)); err != nil {
				return newParseError("Parse", lineNo, err.Error())
			}
			preambleSeen = true

		case "a", "e":
			if !preambleSeen {
				return newParseError("Parse", lineNo, "quantifier block before preamble")
			}
			kind := qbf.Exists
			if fields[0] == "a" {
				kind = qbf.Forall
			}
			if err := f.NewQBlock(kind); err != nil {
				return newParseError("Parse", lineNo, err.Error())
			}
			if err := parseTerminatedInts(fields[1:], lineNo, func(v int32) error {
				if v == 0 {
					return f.AddLiteral(0)
				}
				return f.AddVarToQBlock(v)
			}); err != nil {
				return err
			}

		default:
			if !preambleSeen {
				return newParseError("Parse", lineNo, "clause before preamble")
			}
			if err := parseTerminatedInts(fields, lineNo, f.AddLiteral); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return newParseError("Parse", lineNo, err.Error())
	}
	return nil
}

// parseTerminatedInts parses a whitespace-split token list as signed
// 32-bit integers and applies each to apply, in order.
func parseTerminatedInts(fields []string, lineNo int, apply func(int32) error) error {
	for _, tok := range fields {
		n, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return newParseError("Parse", lineNo, fmt.Sprintf("non-numeric token %q", tok))
		}
		if err := apply(int32(n)); err != nil {
			return newParseError("Parse", lineNo, err.Error())
		}
	}
	return nil
}

// AddFormula opens path and parses it into f (spec.md §6.1
// "add_formula(path)").
func AddFormula(path string, f *qbf.Formula) error {
	file, err := os.Open(path)
	if err != nil {
		return newParseError("AddFormula", 0, fmt.Sprintf("cannot open %q: %v", path, err))
	}
	defer file.Close()
	return Parse(file, f)
}
