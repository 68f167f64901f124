// Command qratpreplus reads a QBF in QDIMACS format, preprocesses it
// with QBCE/QAT/QRATE/BLE/QRATU to saturation, and writes the reduced
// formula back out in QDIMACS format.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/lonsing/qratpreplus/qbf"
	"github.com/lonsing/qratpreplus/qdimacs"
)

const version = "qratpreplus 1.0 (Go)"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("qratpreplus", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := qbf.DefaultOptions()
	var (
		showHelp     bool
		showVersion  bool
		formulaStats bool
	)

	fs.BoolVar(&showHelp, "h", false, "show usage and exit")
	fs.BoolVar(&showHelp, "help", false, "show usage and exit")
	fs.BoolVar(&showVersion, "v", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")
	fs.Bool("print-formula", true, "print the preprocessed formula to stdout (always on; kept for CLI compatibility)")
	fs.BoolVar(&formulaStats, "formula-stats", false, "print engine statistics to stderr")
	fs.BoolVar(&opts.NoBLE, "no-ble", false, "disable blocked-literal elimination")
	fs.BoolVar(&opts.NoQRATU, "no-qratu", false, "disable QRAT universal literal elimination")
	fs.BoolVar(&opts.NoQBCE, "no-qbce", false, "disable quantified blocked clause elimination")
	fs.BoolVar(&opts.NoQAT, "no-qat", false, "disable asymmetric tautology clause elimination")
	fs.BoolVar(&opts.NoQRATE, "no-qrate", false, "disable QRAT clause elimination")
	fs.BoolVar(&opts.NoEABS, "no-eabs", false, "disable existential abstraction in QBCP")
	fs.BoolVar(&opts.NoEABSImprovedNesting, "no-eabs-improved-nesting", false, "disable the abstraction-level-minus-one refinement")
	fs.BoolVar(&opts.IgnoreInnerLits, "ignore-inner-lits", false, "skip inner-nesting literals when seeding QRAT checks")
	fs.BoolVar(&opts.IgnoreOutermostVars, "ignore-outermost-vars", false, "skip redundancy tests on outermost-block variables")
	fs.BoolVar(&opts.QBCECheckTautByNesting, "qbce-check-taut-by-nesting", false, "prune the outer-tautology scan by prefix nesting")
	fs.BoolVar(&opts.Permute, "permute", false, "shuffle the check order in QAT/QRAT modes")
	fs.Int64Var(&opts.Seed, "seed", 0, "PRNG seed for --permute")
	fs.Float64Var(&opts.SoftTimeLimitSeconds, "soft-time-limit", 0, "soft wall-clock budget in seconds (0 = unlimited)")
	fs.IntVar(&opts.LimitGlobalIterations, "limit-global-iterations", opts.LimitGlobalIterations, "cap on driver-loop iterations")
	fs.IntVar(&opts.LimitQBCPCurProps, "limit-qbcp-cur-props", opts.LimitQBCPCurProps, "per-check propagation budget")
	fs.IntVar(&opts.LimitMaxOccCnt, "limit-max-occ-cnt", opts.LimitMaxOccCnt, "skip clauses with an over-large complementary occurrence list")
	fs.IntVar(&opts.LimitMaxClauseLen, "limit-max-clause-len", opts.LimitMaxClauseLen, "skip clauses longer than this")
	fs.IntVar(&opts.LimitMinClauseLen, "limit-min-clause-len", opts.LimitMinClauseLen, "skip clauses shorter than this")
	fs.IntVar(&opts.Verbosity, "verbosity", 0, "trace verbosity (0, 1, 2)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if showHelp {
		printUsage(fs)
		return 0
	}
	if showVersion {
		fmt.Println(version)
		return 0
	}

	positional := fs.Args()
	if len(positional) < 1 {
		color.Red("qratpreplus: missing input formula")
		printUsage(fs)
		return 1
	}
	path := positional[0]
	if len(positional) > 1 {
		if secs, err := strconv.ParseFloat(positional[1], 64); err == nil {
			opts.SoftTimeLimitSeconds = secs
		}
	}

	f := qbf.NewFormula(opts)
	if err := qdimacs.AddFormula(path, f); err != nil {
		color.Red("qratpreplus: %v", err)
		return 1
	}

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGTERM)
	runDone := make(chan struct{})
	go func() {
		select {
		case <-interrupted:
			color.Yellow("qratpreplus: interrupted, process will abort")
			os.Exit(130)
		case <-runDone:
		}
	}()

	f.Preprocess()
	close(runDone)
	signal.Stop(interrupted)

	if err := f.Print(os.Stdout); err != nil {
		color.Red("qratpreplus: %v", err)
		return 1
	}
	if formulaStats {
		printStats(f.Stats())
	}
	return 0
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: qratpreplus [options] <input.qdimacs> [soft-time-limit-seconds]")
	fs.PrintDefaults()
}

func printStats(s qbf.Stats) {
	color.New(color.FgCyan, color.Bold).Fprintln(os.Stderr, "qratpreplus statistics")
	fmt.Fprintf(os.Stderr, "  clauses ingested:          %d\n", s.ClausesIngested)
	fmt.Fprintf(os.Stderr, "  tautologies dropped:       %d\n", s.TautologiesDropped)
	fmt.Fprintf(os.Stderr, "  unit clauses ingested:     %d\n", s.UnitClausesIngested)
	fmt.Fprintf(os.Stderr, "  universal lits stripped:   %d\n", s.UniversalLitsStripped)
	fmt.Fprintf(os.Stderr, "  qbcp calls/props:          %d / %d\n", s.QBCPCalls, s.QBCPPropagations)
	fmt.Fprintf(os.Stderr, "  qbcp budget exceeded:      %d\n", s.QBCPBudgetExceeded)
	fmt.Fprintf(os.Stderr, "  clauses removed (qbce/qat/qrate): %d / %d / %d\n",
		s.QBCEClausesRemoved, s.QATClausesRemoved, s.QRATEClausesRemoved)
	fmt.Fprintf(os.Stderr, "  literals removed (ble/qratu):     %d / %d\n",
		s.BLELiteralsRemoved, s.QRATULiteralsRemoved)
	fmt.Fprintf(os.Stderr, "  reschedules:               %d\n", s.Reschedules)
	fmt.Fprintf(os.Stderr, "  driver iterations:         %d\n", s.Iterations)
	fmt.Fprintf(os.Stderr, "  timed out:                 %t\n", s.TimedOut)
	fmt.Fprintf(os.Stderr, "  elapsed:                   %s\n", time.Duration(s.ElapsedNanos))
}
