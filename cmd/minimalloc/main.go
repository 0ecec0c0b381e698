// Command minimalloc reads a buffer CSV, finds (or minimizes) a placement,
// optionally validates it, and writes the solved CSV back out.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/google/minimalloc/capacity"
	"github.com/google/minimalloc/core"
	"github.com/google/minimalloc/csvio"
	"github.com/google/minimalloc/durationx"
	"github.com/google/minimalloc/solve"
	"github.com/google/minimalloc/validate"
)

// toggle models an argparse-style "--opt/--no-opt" boolean pair: the
// negative flag wins if both are given.
type toggle struct {
	on  *bool
	off *bool
}

func newToggle(fs *flag.FlagSet, name string, def bool) toggle {
	return toggle{
		on:  fs.Bool(name, def, fmt.Sprintf("enable %s (default %t)", name, def)),
		off: fs.Bool("no-"+name, false, fmt.Sprintf("disable %s", name)),
	}
}

func (t toggle) resolve() bool {
	if *t.off {
		return false
	}

	return *t.on
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("minimalloc", flag.ContinueOnError)

	input := fs.String("input", "", "input CSV path (required)")
	output := fs.String("output", "", "output CSV path (required)")
	capacityFlag := fs.Int64("capacity", 0, "memory capacity; required unless -minimize-capacity is set")
	timeoutFlag := fs.String("timeout", "", "wall-clock budget: bare seconds, a s/m/h suffix, or inf/infinite/infinity")
	doValidate := fs.Bool("validate", false, "validate the solution before writing it")
	minimizeCapacity := fs.Bool("minimize-capacity", false, "binary-search the smallest admissible capacity")
	heuristicsFlag := fs.String("preordering-heuristics", "WAT,TAW,TWA", "comma-separated preordering heuristic codes, tried in order")

	canonicalOnly := newToggle(fs, "canonical-only", true)
	checkDominance := newToggle(fs, "check-dominance", true)
	hatlessPruning := newToggle(fs, "hatless-pruning", true)
	sectionInference := newToggle(fs, "section-inference", true)
	unallocatedFloor := newToggle(fs, "unallocated-floor", true)
	dynamicDecomposition := newToggle(fs, "dynamic-decomposition", true)
	monotonicFloor := newToggle(fs, "monotonic-floor", true)
	dynamicOrdering := newToggle(fs, "dynamic-ordering", true)

	if err := fs.Parse(args); err != nil {
		return 1
	}

	start := time.Now()
	status := runMinimalloc(minimallocConfig{
		input:            *input,
		output:           *output,
		capacity:         int32(*capacityFlag),
		minimizeCapacity: *minimizeCapacity,
		timeout:          *timeoutFlag,
		validate:         *doValidate,
		heuristics:       *heuristicsFlag,
		opts: solve.Options{
			CanonicalOnly:        canonicalOnly.resolve(),
			CheckDominance:       checkDominance.resolve(),
			HatlessPruning:       hatlessPruning.resolve(),
			SectionInference:     sectionInference.resolve(),
			UnallocatedFloor:     unallocatedFloor.resolve(),
			DynamicDecomposition: dynamicDecomposition.resolve(),
			MonotonicFloor:       monotonicFloor.resolve(),
			DynamicOrdering:      dynamicOrdering.resolve(),
		},
	})
	fmt.Fprintf(os.Stderr, "Elapsed time: %.3fs\n", time.Since(start).Seconds())

	return status
}

type minimallocConfig struct {
	input, output    string
	capacity         int32
	minimizeCapacity bool
	timeout          string
	validate         bool
	heuristics       string
	opts             solve.Options
}

func runMinimalloc(cfg minimallocConfig) int {
	if cfg.input == "" || cfg.output == "" {
		fmt.Fprintln(os.Stderr, "Error: -input and -output are required")

		return 1
	}
	if !cfg.minimizeCapacity && cfg.capacity <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -capacity must be positive unless -minimize-capacity is set")

		return 1
	}

	timeout, err := durationx.Parse(cfg.timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -timeout: %v\n", err)

		return 1
	}
	cfg.opts.Timeout = timeout
	cfg.opts.PreorderingHeuristics = splitHeuristics(cfg.heuristics)

	buffers, err := readBuffers(cfg.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)

		return 1
	}

	solution, capacityUsed, status, err := solveBuffers(buffers, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}
	if status != solve.StatusSolved {
		fmt.Fprintf(os.Stderr, "Solver failed: %s\n", status)

		return 1
	}

	p, err := core.NewProblem(buffers, capacityUsed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	if cfg.validate {
		result := validate.Validate(p, solution.Offsets, &solution.Height)
		fmt.Fprintf(os.Stderr, "%s\n", passFail(result))
		if result != validate.Good {
			return 1
		}
	}

	if err := writeSolution(cfg.output, p, solution.Offsets); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)

		return 1
	}

	return 0
}

func solveBuffers(buffers []core.Buffer, cfg minimallocConfig) (core.Solution, int32, solve.Status, error) {
	if cfg.minimizeCapacity {
		var upperBound *int32
		if cfg.capacity > 0 {
			upperBound = &cfg.capacity
		}

		p, err := core.NewProblem(buffers, maxInt32(cfg.capacity, sumSizes(buffers)))
		if err != nil {
			return core.Solution{}, 0, solve.StatusInfeasible, err
		}

		res, err := capacity.Minimize(p, cfg.opts, upperBound)
		if err != nil {
			return core.Solution{}, 0, solve.StatusInfeasible, err
		}

		return res.Solution, res.Capacity, res.Status, nil
	}

	p, err := core.NewProblem(buffers, cfg.capacity)
	if err != nil {
		return core.Solution{}, 0, solve.StatusInfeasible, err
	}

	res, err := solve.New(cfg.opts).Solve(p)
	if err != nil {
		return core.Solution{}, 0, solve.StatusInfeasible, err
	}

	return res.Solution, cfg.capacity, res.Status, nil
}

func readBuffers(path string) ([]core.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	defer f.Close()

	buffers, err := csvio.FromCSV(f)
	if err != nil {
		return nil, errors.Wrap(err, "parse csv")
	}

	return buffers, nil
}

func writeSolution(path string, p *core.Problem, offsets []int32) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer f.Close()

	if err := csvio.ToCSV(f, p, offsets, csvio.ModeNew); err != nil {
		return errors.Wrap(err, "write csv")
	}

	return nil
}

func passFail(r validate.Result) string {
	if r == validate.Good {
		return "PASS"
	}

	return "FAIL: " + r.String()
}

func splitHeuristics(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}

	return out
}

func sumSizes(buffers []core.Buffer) int32 {
	var total int64
	for _, b := range buffers {
		total += int64(b.Size)
	}
	if total > 1<<31-1 {
		return 1<<31 - 1
	}

	return int32(total)
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}

	return b
}
