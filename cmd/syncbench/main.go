// Package main implements the syncbench experiment binary.
//
// One invocation is one timed sieve run:
//
//	syncbench <num_threads> <strategy>
//
// The binary reads nothing but its two arguments: no configuration
// file, no environment variables, no state across invocations. On
// success it prints exactly three lines (thread count, selected
// strategy, elapsed seconds) and exits 0. Any argument problem prints
// usage to standard error and exits 1 before any worker spawns.
//
// Bulk collection across strategies and thread counts lives in the
// separate syncbench-suite tool; keeping this binary bare keeps its
// output trivially scriptable.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kolkov/syncbench"
)

func main() {
	os.Exit(run(os.Args[1:], syncbench.DefaultParams(), os.Stdout, os.Stderr))
}

// run executes one experiment invocation and returns the process exit
// code. Split from main so tests can drive it with small parameters
// and captured streams.
func run(args []string, params syncbench.Params, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		usage(stderr)
		return 1
	}

	threads, err := strconv.Atoi(args[0])
	if err != nil || threads < 1 {
		fmt.Fprintf(stderr, "Invalid thread count: %q\n\n", args[0])
		usage(stderr)
		return 1
	}

	// Validate the strategy name before announcing anything, so a bad
	// name produces usage and nothing else.
	strategy := args[1]
	if !known(strategy) {
		fmt.Fprintf(stderr, "Unknown version: %s\n\n", strategy)
		usage(stderr)
		return 1
	}

	fmt.Fprintf(stdout, "Running with %d threads...\n", threads)
	fmt.Fprintf(stdout, "Selected version: %s\n", strategy)

	res, err := syncbench.RunParams(params, strategy, threads)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	fmt.Fprintf(stdout, "Execution time: %.6g seconds\n", res.Elapsed.Seconds())
	return 0
}

func known(strategy string) bool {
	for _, s := range syncbench.Strategies() {
		if s == strategy {
			return true
		}
	}
	return false
}

func usage(w io.Writer) {
	fmt.Fprint(w, `syncbench - parallel sieve synchronization experiment

USAGE:
    syncbench <num_threads> <strategy>

ARGUMENTS:
    num_threads    number of worker threads (positive integer)
    strategy       synchronization strategy, one of:
                       mutex      blocking locks per index block
                       spinlock   busy-wait locks per index block
                       atomic     lock-free atomic flag access
                       unsafe     unsynchronized access (results may be wrong)

EXAMPLES:
    # Time the sieve with 8 threads under the atomic strategy
    syncbench 8 atomic

    # Compare against the fully locked variant
    syncbench 8 mutex

OUTPUT:
    Three lines on standard output: the thread count, the selected
    strategy, and the elapsed wall-clock seconds. Exit code 0 on a
    completed run, 1 on any argument error.

ABOUT:
    The sieve marks every composite below 100000000 by scanning
    candidates below 10000 across the requested number of threads.
    All four strategies run the identical workload; only the
    synchronization of the shared flag array differs. The unsafe
    strategy is included deliberately: its lost updates are the
    experimental condition under measurement.
`)
}
