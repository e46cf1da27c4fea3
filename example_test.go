package syncbench_test

import (
	"fmt"

	"github.com/kolkov/syncbench"
)

// Example demonstrates one timed run on a reduced range. The canonical
// range takes seconds; this one finishes instantly and still finds the
// 25 primes below 100.
func Example() {
	params := syncbench.Params{
		SieveLimit:  100,
		ScanLimit:   10,
		Granularity: 64,
	}

	res, err := syncbench.RunParams(params, "mutex", 2)
	if err != nil {
		fmt.Println("run failed:", err)
		return
	}

	fmt.Printf("%s with %d workers found %d primes\n", res.Strategy, res.Workers, res.Primes)

	// Output:
	// mutex with 2 workers found 25 primes
}

// Example_strategies compares every strategy on the same reduced range.
// The three synchronized strategies always agree; "unsafe" agrees here
// too because a single worker has nobody to collide with.
func Example_strategies() {
	params := syncbench.Params{
		SieveLimit:  10_000,
		ScanLimit:   100,
		Granularity: 64,
	}

	for _, strategy := range syncbench.Strategies() {
		res, err := syncbench.RunParams(params, strategy, 1)
		if err != nil {
			fmt.Println("run failed:", err)
			return
		}
		fmt.Printf("%s: %d primes\n", res.Strategy, res.Primes)
	}

	// Output:
	// mutex: 1229 primes
	// spinlock: 1229 primes
	// atomic: 1229 primes
	// unsafe: 1229 primes
}

// Example_unknownStrategy shows the validation surface.
func Example_unknownStrategy() {
	_, err := syncbench.Run("optimistic", 4)
	fmt.Println(err)

	// Output:
	// experiment: unknown strategy: "optimistic"
}
