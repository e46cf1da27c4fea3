package results

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kolkov/syncbench/internal/sieve/experiment"
)

// cell aggregates the trials of one (strategy, workers, os) group.
type cell struct {
	sum  float64
	n    int
	lost int64
}

func (c *cell) mean() float64 {
	return c.sum / float64(c.n)
}

type groupKey struct {
	strategy string
	workers  int
}

// WriteReport renders the accumulated trials as a Markdown summary: a
// mean-time pivot with one column per operating system, the fastest
// strategy per thread count, and a data-loss appendix when any trial
// dropped flags.
func WriteReport(w io.Writer, trials []Trial) error {
	if len(trials) == 0 {
		_, err := fmt.Fprintln(w, "# Sieve Synchronization Summary\n\nNo trials recorded.")
		return err
	}

	cells := make(map[groupKey]map[string]*cell)
	osSet := make(map[string]bool)
	for _, t := range trials {
		key := groupKey{strategy: t.Strategy, workers: t.Workers}
		byOS := cells[key]
		if byOS == nil {
			byOS = make(map[string]*cell)
			cells[key] = byOS
		}
		c := byOS[t.OS]
		if c == nil {
			c = &cell{}
			byOS[t.OS] = c
		}
		c.sum += t.Seconds
		c.n++
		if t.Lost > c.lost {
			c.lost = t.Lost
		}
		osSet[t.OS] = true
	}

	oses := make([]string, 0, len(osSet))
	for os := range osSet {
		oses = append(oses, os)
	}
	sort.Strings(oses)

	keys := make([]groupKey, 0, len(cells))
	for key := range cells {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := strategyRank(keys[i].strategy), strategyRank(keys[j].strategy)
		if ri != rj {
			return ri < rj
		}
		if keys[i].strategy != keys[j].strategy {
			return keys[i].strategy < keys[j].strategy
		}
		return keys[i].workers < keys[j].workers
	})

	var b strings.Builder
	b.WriteString("# Sieve Synchronization Summary\n\n")
	fmt.Fprintf(&b, "Mean execution time in seconds over %d trials.\n\n", len(trials))

	b.WriteString("| Version | Threads |")
	for _, os := range oses {
		fmt.Fprintf(&b, " %s |", os)
	}
	b.WriteString("\n|---|---|")
	for range oses {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, key := range keys {
		fmt.Fprintf(&b, "| %s | %d |", key.strategy, key.workers)
		for _, os := range oses {
			if c := cells[key][os]; c != nil {
				fmt.Fprintf(&b, " %.6f |", c.mean())
			} else {
				b.WriteString(" - |")
			}
		}
		b.WriteString("\n")
	}

	writeFastest(&b, cells, keys, oses)
	writeDataLoss(&b, cells, keys, oses)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeFastest lists, per operating system and thread count, the
// strategy with the lowest mean time.
func writeFastest(b *strings.Builder, cells map[groupKey]map[string]*cell, keys []groupKey, oses []string) {
	b.WriteString("\n## Fastest strategy per thread count\n\n")

	for _, os := range oses {
		workerSet := make(map[int]bool)
		for _, key := range keys {
			if cells[key][os] != nil {
				workerSet[key.workers] = true
			}
		}
		workers := make([]int, 0, len(workerSet))
		for w := range workerSet {
			workers = append(workers, w)
		}
		sort.Ints(workers)

		fmt.Fprintf(b, "- **%s**:", os)
		for i, w := range workers {
			best := ""
			bestMean := 0.0
			for _, key := range keys {
				if key.workers != w {
					continue
				}
				c := cells[key][os]
				if c == nil {
					continue
				}
				if best == "" || c.mean() < bestMean {
					best = key.strategy
					bestMean = c.mean()
				}
			}
			if i > 0 {
				b.WriteString(";")
			}
			fmt.Fprintf(b, " %d threads: %s (%.6fs)", w, best, bestMean)
		}
		b.WriteString("\n")
	}
}

// writeDataLoss appends the cells where unsynchronized trials dropped
// flags. Omitted entirely when every trial was clean or unverified.
func writeDataLoss(b *strings.Builder, cells map[groupKey]map[string]*cell, keys []groupKey, oses []string) {
	any := false
	for _, byOS := range cells {
		for _, c := range byOS {
			if c.lost > 0 {
				any = true
			}
		}
	}
	if !any {
		return
	}

	b.WriteString("\n## Data loss under unsynchronized access\n\n")
	b.WriteString("| Version | Threads | OS | Max lost flags |\n|---|---|---|---|\n")
	for _, key := range keys {
		for _, os := range oses {
			if c := cells[key][os]; c != nil && c.lost > 0 {
				fmt.Fprintf(b, "| %s | %d | %s | %d |\n", key.strategy, key.workers, os, c.lost)
			}
		}
	}
}

// strategyRank orders known strategies canonically and pushes unknown
// names (from hand-edited files) to the end.
func strategyRank(name string) int {
	for i, s := range experiment.Strategies() {
		if string(s) == name {
			return i
		}
	}
	return len(experiment.Strategies())
}
