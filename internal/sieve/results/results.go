// Package results persists experiment trials as CSV rows and renders
// the accumulated rows into a summary report.
//
// The CSV layout keeps the original collection format of the experiment
// (Version, Threads, OS, Time) as its leading columns, so files written
// here stay readable by the plotting scripts that predate this module;
// the trailing columns add per-trial verification data.
package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
)

// LostUnknown marks a trial that ran without verification; the loss
// column carries it as -1 to keep "no data" distinct from "no loss".
const LostUnknown int64 = -1

// header is the canonical column order. The first four columns are the
// legacy collection format; consumers locate columns by name, not
// position, so reordering or extending stays backward compatible.
var header = []string{"Version", "Threads", "OS", "Time", "Trial", "Primes", "LostFlags"}

// ErrMissingColumn reports a results file without one of the four
// required legacy columns.
var ErrMissingColumn = errors.New("results: missing required column")

// Trial is one timed sieve execution within a suite run.
type Trial struct {
	// Strategy is the synchronization strategy name (legacy column
	// "Version").
	Strategy string

	// Workers is the worker count (legacy column "Threads").
	Workers int

	// OS is the operating system the trial ran on.
	OS string

	// Seconds is the measured wall-clock time.
	Seconds float64

	// Index is the 1-based ordinal of this trial within its
	// (strategy, workers) cell.
	Index int

	// Primes is the number of indices the run left presumed prime.
	Primes int64

	// Lost is the number of composite flags the run failed to set
	// compared with the sequential reference, or LostUnknown when the
	// trial ran without verification.
	Lost int64
}

func (t Trial) record() []string {
	return []string{
		t.Strategy,
		strconv.Itoa(t.Workers),
		t.OS,
		strconv.FormatFloat(t.Seconds, 'f', 6, 64),
		strconv.Itoa(t.Index),
		strconv.FormatInt(t.Primes, 10),
		strconv.FormatInt(t.Lost, 10),
	}
}

// SystemInfo describes the host an experiment suite runs on.
type SystemInfo struct {
	OS        string
	Arch      string
	CPUs      int
	MaxProcs  int
	GoVersion string
}

// CaptureSystemInfo snapshots the current host and runtime.
func CaptureSystemInfo() SystemInfo {
	return SystemInfo{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		CPUs:      runtime.NumCPU(),
		MaxProcs:  runtime.GOMAXPROCS(0),
		GoVersion: runtime.Version(),
	}
}

// Writer appends trial rows to a CSV file.
//
// The header row is written only when the file is new or empty, so
// repeated suite runs accumulate rows in one results file.
type Writer struct {
	f   *os.File
	csv *csv.Writer
}

// NewWriter opens path for appending, creating it (and writing the
// header) if needed.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening results file: %w", err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("inspecting results file: %w", err)
	}

	w := &Writer{f: f, csv: csv.NewWriter(f)}
	if st.Size() == 0 {
		if err := w.csv.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing results header: %w", err)
		}
	}
	return w, nil
}

// Write appends one trial row.
func (w *Writer) Write(t Trial) error {
	if err := w.csv.Write(t.record()); err != nil {
		return fmt.Errorf("writing trial row: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.f.Close()
		return fmt.Errorf("flushing results: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("closing results file: %w", err)
	}
	return nil
}

// ReadAll loads every trial row from a results CSV.
//
// Columns are located by header name. The four legacy columns are
// required; Trial, Primes and LostFlags are optional so files written
// by the original collection scripts still load (their trials come back
// with Index 0, Primes 0 and Lost set to LostUnknown).
func ReadAll(path string) ([]Trial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	head, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading results header: %w", err)
	}

	col := make(map[string]int, len(head))
	for i, name := range head {
		col[name] = i
	}
	for _, required := range header[:4] {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var trials []Trial
	for row := 2; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			return trials, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading results row %d: %w", row, err)
		}

		t, err := parseTrial(rec, col)
		if err != nil {
			return nil, fmt.Errorf("results row %d: %w", row, err)
		}
		trials = append(trials, t)
	}
}

func parseTrial(rec []string, col map[string]int) (Trial, error) {
	field := func(name string) (string, bool) {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return "", false
		}
		return rec[i], true
	}

	t := Trial{Lost: LostUnknown}

	version, _ := field("Version")
	t.Strategy = version

	threads, _ := field("Threads")
	workers, err := strconv.Atoi(threads)
	if err != nil {
		return Trial{}, fmt.Errorf("bad Threads value %q: %w", threads, err)
	}
	t.Workers = workers

	t.OS, _ = field("OS")

	seconds, _ := field("Time")
	t.Seconds, err = strconv.ParseFloat(seconds, 64)
	if err != nil {
		return Trial{}, fmt.Errorf("bad Time value %q: %w", seconds, err)
	}

	if s, ok := field("Trial"); ok {
		if t.Index, err = strconv.Atoi(s); err != nil {
			return Trial{}, fmt.Errorf("bad Trial value %q: %w", s, err)
		}
	}
	if s, ok := field("Primes"); ok {
		if t.Primes, err = strconv.ParseInt(s, 10, 64); err != nil {
			return Trial{}, fmt.Errorf("bad Primes value %q: %w", s, err)
		}
	}
	if s, ok := field("LostFlags"); ok {
		if t.Lost, err = strconv.ParseInt(s, 10, 64); err != nil {
			return Trial{}, fmt.Errorf("bad LostFlags value %q: %w", s, err)
		}
	}
	return t, nil
}
