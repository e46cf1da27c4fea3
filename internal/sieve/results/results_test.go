package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrials() []Trial {
	return []Trial{
		{Strategy: "mutex", Workers: 1, OS: "linux", Seconds: 1.25, Index: 1, Primes: 1229, Lost: 0},
		{Strategy: "mutex", Workers: 4, OS: "linux", Seconds: 0.41, Index: 1, Primes: 1229, Lost: 0},
		{Strategy: "unsafe", Workers: 4, OS: "linux", Seconds: 0.22, Index: 1, Primes: 1234, Lost: 5},
		{Strategy: "atomic", Workers: 8, OS: "linux", Seconds: 0.19, Index: 2, Primes: 1229, Lost: LostUnknown},
	}
}

// TestWriteReadRoundTrip tests that rows survive the CSV round trip.
func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_results.csv")

	w, err := NewWriter(path)
	require.NoError(t, err)
	for _, trial := range sampleTrials() {
		require.NoError(t, w.Write(trial))
	}
	require.NoError(t, w.Close())

	got, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, sampleTrials(), got)
}

// TestAppendKeepsSingleHeader tests that reopening a results file
// appends rows without repeating the header.
func TestAppendKeepsSingleHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_results.csv")

	for run := 0; run < 2; run++ {
		w, err := NewWriter(path)
		require.NoError(t, err)
		require.NoError(t, w.Write(Trial{Strategy: "mutex", Workers: 2, OS: "linux", Seconds: 0.5, Index: run + 1}))
		require.NoError(t, w.Close())
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(raw), "Version,Threads,OS,Time"),
		"header must appear exactly once")

	trials, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, trials, 2)
	assert.Equal(t, 1, trials[0].Index)
	assert.Equal(t, 2, trials[1].Index)
}

// TestHeaderColumns tests the exact leading column order the legacy
// plotting scripts expect.
func TestHeaderColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_results.csv")

	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "Version,Threads,OS,Time,Trial,Primes,LostFlags\n"))
}

// TestReadLegacyFormat tests loading a file written by the original
// four-column collection scripts.
func TestReadLegacyFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.csv")
	legacy := "Version,Threads,OS,Time\nmutex,4,Darwin,0.482761\nspinlock,4,Linux,0.391200\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	trials, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, trials, 2)

	assert.Equal(t, Trial{
		Strategy: "mutex",
		Workers:  4,
		OS:       "Darwin",
		Seconds:  0.482761,
		Lost:     LostUnknown,
	}, trials[0])
}

// TestReadAllErrors tests rejection of malformed files.
func TestReadAllErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing required column", func(t *testing.T) {
		path := filepath.Join(dir, "noversion.csv")
		require.NoError(t, os.WriteFile(path, []byte("Threads,OS,Time\n4,linux,0.5\n"), 0o644))
		_, err := ReadAll(path)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("bad thread count", func(t *testing.T) {
		path := filepath.Join(dir, "badthreads.csv")
		require.NoError(t, os.WriteFile(path, []byte("Version,Threads,OS,Time\nmutex,four,linux,0.5\n"), 0o644))
		_, err := ReadAll(path)
		assert.ErrorContains(t, err, "bad Threads value")
	})

	t.Run("bad time", func(t *testing.T) {
		path := filepath.Join(dir, "badtime.csv")
		require.NoError(t, os.WriteFile(path, []byte("Version,Threads,OS,Time\nmutex,4,linux,slow\n"), 0o644))
		_, err := ReadAll(path)
		assert.ErrorContains(t, err, "bad Time value")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadAll(filepath.Join(dir, "absent.csv"))
		assert.Error(t, err)
	})

	t.Run("empty file reads as no trials", func(t *testing.T) {
		path := filepath.Join(dir, "empty.csv")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		trials, err := ReadAll(path)
		require.NoError(t, err)
		assert.Empty(t, trials)
	})
}

// TestCaptureSystemInfo tests that the snapshot is populated.
func TestCaptureSystemInfo(t *testing.T) {
	info := CaptureSystemInfo()

	assert.NotEmpty(t, info.OS)
	assert.NotEmpty(t, info.Arch)
	assert.NotEmpty(t, info.GoVersion)
	assert.Positive(t, info.CPUs)
	assert.Positive(t, info.MaxProcs)
}
