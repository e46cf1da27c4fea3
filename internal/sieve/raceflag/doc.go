// Package raceflag reports whether the build has the race detector enabled.
//
// The unsafe strategy races on purpose; tests that exercise it
// concurrently consult Enabled so they can skip themselves instead of
// tripping the detector on an intentional race.
package raceflag
