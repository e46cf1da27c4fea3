//go:build !race

package raceflag

// Enabled is true when the program was built with -race.
const Enabled = false
