package syncbench

// Version information for the sieve synchronization experiment.
const (
	// Version is the current version of the experiment module.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about the experiment module.
type Info struct {
	// Version is the module version string.
	Version string

	// Workload names the fixed computation every strategy runs.
	Workload string

	// Strategies lists the supported synchronization strategies.
	Strategies []string
}

// GetInfo returns information about the experiment module.
//
// Example:
//
//	info := syncbench.GetInfo()
//	fmt.Printf("syncbench %s (%s)\n", info.Version, info.Workload)
func GetInfo() Info {
	return Info{
		Version:    Version,
		Workload:   "parallel Sieve of Eratosthenes",
		Strategies: Strategies(),
	}
}
