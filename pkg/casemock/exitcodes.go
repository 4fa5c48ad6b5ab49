// Package casemock provides public constants for external tools that wrap
// the casemock CLI.
package casemock

// Exit codes returned by the casemock CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure.
	ExitFailure = 1

	// ExitConfigError indicates invalid configuration, a malformed catalog
	// or malformed input.
	ExitConfigError = 2

	// ExitEnvError indicates the catalog is missing or unreadable.
	ExitEnvError = 3

	// ExitNoMatch indicates the lookup completed but no recorded case
	// matched the input.
	ExitNoMatch = 4
)
