package cli

// Exit codes for the treeflow CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates all tasks completed successfully.
	ExitSuccess = 0

	// ExitTasksFailed indicates one or more tasks failed or were skipped.
	ExitTasksFailed = 1

	// ExitInvalidArguments indicates invalid arguments, an unreadable or
	// malformed manifest, or a structural graph error (cycle, bad tree).
	ExitInvalidArguments = 3
)
